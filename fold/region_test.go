package fold

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vantaboard/class-fold/scanner"
	"github.com/vantaboard/class-fold/state"
	. "github.com/vantaboard/class-fold/types"
	"pgregory.net/rapid"
)

func cursor(line, char uint32) Range {
	return Range{
		Start: Position{Line: line, Character: char},
		End:   Position{Line: line, Character: char},
	}
}

func classify(text string, kind scanner.Kind, selections ...Range) []Classified {
	doc := state.CreateDoc("file:///test.tsx", "typescriptreact", 1, text)

	return ClassifyAll(Locate(doc, scanner.Scan(text, kind)), selections, doc)
}

func TestClassify(t *testing.T) {
	list := []struct {
		Name       string
		Text       string
		Kind       scanner.Kind
		Selections []Range
		Test       []Status
	}{
		{
			Name: "single line without selection",
			Text: `<div className="foo bar baz">`,
			Kind: scanner.Class,
			Test: []Status{Hidden},
		},
		{
			Name:       "single line with selection elsewhere",
			Text:       "<div className=\"foo\">\ntext",
			Kind:       scanner.Class,
			Selections: []Range{cursor(1, 2)},
			Test:       []Status{Hidden},
		},
		{
			Name:       "value on its own line",
			Text:       "<div\n  className=\"a b c\"\n/>",
			Kind:       scanner.Class,
			Selections: []Range{cursor(0, 0)},
			Test:       []Status{Hidden},
		},
		{
			Name: "multi line value",
			Text: "<div className=\"a\n  b c\">\n</div>",
			Kind: scanner.Class,
			Test: []Status{Folded},
		},
		{
			Name: "multi line value closing the tag",
			Text: "<div className=\"a\n  b c\" />",
			Kind: scanner.Class,
			Test: []Status{FoldedEnd},
		},
		{
			Name: "bracketed style closing the tag",
			Text: "<div style={{\n  color: 'red'\n}}/>",
			Kind: scanner.Style,
			Test: []Status{FoldedEnd},
		},
		{
			Name:       "selection on start line",
			Text:       "<div className=\"a\n  b c\">\n</div>",
			Kind:       scanner.Class,
			Selections: []Range{cursor(0, 0)},
			Test:       []Status{None},
		},
		{
			Name:       "selection on end line",
			Text:       "<div className=\"a\n  b c\">\n</div>",
			Kind:       scanner.Class,
			Selections: []Range{cursor(1, 100)},
			Test:       []Status{None},
		},
		{
			Name: "selection ending inside",
			Text: "x\n<div className=\"a\n  b c\">\n</div>",
			Kind: scanner.Class,
			Selections: []Range{{
				Start: Position{Line: 0, Character: 0},
				End:   Position{Line: 2, Character: 2},
			}},
			Test: []Status{Folded},
		},
		{
			Name:       "one of several selections",
			Text:       "<a class=\"x\">\n<b class=\"y\">\n<c class=\"z\">",
			Kind:       scanner.Class,
			Selections: []Range{cursor(0, 1), cursor(2, 0)},
			Test:       []Status{None, Hidden, None},
		},
	}

	for _, item := range list {
		t.Run(item.Name, func(t *testing.T) {
			res := classify(item.Text, item.Kind, item.Selections...)
			statuses := make([]Status, len(res))

			for i, c := range res {
				statuses[i] = c.Status
			}

			assert.Equal(t, item.Test, statuses)
		})
	}
}

func TestClassifyColumnIgnored(t *testing.T) {
	text := `<div className="foo bar baz">`

	for char := uint32(0); char < 40; char++ {
		res := classify(text, scanner.Class, cursor(0, char))

		require.Len(t, res, 1)
		assert.Equal(t, None, res[0].Status, "column %d", char)
	}
}

func TestLocate(t *testing.T) {
	text := "<div\n  className=\"a\n b\" />"
	doc := state.CreateDoc("", "html", 1, text)
	regions := Locate(doc, scanner.Scan(text, scanner.Class))

	require.Len(t, regions, 1)
	assert.Equal(t, Range{
		Start: Position{Line: 1, Character: 2},
		End:   Position{Line: 2, Character: 3},
	}, regions[0].Range)
	assert.True(t, regions[0].Multiline())
}

func TestStatusText(t *testing.T) {
	for _, status := range Statuses {
		text, err := status.MarshalText()
		require.NoError(t, err)

		var parsed Status
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, status, parsed)
	}

	var s Status
	assert.Error(t, s.UnmarshalText([]byte("open")))
	assert.Equal(t, "foldedEnd", FoldedEnd.String())
}

var genDocument = rapid.Custom(func(t *rapid.T) string {
	return rapid.StringMatching(`(<[a-z]{1,3}( (class|className|style)=("[a-z \n]{0,8}"|\{[a-z \n]{0,8}\}))? ?/?>\n?){0,8}`).Draw(t, "text")
})

func genSelections(t *rapid.T) []Range {
	lines := rapid.SliceOfN(rapid.Uint32Range(0, 12), 0, 3).Draw(t, "lines")
	list := make([]Range, len(lines))

	for i, line := range lines {
		list[i] = cursor(line, 0)
	}

	return list
}

func TestClassifySingleLineNeverFolded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genDocument.Draw(t, "doc")
		selections := genSelections(t)

		for _, kind := range scanner.Kinds {
			for _, c := range classify(text, kind, selections...) {
				if !c.Multiline() && c.Status.IsFolded() {
					t.Fatalf("single line span %v classified %s", c.Range, c.Status)
				}
			}
		}
	})
}

func TestClassifyIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genDocument.Draw(t, "doc")
		selections := genSelections(t)

		for _, kind := range scanner.Kinds {
			first := classify(text, kind, selections...)
			second := classify(text, kind, selections...)

			if !assert.ObjectsAreEqual(first, second) {
				t.Fatalf("classification changed: %v != %v", first, second)
			}
		}
	})
}

func TestBucketsExclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genDocument.Draw(t, "doc")
		selections := genSelections(t)

		for _, kind := range scanner.Kinds {
			items := classify(text, kind, selections...)
			editor := &fakeEditor{}
			set := NewDecorationSet(kind, "")

			if err := set.Paint(context.Background(), editor, "", items, nil); err != nil {
				t.Fatal(err)
			}

			seen := make(map[Range]Status)
			total := 0

			for _, d := range editor.Decorations() {
				for _, r := range d.Ranges {
					if prev, ok := seen[r]; ok {
						t.Fatalf("range %v in %s and %s", r, prev, d.Status)
					}

					seen[r] = d.Status
					total++
				}
			}

			if total != len(items) {
				t.Fatalf("%d ranges bucketed, %d classified", total, len(items))
			}
		}
	})
}
