package fold

import (
	"iter"
	"strings"

	"github.com/vantaboard/class-fold/scanner"
	. "github.com/vantaboard/class-fold/types"
)

const SelfClosingMarker = "/>"

type Positioner interface {
	OffsetToPosition(offset int) Position
}

type LineReader interface {
	LineText(line int) string
}

// Region is a scanned span with its line/column range.
type Region struct {
	scanner.Span

	Range Range
}

func (r Region) StartLine() uint32 {
	return r.Range.Start.Line
}

func (r Region) EndLine() uint32 {
	return r.Range.End.Line
}

func (r Region) Multiline() bool {
	return r.StartLine() != r.EndLine()
}

func Locate(doc Positioner, spans iter.Seq[scanner.Span]) []Region {
	list := make([]Region, 0)

	for span := range spans {
		list = append(list, Region{
			Span: span,
			Range: Range{
				Start: doc.OffsetToPosition(span.Start),
				End:   doc.OffsetToPosition(span.End),
			},
		})
	}

	return list
}

type Classified struct {
	Region

	Status Status
}

// IsActive reports whether a selection starts on one of the region lines.
// Only the start line of a selection counts.
func IsActive(region Region, selections []Range) bool {
	for _, sel := range selections {
		line := sel.Start.Line

		if line >= region.StartLine() && line <= region.EndLine() {
			return true
		}
	}

	return false
}

func Classify(region Region, selections []Range, lines LineReader) Status {
	if IsActive(region, selections) {
		return None
	}

	if !region.Multiline() {
		return Hidden
	}

	if strings.Contains(lines.LineText(int(region.EndLine())), SelfClosingMarker) {
		return FoldedEnd
	}

	return Folded
}

func ClassifyAll(regions []Region, selections []Range, lines LineReader) []Classified {
	list := make([]Classified, len(regions))

	for i, region := range regions {
		list[i] = Classified{
			Region: region,
			Status: Classify(region, selections, lines),
		}
	}

	return list
}
