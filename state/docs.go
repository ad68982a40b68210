package state

import (
	"errors"
	"strings"
	"sync"

	"github.com/redexp/textdocument"
	. "github.com/vantaboard/class-fold/types"
)

var ErrNotOpen = errors.New("document is not open")

// Doc is a snapshot of an open text document. Edits produce a new Doc.
// Offsets passed to Doc are rune offsets into Text.
type Doc struct {
	*textdocument.TextDocument

	Uri        Uri
	LanguageID string
	Version    int32

	// TextDocument caches the last converted position
	lock      sync.Mutex
	runeBytes []uint32
}

func CreateDoc(uri Uri, languageID string, version int32, text string) *Doc {
	return &Doc{
		TextDocument: textdocument.NewTextDocument(text),
		Uri:          uri,
		LanguageID:   languageID,
		Version:      version,
	}
}

func (doc *Doc) next(version int32) *Doc {
	return &Doc{
		TextDocument: &textdocument.TextDocument{},
		Uri:          doc.Uri,
		LanguageID:   doc.LanguageID,
		Version:      version,
	}
}

// LineText returns the line without its line break.
func (doc *Doc) LineText(line int) string {
	if line < 0 {
		return ""
	}

	start, end, err := doc.LineMinMaxByteIndex(uint32(line))

	if err != nil {
		return ""
	}

	return strings.TrimSuffix(doc.Text[start:end], "\r")
}

// byte index of a rune offset, clamped to the text
func (doc *Doc) byteIndex(offset int) uint32 {
	if doc.runeBytes == nil {
		doc.runeBytes = make([]uint32, 0, len(doc.Text)+1)

		for i := range doc.Text {
			doc.runeBytes = append(doc.runeBytes, uint32(i))
		}

		doc.runeBytes = append(doc.runeBytes, uint32(len(doc.Text)))
	}

	offset = min(max(offset, 0), len(doc.runeBytes)-1)

	return doc.runeBytes[offset]
}

func (doc *Doc) OffsetToPosition(offset int) Position {
	doc.lock.Lock()
	defer doc.lock.Unlock()

	index := doc.byteIndex(offset)
	pos, err := doc.ByteIndexToPosition(index)

	if err != nil {
		line, _ := doc.ByteIndexLine(index)
		return Position{Line: line}
	}

	return *pos
}

// Change applies an incremental edit to a copy of doc.
func (doc *Doc) Change(r Range, text string, version int32) (*Doc, error) {
	next := doc.next(version)
	err := next.SetText(doc.Text)

	if err != nil {
		return nil, err
	}

	err = next.TextDocument.Change(&textdocument.ChangeEvent{
		Range: &r,
		Text:  text,
	})

	if err != nil {
		return nil, err
	}

	return next, nil
}

func (doc *Doc) Replace(text string, version int32) (*Doc, error) {
	next := doc.next(version)
	err := next.SetText(text)

	if err != nil {
		return nil, err
	}

	return next, nil
}

type Docs struct {
	docs sync.Map

	UpdateLock sync.Mutex
}

func (docs *Docs) Get(uri Uri) (doc *Doc, err error) {
	value, ok := docs.docs.Load(uri)

	if !ok {
		return nil, ErrNotOpen
	}

	return value.(*Doc), nil
}

func (docs *Docs) Has(uri Uri) bool {
	_, ok := docs.docs.Load(uri)

	return ok
}

func (docs *Docs) Set(doc *Doc) {
	docs.docs.Store(doc.Uri, doc)
}

// Update stores the snapshot produced by change. Unknown uris give ErrNotOpen.
// On error the stored snapshot is kept.
func (docs *Docs) Update(uri Uri, change func(*Doc) (*Doc, error)) (doc *Doc, err error) {
	docs.UpdateLock.Lock()
	defer docs.UpdateLock.Unlock()

	doc, err = docs.Get(uri)

	if err != nil {
		return
	}

	doc, err = change(doc)

	if err != nil {
		return nil, err
	}

	docs.Set(doc)

	return
}

func (docs *Docs) Close(uri Uri) {
	docs.docs.Delete(uri)
}
