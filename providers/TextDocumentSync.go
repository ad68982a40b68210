package providers

import (
	"fmt"

	proto "github.com/tliron/glsp/protocol_3_16"
	"github.com/vantaboard/class-fold/state"
	. "github.com/vantaboard/class-fold/types"
)

func (s *Session) DocOpen(_ *Ctx, params *proto.DidOpenTextDocumentParams) (err error) {
	uri, err := NormalizeUri(params.TextDocument.URI)

	if err != nil {
		return
	}

	item := params.TextDocument
	doc := state.CreateDoc(uri, item.LanguageID, item.Version, item.Text)
	s.Docs.Set(doc)

	if !s.Controller.IsRecognized(doc.LanguageID) {
		return
	}

	s.spawn("open "+uri, s.Controller.DocumentOpened(doc))

	return
}

func (s *Session) DocChange(_ *Ctx, params *proto.DidChangeTextDocumentParams) (err error) {
	uri, err := NormalizeUri(params.TextDocument.URI)

	if err != nil {
		return
	}

	version := params.TextDocument.Version

	doc, err := s.Docs.Update(uri, func(doc *state.Doc) (*state.Doc, error) {
		var err error

		for _, wrap := range params.ContentChanges {
			switch change := wrap.(type) {
			case proto.TextDocumentContentChangeEventWhole:
				doc, err = doc.Replace(change.Text, version)

			case proto.TextDocumentContentChangeEvent:
				if change.Range == nil {
					doc, err = doc.Replace(change.Text, version)
				} else {
					doc, err = doc.Change(*change.Range, change.Text, version)
				}
			}

			if err != nil {
				return nil, fmt.Errorf("change %s: %w", uri, err)
			}
		}

		return doc, nil
	})

	if err != nil {
		return documentError(uri, err)
	}

	if s.Controller.IsRecognized(doc.LanguageID) {
		s.Controller.DocumentChanged(uri)
	}

	return
}

func (s *Session) DocClose(_ *Ctx, params *proto.DidCloseTextDocumentParams) (err error) {
	uri, err := NormalizeUri(params.TextDocument.URI)

	if err != nil {
		return
	}

	doc, err := s.Docs.Get(uri)

	if err != nil {
		return documentError(uri, err)
	}

	s.ranges.Delete(rangesKey(doc))
	s.Docs.Close(uri)
	s.Controller.DocumentClosed(uri)

	return
}
