package providers

import (
	"encoding/json"

	proto "github.com/tliron/glsp/protocol_3_16"
	. "github.com/vantaboard/class-fold/types"
)

type SelectionChangeParams struct {
	TextDocument proto.TextDocumentIdentifier `json:"textDocument"`
	Selections   []Range                      `json:"selections"`
}

type ActiveEditorChangeParams struct {
	TextDocument proto.TextDocumentIdentifier `json:"textDocument"`
}

// SelectionChange starts a fold cycle for the document. The cycle is
// superseded once this returns and a newer selection arrives.
func (s *Session) SelectionChange(_ *Ctx, params *SelectionChangeParams) error {
	uri, err := NormalizeUri(params.TextDocument.URI)

	if err != nil {
		return err
	}

	doc, err := s.Docs.Get(uri)

	if err != nil {
		return documentError(uri, err)
	}

	if !s.Controller.IsRecognized(doc.LanguageID) {
		return nil
	}

	s.spawn("selection "+uri, s.Controller.Selection(doc, params.Selections))

	return nil
}

func (s *Session) ActiveEditorChange(_ *Ctx, params *ActiveEditorChangeParams) error {
	uri, err := NormalizeUri(params.TextDocument.URI)

	if err != nil {
		return err
	}

	doc, err := s.Docs.Get(uri)

	if err != nil {
		return documentError(uri, err)
	}

	if !s.Controller.IsRecognized(doc.LanguageID) {
		return nil
	}

	s.spawn("active editor "+uri, s.Controller.ActiveEditorChanged(doc))

	return nil
}

type ClassFoldHandlers struct {
	SelectionChange    SelectionChangeFunc
	ActiveEditorChange ActiveEditorChangeFunc
}

func (req *ClassFoldHandlers) Handle(ctx *Ctx) (res any, validMethod bool, validParams bool, err error) {
	switch ctx.Method {
	case SelectionChangeMethod:
		validMethod = true

		var params SelectionChangeParams
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			err = req.SelectionChange(ctx, &params)
		}

	case ActiveEditorChangeMethod:
		validMethod = true

		var params ActiveEditorChangeParams
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			err = req.ActiveEditorChange(ctx, &params)
		}
	}

	return
}

type SelectionChangeFunc func(*Ctx, *SelectionChangeParams) error
type ActiveEditorChangeFunc func(*Ctx, *ActiveEditorChangeParams) error
