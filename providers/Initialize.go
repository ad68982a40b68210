package providers

import (
	proto "github.com/tliron/glsp/protocol_3_16"
	"github.com/vantaboard/class-fold/fold"
	"github.com/vantaboard/class-fold/scanner"
	. "github.com/vantaboard/class-fold/types"
)

// KindCapabilities tells the client which style handles and icon belong to
// an attribute kind, so it can create the decoration types up front.
type KindCapabilities struct {
	Kind   scanner.Kind           `json:"kind"`
	Icon   string                 `json:"icon"`
	Styles map[fold.Status]string `json:"styles"`
}

type ClassFoldCapabilities struct {
	Languages []string           `json:"languages"`
	Kinds     []KindCapabilities `json:"kinds"`
}

func (s *Session) Initialize(_ *Ctx, params *proto.InitializeParams) (any, error) {
	err := s.Configure(params.InitializationOptions)

	if err != nil {
		return nil, err
	}

	syncType := proto.TextDocumentSyncKindIncremental

	res := &proto.InitializeResult{
		ServerInfo: &proto.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &ServerVersion,
		},
		Capabilities: proto.ServerCapabilities{
			TextDocumentSync: proto.TextDocumentSyncOptions{
				OpenClose: &proto.True,
				Change:    &syncType,
			},
			FoldingRangeProvider: true,
			Experimental: map[string]any{
				ExperimentalKey: s.capabilities(),
			},
		},
	}

	if params.ClientInfo != nil {
		log.Infof("initialize %s", params.ClientInfo.Name)
	}

	return res, nil
}

func (s *Session) capabilities() ClassFoldCapabilities {
	options := s.Controller.Options()

	res := ClassFoldCapabilities{
		Languages: options.Languages,
		Kinds:     make([]KindCapabilities, 0, len(options.Kinds)),
	}

	for _, kind := range options.Kinds {
		styles := make(map[fold.Status]string, len(fold.Statuses))

		for _, status := range fold.Statuses {
			styles[status] = fold.StyleName(kind, status)
		}

		res.Kinds = append(res.Kinds, KindCapabilities{
			Kind:   kind,
			Icon:   options.Icons[kind],
			Styles: styles,
		})
	}

	return res
}

func (s *Session) Initialized(_ *Ctx, _ *proto.InitializedParams) error {
	return nil
}

func (s *Session) Shutdown(_ *Ctx) error {
	log.Infof("shutdown")

	return nil
}

func SetTrace(_ *Ctx, _ *proto.SetTraceParams) error {
	return nil
}

func CancelRequest(_ *Ctx, _ *proto.CancelParams) error {
	return nil
}
