package providers

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	proto "github.com/tliron/glsp/protocol_3_16"
	"github.com/vantaboard/class-fold/state"
	. "github.com/vantaboard/class-fold/types"
)

func rangesKey(doc *state.Doc) string {
	return fmt.Sprintf("%s@%d", doc.Uri, doc.Version)
}

func (s *Session) FoldingRange(_ *Ctx, params *proto.FoldingRangeParams) (res []proto.FoldingRange, err error) {
	uri, err := NormalizeUri(params.TextDocument.URI)

	if err != nil {
		return
	}

	doc, err := s.Docs.Get(uri)

	if err != nil {
		return nil, documentError(uri, err)
	}

	if !s.Controller.IsRecognized(doc.LanguageID) {
		return []proto.FoldingRange{}, nil
	}

	key := rangesKey(doc)

	if cached, ok := s.ranges.Get(key); ok {
		return cached.([]proto.FoldingRange), nil
	}

	res = s.Controller.FoldingRanges(doc)
	s.ranges.Set(key, res, cache.DefaultExpiration)

	return
}
