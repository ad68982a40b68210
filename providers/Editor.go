package providers

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sourcegraph/jsonrpc2"
	proto "github.com/tliron/glsp/protocol_3_16"
	"github.com/vantaboard/class-fold/fold"
	"github.com/vantaboard/class-fold/scanner"
	. "github.com/vantaboard/class-fold/types"
)

var ErrNotConnected = errors.New("client is not connected")

type FoldParams struct {
	TextDocument proto.TextDocumentIdentifier `json:"textDocument"`
	StartLine    uint32                       `json:"startLine"`
	EndLine      uint32                       `json:"endLine"`
	Levels       int                          `json:"levels"`
	Direction    fold.Direction               `json:"direction"`
}

type UnfoldAllParams struct {
	TextDocument proto.TextDocumentIdentifier `json:"textDocument"`
}

type DecorationsParams struct {
	TextDocument proto.TextDocumentIdentifier `json:"textDocument"`
	Kind         scanner.Kind                 `json:"kind"`
	Status       fold.Status                  `json:"status"`
	Style        string                       `json:"style"`
	Icon         string                       `json:"icon"`
	Ranges       []Range                      `json:"ranges"`
}

// ClientEditor sends fold commands and decorations to the client over the
// connection that delivered the latest message.
type ClientEditor struct {
	conn atomic.Pointer[jsonrpc2.Conn]
}

func (e *ClientEditor) Bind(conn *jsonrpc2.Conn) {
	e.conn.Store(conn)
}

func (e *ClientEditor) call(ctx context.Context, method string, params any) error {
	conn := e.conn.Load()

	if conn == nil {
		return ErrNotConnected
	}

	return conn.Call(ctx, method, params, nil)
}

func (e *ClientEditor) Fold(ctx context.Context, req fold.FoldRequest) error {
	return e.call(ctx, FoldMethod, foldParams(req))
}

func (e *ClientEditor) Unfold(ctx context.Context, req fold.FoldRequest) error {
	return e.call(ctx, UnfoldMethod, foldParams(req))
}

func (e *ClientEditor) UnfoldAll(ctx context.Context, uri Uri) error {
	return e.call(ctx, UnfoldAllMethod, UnfoldAllParams{
		TextDocument: proto.TextDocumentIdentifier{URI: uri},
	})
}

func (e *ClientEditor) ApplyDecorations(ctx context.Context, d fold.Decorations) error {
	conn := e.conn.Load()

	if conn == nil {
		return ErrNotConnected
	}

	ranges := d.Ranges

	if ranges == nil {
		ranges = []Range{}
	}

	return conn.Notify(ctx, DecorationsMethod, DecorationsParams{
		TextDocument: proto.TextDocumentIdentifier{URI: d.Uri},
		Kind:         d.Kind,
		Status:       d.Status,
		Style:        d.Style,
		Icon:         d.Icon,
		Ranges:       ranges,
	})
}

func foldParams(req fold.FoldRequest) FoldParams {
	return FoldParams{
		TextDocument: proto.TextDocumentIdentifier{URI: req.Uri},
		StartLine:    req.StartLine,
		EndLine:      req.EndLine,
		Levels:       req.Levels,
		Direction:    req.Direction,
	}
}
