package providers

import (
	"context"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/glsp"
	proto "github.com/tliron/glsp/protocol_3_16"
	. "github.com/vantaboard/class-fold/types"
)

func CreateRequestHandler(s *Session) *RequestHandler {
	return &RequestHandler{
		Session: s,
		Handlers: []glsp.Handler{
			NewProtocolHandlers(s),
			&ClassFoldHandlers{
				SelectionChange:    s.SelectionChange,
				ActiveEditorChange: s.ActiveEditorChange,
			},
			&ConfigurationHandlers{
				Change: s.ConfigurationChange,
			},
		},
	}
}

func NewProtocolHandlers(s *Session) *proto.Handler {
	return &proto.Handler{
		Initialize:                      s.Initialize,
		Initialized:                     s.Initialized,
		Shutdown:                        s.Shutdown,
		SetTrace:                        SetTrace,
		CancelRequest:                   CancelRequest,
		TextDocumentDidOpen:             s.DocOpen,
		TextDocumentDidChange:           s.DocChange,
		TextDocumentDidClose:            s.DocClose,
		TextDocumentFoldingRange:        s.FoldingRange,
		WorkspaceDidChangeConfiguration: s.DidChangeConfiguration,
	}
}

type RequestHandler struct {
	Session  *Session
	Handlers []glsp.Handler
}

func (req *RequestHandler) RpcHandle(c context.Context, conn *jsonrpc2.Conn, r *jsonrpc2.Request) (res any, err error) {
	if r.Method == "exit" {
		err = conn.Close()
		return nil, err
	}

	if req.Session != nil {
		req.Session.Editor.Bind(conn)
	}

	ctx := &glsp.Context{
		Method: r.Method,
		Notify: func(method string, params any) {
			_ = conn.Notify(c, method, params)
		},
	}

	if r.Params != nil {
		ctx.Params = *r.Params
	}

	var validMethod bool
	var validParams bool

	res, validMethod, validParams, err = req.Handle(ctx)

	if !validMethod {
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", r.Method),
		}
	}

	if !validParams {
		e := &jsonrpc2.Error{
			Code: jsonrpc2.CodeInvalidParams,
		}

		if err != nil {
			e.Message = err.Error()
		}

		err = e
	}

	if err != nil {
		log.Debugf("%s: %s", r.Method, err.Error())
	}

	return res, err
}

func (req *RequestHandler) Handle(ctx *Ctx) (res any, validMethod bool, validParams bool, err error) {
	for _, h := range req.Handlers {
		res, validMethod, validParams, err = h.Handle(ctx)

		if validMethod {
			return
		}
	}

	return
}
