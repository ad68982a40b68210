package fold

import (
	"context"
	"fmt"
	"sync"

	. "github.com/vantaboard/class-fold/types"
)

type command struct {
	Name      string
	Uri       Uri
	StartLine uint32
	EndLine   uint32
}

func (c command) String() string {
	return fmt.Sprintf("%s %d-%d", c.Name, c.StartLine, c.EndLine)
}

// fakeEditor records every call. failOn makes the named command fail.
type fakeEditor struct {
	lock        sync.Mutex
	commands    []command
	decorations []Decorations
	requests    []FoldRequest
	failOn      string
	onCommand   func(FoldRequest)
}

func (e *fakeEditor) record(name string, req FoldRequest) error {
	e.lock.Lock()
	e.commands = append(e.commands, command{
		Name:      name,
		Uri:       req.Uri,
		StartLine: req.StartLine,
		EndLine:   req.EndLine,
	})
	e.requests = append(e.requests, req)
	fail := e.failOn == name
	hook := e.onCommand
	e.lock.Unlock()

	if hook != nil {
		hook(req)
	}

	if fail {
		return fmt.Errorf("%s rejected", name)
	}

	return nil
}

func (e *fakeEditor) Fold(_ context.Context, req FoldRequest) error {
	return e.record("fold", req)
}

func (e *fakeEditor) Unfold(_ context.Context, req FoldRequest) error {
	return e.record("unfold", req)
}

func (e *fakeEditor) UnfoldAll(_ context.Context, uri Uri) error {
	return e.record("unfoldAll", FoldRequest{Uri: uri})
}

func (e *fakeEditor) ApplyDecorations(_ context.Context, d Decorations) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.decorations = append(e.decorations, d)

	if e.failOn == "decorate" {
		return fmt.Errorf("decorate rejected")
	}

	return nil
}

func (e *fakeEditor) Commands() []string {
	e.lock.Lock()
	defer e.lock.Unlock()

	list := make([]string, len(e.commands))

	for i, c := range e.commands {
		list[i] = c.String()
	}

	return list
}

func (e *fakeEditor) Decorations() []Decorations {
	e.lock.Lock()
	defer e.lock.Unlock()

	return append([]Decorations(nil), e.decorations...)
}

func (e *fakeEditor) Reset() {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.commands = nil
	e.decorations = nil
	e.requests = nil
}
