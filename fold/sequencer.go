package fold

import (
	"context"
	"errors"
	"fmt"

	. "github.com/vantaboard/class-fold/types"
)

var ErrSuperseded = errors.New("selection cycle superseded")

const DefaultFoldLevels = 1

// Sequencer issues fold and unfold commands one at a time in scan order.
// Each command is awaited before the next one is sent.
type Sequencer struct {
	Editor    Editor
	Levels    int
	Direction Direction
}

func (s *Sequencer) request(uri Uri, item Classified) FoldRequest {
	levels := s.Levels

	if levels <= 0 {
		levels = DefaultFoldLevels
	}

	direction := s.Direction

	if direction == "" {
		direction = Up
	}

	return FoldRequest{
		Uri:       uri,
		StartLine: item.StartLine(),
		EndLine:   item.EndLine(),
		Levels:    levels,
		Direction: direction,
	}
}

// Run folds inactive multi-line items and unfolds active multi-line items.
// current is checked before every command; once it reports false Run stops
// with ErrSuperseded. The first rejected command ends the run.
func (s *Sequencer) Run(ctx context.Context, uri Uri, items []Classified, current func() bool) error {
	for _, item := range items {
		var (
			action string
			send   func(context.Context, FoldRequest) error
		)

		switch {
		case item.Status.IsFolded():
			action = "fold"
			send = s.Editor.Fold

		case item.Status == None && item.Multiline():
			action = "unfold"
			send = s.Editor.Unfold

		default:
			continue
		}

		if current != nil && !current() {
			return ErrSuperseded
		}

		req := s.request(uri, item)

		if err := send(ctx, req); err != nil {
			return fmt.Errorf("%s lines %d-%d: %w", action, req.StartLine, req.EndLine, err)
		}
	}

	return nil
}
