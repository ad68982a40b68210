package fold

import (
	"context"

	"github.com/vantaboard/class-fold/scanner"
	. "github.com/vantaboard/class-fold/types"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func (d Direction) Valid() bool {
	return d == Up || d == Down
}

type FoldRequest struct {
	Uri       Uri
	StartLine uint32
	EndLine   uint32
	Levels    int
	Direction Direction
}

type Decorations struct {
	Uri    Uri
	Kind   scanner.Kind
	Status Status
	Style  string
	Icon   string
	Ranges []Range
}

// Editor is the host that folds lines and paints decorations. Every call
// returns once the host has completed it.
type Editor interface {
	Fold(ctx context.Context, req FoldRequest) error
	Unfold(ctx context.Context, req FoldRequest) error
	UnfoldAll(ctx context.Context, uri Uri) error
	ApplyDecorations(ctx context.Context, d Decorations) error
}
