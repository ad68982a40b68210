package state

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
)

const DefaultEditingDelay = 10 * time.Millisecond

// Gate suppresses the fold pipeline while text edits are arriving and
// while an unfold-all is in flight.
type Gate struct {
	editing atomic.Bool

	lock      sync.Mutex
	delay     time.Duration
	debounce  func(func())
	burst     uint64
	unfolding int
	idle      chan struct{}
}

func NewGate(editingDelay time.Duration) *Gate {
	if editingDelay <= 0 {
		editingDelay = DefaultEditingDelay
	}

	idle := make(chan struct{})
	close(idle)

	return &Gate{
		delay:    editingDelay,
		debounce: debounce.New(editingDelay),
		idle:     idle,
	}
}

func (g *Gate) EditingDelay() time.Duration {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.delay
}

// SetEditingDelay applies to bursts that start after the call.
func (g *Gate) SetEditingDelay(delay time.Duration) {
	if delay <= 0 {
		delay = DefaultEditingDelay
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	if delay == g.delay {
		return
	}

	g.delay = delay
	g.debounce = debounce.New(delay)
}

// Edited marks an editing burst. The flag clears once no edit arrived for
// the editing delay. Only the timer of the latest edit clears it, even when
// the delay changed in between.
func (g *Gate) Edited() {
	g.lock.Lock()
	g.burst++
	burst := g.burst
	schedule := g.debounce
	g.editing.Store(true)
	g.lock.Unlock()

	schedule(func() {
		g.lock.Lock()
		defer g.lock.Unlock()

		if g.burst == burst {
			g.editing.Store(false)
		}
	})
}

func (g *Gate) IsEditing() bool {
	return g.editing.Load()
}

// BeginUnfold marks an unfold-all in flight until the returned func is
// called. Overlapping unfolds are counted.
func (g *Gate) BeginUnfold() (done func()) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.unfolding == 0 {
		g.idle = make(chan struct{})
	}

	g.unfolding++

	var once sync.Once

	return func() {
		once.Do(g.endUnfold)
	}
}

func (g *Gate) endUnfold() {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.unfolding--

	if g.unfolding == 0 {
		close(g.idle)
	}
}

func (g *Gate) IsUnfolding() bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.unfolding > 0
}

// WaitUnfolded blocks until no unfold-all is in flight.
func (g *Gate) WaitUnfolded(ctx context.Context) error {
	for {
		g.lock.Lock()
		idle := g.idle
		busy := g.unfolding > 0
		g.lock.Unlock()

		if !busy {
			return nil
		}

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
