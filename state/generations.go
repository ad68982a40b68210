package state

import (
	"sync"

	. "github.com/vantaboard/class-fold/types"
)

// Generations counts selection cycles per document. A cycle whose captured
// generation is no longer current has been superseded.
type Generations struct {
	lock   sync.Mutex
	seq    uint64
	values map[Uri]uint64
}

func (g *Generations) Next(uri Uri) uint64 {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.values == nil {
		g.values = make(map[Uri]uint64)
	}

	g.seq++
	g.values[uri] = g.seq

	return g.seq
}

func (g *Generations) Current(uri Uri) uint64 {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.values[uri]
}

func (g *Generations) IsCurrent(uri Uri, gen uint64) bool {
	return g.Current(uri) == gen
}

func (g *Generations) Forget(uri Uri) {
	g.lock.Lock()
	defer g.lock.Unlock()

	delete(g.values, uri)
}
