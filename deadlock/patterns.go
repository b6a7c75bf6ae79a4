package deadlock

import (
	"sync"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// pattern is a single learned deadlock witness: the set of cells the agent
// could reach, and the set of alive cells holding a box that stayed frozen
// throughout that reachability.
type pattern struct {
	agentMask []uint64
	boxMask   []uint64
}

// Patterns is the thread-safe store of learned deadlock patterns: many
// readers check Matches concurrently with the search, while at most one
// writer appends via Add. Entries are never removed or rewritten, so a
// reader never observes a half-written pattern.
type Patterns struct {
	mu       sync.RWMutex
	numCells int
	numAlive int
	entries  []pattern
}

// NewPatterns allocates an empty store sized for a level with numCells
// total cells and numAlive non-dead cells.
func NewPatterns(numCells, numAlive int) *Patterns {
	return &Patterns{numCells: numCells, numAlive: numAlive}
}

func setBit(words []uint64, i int) { words[i/64] |= 1 << uint(i%64) }

func hasBit(words []uint64, i int) bool { return words[i/64]&(1<<uint(i%64)) != 0 }

// Matches reports whether some stored pattern proves (agent, b) a
// deadlock: the agent sits inside the pattern's reachable region, and the
// pattern's frozen box set is a subset of b.
func (p *Patterns) Matches(agent int, b *boxes.Boxes) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, e := range p.entries {
		if !hasBit(e.agentMask, agent) {
			continue
		}
		subset := true
		for i := 0; i < p.numAlive; i++ {
			if hasBit(e.boxMask, i) && !b.Get(i) {
				subset = false
				break
			}
		}
		if subset {
			return true
		}
	}

	return false
}

// Add appends a new pattern: agent's box-free-reachable region in level,
// paired with b's current box set. Callers are expected to re-check
// Matches under their own serialization before calling Add, so that two
// threads proving the same witness don't both append it; Add itself only
// guards the store, not that higher-level duplicate decision.
func (p *Patterns) Add(level *cellgraph.Level, agent int, b *boxes.Boxes) {
	agentMask := make([]uint64, (p.numCells+63)/64)
	visitor := cellgraph.NewAgentVisitor(p.numCells, agent)
	for a, ok := visitor.Next(); ok; a, ok = visitor.Next() {
		setBit(agentMask, a)
		for _, mv := range level.Cells[a].Moves {
			if !b.Get(mv.To) {
				visitor.Add(mv.To)
			}
		}
	}

	boxMask := make([]uint64, (p.numAlive+63)/64)
	for i := 0; i < p.numAlive; i++ {
		if b.Get(i) {
			setBit(boxMask, i)
		}
	}

	p.mu.Lock()
	p.entries = append(p.entries, pattern{agentMask: agentMask, boxMask: boxMask})
	p.mu.Unlock()
}

// Size returns the number of stored patterns.
func (p *Patterns) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.entries)
}
