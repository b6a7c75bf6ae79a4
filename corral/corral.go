// Package corral finds PI-corrals: regions the agent cannot currently
// reach, fenced in by boxes that (once pushed) can only move inward. When
// an unsolved PI-corral exists, the search only needs to expand pushes of
// its fence boxes — any solution must eventually open that corral, so
// every other push can be deferred.
package corral

import (
	"math"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/deadlock"
)

// Corral is a membership set over every cell in the level (including dead
// cells, which can still fence a corral even though no box ever sits on
// one).
type Corral []bool

func newCorral(n int) Corral { return make(Corral, n) }

func (c Corral) addAll(o Corral) {
	for i, v := range o {
		if v {
			c[i] = true
		}
	}
}

func (c Corral) clone() Corral {
	out := make(Corral, len(c))
	copy(out, c)

	return out
}

// IsUnsolvedCorral reports whether corral contains an alive cell that is a
// goal without a box, or a box not on a goal — i.e. the corral still has
// work left to do.
func IsUnsolvedCorral(level *cellgraph.Level, b *boxes.Boxes, corral Corral) bool {
	for i := 0; i < level.NumAlive; i++ {
		if corral[i] && level.Cells[i].Goal != b.Get(i) {
			return true
		}
	}

	return false
}

type corralEntry struct {
	cells    Corral
	unsolved bool
}

// Analyzer finds the cheapest unsolved PI-corral for a given state,
// reusing its reachable-cell scratch space across calls.
type Analyzer struct {
	level     *cellgraph.Level
	reachable Corral
	corrals   []corralEntry
}

// NewAnalyzer allocates an Analyzer for level.
func NewAnalyzer(level *cellgraph.Level) *Analyzer {
	return &Analyzer{level: level, reachable: newCorral(len(level.Cells))}
}

// findCorrals partitions the cells the agent cannot reach (without pushing
// a box) into connected components, each fenced in by the boxes and
// diagonal neighbours touching it. Boxes that aren't reachable by the
// agent either are recorded as "reachable" in their own right (a box is
// trivially adjacent to itself for push-direction purposes).
func (an *Analyzer) findCorrals(agent int, b *boxes.Boxes) {
	n := len(an.level.Cells)
	for i := range an.reachable {
		an.reachable[i] = false
	}

	visitor := cellgraph.NewAgentVisitor(n, agent)
	for a, ok := visitor.Next(); ok; a, ok = visitor.Next() {
		an.reachable[a] = true
		for _, mv := range an.level.Cells[a].Moves {
			if !b.Get(mv.To) {
				visitor.Add(mv.To)
			} else {
				an.reachable[mv.To] = true
			}
		}
	}

	an.corrals = an.corrals[:0]
	for q := 0; q < n; q++ {
		if b.Get(q) || visitor.Visited(q) {
			continue
		}

		corral := newCorral(n)
		visitor.Add(q)
		for a, ok := visitor.Next(); ok; a, ok = visitor.Next() {
			corral[a] = true
			for _, d8 := range an.level.Cells[a].Dir8 {
				if d8 >= 0 && !corral[d8] && b.Get(d8) {
					corral[d8] = true
				}
			}
			for _, mv := range an.level.Cells[a].Moves {
				if !b.Get(mv.To) {
					visitor.Add(mv.To)
				} else {
					corral[mv.To] = true
				}
			}
		}

		an.corrals = append(an.corrals, corralEntry{cells: corral, unsolved: IsUnsolvedCorral(an.level, b, corral)})
	}
}

// isPICorral reports whether every fence box of corral can only be pushed
// inward on its first push: every legal push either lands inside the
// corral or starts from inside it, the agent can actually reach the cell
// it needs to stand on, and the push destination isn't an immediate simple
// deadlock. count is the number of such legal inward pushes, used to break
// ties between candidate corrals (fewer inward pushes first).
func isPICorral(level *cellgraph.Level, b *boxes.Boxes, reachable, corral Corral) (ok bool, count int) {
	for i := 0; i < level.NumAlive; i++ {
		if !corral[i] || !b.Get(i) {
			continue
		}

		for _, push := range level.Cells[i].Pushes {
			dest, agentSrc := push.Dest, push.AgentSrc
			if !corral[dest] && !corral[agentSrc] {
				return false, count
			}
			if b.Get(dest) || !corral[dest] || corral[agentSrc] {
				continue
			}

			count++
			if b.Get(agentSrc) {
				if deadlock.IsFrozenOnGoalSimple(level, agentSrc, b) {
					continue
				}

				return false, count
			}

			afterPush := b.Clone()
			afterPush.Reset(i)
			afterPush.Set(dest)
			if deadlock.IsSimpleDeadlock(level, dest, afterPush) {
				continue
			}
			if !reachable[agentSrc] {
				return false, count
			}
		}
	}

	return true, count
}

// FindUnsolvedPICorral returns the cheapest unsolved PI-corral for (agent,
// b), if any. With fewer than 8 candidate corrals it tries every non-empty
// subset (a subset must include at least one unsolved corral); with 8 or
// more it only tries singletons, pairs, and the full union, since the
// subset space would otherwise be exponential.
func (an *Analyzer) FindUnsolvedPICorral(agent int, b *boxes.Boxes) (Corral, bool) {
	an.findCorrals(agent, b)

	n := len(an.level.Cells)
	var best Corral
	bestPushes := math.MaxInt32
	found := false

	try := func(c Corral) {
		ok, pushes := isPICorral(an.level, b, an.reachable, c)
		if ok && (!found || pushes < bestPushes) {
			best = c.clone()
			bestPushes = pushes
			found = true
		}
	}

	if len(an.corrals) >= 8 {
		for _, c := range an.corrals {
			if c.unsolved {
				try(c.cells)
			}
		}
		for a := 0; a < len(an.corrals); a++ {
			for bi := a + 1; bi < len(an.corrals); bi++ {
				if an.corrals[a].unsolved || an.corrals[bi].unsolved {
					merged := newCorral(n)
					merged.addAll(an.corrals[a].cells)
					merged.addAll(an.corrals[bi].cells)
					try(merged)
				}
			}
		}
		all := newCorral(n)
		for _, c := range an.corrals {
			all.addAll(c.cells)
		}
		if IsUnsolvedCorral(an.level, b, all) {
			try(all)
		}
	} else {
		for subset := 1; subset < (1 << len(an.corrals)); subset++ {
			unsolved := false
			for i, c := range an.corrals {
				if subset&(1<<i) != 0 && c.unsolved {
					unsolved = true
					break
				}
			}
			if !unsolved {
				continue
			}

			merged := newCorral(n)
			for i, c := range an.corrals {
				if subset&(1<<i) != 0 {
					merged.addAll(c.cells)
				}
			}
			try(merged)
		}
	}

	return best, found
}
