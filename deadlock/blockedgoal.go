package deadlock

import (
	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// Solved reports whether every non-goal alive cell is box-free, i.e. every
// box sits on some goal.
func Solved(level *cellgraph.Level, b *boxes.Boxes) bool {
	for i := level.NumGoals; i < level.NumAlive; i++ {
		if b.Get(i) {
			return false
		}
	}

	return true
}

// ContainsGoalWithoutBox reports whether every goal holds a box already
// (the inverted name mirrors the source: it's used as a shortcut when the
// box count equals the goal count, in which case an empty goal is
// impossible precisely when this returns true).
func ContainsGoalWithoutBox(level *cellgraph.Level, b *boxes.Boxes) bool {
	for i := 0; i < level.NumGoals; i++ {
		if !b.Get(i) {
			return false
		}
	}

	return true
}

// AllEmptyGoalsAreReachable reports whether every goal that currently has
// no box sits inside the visited agent region. visitor must already have
// completed a traversal (e.g. the one driven by ContainsFrozenBoxes).
func AllEmptyGoalsAreReachable(level *cellgraph.Level, visitor *cellgraph.AgentVisitor, b *boxes.Boxes) bool {
	for i := 0; i < level.NumGoals; i++ {
		if !visitor.Visited(i) && !b.Get(i) {
			return false
		}
	}

	return true
}

// ContainsBoxBlockedGoals reports whether some non-frozen goal cannot be
// reached by pulling any non-frozen box onto it from outside: a reverse
// pair-BFS over (agent-cell, pulled-box-cell) seeded at each such goal,
// stepping only through non-frozen cells, looking for a configuration where
// the agent sits at its actual position and the box being pulled is a real
// (non-frozen) box in the original state.
func ContainsBoxBlockedGoals(level *cellgraph.Level, agent int, nonFrozen, frozen *boxes.Boxes) bool {
	visitor := cellgraph.NewPairVisitor(len(level.Cells), level.NumAlive)

	for g := 0; g < level.NumGoals; g++ {
		if frozen.Get(g) {
			continue
		}

		visitor.Clear()
		goalCell := &level.Cells[g]
		for _, mv := range goalCell.Moves {
			if !frozen.Get(mv.To) {
				visitor.Add(mv.To, g)
			}
		}

		goalReachable := false
		for a, bo, ok := visitor.Next(); ok; a, bo, ok = visitor.Next() {
			if a == agent && nonFrozen.Get(bo) {
				goalReachable = true
				break
			}

			cell := &level.Cells[a]
			for _, mv := range cell.Moves {
				d, n := mv.Dir, mv.To
				if frozen.Get(n) {
					continue
				}
				if n != bo {
					visitor.Add(n, bo) // agent steps to n, pulled box stays at bo
				}
				if cell.DirMod(d^2) == bo {
					visitor.Add(n, a) // pulling: box follows the agent from bo to a
				}
			}
		}

		if !goalReachable {
			return true
		}
	}

	return false
}
