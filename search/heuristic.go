package search

import (
	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/deadlock"
)

// heuristicSimple sums each box's minimum push-distance to any goal,
// ignoring which goals are already spoken for. Used once every box's goal
// has been excluded from frozen-on-goal exemption, so there's nothing left
// to special-case.
func heuristicSimple(level *cellgraph.Level, b *boxes.Boxes) uint32 {
	var cost uint32
	for i := 0; i < level.NumAlive; i++ {
		if b.Get(i) {
			cost += level.Cells[i].MinPushDistance
		}
	}

	return cost
}

// Heuristic estimates the remaining push count for b: for every box not
// already frozen on a goal, the minimum push-distance to any goal that
// isn't occupied by a box frozen there. Returns cellgraph.Inf when some
// box has no reachable live goal left — a heuristic-deadlock, meaning the
// state can be discarded without search.
func Heuristic(level *cellgraph.Level, b *boxes.Boxes) uint32 {
	liveGoals := make([]int, 0, level.NumGoals)
	for g := 0; g < level.NumGoals; g++ {
		if !b.Get(g) || !deadlock.IsFrozenOnGoalSimple(level, g, b) {
			liveGoals = append(liveGoals, g)
		}
	}
	if len(liveGoals) == level.NumGoals {
		return heuristicSimple(level, b)
	}

	var cost uint32
	for i := 0; i < level.NumAlive; i++ {
		cell := &level.Cells[i]
		if !b.Get(i) || cell.Goal {
			continue
		}

		dist := cellgraph.Inf
		for _, g := range liveGoals {
			if d := cell.PushDistance[g]; d < dist {
				dist = d
			}
		}
		if dist == cellgraph.Inf {
			return cellgraph.Inf
		}
		cost += dist
	}

	return cost
}
