package deadlock

import (
	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// IsFrozenOnGoalSimple reports whether the box on cell is permanently stuck
// using only its immediate surroundings: some orientation has both its
// axial neighbour and the adjacent diagonal cell (reached by turning once
// more around the same corner) blocked. Unlike Is2x2Deadlock this never
// excuses a goal-only pocket — frozen-on-goal boxes are meant to be found
// frozen.
func IsFrozenOnGoalSimple(level *cellgraph.Level, cell int, b *boxes.Boxes) bool {
	c := &level.Cells[cell]
	for d := 0; d < 4; d++ {
		a := c.DirMod(d)
		if free(a, b) {
			continue
		}
		side := c.DirMod(d + 1)
		if free(side, b) {
			continue
		}
		if a < 0 && side < 0 {
			return true
		}
		if a >= 0 && !free(level.Cells[a].DirMod(d+1), b) {
			return true
		}
		if side >= 0 && !free(level.Cells[side].DirMod(d), b) {
			return true
		}
	}

	return false
}

// GoalsWithFrozenBoxes returns the subset of b's boxes, restricted to
// goal cells, that are frozen in place. It first tries the cheap per-goal
// simple test; if every goal-resident box resolves with that alone, the
// result is exact. Otherwise it falls back to an iterative removal: let the
// agent wander its reachable region and push any box it can relocate to an
// alive cell without creating a simple deadlock, repeating until no further
// box can be removed. Whatever remains is frozen.
func GoalsWithFrozenBoxes(level *cellgraph.Level, agent int, b *boxes.Boxes) *boxes.Boxes {
	frozen := boxes.New(level.NumAlive)

	simple := true
	for g := 0; g < level.NumGoals; g++ {
		if !b.Get(g) {
			continue
		}
		if IsFrozenOnGoalSimple(level, g, b) {
			frozen.Set(g)
		} else {
			simple = false
		}
	}
	if simple {
		return frozen
	}

	frozen = b.Clone()
	numBoxes := level.NumGoals

	visitor := cellgraph.NewAgentVisitor(len(level.Cells), agent)
	for a, ok := visitor.Next(); ok; a, ok = visitor.Next() {
		cell := &level.Cells[a]
		for _, mv := range cell.Moves {
			d, dest := mv.Dir, mv.To
			if !level.Cells[dest].Alive || !frozen.Get(dest) {
				visitor.Add(dest)
				continue
			}

			c := level.Cells[dest].DirMod(d)
			if c < 0 || !level.Cells[c].Alive || frozen.Get(c) {
				continue
			}

			frozen.Reset(dest)
			frozen.Set(c)
			blocked := IsSimpleDeadlock(level, c, frozen)
			frozen.Reset(c)
			if blocked {
				frozen.Set(dest)
				continue
			}

			numBoxes--
			if numBoxes == 1 {
				return boxes.New(level.NumAlive)
			}
			visitor.Clear()
			visitor.Add(dest)
			break
		}
	}
	for i := level.NumGoals; i < level.NumAlive; i++ {
		frozen.Reset(i)
	}

	return frozen
}
