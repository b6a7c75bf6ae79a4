// Package deadlock implements the solver's unsolvability checks: the cheap
// geometric patterns (2x2, 2x3), frozen-box propagation, blocked-goal
// reasoning, bipartite feasibility, and the learned pattern database that
// turns a proven deadlock into a reusable subsumption filter.
package deadlock

import (
	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// free reports whether cell id is open for a box to occupy: it exists and
// currently holds no box. Dead cells never hold a box, so id >= numAlive
// reads as free via Boxes.Get's bounds check; the sentinel id == -1 (a
// wall) reads as not free.
func free(id int, b *boxes.Boxes) bool {
	return id >= 0 && !b.Get(id)
}

// Is2x2Deadlock reports whether the box just pushed onto cell box sits in a
// 2x2 pocket of walls/boxes it (and any co-blocking boxes) cannot escape.
// Rotates through all four orientations; a pocket only excuses itself from
// deadlock when every cell implicated in it is a goal.
func Is2x2Deadlock(level *cellgraph.Level, box int, b *boxes.Boxes) bool {
	cell := &level.Cells[box]
	for d := 0; d < 4; d++ {
		a := cell.DirMod(d)
		if free(a, b) {
			continue
		}
		side := cell.DirMod(d + 1)
		if free(side, b) {
			continue
		}
		if a < 0 && side < 0 {
			return !cell.Goal
		}
		if a >= 0 {
			c := level.Cells[a].DirMod(d + 1)
			if !free(c, b) {
				return !(cell.Goal && level.Cells[a].Goal && (side < 0 || level.Cells[side].Goal) && (c < 0 || level.Cells[c].Goal))
			}
		}
		if side >= 0 {
			c := level.Cells[side].DirMod(d)
			if !free(c, b) {
				return !(cell.Goal && level.Cells[side].Goal && (a < 0 || level.Cells[a].Goal) && (c < 0 || level.Cells[c].Goal))
			}
		}
	}

	return false
}

// Is2x3Deadlock reports whether the pushed box and an axial neighbour box
// form a 2x3 blocked pair: both sides across the pair's short axis are
// closed, and at least one of the two boxes is off-goal.
func Is2x3Deadlock(level *cellgraph.Level, pushedBox int, b *boxes.Boxes) bool {
	a := &level.Cells[pushedBox]
	for d := 0; d < 4; d++ {
		bid := a.DirMod(d)
		if bid < 0 || !b.Get(bid) {
			continue
		}
		bc := &level.Cells[bid]
		if a.Goal && bc.Goal {
			continue
		}
		if a.DirMod(d-1) < 0 && bc.DirMod(d+1) < 0 {
			return true
		}
		if a.DirMod(d+1) < 0 && bc.DirMod(d-1) < 0 {
			return true
		}
	}

	return false
}

// IsSimpleDeadlock is the cheap, local, context-free deadlock test applied
// after every push: true if the pushed box's new cell forms a 2x2 or 2x3
// dead pattern.
func IsSimpleDeadlock(level *cellgraph.Level, pushedBox int, b *boxes.Boxes) bool {
	return Is2x2Deadlock(level, pushedBox, b) || Is2x3Deadlock(level, pushedBox, b)
}
