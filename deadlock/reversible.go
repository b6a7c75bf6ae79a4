package deadlock

import (
	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// around reports whether the agent can walk from z around one side of the
// axis s_dir (side is +1 or -1 relative to s_dir's perpendicular) and come
// back out three cells later without meeting a box, i.e. without needing to
// pass through the pushed-box's own line.
func around(level *cellgraph.Level, z, side int, b *boxes.Boxes, sDir int) bool {
	m := level.Cells[z].DirMod(sDir + side)
	if m < 0 || b.Get(m) {
		return false
	}
	m = level.Cells[m].DirMod(sDir)
	if m < 0 || b.Get(m) {
		return false
	}
	m = level.Cells[m].DirMod(sDir)

	return m >= 0 && !b.Get(m)
}

func aroundEither(level *cellgraph.Level, z int, b *boxes.Boxes, sDir int) bool {
	return around(level, z, 1, b, sDir) || around(level, z, 3, b, sDir)
}

// isCellReachable reports whether the agent, starting at agent and never
// pushing a box, can walk to c.
func isCellReachable(level *cellgraph.Level, c, agent int, b *boxes.Boxes) bool {
	visitor := cellgraph.NewAgentVisitor(len(level.Cells), agent)
	for a, ok := visitor.Next(); ok; a, ok = visitor.Next() {
		for _, mv := range level.Cells[a].Moves {
			if mv.To == c {
				return true
			}
			if !b.Get(mv.To) {
				visitor.Add(mv.To)
			}
		}
	}

	return false
}

// IsReversiblePush reports whether pushing the box in front of agent (in
// direction dir) can later be undone: after the push, the agent must be
// able to reach the cell it needs to stand on to push the box straight
// back. A reversible push can never be the move that creates a deadlock, so
// the search skips the expensive frozen-box check for it.
func IsReversiblePush(level *cellgraph.Level, agent int, b *boxes.Boxes, dir int) bool {
	boxCell := level.Cells[agent].DirMod(dir)
	c := level.Cells[boxCell].DirMod(dir)
	if c < 0 || b.Get(c) {
		return false
	}
	if !(aroundEither(level, agent, b, dir) || isCellReachable(level, c, agent, b)) {
		return false
	}

	after := b.Clone()
	after.Reset(boxCell)
	after.Set(agent)

	back := level.Cells[boxCell].DirMod(dir ^ 2)
	c2 := level.Cells[back].DirMod(dir ^ 2)
	if c2 < 0 || b.Get(c2) {
		return false
	}

	return aroundEither(level, boxCell, after, dir^2) || isCellReachable(level, c2, boxCell, after)
}
