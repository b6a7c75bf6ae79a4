package search

import (
	"fmt"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// Step is a single unit-length coordinate delta: either an agent move or a
// push, depending on where it falls in a Solution's Steps.
type Step struct {
	DX, DY int
}

// Solution is the result of a successful Run: the full move/push sequence
// and how many of those steps were pushes.
type Solution struct {
	Steps  []Step
	Pushes int
}

// previous reconstructs the state one push before (s, info), using the
// closed-set entry recorded for the pre-push state. s must already be
// normalized. Panics on any invariant violation — this walks a path the
// search itself already proved legal, so a mismatch means closed-set
// corruption, not bad input.
func (d *Driver) previous(s boxes.State, info boxes.StateInfo) (boxes.State, boxes.StateInfo) {
	if info.Distance == 0 {
		panic("search: previous called on a start state")
	}

	ps := boxes.State{Agent: int(info.PrevAgent), Boxes: s.Boxes.Clone()}
	dir := int(info.Dir)

	a := &d.level.Cells[ps.Agent]
	bID := a.DirMod(dir)
	if bID < 0 {
		panic("search: reconstruction walked off the grid at B")
	}
	cID := d.level.Cells[bID].DirMod(dir)
	if cID < 0 {
		panic("search: reconstruction walked off the grid at C")
	}
	if ps.Boxes.Get(bID) {
		panic("search: box unexpectedly present on B during reconstruction")
	}
	if !ps.Boxes.Get(cID) {
		panic("search: no box on C during reconstruction")
	}
	ps.Boxes.Reset(cID)
	ps.Boxes.Set(bID)

	normPs := boxes.State{Agent: ps.Agent, Boxes: ps.Boxes.Clone()}
	visitor := cellgraph.NewAgentVisitor(len(d.level.Cells), normPs.Agent)
	Normalize(d.level, &normPs, visitor)

	shard := Shard(normPs)
	d.states.Lock(shard)
	prevInfo, found := d.states.Query(shard, normPs)
	d.states.Unlock(shard)
	if !found {
		panic("search: pre-push state missing from closed-set")
	}

	return ps, prevInfo
}

// pushStates walks backward from (final, info) to the start state, via
// previous, and returns the push-state sequence in forward order (start
// first). The final state's agent is corrected to the last-pushed box's
// pre-push cell, where the agent stands after that push, matching the
// convention extractMoves/extractPush expect.
func (d *Driver) pushStates(final boxes.State, info boxes.StateInfo) []boxes.State {
	result := []boxes.State{final}
	s, si := final, info
	for si.Distance > 0 {
		s, si = d.previous(s, si)
		result = append(result, s)
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	if len(result) >= 2 {
		v, w := result[len(result)-2], result[len(result)-1]
		for i := 0; i < d.level.NumAlive; i++ {
			if v.Boxes.Get(i) && !w.Boxes.Get(i) {
				result[len(result)-1].Agent = i
				break
			}
		}
	}

	return result
}

// shortestPath returns the cell-by-cell route from start to end through
// cells free of b, excluding start, or nil if end is unreachable.
func shortestPath(level *cellgraph.Level, start, end int, b *boxes.Boxes) []int {
	if b.Get(start) || b.Get(end) {
		panic("search: shortestPath called with a box on an endpoint")
	}
	if start == end {
		return nil
	}

	prev := make([]int, len(level.Cells))
	for i := range prev {
		prev[i] = -1
	}
	visited := make([]bool, len(level.Cells))
	visited[start] = true
	queue := []int{start}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		for _, mv := range level.Cells[a].Moves {
			to := mv.To
			if b.Get(to) || visited[to] {
				continue
			}
			visited[to] = true
			prev[to] = a
			if to == end {
				path := []int{to}
				for p := prev[to]; p != start; p = prev[p] {
					path = append(path, p)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}

				return path
			}
			queue = append(queue, to)
		}
	}

	return nil
}

// extractMoves appends one Step per cell of the shortest agent-only path
// from agent to dest.Agent (box-free under dest.Boxes), advancing agent as
// it goes. Returns the agent's final cell.
func extractMoves(level *cellgraph.Level, agent int, dest boxes.State, steps *[]Step) int {
	for _, step := range shortestPath(level, agent, dest.Agent, dest.Boxes) {
		from, to := &level.Cells[agent], &level.Cells[step]
		*steps = append(*steps, Step{DX: to.X - from.X, DY: to.Y - from.Y})
		agent = step
	}

	return agent
}

// extractPush appends the single Step for the one box that moved between
// two consecutive push states. Returns the box's pre-push cell, where the
// agent stands after the push.
func extractPush(level *cellgraph.Level, state0, state1 boxes.State, steps *[]Step) int {
	src, dest := -1, -1
	for i := 0; i < level.NumAlive; i++ {
		if state0.Boxes.Get(i) && !state1.Boxes.Get(i) {
			src = i
		}
		if !state0.Boxes.Get(i) && state1.Boxes.Get(i) {
			dest = i
		}
	}
	if src < 0 || dest < 0 || src == dest {
		panic(fmt.Sprintf("search: malformed push between consecutive states (src=%d dest=%d)", src, dest))
	}

	from, to := &level.Cells[src], &level.Cells[dest]
	*steps = append(*steps, Step{DX: to.X - from.X, DY: to.Y - from.Y})

	return src
}

// Reconstruct turns a solved (final state, its StateInfo) pair into the
// full move/push sequence, synthesizing agent-move steps between
// consecutive pushes by shortest path through the box-free grid.
func (d *Driver) Reconstruct(start boxes.State, final boxes.State, info boxes.StateInfo) Solution {
	pushes := d.pushStates(final, info)

	var steps []Step
	agent := extractMoves(d.level, start.Agent, pushes[0], &steps)
	for i := 1; i < len(pushes); i++ {
		agent = extractPush(d.level, pushes[i-1], pushes[i], &steps)
		agent = extractMoves(d.level, agent, pushes[i], &steps)
	}

	return Solution{Steps: steps, Pushes: len(pushes) - 1}
}
