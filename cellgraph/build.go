package cellgraph

import "sort"

// rawCell is a pre-id-assignment cell discovered by the reachability BFS in
// buildCells; xy ties it back to the board.
type rawCell struct {
	xy    int
	goal  bool
	alive bool
}

// buildCells implements step 5: flood-fill reachable cells from the agent,
// order them goals first, then other alive cells, then dead cells
// (discovery order breaks remaining ties), assign ids, and populate each
// cell's neighbour/move/push tables.
func buildCells(b *board, live []bool) []Cell {
	n := len(b.cell)
	visited := make([]bool, n)
	order := make([]int, 0, n) // discovery order, used as a stable tiebreaker
	queue := []int{b.agent}
	visited[b.agent] = true
	for head := 0; head < len(queue); head++ {
		a := queue[head]
		order = append(order, a)
		for d := 0; d < 4; d++ {
			if m, ok := b.adjacent(a, d); ok && b.open(m) && !visited[m] {
				visited[m] = true
				queue = append(queue, m)
			}
		}
	}

	raws := make([]rawCell, len(order))
	for i, xy := range order {
		raws[i] = rawCell{xy: xy, goal: b.isGoal(xy), alive: b.isGoal(xy) || live[xy]}
	}

	discoveryRank := make(map[int]int, len(order))
	for i, xy := range order {
		discoveryRank[xy] = i
	}

	sort.Slice(raws, func(i, j int) bool {
		a, c := raws[i], raws[j]
		if a.goal != c.goal {
			return a.goal
		}
		if a.alive != c.alive {
			return a.alive
		}

		return discoveryRank[a.xy] < discoveryRank[c.xy]
	})

	xyToID := make(map[int]int, len(raws))
	for id, r := range raws {
		xyToID[r.xy] = id
	}

	cells := make([]Cell, len(raws))
	for id, r := range raws {
		c := &cells[id]
		c.ID = id
		c.X, c.Y = r.xy%b.w, r.xy/b.w
		c.Goal = r.goal
		c.Alive = r.alive
		for d := 0; d < 4; d++ {
			c.Dir[d] = -1
			if m, ok := b.adjacent(r.xy, d); ok && b.open(m) {
				c.Dir[d] = xyToID[m]
			}
		}
		for d := 0; d < 8; d++ {
			c.Dir8[d] = -1
			if m, ok := b.adjacent8(r.xy, d); ok && b.open(m) {
				c.Dir8[d] = xyToID[m]
			}
		}

		for d := 0; d < 4; d++ {
			if c.Dir[d] >= 0 {
				c.Moves = append(c.Moves, Move{Dir: d, To: c.Dir[d]})
			}
		}
	}

	// Pushes require knowing the destination cell's Alive flag, which is
	// only fully populated once every cell in cells[] has been built above.
	for id := range cells {
		c := &cells[id]
		for d := 0; d < 4; d++ {
			dest := c.Dir[d]
			if dest < 0 || !cells[dest].Alive {
				continue
			}
			agentSrc := c.Dir[d^2]
			if agentSrc < 0 {
				continue
			}
			c.Pushes = append(c.Pushes, Push{Dest: dest, AgentSrc: agentSrc})
		}
	}

	return cells
}
