package cellgraph

// findDeadCells implements step 4: a backward pair-BFS over (agent-cell,
// box-cell) configurations starting from each goal and pulling a
// hypothetical box. A cell never seen as "box" in that BFS is dead (no
// sequence of pushes can ever bring a box there to any goal).
//
// State encoding mirrors the original: visited[agent*len(cell)+box].
func (b *board) findDeadCells() (live []bool) {
	n := len(b.cell)
	live = make([]bool, n)
	visited := make([]bool, n*n)
	type pair struct{ agent, box int }
	queue := make([]pair, 0, n)

	add := func(agent, box int) {
		key := agent*n + box
		if visited[key] {
			return
		}
		visited[key] = true
		queue = append(queue, pair{agent, box})
	}

	for i := 0; i < n; i++ {
		if !b.isGoal(i) {
			continue
		}
		live[i] = true
		for d := 0; d < 4; d++ {
			if m, ok := b.adjacent(i, d); ok && b.open(m) {
				add(m, i)
			}
		}
	}

	for head := 0; head < len(queue); head++ {
		agent, box := queue[head].agent, queue[head].box
		for d := 0; d < 4; d++ {
			m, ok := b.adjacent(agent, d)
			if !ok || !b.open(m) {
				continue
			}
			if m != box {
				add(m, box)
			}
			// Pulling: box sits immediately behind the agent's current
			// cell in direction d (agent - dirs[d] == box); moving the
			// agent to m drags the box into the agent's old cell.
			behind, ok2 := b.adjacent(agent, d^2)
			if !ok2 || behind != box {
				continue
			}
			live[agent] = true
			add(m, agent)
		}
	}

	return live
}
