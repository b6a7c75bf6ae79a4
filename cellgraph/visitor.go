package cellgraph

// AgentVisitor is a FIFO BFS frontier over cell ids: the classic "where can
// the agent walk without pushing a box" traversal used throughout deadlock
// detection, pattern matching, and state normalization. Callers drive it
// with Next and decide what to Add as they go, since the set of box-free
// cells can change mid-traversal (a push removes a box from the scene).
type AgentVisitor struct {
	visited []bool
	queue   []int
	head    int
}

// NewAgentVisitor seeds the frontier at start.
func NewAgentVisitor(numCells, start int) *AgentVisitor {
	v := &AgentVisitor{visited: make([]bool, numCells)}
	v.Add(start)

	return v
}

// Visited reports whether id has been enqueued (seen), not necessarily
// dequeued yet.
func (v *AgentVisitor) Visited(id int) bool { return v.visited[id] }

// Clear resets the frontier to empty, ready for reuse.
func (v *AgentVisitor) Clear() {
	v.queue = v.queue[:0]
	v.head = 0
	for i := range v.visited {
		v.visited[i] = false
	}
}

// Add enqueues id if not already seen; reports whether it was newly added.
func (v *AgentVisitor) Add(id int) bool {
	if v.visited[id] {
		return false
	}
	v.visited[id] = true
	v.queue = append(v.queue, id)

	return true
}

// Next dequeues the next cell id, or reports ok=false when exhausted.
func (v *AgentVisitor) Next() (id int, ok bool) {
	if v.head == len(v.queue) {
		return -1, false
	}
	id = v.queue[v.head]
	v.head++

	return id, true
}

// PairVisitor is a FIFO BFS frontier over (a, b) id pairs, used by the
// reverse blocked-goal search where both the agent's cell and a pulled
// box's cell advance together.
type PairVisitor struct {
	sizeB   int
	visited []bool
	queue   []int // packed as a*sizeB+b
	head    int
}

// NewPairVisitor allocates a frontier over sizeA x sizeB pairs.
func NewPairVisitor(sizeA, sizeB int) *PairVisitor {
	return &PairVisitor{sizeB: sizeB, visited: make([]bool, sizeA*sizeB)}
}

// Add enqueues (a, b) if not already seen; reports whether it was newly
// added.
func (v *PairVisitor) Add(a, b int) bool {
	k := a*v.sizeB + b
	if v.visited[k] {
		return false
	}
	v.visited[k] = true
	v.queue = append(v.queue, k)

	return true
}

// Clear resets the frontier to empty.
func (v *PairVisitor) Clear() {
	v.queue = v.queue[:0]
	v.head = 0
	for i := range v.visited {
		v.visited[i] = false
	}
}

// Next dequeues the next pair, or reports ok=false when exhausted.
func (v *PairVisitor) Next() (a, b int, ok bool) {
	if v.head == len(v.queue) {
		return -1, -1, false
	}
	k := v.queue[v.head]
	v.head++

	return k / v.sizeB, k % v.sizeB, true
}
