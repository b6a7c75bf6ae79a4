package boxes

// Inf is the sentinel for "unreachable" distances and heuristics: larger
// than any achievable push count.
const Inf = ^uint32(0)

// State is an (agent, boxes) configuration. Equality is structural. A
// normalized State additionally satisfies Agent == the minimum cell id
// reachable from Agent without pushing any box; only normalized states are
// ever inserted into the search closed-set.
type State struct {
	Agent int
	Boxes *Boxes
}

// Equal reports structural equality.
func (s State) Equal(o State) bool {
	return s.Agent == o.Agent && s.Boxes.Equal(o.Boxes)
}

// Hash combines the boxes hash with a mix over the agent id.
func (s State) Hash() uint64 {
	return s.Boxes.Hash() ^ fmix64(uint64(s.Agent))
}

// StateInfo is the per-closed-state metadata used to reconstruct a
// solution: the push distance from the start, the estimated remaining push
// count, the direction of the push that produced this state, the agent
// cell id before that push, and whether the state has been closed (fully
// expanded).
type StateInfo struct {
	Distance   uint32
	Heuristic  uint32
	Dir        int8 // -1 for the start state
	PrevAgent  int32 // -1 for the start state
	Closed     bool
}
