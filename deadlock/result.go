package deadlock

// Result classifies the outcome of ContainsFrozenBoxes's optimistic-solving
// simulation.
type Result int

const (
	// NotFrozen means every box could be relocated in the relaxation: the
	// state is not proven unsolvable by this check.
	NotFrozen Result = iota
	// Frozen means some boxes never moved and at least one of them sits
	// off a goal — a genuine frozen-box deadlock.
	Frozen
	// BlockedGoal means an empty goal fell outside the agent's final
	// reachable region: nothing can ever reach it.
	BlockedGoal
	// PushBlockedGoal means every empty goal is reachable by the agent,
	// but no non-frozen box can ever be pulled onto one of them.
	PushBlockedGoal
)

func (r Result) String() string {
	switch r {
	case NotFrozen:
		return "NotFrozen"
	case Frozen:
		return "Frozen"
	case BlockedGoal:
		return "BlockedGoal"
	case PushBlockedGoal:
		return "PushBlockedGoal"
	default:
		return "Result(?)"
	}
}
