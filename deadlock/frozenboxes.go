package deadlock

import (
	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// ContainsFrozenBoxes simulates optimistic solving from (agent, b): let the
// agent wander freely and, for every box it can reach, try every push that
// lands on an alive cell without an immediate simple deadlock or a pattern
// match, removing that box from the simulation on success. b is mutated in
// place (boxes are removed as the simulation "solves" them); origBoxes is
// the real, unmutated state, needed by the blocked-goal check at the end.
// numBoxes is the live box count going in; the updated count (after any
// simulated removals) is returned alongside the Result.
//
// The simulation runs two passes, exactly as the source does: a fast pass
// that keeps expanding the same agent frontier across pushes (cheap, but
// can miss newly-reachable cells that only opened up because an earlier
// box in this same pass vanished) and a slow pass that restarts the
// frontier at the pushing cell after every successful push (needed for
// edge cases the fast pass's stale frontier would get wrong).
func ContainsFrozenBoxes(level *cellgraph.Level, patterns *Patterns, agent int, origBoxes, b *boxes.Boxes, numBoxes int) (Result, int) {
	if numBoxes == level.NumGoals && ContainsGoalWithoutBox(level, b) {
		return NotFrozen, numBoxes
	}

	visitor := cellgraph.NewAgentVisitor(len(level.Cells), agent)
	var shortCircuit bool
	numBoxes, shortCircuit = simulate(level, patterns, visitor, b, numBoxes, false)
	if shortCircuit {
		return NotFrozen, numBoxes
	}

	visitor.Clear()
	visitor.Add(agent)
	numBoxes, shortCircuit = simulate(level, patterns, visitor, b, numBoxes, true)
	if shortCircuit {
		return NotFrozen, numBoxes
	}

	if !Solved(level, b) {
		return Frozen, numBoxes
	}
	if !AllEmptyGoalsAreReachable(level, visitor, b) {
		return BlockedGoal, numBoxes
	}
	if ContainsBoxBlockedGoals(level, agent, origBoxes, b) {
		return PushBlockedGoal, numBoxes
	}

	return NotFrozen, numBoxes
}

// simulate drives one pass of the optimistic-solving loop described on
// ContainsFrozenBoxes. restartOnPush selects the slow pass's behavior:
// clearing the frontier and reseeding it at the box's old cell after every
// successful push, instead of continuing to expand the same frontier.
// The returned bool reports whether the count dropped to 1 mid-simulation:
// with only one goal/box pair left unresolved, the relaxation counts as
// solved and the caller should stop without running the rest of the
// frozen-box checks, regardless of what numBoxes was before this pass.
func simulate(level *cellgraph.Level, patterns *Patterns, visitor *cellgraph.AgentVisitor, b *boxes.Boxes, numBoxes int, restartOnPush bool) (int, bool) {
	for a, ok := visitor.Next(); ok; a, ok = visitor.Next() {
		cell := &level.Cells[a]
		for _, mv := range cell.Moves {
			d, dest := mv.Dir, mv.To
			if !b.Get(dest) {
				visitor.Add(dest)
				continue
			}

			c := level.Cells[dest].DirMod(d)
			if c < 0 || !level.Cells[c].Alive || b.Get(c) {
				continue
			}

			b.Reset(dest)
			b.Set(c)
			blocked := IsSimpleDeadlock(level, c, b) || patterns.Matches(a, b)
			b.Reset(c)
			if blocked {
				b.Set(dest)
				continue
			}

			numBoxes--
			if numBoxes == 1 {
				return numBoxes, true
			}
			if restartOnPush {
				visitor.Clear()
				visitor.Add(dest)
				break
			}
			visitor.Add(dest)
		}
	}

	return numBoxes, false
}
