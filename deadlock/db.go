package deadlock

import (
	"sync"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// DB is the per-solve deadlock oracle: it combines the cheap geometric
// checks with the learned pattern store and the bipartite feasibility
// check. One DB belongs to exactly one search over one Level — it is never
// a process-wide singleton, so concurrent solves of different levels never
// cross-contaminate each other's learned patterns.
type DB struct {
	level    *cellgraph.Level
	patterns *Patterns

	// addMu serializes the check-then-insert decision so two workers that
	// independently prove the same witness don't both append it; Patterns
	// itself only guards the slice, not this higher-level race.
	addMu sync.Mutex
}

// NewDB allocates an empty pattern store for level.
func NewDB(level *cellgraph.Level) *DB {
	return &DB{
		level:    level,
		patterns: NewPatterns(len(level.Cells), level.NumAlive),
	}
}

// Size returns the number of learned patterns.
func (db *DB) Size() int { return db.patterns.Size() }

// IsDeadlock is the full per-push deadlock check: the cheap simple-deadlock
// test on the just-pushed box, then the complex (frozen-box / bipartite)
// checks if that passes. agent and b are the state *after* the push
// (pushedBox's new cell already reflected in b); dir is the direction the
// box was just pushed in, used to skip the expensive frozen-box simulation
// for reversible pushes — a push that can be undone can never be the move
// that creates a deadlock.
func (db *DB) IsDeadlock(agent int, b *boxes.Boxes, pushedBox, dir int) bool {
	if IsSimpleDeadlock(db.level, pushedBox, b) {
		return true
	}

	reversible := IsReversiblePush(db.level, agent, b, dir)

	return db.IsComplexDeadlock(agent, b, reversible)
}

// IsComplexDeadlock runs the pattern-DB lookup (always), then, unless the
// push that produced this state was reversible, the frozen-box simulation
// (learning a new pattern on a fresh Frozen verdict), then the bipartite
// feasibility check (always).
func (db *DB) IsComplexDeadlock(agent int, b *boxes.Boxes, reversible bool) bool {
	if db.patterns.Matches(agent, b) {
		return true
	}

	if !reversible {
		working := b.Clone()
		numBoxes := db.level.NumGoals // every goal needs exactly one box, by construction

		result, _ := ContainsFrozenBoxes(db.level, db.patterns, agent, b, working, numBoxes)

		if result == Frozen {
			db.addMu.Lock()
			if !db.patterns.Matches(agent, working) {
				minimized := working.Clone()
				n := db.level.NumGoals
				minimized, n = db.minimizePattern(agent, minimized, n)
				if !db.isTrivialPattern(minimized, n) && !Solved(db.level, minimized) {
					db.patterns.Add(db.level, agent, minimized)
				}
			}
			db.addMu.Unlock()
		}

		if result != NotFrozen {
			return true
		}
	}

	return IsBipartiteDeadlock(db.level, b)
}

// isTrivialPattern rejects patterns with 3 or fewer boxes where the only
// box reachable there is itself already a simple deadlock: such a pattern
// adds nothing a direct IsSimpleDeadlock call wouldn't already catch.
func (db *DB) isTrivialPattern(b *boxes.Boxes, numBoxes int) bool {
	if numBoxes > 3 {
		return false
	}
	for i := 0; i < db.level.NumAlive; i++ {
		if b.Get(i) {
			return IsSimpleDeadlock(db.level, i, b)
		}
	}

	return false
}

// minimizePattern iteratively drops any single box whose removal still
// leaves the remaining set frozen, down to at most 2 boxes. PushBlockedGoal
// is treated as "still frozen enough to keep reducing" everywhere except
// here, where it counts the same as NotFrozen and stops the removal of that
// particular box — over-aggressive trimming around PushBlockedGoal
// witnesses has been known to produce unsound (too-small) patterns.
func (db *DB) minimizePattern(agent int, b *boxes.Boxes, numBoxes int) (*boxes.Boxes, int) {
	if numBoxes <= 2 {
		return b, numBoxes
	}

	for {
		reduced := false
		for i := 0; i < db.level.NumAlive; i++ {
			if !b.Get(i) {
				continue
			}

			b.Reset(i)
			scratch := b.Clone()
			result, _ := ContainsFrozenBoxes(db.level, db.patterns, agent, b, scratch, numBoxes)
			if result == NotFrozen || result == PushBlockedGoal {
				b.Set(i)
				continue
			}

			reduced = true
			numBoxes--
			if numBoxes <= 2 {
				return b, numBoxes
			}
		}
		if !reduced {
			break
		}
	}

	return b, numBoxes
}
