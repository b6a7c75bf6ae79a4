package deadlock_test

import (
	"testing"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/deadlock"
	"github.com/stretchr/testify/require"
)

// twoGoalLevel builds a minimal Level (bypassing text parsing, since
// bipartite feasibility only depends on NumGoals/NumAlive and each cell's
// PushDistance table) where cells 0,1 are goals and cells 2,3 are the two
// boxes' starting cells.
func twoGoalLevel(pd2, pd3 [2]uint32) *cellgraph.Level {
	return &cellgraph.Level{
		NumGoals: 2,
		NumAlive: 4,
		Cells: []cellgraph.Cell{
			{ID: 0, Goal: true, Alive: true, PushDistance: []uint32{0, cellgraph.Inf}},
			{ID: 1, Goal: true, Alive: true, PushDistance: []uint32{cellgraph.Inf, 0}},
			{ID: 2, Alive: true, PushDistance: pd2[:]},
			{ID: 3, Alive: true, PushDistance: pd3[:]},
		},
	}
}

func TestIsBipartiteDeadlock_NoPerfectMatching(t *testing.T) {
	level := twoGoalLevel([2]uint32{1, cellgraph.Inf}, [2]uint32{2, cellgraph.Inf})
	b := boxes.New(level.NumAlive)
	b.Set(2)
	b.Set(3)

	require.True(t, deadlock.IsBipartiteDeadlock(level, b))
}

func TestIsBipartiteDeadlock_PerfectMatchingExists(t *testing.T) {
	level := twoGoalLevel([2]uint32{1, cellgraph.Inf}, [2]uint32{cellgraph.Inf, 3})
	b := boxes.New(level.NumAlive)
	b.Set(2)
	b.Set(3)

	require.False(t, deadlock.IsBipartiteDeadlock(level, b))
}
