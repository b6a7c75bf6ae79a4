package deadlock_test

import (
	"testing"

	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/deadlock"
	"github.com/stretchr/testify/require"
)

func TestDB_IsDeadlock_CornerPush(t *testing.T) {
	level := mustCompile(t, "#####\n#@ .#\n#$###\n#####\n")
	box := cellAt(t, level, 1, 2)

	db := deadlock.NewDB(level)
	b := level.Start.Boxes.Clone()
	b.Set(box)

	require.True(t, db.IsDeadlock(level.Start.Agent, b, box, cellgraph.South))
}

func TestDB_IsDeadlock_TrivialPushIsNotDeadlock(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#   #\n#####\n")
	box := cellAt(t, level, 2, 1)

	db := deadlock.NewDB(level)
	require.False(t, db.IsDeadlock(level.Start.Agent, level.Start.Boxes, box, cellgraph.East))
}

func TestDB_GeometricDeadlockLearnsNoPattern(t *testing.T) {
	level := mustCompile(t, "#####\n#@ .#\n#$###\n#####\n")
	box := cellAt(t, level, 1, 2)

	db := deadlock.NewDB(level)
	b := level.Start.Boxes.Clone()
	b.Set(box)

	require.True(t, db.IsComplexDeadlock(level.Start.Agent, b, false))
	require.Zero(t, db.Size(), "a pure 2x2 geometric deadlock should never need a learned pattern")
}
