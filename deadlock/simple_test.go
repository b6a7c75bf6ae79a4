package deadlock_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/deadlock"
	"github.com/katalvlaran/sokosolve/levelenv"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, text string) *cellgraph.Level {
	t.Helper()
	env, err := levelenv.Parse(strings.NewReader(text))
	require.NoError(t, err)
	level, err := cellgraph.Compile(env)
	require.NoError(t, err)

	return level
}

func cellAt(t *testing.T, level *cellgraph.Level, x, y int) int {
	t.Helper()
	for _, c := range level.Cells {
		if c.X == x && c.Y == y {
			return c.ID
		}
	}
	t.Fatalf("no compiled cell at (%d,%d)", x, y)

	return -1
}

func TestIs2x2Deadlock_CornerOffGoal(t *testing.T) {
	level := mustCompile(t, "#####\n#@ .#\n#$###\n#####\n")
	box := cellAt(t, level, 1, 2)
	b := boxes.New(level.NumAlive)
	b.Set(box)

	require.True(t, deadlock.Is2x2Deadlock(level, box, b))
	require.True(t, deadlock.IsSimpleDeadlock(level, box, b))
}

func TestIs2x2Deadlock_CornerOnGoalIsExcused(t *testing.T) {
	level := mustCompile(t, "#####\n#@  #\n#*###\n#####\n")
	box := cellAt(t, level, 1, 2)
	b := boxes.New(level.NumAlive)
	b.Set(box)

	require.False(t, deadlock.Is2x2Deadlock(level, box, b))
	require.False(t, deadlock.IsSimpleDeadlock(level, box, b))
}

func TestIs2x3Deadlock_DiagonalWallPair(t *testing.T) {
	level := mustCompile(t, "########\n#@$  $ #\n##     #\n#  #.  #\n#    . #\n########\n")
	top := cellAt(t, level, 2, 2)
	bottom := cellAt(t, level, 2, 3)

	b := boxes.New(level.NumAlive)
	b.Set(top)
	b.Set(bottom)

	require.True(t, deadlock.Is2x3Deadlock(level, top, b))
	require.True(t, deadlock.IsSimpleDeadlock(level, top, b))
}

func TestIs2x3Deadlock_BothOnGoalIsExcused(t *testing.T) {
	level := mustCompile(t, "########\n#@$  $ #\n##.    #\n# .    #\n#      #\n########\n")
	top := cellAt(t, level, 2, 2)
	bottom := cellAt(t, level, 2, 3)

	b := boxes.New(level.NumAlive)
	b.Set(top)
	b.Set(bottom)

	require.False(t, deadlock.Is2x3Deadlock(level, top, b))
}

func TestIsSimpleDeadlock_OpenCellIsNotDeadlock(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#   #\n#####\n")
	box := cellAt(t, level, 2, 1)
	b := boxes.New(level.NumAlive)
	b.Set(box)

	require.False(t, deadlock.IsSimpleDeadlock(level, box, b))
}
