package cellgraph_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/sokosolve/cellgraph"
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

func TestCompile_TrivialPush(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#####\n")
	require.Equal(t, 1, level.NumGoals)
	require.Equal(t, 1, level.NumBoxes)
	require.Equal(t, 1, level.Start.Boxes.Count())

	goalCell := level.Cells[0]
	require.True(t, goalCell.Goal)
	require.Zero(t, goalCell.PushDistance[0])
}

func TestCompile_AgentOnBoxIsInvalid(t *testing.T) {
	env := levelenv.New(5, 3)
	env.Agent = levelenv.Point{X: 1, Y: 1}
	env.Box[1][1] = true
	env.Goal[1][3] = true
	for x := 0; x < 5; x++ {
		env.Wall[0][x] = true
		env.Wall[2][x] = true
	}
	env.Wall[1][0] = true
	env.Wall[1][4] = true

	_, err := cellgraph.Compile(env)
	require.Error(t, err)
}

func TestCompile_PushDistancesFinite(t *testing.T) {
	level := mustCompile(t, "######\n#. $ #\n#  @ #\n######\n")
	require.Equal(t, 1, level.NumGoals)
	require.Equal(t, 1, level.NumBoxes)
	goal := &level.Cells[0]
	for _, c := range level.Alive() {
		if c.ID != goal.ID {
			require.NotEqual(t, cellgraph.Inf, c.MinPushDistance, "cell %d should reach the sole goal", c.ID)
		}
	}
}

func TestCompile_DeadCellsAreOrderedLast(t *testing.T) {
	level := mustCompile(t, "######\n#. $ #\n#  @ #\n######\n")
	for _, c := range level.Cells[:level.NumAlive] {
		require.True(t, c.Alive)
	}
	for _, c := range level.Cells[level.NumAlive:] {
		require.False(t, c.Alive)
	}
}
