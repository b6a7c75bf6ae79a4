package levelenv_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/sokosolve/levelenv"
	"github.com/stretchr/testify/require"
)

func TestParse_TrivialPush(t *testing.T) {
	const level = "#####\n#@$.#\n#####\n"
	env, err := levelenv.Parse(strings.NewReader(level))
	require.NoError(t, err)
	require.NoError(t, env.Validate())
	require.Equal(t, 5, env.Width)
	require.Equal(t, 3, env.Height)
	require.Equal(t, levelenv.Point{X: 1, Y: 1}, env.Agent)
	require.True(t, env.Box[1][2])
	require.True(t, env.Goal[1][3])
}

func TestParse_MultiLevel(t *testing.T) {
	const text = "#####\n#@$.#\n#####\n\n######\n#.$ @#\n######\n"
	levels, err := levelenv.ParseAll(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, levels, 2)
	require.Equal(t, 5, levels[0].Width)
	require.Equal(t, 6, levels[1].Width)

	second, err := levelenv.ParseLevel(strings.NewReader(text), 2)
	require.NoError(t, err)
	require.Equal(t, levels[1], second)

	_, err = levelenv.ParseLevel(strings.NewReader(text), 3)
	require.ErrorIs(t, err, levelenv.ErrLevelNotFound)
}

func TestValidate_AgentOnBox(t *testing.T) {
	env := levelenv.New(4, 4)
	env.Agent = levelenv.Point{X: 1, Y: 1}
	env.Box[1][1] = true
	require.ErrorIs(t, env.Validate(), levelenv.ErrAgentOnBox)
}

func TestValidate_TooSmall(t *testing.T) {
	env := levelenv.New(2, 2)
	require.ErrorIs(t, env.Validate(), levelenv.ErrTooSmall)
}

func TestValidate_FewerGoalsThanBoxes(t *testing.T) {
	env := levelenv.New(4, 4)
	env.Agent = levelenv.Point{X: 0, Y: 0}
	env.Box[1][1] = true
	env.Box[2][2] = true
	env.Goal[1][1] = true
	require.ErrorIs(t, env.Validate(), levelenv.ErrGoalCountMismatch)
}

func TestSplitNameSuffix(t *testing.T) {
	path, n, err := levelenv.SplitNameSuffix("levels/microban.txt:7")
	require.NoError(t, err)
	require.Equal(t, "levels/microban.txt", path)
	require.Equal(t, 7, n)

	path, n, err = levelenv.SplitNameSuffix("levels/microban.txt")
	require.NoError(t, err)
	require.Equal(t, "levels/microban.txt", path)
	require.Equal(t, 1, n)
}
