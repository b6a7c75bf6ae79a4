package corral_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/corral"
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
	t.Fatalf("no cell at (%d,%d)", x, y)

	return -1
}

// The corridor's only box splits it into an agent-reachable half and an
// unreachable half holding the empty goal — a one-box, one-push PI-corral.
func TestFindUnsolvedPICorral_CorridorBoxFencesGoal(t *testing.T) {
	level := mustCompile(t, "#######\n#@ $ .#\n#  ####\n#######\n")
	an := corral.NewAnalyzer(level)

	c, ok := an.FindUnsolvedPICorral(level.Start.Agent, level.Start.Boxes)
	require.True(t, ok)

	goal := cellAt(t, level, 5, 1)
	require.True(t, bool(c[goal]), "the empty goal cell must lie inside the reported corral")

	agentStart := cellAt(t, level, 1, 1)
	require.False(t, bool(c[agentStart]), "the agent's own reachable side must not be swept into the corral")
}

func TestFindUnsolvedPICorral_NoCorralWhenEverythingReachable(t *testing.T) {
	level := mustCompile(t, "#####\n#@* #\n#####\n")
	an := corral.NewAnalyzer(level)

	_, ok := an.FindUnsolvedPICorral(level.Start.Agent, level.Start.Boxes)
	require.False(t, ok, "the only fenced-off cell holds neither a goal nor a box, so its corral is already solved")
}

func TestIsUnsolvedCorral_SolvedRegionIsNotUnsolved(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#####\n")
	b := level.Start.Boxes.Clone()
	goal := cellAt(t, level, 3, 1)
	box := cellAt(t, level, 2, 1)
	b.Move(box, goal)

	all := make(corral.Corral, len(level.Cells))
	for i := range all {
		all[i] = true
	}
	require.False(t, corral.IsUnsolvedCorral(level, b, all))
}
