package deadlock_test

import (
	"testing"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/deadlock"
	"github.com/stretchr/testify/require"
)

func TestPatterns_AddThenMatches(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#####\n")
	box := cellAt(t, level, 2, 1)
	b := boxes.New(level.NumAlive)
	b.Set(box)

	patterns := deadlock.NewPatterns(len(level.Cells), level.NumAlive)
	require.False(t, patterns.Matches(level.Start.Agent, b))

	patterns.Add(level, level.Start.Agent, b)
	require.Equal(t, 1, patterns.Size())
	require.True(t, patterns.Matches(level.Start.Agent, b))
}

func TestPatterns_SupersetStateStillMatches(t *testing.T) {
	level := mustCompile(t, "#######\n#     #\n# $ $ #\n# . . #\n#  @  #\n#######\n")
	left := cellAt(t, level, 2, 2)
	right := cellAt(t, level, 4, 2)

	witness := boxes.New(level.NumAlive)
	witness.Set(left)

	patterns := deadlock.NewPatterns(len(level.Cells), level.NumAlive)
	patterns.Add(level, level.Start.Agent, witness)

	// Start.Boxes holds both boxes: witness's mask is a subset of it, so
	// the pattern still matches.
	require.True(t, patterns.Matches(level.Start.Agent, level.Start.Boxes))

	onlyRight := boxes.New(level.NumAlive)
	onlyRight.Set(right)
	require.False(t, patterns.Matches(level.Start.Agent, onlyRight))
}

func TestPatterns_DifferentAgentRegionDoesNotMatch(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#   #\n#####\n")
	box := cellAt(t, level, 2, 1)
	witness := boxes.New(level.NumAlive)
	witness.Set(box)

	patterns := deadlock.NewPatterns(len(level.Cells), level.NumAlive)
	patterns.Add(level, level.Start.Agent, witness)

	require.False(t, patterns.Matches(box, witness))
}
