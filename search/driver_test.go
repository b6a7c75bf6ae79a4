package search_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/levelenv"
	"github.com/katalvlaran/sokosolve/search"
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

func solve(t *testing.T, level *cellgraph.Level, opts search.Options) (search.Solution, bool) {
	t.Helper()
	driver := search.NewDriver(level, opts, nil)
	start := level.Start
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	final, info, ok := driver.Run(ctx, start)
	if !ok {
		return search.Solution{}, false
	}

	return driver.Reconstruct(start, final, info), true
}

func TestNormalize_Idempotent(t *testing.T) {
	level := mustCompile(t, "######\n#. $ #\n#  @ #\n######\n")
	s := level.Start
	s.Boxes = s.Boxes.Clone()
	visitor := cellgraph.NewAgentVisitor(len(level.Cells), s.Agent)

	search.Normalize(level, &s, visitor)
	once := s.Agent

	visitor2 := cellgraph.NewAgentVisitor(len(level.Cells), s.Agent)
	search.Normalize(level, &s, visitor2)

	require.Equal(t, once, s.Agent)
}

func TestNormalize_CanonicalizationEquivalence(t *testing.T) {
	level := mustCompile(t, "######\n#. $ #\n#  @ #\n######\n")

	a := level.Start
	a.Boxes = a.Boxes.Clone()
	b := level.Start
	b.Boxes = a.Boxes

	// Move the agent to a different cell within the same box-free
	// reachable component (one of the agent's box-free neighbours).
	var other int
	for _, mv := range level.Cells[a.Agent].Moves {
		if !a.Boxes.Get(mv.To) {
			other = mv.To
			break
		}
	}
	b.Agent = other

	va := cellgraph.NewAgentVisitor(len(level.Cells), a.Agent)
	vb := cellgraph.NewAgentVisitor(len(level.Cells), b.Agent)
	search.Normalize(level, &a, va)
	search.Normalize(level, &b, vb)

	require.Equal(t, a.Agent, b.Agent)
}

func TestHeuristic_AdmissibleOnTrivialPush(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#####\n")
	h := search.Heuristic(level, level.Start.Boxes)
	require.LessOrEqual(t, h, uint32(1), "one push suffices, so the heuristic must not overestimate it")
}

func TestHeuristic_InfWhenGoalUnreachable(t *testing.T) {
	// The box at (2,1) lies against the north wall, so it can only ever
	// be pushed along row 1, whose one goal (the corner at (1,1)) already
	// holds a frozen box. No live goal is reachable from its cell, so
	// Heuristic must report Inf, not a finite (and therefore unsound)
	// lower bound.
	level := mustCompile(t, "######\n#*$ @#\n#    #\n#.   #\n######\n")
	h := search.Heuristic(level, level.Start.Boxes)
	require.Equal(t, cellgraph.Inf, h)
}

func TestQueue_PopsLowestPriorityFirst(t *testing.T) {
	level := mustCompile(t, "######\n#. $ #\n#  @ #\n######\n")
	q := search.NewQueue(1)

	hi := level.Start
	hi.Boxes = hi.Boxes.Clone()
	lo := level.Start
	lo.Boxes = lo.Boxes.Clone()
	lo.Agent = level.Cells[lo.Agent].Moves[0].To
	require.NotEqual(t, hi.Agent, lo.Agent)

	q.Push(hi, 5)
	q.Push(lo, 1)

	s, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, lo.Agent, s.Agent)
}

func TestQueue_ShutdownUnblocksAllWaiters(t *testing.T) {
	q := search.NewQueue(2)
	done := make(chan bool, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, ok := q.Pop()
			done <- ok
		}()
	}
	time.Sleep(10 * time.Millisecond)
	q.Shutdown()

	require.False(t, <-done)
	require.False(t, <-done)
}

func TestStateMap_AddQueryUpdate(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#####\n")
	m := search.NewStateMap()
	s := level.Start
	shard := search.Shard(s)

	m.Lock(shard)
	_, found := m.Query(shard, s)
	require.False(t, found)
	m.Add(shard, s, boxes.StateInfo{Distance: 1})
	info, found := m.Query(shard, s)
	require.True(t, found)
	require.Equal(t, uint32(1), info.Distance)

	info.Distance = 0
	m.Update(shard, s, info)
	info, found = m.Query(shard, s)
	require.True(t, found)
	require.Zero(t, info.Distance)
	m.Unlock(shard)
}

func TestDriver_TrivialPush(t *testing.T) {
	level := mustCompile(t, "#####\n#@$.#\n#####\n")
	sol, ok := solve(t, level, search.DefaultOptions())
	require.True(t, ok)
	require.Equal(t, 1, sol.Pushes)
}

func TestDriver_SingleDetour(t *testing.T) {
	level := mustCompile(t, "######\n#. $ #\n#  @ #\n######\n")
	sol, ok := solve(t, level, search.DefaultOptions())
	require.True(t, ok)
	require.GreaterOrEqual(t, sol.Pushes, 1)
}

func TestDriver_CornerDeadlockNeverExpanded(t *testing.T) {
	// The box starts wedged in a corner where no push can move it;
	// the search must report this as unsolvable rather than hang.
	level := mustCompile(t, "####\n#@$#\n#.##\n####\n")
	_, ok := solve(t, level, search.DefaultOptions())
	require.False(t, ok)
}

func TestDriver_FrozenOnGoalAcceptance(t *testing.T) {
	level := mustCompile(t, "####\n#@*#\n####\n")
	sol, ok := solve(t, level, search.DefaultOptions())
	require.True(t, ok)
	require.Zero(t, sol.Pushes)
}

func TestDriver_MultiWorkerDeterminism(t *testing.T) {
	level := mustCompile(t, "######\n#. $ #\n#  @ #\n######\n")

	single := search.DefaultOptions()
	single.SingleThread = true
	solSingle, ok := solve(t, level, single)
	require.True(t, ok)

	level2 := mustCompile(t, "######\n#. $ #\n#  @ #\n######\n")
	multi := search.DefaultOptions()
	solMulti, ok := solve(t, level2, multi)
	require.True(t, ok)

	require.Equal(t, solSingle.Pushes, solMulti.Pushes)
}
