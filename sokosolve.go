// Package sokosolve is the public entry point: compile a levelenv.LevelEnv
// into a search-ready cellgraph.Level and run the parallel push-search
// driver over it, returning a step-by-step solution.
package sokosolve

import (
	"context"
	"io"

	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/levelenv"
	"github.com/katalvlaran/sokosolve/search"
)

// Options re-exports search.Options so callers never need to import the
// search package directly.
type Options = search.Options

// DefaultOptions returns the solver's default tuning.
func DefaultOptions() Options { return search.DefaultOptions() }

// Solution re-exports search.Solution.
type Solution = search.Solution

// Solve compiles env and searches for a solution under opts. A nil Out
// writer is replaced with io.Discard.
//
// Returns a *cellgraph.InvalidLevelError when env fails compilation.
// Returns a zero-value Solution (Steps == nil, Pushes == 0) when the level
// is provably unsolvable or the search is cut short by ctx or
// Options.MaxTime — neither case is an error, matching the source's
// "Unsolvable / Timeout → return empty solution" policy.
func Solve(ctx context.Context, env *levelenv.LevelEnv, opts Options, out io.Writer) (Solution, error) {
	level, err := cellgraph.Compile(env)
	if err != nil {
		return Solution{}, err
	}

	if out == nil {
		out = io.Discard
	}

	driver := search.NewDriver(level, opts, out)
	start := level.Start

	final, info, ok := driver.Run(ctx, start)
	if !ok {
		return Solution{}, nil
	}

	return driver.Reconstruct(start, final, info), nil
}
