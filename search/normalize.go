// Package search implements the parallel, priority-ordered forward
// push-search: canonical state normalization, a sharded closed-set, a
// bucketed priority queue, and the worker driver that expands pushes.
package search

import (
	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
)

// Normalize reassigns s.Agent to the minimum cell id reachable from its
// current agent cell without pushing a box, using visitor as BFS scratch
// space (callers reuse one visitor per worker across many calls). Every
// state handed to the closed-set or the open queue must be normalized
// first, so that two states with the same boxes and agents in the same
// box-free region compare equal.
func Normalize(level *cellgraph.Level, s *boxes.State, visitor *cellgraph.AgentVisitor) {
	visitor.Clear()
	visitor.Add(s.Agent)
	for a, ok := visitor.Next(); ok; a, ok = visitor.Next() {
		if a < s.Agent {
			s.Agent = a
		}
		for _, mv := range level.Cells[a].Moves {
			if !s.Boxes.Get(mv.To) {
				visitor.Add(mv.To)
			}
		}
	}
}
