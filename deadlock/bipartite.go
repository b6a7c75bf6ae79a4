package deadlock

import (
	"fmt"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/core"
	"github.com/katalvlaran/sokosolve/flow"
)

// IsBipartiteDeadlock reports whether no perfect matching exists between
// the boxes in b and the level's goals, edge iff a finite push-distance
// connects that box's cell to that goal. No perfect matching means some
// box can never reach any goal that isn't already claimed by another box,
// so the state can never be completed.
//
// The check is built as unit-capacity max-flow on a synthetic
// source -> box -> goal -> sink network (Hopcroft-Karp's bipartite
// matching and unit-capacity Dinic agree on the matching number), reusing
// the flow package's Dinic rather than a dedicated matching routine.
func IsBipartiteDeadlock(level *cellgraph.Level, b *boxes.Boxes) bool {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())

	const source, sink = "source", "sink"
	_ = g.AddVertex(source)
	_ = g.AddVertex(sink)

	numBoxes := 0
	for i := 0; i < level.NumAlive; i++ {
		if !b.Get(i) {
			continue
		}
		boxNode := fmt.Sprintf("box%d", i)
		_ = g.AddVertex(boxNode)
		_, _ = g.AddEdge(source, boxNode, 1)
		for goal := 0; goal < level.NumGoals; goal++ {
			if level.Cells[i].PushDistance[goal] == cellgraph.Inf {
				continue
			}
			goalNode := fmt.Sprintf("goal%d", goal)
			_ = g.AddVertex(goalNode)
			_, _ = g.AddEdge(boxNode, goalNode, 1)
		}
		numBoxes++
	}
	for goal := 0; goal < level.NumGoals; goal++ {
		goalNode := fmt.Sprintf("goal%d", goal)
		if g.HasVertex(goalNode) {
			_, _ = g.AddEdge(goalNode, sink, 1)
		}
	}

	if numBoxes == 0 {
		return false
	}

	maxFlow, err := flow.Dinic(g, source, sink, flow.DefaultFlowOptions())
	if err != nil {
		return false
	}

	return int(maxFlow) < level.NumGoals
}
