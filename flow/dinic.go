// Package flow computes maximum flow on a core.Graph via Dinic's algorithm
// (level graph + blocking flow). It exists for one consumer: the deadlock
// package's bipartite box/goal matching check, built as unit-capacity
// maximum flow from a synthetic source through boxes and goals to a
// synthetic sink.
package flow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sokosolve/core"
)

// Dinic computes the maximum flow from source to sink in the directed,
// weighted graph g. Capacities are aggregated per parallel-edge pair via
// buildCapMap; negative weights yield an EdgeError.
//
// Complexity: O(V^2*E) worst case; O(E*sqrt(V)) on unit-capacity networks,
// which is the only shape this package's caller (bipartite matching) feeds it.
func Dinic(g *core.Graph, source, sink string, opts FlowOptions) (maxFlow int64, err error) {
	if !g.HasVertex(source) {
		return 0, ErrSourceNotFound
	}
	if !g.HasVertex(sink) {
		return 0, ErrSinkNotFound
	}

	capMap, err := buildCapMap(g)
	if err != nil {
		return 0, err
	}

	for {
		level := bfsLevels(capMap, source, sink)
		if level[sink] < 0 {
			break
		}

		next := make(map[string][]string, len(capMap))
		for u, nbrs := range capMap {
			for v, cap := range nbrs {
				if cap > 0 && level[v] == level[u]+1 {
					next[u] = append(next[u], v)
				}
			}
		}

		iter := make(map[string]int, len(next))
		for {
			pushed := dfsBlockingFlow(capMap, next, iter, source, sink, math.MaxInt64)
			if pushed == 0 {
				break
			}
			maxFlow += pushed
			if opts.Verbose {
				fmt.Printf("flow: pushed %d, total %d\n", pushed, maxFlow)
			}
		}
	}

	return maxFlow, nil
}

func bfsLevels(capMap map[string]map[string]int64, source, sink string) map[string]int {
	level := make(map[string]int, len(capMap))
	for u := range capMap {
		level[u] = -1
	}
	level[source] = 0
	queue := []string{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for v, cap := range capMap[u] {
			if cap > 0 && level[v] < 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}
	_ = sink

	return level
}

// dfsBlockingFlow recursively pushes flow along the level graph rooted at u,
// mutating capMap (and its reverse residual edges) in place.
func dfsBlockingFlow(capMap map[string]map[string]int64, next map[string][]string, iter map[string]int, u, sink string, available int64) int64 {
	if u == sink {
		return available
	}
	for i := iter[u]; i < len(next[u]); i++ {
		iter[u] = i + 1
		v := next[u][i]
		capUV := capMap[u][v]
		if capUV <= 0 {
			continue
		}
		send := available
		if capUV < send {
			send = capUV
		}
		pushed := dfsBlockingFlow(capMap, next, iter, v, sink, send)
		if pushed > 0 {
			capMap[u][v] -= pushed
			if capMap[v] == nil {
				capMap[v] = make(map[string]int64)
			}
			capMap[v][u] += pushed

			return pushed
		}
	}

	return 0
}
