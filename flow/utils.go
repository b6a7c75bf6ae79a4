package flow

import "github.com/katalvlaran/sokosolve/core"

// buildCapMap aggregates parallel edges of g into a nested capacity map,
// capMap[u][v] = sum of edge weights from u to v, skipping self-loops.
func buildCapMap(g *core.Graph) (map[string]map[string]int64, error) {
	vertices := g.Vertices()
	capMap := make(map[string]map[string]int64, len(vertices))
	for _, u := range vertices {
		capMap[u] = make(map[string]int64)
	}

	for _, u := range vertices {
		neighbors, err := g.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, e := range neighbors {
			if e.From == e.To {
				continue
			}
			if e.Weight < 0 {
				return nil, EdgeError{From: e.From, To: e.To, Cap: e.Weight}
			}
			capMap[u][e.To] += e.Weight
		}
	}

	return capMap, nil
}
