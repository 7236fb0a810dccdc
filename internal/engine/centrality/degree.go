package centrality

import "spreadscope/internal/engine/graph"

// Scores maps node id to a metric value.
type Scores map[string]float64

// Degree returns total degree divided by n-1. Graphs with fewer than two
// nodes yield an empty map.
func Degree(adj *graph.Adjacency) Scores {
	n := adj.Len()
	out := make(Scores, n)
	if n <= 1 {
		return out
	}
	scale := 1.0 / float64(n-1)
	for i, id := range adj.IDs {
		out[id] = float64(adj.Degree(i)) * scale
	}
	return out
}
