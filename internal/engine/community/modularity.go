package community

import "spreadscope/internal/engine/graph"

// Modularity returns Newman's Q for the given communities on the unweighted
// graph u. A self-loop counts once among internal edges and twice in its
// node's degree. Nodes missing from every community are ignored.
func Modularity(u *graph.Undirected, communities []Community) float64 {
	adj := u.Adjacency()
	m := float64(u.EdgeCount())
	if m == 0 {
		return 0
	}
	label := make([]int, adj.Len())
	for i := range label {
		label[i] = -1
	}
	for c, comm := range communities {
		for _, id := range comm.Members {
			if idx, ok := adj.Index[id]; ok {
				label[idx] = c
			}
		}
	}

	internal := make([]float64, len(communities))
	degree := make([]float64, len(communities))
	for i := 0; i < adj.Len(); i++ {
		c := label[i]
		if c < 0 {
			continue
		}
		degree[c] += float64(adj.Degree(i))
		for _, arc := range adj.Neighbors[i] {
			if arc.To >= i && label[arc.To] == c {
				internal[c]++
			}
		}
	}

	q := 0.0
	for c := range communities {
		share := degree[c] / (2 * m)
		q += internal[c]/m - share*share
	}
	return q
}
