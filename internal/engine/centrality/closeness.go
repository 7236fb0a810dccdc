package centrality

import (
	"context"

	"spreadscope/internal/engine/graph"
)

// Closeness computes Wasserman-Faust closeness from incoming distances:
// for node u reached from r-1 other nodes with total distance d,
// c(u) = ((r-1)/d) * ((r-1)/(n-1)). Nodes nobody reaches score 0.
func Closeness(ctx context.Context, adj *graph.Adjacency) (Scores, error) {
	n := adj.Len()
	out := make(Scores, n)
	if n == 0 {
		return out, nil
	}

	dist := make([]int, n)
	queue := make([]int, 0, n)
	for u := 0; u < n; u++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range dist {
			dist[i] = -1
		}
		dist[u] = 0
		queue = append(queue[:0], u)
		total := 0
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			for _, arc := range adj.In[v] {
				if dist[arc.To] >= 0 {
					continue
				}
				dist[arc.To] = dist[v] + 1
				total += dist[arc.To]
				queue = append(queue, arc.To)
			}
		}

		reached := float64(len(queue) - 1)
		score := 0.0
		if total > 0 && n > 1 {
			score = (reached / float64(total)) * (reached / float64(n-1))
		}
		out[adj.IDs[u]] = score
	}
	return out, nil
}
