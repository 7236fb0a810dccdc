package centrality

import (
	"context"
	"math"

	"spreadscope/internal/engine/graph"
)

const (
	DefaultDamping       = 0.85
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

type PageRankOptions struct {
	Damping       float64
	Tolerance     float64
	MaxIterations int
}

func (o PageRankOptions) withDefaults() PageRankOptions {
	if o.Damping <= 0 || o.Damping >= 1 {
		o.Damping = DefaultDamping
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// PageRankInfo records how the power iteration ended.
type PageRankInfo struct {
	Iterations int
	Converged  bool
	Delta      float64
}

// PageRank runs weighted power iteration. Rank mass held by nodes without
// outgoing edges is spread uniformly over all nodes. The returned scores sum
// to 1. A cancelled or expired ctx aborts with ctx.Err().
func PageRank(ctx context.Context, adj *graph.Adjacency, opts PageRankOptions) (Scores, PageRankInfo, error) {
	opts = opts.withDefaults()
	n := adj.Len()
	var info PageRankInfo
	if n == 0 {
		info.Converged = true
		return Scores{}, info, nil
	}

	outWeight := make([]float64, n)
	for i := 0; i < n; i++ {
		outWeight[i] = float64(adj.OutWeight(i))
	}

	uniform := 1.0 / float64(n)
	rank := make([]float64, n)
	next := make([]float64, n)
	for i := range rank {
		rank[i] = uniform
	}

	alpha := opts.Damping
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, info, err
		}

		dangling := 0.0
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				dangling += rank[i]
			}
		}
		base := (1-alpha)*uniform + alpha*dangling*uniform
		for i := range next {
			next[i] = base
		}
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				continue
			}
			share := alpha * rank[i] / outWeight[i]
			for _, arc := range adj.Out[i] {
				next[arc.To] += share * float64(arc.Weight)
			}
		}

		delta := 0.0
		for i := 0; i < n; i++ {
			delta += math.Abs(next[i] - rank[i])
		}
		rank, next = next, rank
		info.Iterations = iter
		info.Delta = delta
		if delta < opts.Tolerance {
			info.Converged = true
			break
		}
	}

	sum := 0.0
	for _, r := range rank {
		sum += r
	}
	out := make(Scores, n)
	for i, id := range adj.IDs {
		out[id] = rank[i] / sum
	}
	return out, info, nil
}
