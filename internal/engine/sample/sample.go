// Package sample reduces large interaction graphs to a bounded node count
// so the expensive metrics stay tractable.
package sample

import (
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"spreadscope/internal/core/errors"
	"spreadscope/internal/engine/graph"
)

type Method string

const (
	MethodDegree Method = "degree"
	MethodRandom Method = "random"
)

// ParseMethod accepts the configured method name case-insensitively.
func ParseMethod(raw string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(raw))) {
	case MethodDegree:
		return MethodDegree, nil
	case MethodRandom:
		return MethodRandom, nil
	default:
		return "", errors.Newf(errors.CodeValidationError, "unknown reduction method %q (want degree or random)", raw)
	}
}

type Options struct {
	TargetSize int
	Method     Method
	Seed       uint64
}

// Reduction describes what Reduce did.
type Reduction struct {
	Method        Method
	Applied       bool
	OriginalNodes int
	OriginalEdges int
	Nodes         int
	Edges         int
}

// Reduce returns the induced subgraph on at most opts.TargetSize nodes. The
// result is always an independent copy of g.
func Reduce(g *graph.Graph, opts Options) (*graph.Graph, Reduction, error) {
	if opts.TargetSize <= 0 {
		return nil, Reduction{}, errors.Newf(errors.CodeValidationError, "reduction target size must be positive, got %d", opts.TargetSize)
	}
	method, err := ParseMethod(string(opts.Method))
	if err != nil {
		return nil, Reduction{}, err
	}

	info := Reduction{
		Method:        method,
		OriginalNodes: g.NodeCount(),
		OriginalEdges: g.EdgeCount(),
	}

	if info.OriginalNodes <= opts.TargetSize {
		c := g.Clone()
		info.Nodes, info.Edges = c.NodeCount(), c.EdgeCount()
		slog.Info("graph already within reduction target", "nodes", info.OriginalNodes, "target", opts.TargetSize)
		return c, info, nil
	}

	var selected []string
	switch method {
	case MethodDegree:
		selected = TopByDegree(g, opts.TargetSize)
	case MethodRandom:
		selected = Uniform(g, opts.TargetSize, opts.Seed)
	}

	sub := g.Subgraph(selected)
	info.Applied = true
	info.Nodes, info.Edges = sub.NodeCount(), sub.EdgeCount()
	slog.Info("graph reduced",
		"method", method,
		"fromNodes", info.OriginalNodes,
		"fromEdges", info.OriginalEdges,
		"nodes", info.Nodes,
		"edges", info.Edges,
	)
	return sub, info, nil
}

// TopByDegree selects the k nodes with the highest total degree. Equal
// degrees keep first-seen order.
func TopByDegree(g *graph.Graph, k int) []string {
	adj := g.Adjacency()
	order := make([]int, adj.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return adj.Degree(order[i]) > adj.Degree(order[j])
	})
	if k > len(order) {
		k = len(order)
	}
	ids := make([]string, k)
	for i := 0; i < k; i++ {
		ids[i] = adj.IDs[order[i]]
	}
	return ids
}

// Uniform draws k distinct nodes uniformly at random from a generator seeded
// with seed, so equal seeds give equal samples.
func Uniform(g *graph.Graph, k int, seed uint64) []string {
	ids := g.Nodes()
	if k > len(ids) {
		k = len(ids)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	// Partial Fisher-Yates: the first k slots end up as the sample.
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:k]
}
