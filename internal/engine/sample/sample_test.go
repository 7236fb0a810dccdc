package sample

import (
	"fmt"
	"testing"

	"spreadscope/internal/core/errors"
	"spreadscope/internal/engine/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hubGraph builds a star around "hub" plus a chain of low-degree nodes.
func hubGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i := 0; i < 6; i++ {
		require.NoError(t, g.AddEdge(fmt.Sprintf("leaf%d", i), "hub", 1))
	}
	require.NoError(t, g.AddEdge("leaf0", "leaf1", 4))
	require.NoError(t, g.AddEdge("x", "y", 1))
	return g
}

func TestReduce_DegreeKeepsHighestDegreeNodes(t *testing.T) {
	g := hubGraph(t)
	sub, info, err := Reduce(g, Options{TargetSize: 3, Method: MethodDegree})
	require.NoError(t, err)

	assert.True(t, info.Applied)
	assert.Equal(t, 3, sub.NodeCount())
	assert.Equal(t, []string{"leaf0", "hub", "leaf1"}, sub.Nodes())

	minSelected := -1
	for _, id := range sub.Nodes() {
		d := g.Degree(id)
		if minSelected < 0 || d < minSelected {
			minSelected = d
		}
	}
	for _, id := range g.Nodes() {
		if sub.HasNode(id) {
			continue
		}
		assert.LessOrEqual(t, g.Degree(id), minSelected, "unselected %s outranks a selected node", id)
	}

	w, ok := sub.Weight("leaf0", "leaf1")
	assert.True(t, ok)
	assert.Equal(t, 4, w, "induced edges must keep their weight")
	assert.Equal(t, 3, sub.EdgeCount())
}

func TestReduce_DegreeTiesUseFirstSeenOrder(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b", 1))
	require.NoError(t, g.AddEdge("c", "d", 1))

	assert.Equal(t, []string{"a", "b"}, TopByDegree(g, 2))
	assert.Equal(t, []string{"a", "b", "c", "d"}, TopByDegree(g, 10))
}

func TestReduce_SmallGraphIsCopied(t *testing.T) {
	g := hubGraph(t)
	sub, info, err := Reduce(g, Options{TargetSize: 100, Method: MethodDegree})
	require.NoError(t, err)

	assert.False(t, info.Applied)
	assert.Equal(t, g.NodeCount(), sub.NodeCount())
	assert.Equal(t, g.EdgeCount(), sub.EdgeCount())

	require.NoError(t, sub.AddEdge("new", "hub", 1))
	assert.False(t, g.HasNode("new"), "copy must be independent of the source")
}

func TestReduce_EmptyGraph(t *testing.T) {
	sub, info, err := Reduce(graph.New(), Options{TargetSize: 5, Method: MethodRandom})
	require.NoError(t, err)
	assert.Equal(t, 0, sub.NodeCount())
	assert.False(t, info.Applied)
}

func TestReduce_RejectsBadOptions(t *testing.T) {
	g := hubGraph(t)

	_, _, err := Reduce(g, Options{TargetSize: 0, Method: MethodDegree})
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))

	_, _, err = Reduce(g, Options{TargetSize: -2, Method: MethodDegree})
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))

	_, _, err = Reduce(g, Options{TargetSize: 3, Method: "pagerank"})
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestReduce_RandomIsSeeded(t *testing.T) {
	g := hubGraph(t)

	first, _, err := Reduce(g, Options{TargetSize: 4, Method: MethodRandom, Seed: 42})
	require.NoError(t, err)
	second, _, err := Reduce(g, Options{TargetSize: 4, Method: MethodRandom, Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, 4, first.NodeCount())
	assert.Equal(t, first.Nodes(), second.Nodes())
	assert.Equal(t, first.Edges(), second.Edges())

	for _, e := range first.Edges() {
		w, ok := g.Weight(e.From, e.To)
		assert.True(t, ok)
		assert.Equal(t, w, e.Weight)
	}
}

func TestUniform_SamplesDistinctNodes(t *testing.T) {
	g := hubGraph(t)
	ids := Uniform(g, 5, 7)
	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
		assert.True(t, g.HasNode(id))
	}
	assert.Len(t, ids, 5)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" Degree ")
	require.NoError(t, err)
	assert.Equal(t, MethodDegree, m)

	_, err = ParseMethod("grau")
	assert.Error(t, err)
}
