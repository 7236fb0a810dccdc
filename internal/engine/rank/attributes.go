package rank

import (
	"spreadscope/internal/engine/centrality"
	"spreadscope/internal/engine/community"
	"spreadscope/internal/engine/graph"
)

// Attributes is the exported per-node record. Nil fields were not computed.
type Attributes struct {
	Node        string
	Degree      int
	InDegree    int
	OutDegree   int
	Centrality  *float64
	PageRank    *float64
	Betweenness *float64
	Closeness   *float64
	Community   *int
	Composite   float64
}

// Metric returns the value of m, if computed.
func (a Attributes) Metric(m centrality.Metric) *float64 {
	switch m {
	case centrality.MetricDegree:
		return a.Centrality
	case centrality.MetricPageRank:
		return a.PageRank
	case centrality.MetricBetweenness:
		return a.Betweenness
	case centrality.MetricCloseness:
		return a.Closeness
	}
	return nil
}

func lookup(res *centrality.Result, m centrality.Metric, id string) *float64 {
	scores, ok := res.Get(m)
	if !ok {
		return nil
	}
	v, ok := scores[id]
	if !ok {
		return nil
	}
	return &v
}

// BuildAttributes assembles one record per node of g in first-seen order.
func BuildAttributes(g *graph.Graph, res *centrality.Result, composite centrality.Scores, p *community.Partition) []Attributes {
	nodes := g.Nodes()
	out := make([]Attributes, 0, len(nodes))
	for _, id := range nodes {
		a := Attributes{
			Node:        id,
			Degree:      g.Degree(id),
			InDegree:    g.InDegree(id),
			OutDegree:   g.OutDegree(id),
			Centrality:  lookup(res, centrality.MetricDegree, id),
			PageRank:    lookup(res, centrality.MetricPageRank, id),
			Betweenness: lookup(res, centrality.MetricBetweenness, id),
			Closeness:   lookup(res, centrality.MetricCloseness, id),
			Composite:   composite[id],
		}
		if c, ok := p.Of(id); ok {
			a.Community = &c
		}
		out = append(out, a)
	}
	return out
}
