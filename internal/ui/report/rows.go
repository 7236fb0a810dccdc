package report

import (
	"fmt"
	"strconv"

	"spreadscope/internal/core/app"
	"spreadscope/internal/engine/centrality"
	"spreadscope/internal/engine/graph"
	"spreadscope/internal/engine/rank"
)

func metricTitle(m centrality.Metric) string {
	switch m {
	case centrality.MetricDegree:
		return "Degree"
	case centrality.MetricPageRank:
		return "PageRank"
	case centrality.MetricBetweenness:
		return "Betweenness"
	case centrality.MetricCloseness:
		return "Closeness"
	}
	return string(m)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

func statRows(s graph.Stats) [][2]string {
	rows := [][2]string{
		{"Nodes", strconv.Itoa(s.Nodes)},
		{"Edges", strconv.Itoa(s.Edges)},
		{"Density", fmt.Sprintf("%.6f", s.Density)},
		{"Average degree", fmt.Sprintf("%.2f", s.AverageDegree)},
		{"Weakly connected components", strconv.Itoa(s.WeakComponents)},
		{"Largest weak component", strconv.Itoa(s.LargestWeakComponent)},
		{"Strongly connected components", strconv.Itoa(s.StrongComponents)},
		{"Largest SCC share", fmt.Sprintf("%.2f%%", 100*s.LargestStrongShare())},
		{"Reciprocity", fmt.Sprintf("%.4f", s.Reciprocity)},
		{"Average clustering", fmt.Sprintf("%.4f", s.AverageClustering)},
	}
	if s.DiameterComputed {
		rows = append(rows, [2]string{"Diameter (largest component)", strconv.Itoa(s.Diameter)})
	} else if s.DiameterNote != "" {
		rows = append(rows, [2]string{"Diameter", s.DiameterNote})
	}
	return rows
}

// spreaderRows formats the top list; absent metrics print as "-".
func spreaderRows(res *app.Result) [][]string {
	byNode := make(map[string]rank.Attributes, len(res.Attributes))
	for _, a := range res.Attributes {
		byNode[a.Node] = a
	}
	rows := make([][]string, 0, len(res.Top))
	for _, e := range res.Top {
		a := byNode[e.Node]
		community := "-"
		if a.Community != nil {
			community = strconv.Itoa(*a.Community)
		}
		row := []string{e.Node, fmt.Sprintf("%.4f", e.Score)}
		for _, m := range centrality.AllMetrics {
			row = append(row, dash(a.Metric(m)))
		}
		rows = append(rows, append(row, community))
	}
	return rows
}

func dash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *v)
}
