package report

import (
	"fmt"
	"strconv"
	"strings"

	"spreadscope/internal/engine/rank"
)

var attributeColumns = []string{
	"Node", "Degree", "InDegree", "OutDegree",
	"DegreeCentrality", "PageRank", "Betweenness", "Closeness",
	"Community", "Composite",
}

// AttributesTSV renders one row per node. Metrics that were not computed
// leave their cell empty.
func AttributesTSV(attrs []rank.Attributes) string {
	var buf strings.Builder
	buf.WriteString(strings.Join(attributeColumns, "\t"))
	buf.WriteString("\n")
	for _, a := range attrs {
		community := ""
		if a.Community != nil {
			community = strconv.Itoa(*a.Community)
		}
		buf.WriteString(fmt.Sprintf("%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Node,
			a.Degree,
			a.InDegree,
			a.OutDegree,
			optional(a.Centrality),
			optional(a.PageRank),
			optional(a.Betweenness),
			optional(a.Closeness),
			community,
			formatScore(a.Composite),
		))
	}
	return buf.String()
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatScore(*v)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
