package report

import (
	"fmt"
	"strings"
	"time"

	"spreadscope/internal/core/app"
	"spreadscope/internal/engine/centrality"
)

// Markdown renders the full analysis report.
func Markdown(res *app.Result) string {
	var b strings.Builder
	s := res.Stats

	fmt.Fprintf(&b, "# Spreader analysis\n\n")
	fmt.Fprintf(&b, "- Input: `%s`\n- Run: `%s`\n- Started: %s\n- Duration: %s\n\n",
		res.Input, res.RunID, res.StartedAt.Format("2006-01-02 15:04:05 MST"), res.Duration.Round(time.Millisecond))

	b.WriteString("## Ingestion\n\n")
	fmt.Fprintf(&b, "%s.\n\n", res.Ingest.Summary())
	if res.Reduction.Applied {
		fmt.Fprintf(&b, "Reduced by %s from %d nodes / %d edges to %d nodes / %d edges.\n\n",
			res.Reduction.Method, res.Reduction.OriginalNodes, res.Reduction.OriginalEdges, res.Reduction.Nodes, res.Reduction.Edges)
	}

	b.WriteString("## Graph statistics\n\n")
	b.WriteString("| Statistic | Value |\n|---|---|\n")
	for _, row := range statRows(s) {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
	}
	b.WriteString("\n")

	b.WriteString("## Centrality\n\n")
	for _, st := range res.Metrics.Ordered() {
		if st.State != centrality.StateComputed {
			fmt.Fprintf(&b, "- **%s**: %s (%s)\n", st.Metric, st.State, st.Reason)
		}
	}
	for _, m := range centrality.AllMetrics {
		top, ok := res.MetricTop[m]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n### Top %d %s\n\n| # | Node | Score |\n|---|---|---|\n", len(top), metricTitle(m))
		for i, e := range top {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, e.Node, formatScore(e.Score))
		}
	}
	b.WriteString("\n")

	b.WriteString("## Communities\n\n")
	if res.Partition.Notice != "" {
		fmt.Fprintf(&b, "%s\n\n", res.Partition.Notice)
	} else if res.Partition.Len() > 0 {
		fmt.Fprintf(&b, "%d communities, modularity %.4f.\n\n", res.Partition.Len(), res.Partition.Modularity)
		b.WriteString("| Community | Size | Share |\n|---|---|---|\n")
		total := res.Graph.NodeCount()
		for _, c := range res.LargestCommunities {
			fmt.Fprintf(&b, "| %d | %d | %.2f%% |\n", c.ID, c.Size(), percent(c.Size(), total))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Community detection disabled.\n\n")
	}

	fmt.Fprintf(&b, "## Top %d spreaders\n\n", len(res.Top))
	b.WriteString("| # | Node | Score | Degree | PageRank | Betweenness | Closeness | Community |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for i, row := range spreaderRows(res) {
		fmt.Fprintf(&b, "| %d | %s |\n", i+1, strings.Join(row, " | "))
	}

	if len(res.Distribution) > 0 {
		b.WriteString("\n### Distribution across communities\n\n| Community | Spreaders | Share |\n|---|---|---|\n")
		for _, d := range res.Distribution {
			fmt.Fprintf(&b, "| %d | %d | %.1f%% |\n", d.Community, d.Count, d.Percent)
		}
	}

	if len(res.Notices) > 0 {
		b.WriteString("\n## Notices\n\n")
		for _, n := range res.Notices {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}
	return b.String()
}
