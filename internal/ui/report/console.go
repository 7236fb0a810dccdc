package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"spreadscope/internal/core/app"
	"spreadscope/internal/engine/centrality"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true).
			MarginTop(1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// Console renders the terminal summary of a run.
func Console(res *app.Result) string {
	var parts []string
	parts = append(parts, titleStyle.Render(fmt.Sprintf("spreadscope · %s", res.Input)))
	parts = append(parts, mutedStyle.Render(fmt.Sprintf("run %s, %s", res.RunID, res.Ingest.Summary())))
	if res.Reduction.Applied {
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("reduced by %s: %d → %d nodes, %d → %d edges",
			res.Reduction.Method,
			res.Reduction.OriginalNodes, res.Reduction.Nodes,
			res.Reduction.OriginalEdges, res.Reduction.Edges)))
	}

	parts = append(parts, sectionStyle.Render("Graph statistics"))
	stats := newTable("Statistic", "Value")
	for _, row := range statRows(res.Stats) {
		stats.Row(row[0], row[1])
	}
	parts = append(parts, stats.Render())

	for _, m := range centrality.AllMetrics {
		top, ok := res.MetricTop[m]
		if !ok {
			continue
		}
		parts = append(parts, sectionStyle.Render(fmt.Sprintf("Top %d %s", len(top), metricTitle(m))))
		t := newTable("#", "Node", "Score")
		for i, e := range top {
			t.Row(strconv.Itoa(i+1), e.Node, formatScore(e.Score))
		}
		parts = append(parts, t.Render())
	}

	parts = append(parts, sectionStyle.Render("Communities"))
	switch {
	case res.Partition.Notice != "":
		parts = append(parts, warnStyle.Render(res.Partition.Notice))
	case res.Partition.Len() == 0:
		parts = append(parts, mutedStyle.Render("community detection disabled"))
	default:
		parts = append(parts, fmt.Sprintf("%d communities, modularity %.4f", res.Partition.Len(), res.Partition.Modularity))
		t := newTable("Community", "Size", "Share")
		for _, c := range res.LargestCommunities {
			t.Row(strconv.Itoa(c.ID), strconv.Itoa(c.Size()), fmt.Sprintf("%.2f%%", percent(c.Size(), res.Graph.NodeCount())))
		}
		parts = append(parts, t.Render())
	}

	parts = append(parts, sectionStyle.Render(fmt.Sprintf("Top %d spreaders", len(res.Top))))
	spreaders := newTable("#", "Node", "Score", "Degree", "PageRank", "Betweenness", "Closeness", "Community")
	for i, row := range spreaderRows(res) {
		spreaders.Row(append([]string{strconv.Itoa(i + 1)}, row...)...)
	}
	parts = append(parts, spreaders.Render())

	if len(res.Distribution) > 0 {
		dist := newTable("Community", "Spreaders", "Share")
		for _, d := range res.Distribution {
			dist.Row(strconv.Itoa(d.Community), strconv.Itoa(d.Count), fmt.Sprintf("%.1f%%", d.Percent))
		}
		parts = append(parts, sectionStyle.Render("Spreaders by community"), dist.Render())
	}

	for _, n := range res.Notices {
		parts = append(parts, warnStyle.Render("! "+n))
	}
	return strings.Join(parts, "\n") + "\n"
}

func PrintConsole(w io.Writer, res *app.Result) error {
	_, err := io.WriteString(w, Console(res))
	return err
}
