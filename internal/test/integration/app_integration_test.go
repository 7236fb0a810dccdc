package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spreadscope/internal/core/app"
	"spreadscope/internal/core/config"
	"spreadscope/internal/engine/centrality"
	"spreadscope/internal/shared/observability"
	"spreadscope/internal/ui/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createInteractions writes two dense retweet clusters joined by one bridge
// account, plus a few malformed lines.
func createInteractions(t *testing.T, tmpDir string) string {
	t.Helper()
	var b strings.Builder
	for _, cluster := range []string{"left", "right"} {
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				if i != j {
					fmt.Fprintf(&b, "%s%d %s%d %d\n", cluster, i, cluster, j, 1+(i+j)%3)
				}
			}
		}
	}
	b.WriteString("left0 bridge\nbridge right0 2\n")
	b.WriteString("only-one-token\nx y notanumber\n")

	path := filepath.Join(tmpDir, "retweets.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestAppIntegration(t *testing.T) {
	var spans bytes.Buffer
	shutdown, err := observability.InitTracing(context.Background(), observability.TracingOptions{
		Enabled:  true,
		Exporter: "stdout",
		Writer:   &spans,
	})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Input.Path = createInteractions(t, t.TempDir())
	cfg.Metrics.Parallel = true
	cfg.Ranking.TopN = 5

	a, err := app.New(cfg)
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 62, res.Ingest.Processed)
	assert.Equal(t, 2, res.Ingest.Rejected)
	assert.Equal(t, 13, res.Graph.NodeCount())
	assert.Equal(t, 1, res.Stats.WeakComponents)

	for _, m := range centrality.AllMetrics {
		_, ok := res.Metrics.Get(m)
		assert.True(t, ok, "metric %s", m)
	}

	require.Len(t, res.Top, 5)
	bc, _ := res.Metrics.Get(centrality.MetricBetweenness)
	for _, v := range bc {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	assert.Greater(t, bc["bridge"], 0.0, "bridge sits on every cross-cluster path")

	assert.GreaterOrEqual(t, res.Partition.Len(), 2)
	assert.Greater(t, res.Partition.Modularity, 0.3)
	left, _ := res.Partition.Of("left0")
	right, _ := res.Partition.Of("right0")
	assert.NotEqual(t, left, right, "the clusters must land in different communities")

	md := report.Markdown(res)
	assert.Contains(t, md, "## Top 5 spreaders")
	assert.Contains(t, report.AttributesTSV(res.Attributes), "bridge\t")

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, spans.String(), "app.Run")
	assert.Contains(t, spans.String(), "centrality.pagerank")
}

func TestAppIntegration_RandomReductionIsReproducible(t *testing.T) {
	input := createInteractions(t, t.TempDir())
	run := func() []string {
		cfg := config.DefaultConfig()
		cfg.Input.Path = input
		cfg.Reduction.TargetSize = 7
		cfg.Reduction.Method = "random"
		cfg.Reduction.Seed = 2024
		a, err := app.New(cfg)
		require.NoError(t, err)
		res, err := a.Run(context.Background())
		require.NoError(t, err)
		require.True(t, res.Reduction.Applied)
		return res.Graph.Nodes()
	}

	first := run()
	assert.Len(t, first, 7)
	assert.Equal(t, first, run())
}
