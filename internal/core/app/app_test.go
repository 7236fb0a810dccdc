package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spreadscope/internal/core/config"
	"spreadscope/internal/core/errors"
	"spreadscope/internal/engine/centrality"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = `A B
A C 2
B C
C A
A B 3
bad
D E 0
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interactions.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newApp(t *testing.T, input string, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Input.Path = input
	if mutate != nil {
		mutate(cfg)
	}
	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestRun_EndToEnd(t *testing.T) {
	a := newApp(t, writeInput(t, sampleInput), nil)

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 5, res.Ingest.Processed)
	assert.Equal(t, 2, res.Ingest.Rejected)
	assert.Equal(t, 3, res.Graph.NodeCount())
	assert.Equal(t, 4, res.Graph.EdgeCount())
	w, ok := res.Graph.Weight("A", "B")
	require.True(t, ok)
	assert.Equal(t, 3, w, "repeated pair keeps the last weight")

	assert.False(t, res.Reduction.Applied)
	for _, m := range centrality.AllMetrics {
		assert.Equal(t, centrality.StateComputed, res.Metrics.Statuses[m].State, "metric %s", m)
	}
	assert.Empty(t, res.Notices)

	require.Len(t, res.Top, 3)
	assert.GreaterOrEqual(t, res.Top[0].Score, res.Top[1].Score)
	assert.Len(t, res.MetricTop, 4)
	assert.Equal(t, 1, res.Partition.Len())
	require.Len(t, res.Distribution, 1)
	assert.Equal(t, 100.0, res.Distribution[0].Percent)
	assert.Len(t, res.Attributes, 3)
	assert.Equal(t, 1, res.Stats.StrongComponents)

	last, lastErr := a.Last()
	assert.NoError(t, lastErr)
	assert.Same(t, res, last)
}

func TestRun_ReducesLargeInput(t *testing.T) {
	var b strings.Builder
	for _, line := range []string{"hub a", "hub b", "hub c", "a b", "x y", "y z"} {
		b.WriteString(line + "\n")
	}
	a := newApp(t, writeInput(t, b.String()), func(cfg *config.Config) {
		cfg.Reduction.TargetSize = 3
	})

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Reduction.Applied)
	assert.Equal(t, 7, res.Reduction.OriginalNodes)
	assert.Equal(t, 3, res.Graph.NodeCount())
	assert.True(t, res.Graph.HasNode("hub"))
}

func TestRun_OmitsClosenessOnDisconnectedGraph(t *testing.T) {
	a := newApp(t, writeInput(t, "a b\nc d\n"), nil)
	res, err := a.Run(context.Background())
	require.NoError(t, err)

	_, ok := res.Metrics.Get(centrality.MetricCloseness)
	assert.False(t, ok)
	require.Len(t, res.Notices, 1)
	assert.Contains(t, res.Notices[0], "closeness")
	for _, attr := range res.Attributes {
		assert.Nil(t, attr.Closeness)
	}
}

func TestRun_CommunitiesDisabled(t *testing.T) {
	a := newApp(t, writeInput(t, sampleInput), func(cfg *config.Config) {
		cfg.Communities.Enabled = false
	})
	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Partition.Len())
	assert.Empty(t, res.Distribution)
}

func TestRun_FatalErrors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		a := newApp(t, filepath.Join(t.TempDir(), "absent.txt"), nil)
		_, err := a.Run(context.Background())
		assert.True(t, errors.IsCode(err, errors.CodeNotFound), "got %v", err)
		_, lastErr := a.Last()
		assert.Error(t, lastErr)
	})
	t.Run("no valid lines", func(t *testing.T) {
		a := newApp(t, writeInput(t, "lonely\nx y zero\n"), nil)
		_, err := a.Run(context.Background())
		assert.True(t, errors.IsCode(err, errors.CodeEmptyGraph), "got %v", err)
	})
	t.Run("no input configured", func(t *testing.T) {
		a := newApp(t, "", nil)
		_, err := a.Run(context.Background())
		assert.True(t, errors.IsCode(err, errors.CodeValidationError))
	})
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Reduction.Method = "eigenvector"
	_, err := New(cfg)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestHealthService(t *testing.T) {
	a := newApp(t, writeInput(t, sampleInput), nil)
	health := NewHealthService(a)

	status := health.Check(context.Background())
	assert.Equal(t, "up", status.Status)
	assert.Equal(t, "pending", status.Components["analysis"])

	_, err := a.Run(context.Background())
	require.NoError(t, err)
	status = health.Check(context.Background())
	assert.Equal(t, "up", status.Status)
	assert.Contains(t, status.Components["analysis"], "3 nodes")
}

func TestWatcher_RerunsOnChange(t *testing.T) {
	input := writeInput(t, "a b\n")
	a := newApp(t, input, func(cfg *config.Config) {
		cfg.Watch.Debounce = 20 * time.Millisecond
	})

	results := make(chan *Result, 4)
	a.SetResultCallback(func(res *Result, err error) {
		if err == nil {
			results <- res
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, a.StartWatcher(ctx))

	require.NoError(t, os.WriteFile(input, []byte("a b\nb c\nc d\n"), 0o644))
	select {
	case res := <-results:
		assert.Equal(t, 4, res.Graph.NodeCount())
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not trigger a run")
	}
}
