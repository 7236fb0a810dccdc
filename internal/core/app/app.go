// Package app wires the analysis stages into one run over an input file.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"spreadscope/internal/core/config"
	"spreadscope/internal/core/errors"
	"spreadscope/internal/core/watcher"
	"spreadscope/internal/engine/centrality"
	"spreadscope/internal/engine/community"
	"spreadscope/internal/engine/graph"
	"spreadscope/internal/engine/rank"
	"spreadscope/internal/engine/sample"
	"spreadscope/internal/shared/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	Config *config.Config

	engine   *centrality.Engine
	detector *community.Detector

	mu       sync.RWMutex
	last     *Result
	lastErr  error
	runs     int
	onResult func(*Result, error)

	activeWatcher *watcher.Watcher
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return &App{
		Config: cfg,
		engine: centrality.NewEngine(centrality.Options{
			PageRank: centrality.PageRankOptions{
				Damping:       cfg.Metrics.Damping,
				Tolerance:     cfg.Metrics.Tolerance,
				MaxIterations: cfg.Metrics.MaxIterations,
			},
			ExpensiveNodeCap: cfg.Metrics.ExpensiveNodeCap,
			Parallel:         cfg.Metrics.Parallel,
			TimeBudget:       cfg.Metrics.TimeBudget,
		}),
		detector: community.NewDetector(),
	}, nil
}

// SetResultCallback registers fn to receive every completed run, including
// runs started by the watcher.
func (a *App) SetResultCallback(fn func(*Result, error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onResult = fn
}

// Last returns the most recent run outcome.
func (a *App) Last() (*Result, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last, a.lastErr
}

// Run analyses the configured input file.
func (a *App) Run(ctx context.Context) (*Result, error) {
	path := a.Config.Input.Path
	if path == "" {
		return nil, errors.New(errors.CodeValidationError, "no input file configured")
	}

	res, err := a.run(ctx, path)

	a.mu.Lock()
	a.last, a.lastErr = res, err
	a.runs++
	cb := a.onResult
	a.mu.Unlock()

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	observability.RunsTotal.WithLabelValues(outcome).Inc()
	if cb != nil {
		cb(res, err)
	}
	return res, err
}

func (a *App) run(ctx context.Context, path string) (*Result, error) {
	runID := uuid.NewString()
	ctx, span := observability.Tracer.Start(ctx, "app.Run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("input.path", path),
	))
	defer span.End()

	logger := slog.With("run", runID)
	started := time.Now()
	res := &Result{RunID: runID, Input: path, StartedAt: started.UTC()}

	fail := func(err error) (*Result, error) {
		code, _ := errors.CodeOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.code", string(code)))
		logger.Error("analysis failed", "code", code, "error", err)
		return nil, err
	}

	var g *graph.Graph
	err := stage(ctx, "ingest", func(ctx context.Context) error {
		loaded, report, err := graph.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		g, res.Ingest = loaded, report
		return nil
	})
	if err != nil {
		return fail(err)
	}
	logger.Info("graph loaded", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "summary", res.Ingest.Summary())
	if g.NodeCount() == 0 {
		return fail(errors.AddContext(errors.New(errors.CodeEmptyGraph, "no valid interactions found in input"), errors.CtxPath, path))
	}

	res.Reduction = sample.Reduction{OriginalNodes: g.NodeCount(), OriginalEdges: g.EdgeCount(), Nodes: g.NodeCount(), Edges: g.EdgeCount()}
	if a.Config.Reduction.Enabled {
		err = stage(ctx, "reduce", func(context.Context) error {
			reduced, info, err := sample.Reduce(g, sample.Options{
				TargetSize: a.Config.Reduction.TargetSize,
				Method:     sample.Method(a.Config.Reduction.Method),
				Seed:       a.Config.Reduction.Seed,
			})
			if err != nil {
				return err
			}
			g, res.Reduction = reduced, info
			return nil
		})
		if err != nil {
			return fail(err)
		}
		if g.NodeCount() == 0 {
			return fail(errors.New(errors.CodeEmptyGraph, "reduced graph is empty"))
		}
	}
	res.Graph = g
	g.PublishSize()

	_ = stage(ctx, "stats", func(context.Context) error {
		res.Stats = graph.ComputeStats(g, a.Config.Stats.DiameterCap)
		return nil
	})

	_ = stage(ctx, "metrics", func(ctx context.Context) error {
		res.Metrics = a.engine.Compute(ctx, g)
		return nil
	})
	for _, st := range res.Metrics.Ordered() {
		if st.State != centrality.StateComputed {
			res.Notices = append(res.Notices, fmt.Sprintf("%s omitted (%s): %s", st.Metric, st.State, st.Reason))
		}
	}

	if a.Config.Communities.Enabled {
		res.Partition = a.detector.Detect(ctx, g)
		if res.Partition.Notice != "" {
			res.Notices = append(res.Notices, res.Partition.Notice)
		}
	} else {
		res.Partition = &community.Partition{Assignment: map[string]int{}}
	}

	_ = stage(ctx, "rank", func(context.Context) error {
		res.Composite = rank.Combine(res.Metrics.Available(), g.Nodes())
		res.Top = rank.TopN(res.Composite, a.Config.Ranking.TopN)
		res.MetricTop = make(map[centrality.Metric][]rank.Entry, len(centrality.AllMetrics))
		for _, m := range centrality.AllMetrics {
			if scores, ok := res.Metrics.Get(m); ok {
				res.MetricTop[m] = rank.TopN(scores, a.Config.Ranking.MetricTopN)
			}
		}
		res.Distribution = rank.CommunityDistribution(res.Top, res.Partition)
		res.LargestCommunities = res.Partition.Largest(a.Config.Communities.TopN)
		res.Attributes = rank.BuildAttributes(g, res.Metrics, res.Composite, res.Partition)
		return nil
	})

	res.Duration = time.Since(started)
	span.SetAttributes(
		attribute.Int("graph.nodes", g.NodeCount()),
		attribute.Int("graph.edges", g.EdgeCount()),
		attribute.Int("notices", len(res.Notices)),
	)
	logger.Info("analysis complete", "duration", res.Duration, "communities", res.Partition.Len(), "notices", len(res.Notices))
	return res, nil
}

func stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := observability.Tracer.Start(ctx, "stage."+name)
	defer span.End()
	start := time.Now()
	err := fn(ctx)
	observability.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return errors.AddContext(err, errors.CtxOperation, name)
	}
	return nil
}
