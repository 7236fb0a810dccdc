// Package centrality computes the node importance metrics used to rank
// spreaders: degree, PageRank, betweenness and closeness.
package centrality

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"spreadscope/internal/core/errors"
	"spreadscope/internal/engine/graph"
	"spreadscope/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

type Metric string

const (
	MetricDegree      Metric = "degree"
	MetricPageRank    Metric = "pagerank"
	MetricBetweenness Metric = "betweenness"
	MetricCloseness   Metric = "closeness"
)

// AllMetrics lists the metrics in report order.
var AllMetrics = []Metric{MetricDegree, MetricPageRank, MetricBetweenness, MetricCloseness}

type State string

const (
	StateComputed       State = "computed"
	StateSkipped        State = "skipped"
	StateFailed         State = "failed"
	StateBudgetExceeded State = "budget_exceeded"
)

// DefaultExpensiveNodeCap bounds the node count for betweenness and closeness.
const DefaultExpensiveNodeCap = 2000

// Status reports the outcome of one metric pass.
type Status struct {
	Metric   Metric
	State    State
	Reason   string
	Duration time.Duration
}

type Options struct {
	PageRank         PageRankOptions
	ExpensiveNodeCap int
	Parallel         bool
	// TimeBudget bounds the whole Compute call; zero means no limit.
	TimeBudget time.Duration
}

// Result holds the scores of every computed metric. A metric that did not
// complete is absent from Scores and carries a non-computed Status.
type Result struct {
	Scores   map[Metric]Scores
	Statuses map[Metric]Status
	PageRank PageRankInfo
}

// Get returns the scores of m if the pass completed.
func (r *Result) Get(m Metric) (Scores, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.Scores[m]
	return s, ok
}

// Available returns the computed score maps in report order.
func (r *Result) Available() []Scores {
	var out []Scores
	for _, m := range AllMetrics {
		if s, ok := r.Get(m); ok {
			out = append(out, s)
		}
	}
	return out
}

// Ordered returns the statuses in report order.
func (r *Result) Ordered() []Status {
	out := make([]Status, 0, len(r.Statuses))
	for _, m := range AllMetrics {
		if st, ok := r.Statuses[m]; ok {
			out = append(out, st)
		}
	}
	return out
}

type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	opts.PageRank = opts.PageRank.withDefaults()
	if opts.ExpensiveNodeCap <= 0 {
		opts.ExpensiveNodeCap = DefaultExpensiveNodeCap
	}
	return &Engine{opts: opts}
}

type passFunc func(ctx context.Context) (Scores, error)

// Compute runs every metric pass against g. Passes are isolated: a pass that
// does not complete is reported in Statuses and the others still run.
func (e *Engine) Compute(ctx context.Context, g *graph.Graph) *Result {
	ctx, span := observability.Tracer.Start(ctx, "centrality.Compute")
	defer span.End()

	if e.opts.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.TimeBudget)
		defer cancel()
	}

	adj := g.Adjacency()
	n := adj.Len()
	span.SetAttributes(attribute.Int("graph.nodes", n), attribute.Bool("parallel", e.opts.Parallel))

	res := &Result{
		Scores:   make(map[Metric]Scores, len(AllMetrics)),
		Statuses: make(map[Metric]Status, len(AllMetrics)),
	}
	var mu sync.Mutex
	record := func(st Status, scores Scores) {
		mu.Lock()
		defer mu.Unlock()
		res.Statuses[st.Metric] = st
		if st.State == StateComputed {
			res.Scores[st.Metric] = scores
		}
	}

	expensive := func(m Metric, fn passFunc) passFunc {
		return func(ctx context.Context) (Scores, error) {
			if n >= e.opts.ExpensiveNodeCap {
				err := errors.Newf(errors.CodePreconditionFailed, "graph has %d nodes, limit is %d", n, e.opts.ExpensiveNodeCap)
				return nil, errors.AddContext(err, errors.CtxMetric, string(m))
			}
			return fn(ctx)
		}
	}

	passes := []struct {
		metric Metric
		fn     passFunc
	}{
		{MetricDegree, func(context.Context) (Scores, error) { return Degree(adj), nil }},
		{MetricPageRank, func(ctx context.Context) (Scores, error) {
			scores, info, err := PageRank(ctx, adj, e.opts.PageRank)
			if err == nil {
				mu.Lock()
				res.PageRank = info
				mu.Unlock()
				observability.PageRankIterations.Observe(float64(info.Iterations))
				if !info.Converged {
					slog.Warn("pagerank did not converge", "iterations", info.Iterations, "delta", info.Delta)
				}
			}
			return scores, err
		}},
		{MetricBetweenness, expensive(MetricBetweenness, func(ctx context.Context) (Scores, error) {
			return Betweenness(ctx, adj)
		})},
		{MetricCloseness, expensive(MetricCloseness, func(ctx context.Context) (Scores, error) {
			if !graph.IsWeaklyConnected(adj) {
				return nil, errors.New(errors.CodePreconditionFailed, "graph is not weakly connected")
			}
			return Closeness(ctx, adj)
		})},
	}

	if e.opts.Parallel {
		var eg errgroup.Group
		for _, p := range passes {
			eg.Go(func() error {
				record(e.runPass(ctx, p.metric, p.fn))
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for _, p := range passes {
			record(e.runPass(ctx, p.metric, p.fn))
		}
	}

	for _, st := range res.Ordered() {
		if st.State != StateComputed {
			span.AddEvent("metric omitted", trace.WithAttributes(traceAttrs(st)...))
		}
	}
	if _, ok := res.Scores[MetricDegree]; !ok {
		span.SetStatus(codes.Error, "degree pass failed")
	}
	return res
}

func (e *Engine) runPass(ctx context.Context, m Metric, fn passFunc) (st Status, scores Scores) {
	ctx, span := observability.Tracer.Start(ctx, "centrality."+string(m))
	defer span.End()

	start := time.Now()
	st.Metric = m
	defer func() {
		if r := recover(); r != nil {
			st.State = StateFailed
			st.Reason = fmt.Sprintf("panic: %v", r)
			scores = nil
		}
		st.Duration = time.Since(start)
		observability.MetricStatusTotal.WithLabelValues(string(m), string(st.State)).Inc()
		observability.StageDuration.WithLabelValues("metric_" + string(m)).Observe(st.Duration.Seconds())
		span.SetAttributes(traceAttrs(st)...)

		switch st.State {
		case StateComputed:
			slog.Debug("metric computed", "metric", m, "nodes", len(scores), "duration", st.Duration)
		case StateSkipped:
			slog.Info("metric skipped", "metric", m, "reason", st.Reason)
		default:
			span.SetStatus(codes.Error, st.Reason)
			slog.Warn("metric omitted", "metric", m, "state", st.State, "reason", st.Reason)
		}
	}()

	scores, err := fn(ctx)
	switch {
	case err == nil:
		st.State = StateComputed
	case stderrors.Is(err, context.DeadlineExceeded):
		st.State = StateBudgetExceeded
		st.Reason = "time budget exceeded"
	case errors.IsCode(err, errors.CodePreconditionFailed):
		st.State = StateSkipped
		st.Reason = message(err)
	default:
		st.State = StateFailed
		st.Reason = err.Error()
	}
	if err != nil {
		scores = nil
	}
	return st, scores
}

func message(err error) string {
	var de *errors.DomainError
	if stderrors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

func traceAttrs(st Status) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("metric", string(st.Metric)),
		attribute.String("state", string(st.State)),
		attribute.String("reason", st.Reason),
	}
}
