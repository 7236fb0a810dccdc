// Package community groups nodes of the interaction graph by greedy
// modularity maximisation.
package community

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spreadscope/internal/engine/graph"
	"spreadscope/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Community struct {
	ID      int
	Members []string
}

func (c Community) Size() int { return len(c.Members) }

// Partition is a disjoint cover of the graph's nodes. Community ids run
// 0..k-1 in order of each community's earliest node.
type Partition struct {
	Communities []Community
	Assignment  map[string]int
	Modularity  float64
	Merges      int
	// Notice explains why the partition is empty when detection failed.
	Notice string
}

// Len returns the number of communities.
func (p *Partition) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Communities)
}

// Of returns the community id assigned to node id.
func (p *Partition) Of(id string) (int, bool) {
	if p == nil {
		return 0, false
	}
	c, ok := p.Assignment[id]
	return c, ok
}

type Detector struct{}

func NewDetector() *Detector { return &Detector{} }

// Detect partitions the undirected projection of g. It never fails: any
// error or panic yields an empty partition whose Notice says what happened.
func (d *Detector) Detect(ctx context.Context, g *graph.Graph) (p *Partition) {
	ctx, span := observability.Tracer.Start(ctx, "community.Detect")
	defer span.End()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p = &Partition{Assignment: map[string]int{}, Notice: fmt.Sprintf("community detection failed: %v", r)}
		}
		observability.StageDuration.WithLabelValues("communities").Observe(time.Since(start).Seconds())
		observability.CommunitiesDetected.Set(float64(p.Len()))
		if p.Notice != "" {
			span.SetStatus(codes.Error, p.Notice)
			slog.Warn("community detection unavailable", "notice", p.Notice)
			return
		}
		observability.CommunityMerges.Add(float64(p.Merges))
		span.SetAttributes(
			attribute.Int("communities", p.Len()),
			attribute.Float64("modularity", p.Modularity),
		)
		slog.Info("communities detected", "count", p.Len(), "modularity", p.Modularity, "merges", p.Merges)
	}()

	part, err := GreedyModularity(ctx, g.ToUndirected())
	if err != nil {
		return &Partition{Assignment: map[string]int{}, Notice: fmt.Sprintf("community detection failed: %v", err)}
	}
	return part
}

// Largest returns up to n communities ordered by size descending, ties by id.
func (p *Partition) Largest(n int) []Community {
	if p == nil {
		return nil
	}
	out := append([]Community(nil), p.Communities...)
	sortBySize(out)
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
