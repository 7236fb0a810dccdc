package app

import (
	"time"

	"spreadscope/internal/engine/centrality"
	"spreadscope/internal/engine/community"
	"spreadscope/internal/engine/graph"
	"spreadscope/internal/engine/rank"
	"spreadscope/internal/engine/sample"
)

// Result is everything one run produced. Graph is the analysed graph, after
// reduction when reduction applied.
type Result struct {
	RunID     string
	Input     string
	StartedAt time.Time
	Duration  time.Duration

	Ingest    graph.IngestReport
	Reduction sample.Reduction
	Graph     *graph.Graph
	Stats     graph.Stats

	Metrics   *centrality.Result
	Partition *community.Partition

	Composite          centrality.Scores
	Top                []rank.Entry
	MetricTop          map[centrality.Metric][]rank.Entry
	Distribution       []rank.Share
	LargestCommunities []community.Community
	Attributes         []rank.Attributes

	// Notices lists recoverable problems: omitted metrics, failed detection.
	Notices []string
}
