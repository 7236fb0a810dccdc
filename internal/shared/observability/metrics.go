package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spreadscope_graph_nodes_total",
		Help: "Number of nodes in the graph under analysis.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spreadscope_graph_edges_total",
		Help: "Number of edges in the graph under analysis.",
	})

	IngestRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spreadscope_ingest_records_total",
		Help: "Input records seen during ingestion, by outcome.",
	}, []string{"outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spreadscope_stage_seconds",
		Help:    "Time spent in each pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	MetricStatusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spreadscope_metric_status_total",
		Help: "Centrality passes by metric and final state.",
	}, []string{"metric", "state"})

	PageRankIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spreadscope_pagerank_iterations",
		Help:    "Power iterations used by PageRank.",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})

	CommunitiesDetected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spreadscope_communities_detected",
		Help: "Number of communities in the latest partition.",
	})

	CommunityMerges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spreadscope_community_merges_total",
		Help: "Community merges performed by greedy modularity.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spreadscope_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spreadscope_runs_total",
		Help: "Completed pipeline runs by result.",
	}, []string{"result"})
)
