package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: SPREADSCOPE_[SECTION]_[KEY] (e.g., SPREADSCOPE_METRICS_PARALLEL).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Input.Path, "SPREADSCOPE_INPUT_PATH")

	// Reduction
	setEnvBool(&cfg.Reduction.Enabled, "SPREADSCOPE_REDUCTION_ENABLED")
	setEnvInt(&cfg.Reduction.TargetSize, "SPREADSCOPE_REDUCTION_TARGET_SIZE")
	setEnvString(&cfg.Reduction.Method, "SPREADSCOPE_REDUCTION_METHOD")
	setEnvUint64(&cfg.Reduction.Seed, "SPREADSCOPE_REDUCTION_SEED")

	// Metrics
	setEnvFloat64(&cfg.Metrics.Damping, "SPREADSCOPE_METRICS_DAMPING")
	setEnvFloat64(&cfg.Metrics.Tolerance, "SPREADSCOPE_METRICS_TOLERANCE")
	setEnvInt(&cfg.Metrics.MaxIterations, "SPREADSCOPE_METRICS_MAX_ITERATIONS")
	setEnvInt(&cfg.Metrics.ExpensiveNodeCap, "SPREADSCOPE_METRICS_EXPENSIVE_NODE_CAP")
	setEnvBool(&cfg.Metrics.Parallel, "SPREADSCOPE_METRICS_PARALLEL")
	setEnvDuration(&cfg.Metrics.TimeBudget, "SPREADSCOPE_METRICS_TIME_BUDGET")

	setEnvBool(&cfg.Communities.Enabled, "SPREADSCOPE_COMMUNITIES_ENABLED")
	setEnvInt(&cfg.Ranking.TopN, "SPREADSCOPE_RANKING_TOP_N")

	// Output
	setEnvString(&cfg.Output.Markdown, "SPREADSCOPE_OUTPUT_MARKDOWN")
	setEnvString(&cfg.Output.AttributesTSV, "SPREADSCOPE_OUTPUT_ATTRIBUTES_TSV")

	// Watch
	setEnvBool(&cfg.Watch.Enabled, "SPREADSCOPE_WATCH_ENABLED")
	setEnvDuration(&cfg.Watch.Debounce, "SPREADSCOPE_WATCH_DEBOUNCE")

	// Observability
	setEnvString(&cfg.Observability.MetricsAddress, "SPREADSCOPE_OBSERVABILITY_METRICS_ADDRESS")
	setEnvBool(&cfg.Observability.Tracing, "SPREADSCOPE_OBSERVABILITY_TRACING")
	setEnvString(&cfg.Observability.Exporter, "SPREADSCOPE_OBSERVABILITY_EXPORTER")
	setEnvString(&cfg.Observability.OTLPEndpoint, "SPREADSCOPE_OBSERVABILITY_OTLP_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvUint64(target *uint64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if u, err := strconv.ParseUint(val, 10, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = u
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
