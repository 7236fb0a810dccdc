package config

import (
	"path/filepath"

	"spreadscope/internal/core/errors"

	"github.com/gobwas/glob"
)

// Validate checks every section and returns the first problem found.
func Validate(cfg *Config) error {
	normalize(cfg)
	for _, check := range []func(*Config) error{
		validateReduction,
		validateMetrics,
		validateReporting,
		validateOutput,
		validateWatch,
		validateObservability,
	} {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Newf(errors.CodeValidationError, format, args...)
}

func validateReduction(cfg *Config) error {
	if cfg.Reduction.TargetSize <= 0 {
		return invalid("reduction.target_size must be > 0, got %d", cfg.Reduction.TargetSize)
	}
	switch cfg.Reduction.Method {
	case "degree", "random":
	default:
		return invalid("reduction.method must be one of: degree, random")
	}
	return nil
}

func validateMetrics(cfg *Config) error {
	m := cfg.Metrics
	if m.Damping <= 0 || m.Damping >= 1 {
		return invalid("metrics.damping must be in (0, 1), got %g", m.Damping)
	}
	if m.Tolerance <= 0 {
		return invalid("metrics.tolerance must be > 0")
	}
	if m.MaxIterations < 1 {
		return invalid("metrics.max_iterations must be >= 1")
	}
	if m.ExpensiveNodeCap < 1 {
		return invalid("metrics.expensive_node_cap must be >= 1")
	}
	if m.TimeBudget < 0 {
		return invalid("metrics.time_budget must not be negative")
	}
	return nil
}

func validateReporting(cfg *Config) error {
	if cfg.Ranking.TopN < 1 {
		return invalid("ranking.top_n must be >= 1")
	}
	if cfg.Ranking.MetricTopN < 1 {
		return invalid("ranking.metric_top_n must be >= 1")
	}
	if cfg.Communities.TopN < 1 {
		return invalid("communities.top_n must be >= 1")
	}
	if cfg.Stats.DiameterCap < 0 {
		return invalid("stats.diameter_cap must not be negative")
	}
	return nil
}

func validateOutput(cfg *Config) error {
	md, tsv := cfg.Output.Markdown, cfg.Output.AttributesTSV
	if md != "" && tsv != "" && filepath.Clean(md) == filepath.Clean(tsv) {
		return invalid("output conflict: output.markdown and output.attributes_tsv share the same path %q", md)
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return invalid("watch.debounce must not be negative")
	}
	for i, pattern := range cfg.Watch.Exclude {
		if pattern == "" {
			return invalid("watch.exclude[%d] must not be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return invalid("watch.exclude[%d] is not a valid glob: %v", i, err)
		}
	}
	return nil
}

func validateObservability(cfg *Config) error {
	switch cfg.Observability.Exporter {
	case "stdout", "otlp":
	default:
		return invalid("observability.exporter must be one of: stdout, otlp")
	}
	return nil
}
