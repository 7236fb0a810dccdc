package config

import (
	"os"
	"strings"
	"time"

	"spreadscope/internal/core/errors"

	"github.com/BurntSushi/toml"
)

// Load reads a TOML file, fills defaults and validates the result. Keys
// absent from the file keep DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeIO
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "read config"), errors.CtxPath, path)
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "decode config"), errors.CtxPath, path)
	}

	applyDefaults(cfg)
	normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Reduction.TargetSize == 0 {
		cfg.Reduction.TargetSize = DefaultTargetSize
	}
	if strings.TrimSpace(cfg.Reduction.Method) == "" {
		cfg.Reduction.Method = "degree"
	}

	if cfg.Metrics.Damping == 0 {
		cfg.Metrics.Damping = 0.85
	}
	if cfg.Metrics.Tolerance == 0 {
		cfg.Metrics.Tolerance = 1e-6
	}
	if cfg.Metrics.MaxIterations == 0 {
		cfg.Metrics.MaxIterations = 100
	}
	if cfg.Metrics.ExpensiveNodeCap == 0 {
		cfg.Metrics.ExpensiveNodeCap = 2000
	}

	if cfg.Communities.TopN == 0 {
		cfg.Communities.TopN = DefaultCommunityTop
	}
	if cfg.Ranking.TopN == 0 {
		cfg.Ranking.TopN = DefaultTopN
	}
	if cfg.Ranking.MetricTopN == 0 {
		cfg.Ranking.MetricTopN = DefaultMetricTopN
	}
	if cfg.Stats.DiameterCap == 0 {
		cfg.Stats.DiameterCap = 1000
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if strings.TrimSpace(cfg.Observability.Exporter) == "" {
		cfg.Observability.Exporter = "stdout"
	}
}

func normalize(cfg *Config) {
	cfg.Input.Path = strings.TrimSpace(cfg.Input.Path)
	cfg.Reduction.Method = strings.ToLower(strings.TrimSpace(cfg.Reduction.Method))
	cfg.Output.Markdown = strings.TrimSpace(cfg.Output.Markdown)
	cfg.Output.AttributesTSV = strings.TrimSpace(cfg.Output.AttributesTSV)
	cfg.Observability.Exporter = strings.ToLower(strings.TrimSpace(cfg.Observability.Exporter))
	cfg.Observability.MetricsAddress = strings.TrimSpace(cfg.Observability.MetricsAddress)
	for i, p := range cfg.Watch.Exclude {
		cfg.Watch.Exclude[i] = strings.TrimSpace(p)
	}
}
