package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spreadscope/internal/core/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spreadscope.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[input]
path = "data/retweets.txt"

[reduction]
target_size = 500
method = "Random"
seed = 7

[metrics]
damping = 0.9
parallel = true
time_budget = "30s"

[ranking]
top_n = 20

[output]
markdown = "report.md"
attributes_tsv = "nodes.tsv"

[watch]
enabled = true
debounce = "1s"
exclude = ["*.swp"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Input.Path != "data/retweets.txt" {
		t.Errorf("input.path = %q", cfg.Input.Path)
	}
	if !cfg.Reduction.Enabled || cfg.Reduction.TargetSize != 500 || cfg.Reduction.Method != "random" || cfg.Reduction.Seed != 7 {
		t.Errorf("reduction = %+v", cfg.Reduction)
	}
	if cfg.Metrics.Damping != 0.9 || !cfg.Metrics.Parallel || cfg.Metrics.TimeBudget != 30*time.Second {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
	if cfg.Metrics.ExpensiveNodeCap != 2000 || cfg.Metrics.MaxIterations != 100 {
		t.Errorf("metric defaults not applied: %+v", cfg.Metrics)
	}
	if cfg.Ranking.TopN != 20 || cfg.Ranking.MetricTopN != DefaultMetricTopN {
		t.Errorf("ranking = %+v", cfg.Ranking)
	}
	if !cfg.Communities.Enabled {
		t.Error("communities should stay enabled when the section is absent")
	}
	if cfg.Watch.Debounce != time.Second || len(cfg.Watch.Exclude) != 1 {
		t.Errorf("watch = %+v", cfg.Watch)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Reduction.TargetSize != DefaultTargetSize || cfg.Reduction.Method != "degree" {
		t.Errorf("reduction defaults = %+v", cfg.Reduction)
	}
	if cfg.Metrics.Damping != 0.85 || cfg.Metrics.Tolerance != 1e-6 {
		t.Errorf("metric defaults = %+v", cfg.Metrics)
	}
	if cfg.Observability.Exporter != "stdout" {
		t.Errorf("exporter = %q", cfg.Observability.Exporter)
	}
}

func TestLoad_SeedZeroIsKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[reduction]\nmethod = \"random\"\nseed = 0\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reduction.Seed != 0 {
		t.Errorf("explicit seed 0 should be kept, got %d", cfg.Reduction.Seed)
	}

	cfg, err = Load(writeConfig(t, "[reduction]\nmethod = \"random\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reduction.Seed != DefaultSeed {
		t.Errorf("absent seed should default to %d, got %d", DefaultSeed, cfg.Reduction.Seed)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad method", "[reduction]\nmethod = \"betweenness\"\n", "reduction.method"},
		{"negative target", "[reduction]\ntarget_size = -1\n", "reduction.target_size"},
		{"damping", "[metrics]\ndamping = 1.5\n", "metrics.damping"},
		{"exporter", "[observability]\nexporter = \"jaeger\"\n", "observability.exporter"},
		{"output conflict", "[output]\nmarkdown = \"out.txt\"\nattributes_tsv = \"./out.txt\"\n", "output conflict"},
		{"glob", "[watch]\nexclude = [\"[\"]\n", "watch.exclude[0]"},
		{"syntax", "[metrics\n", "decode config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsCode(err, errors.CodeValidationError) {
				t.Errorf("want VALIDATION_ERROR, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SPREADSCOPE_REDUCTION_TARGET_SIZE", "123")
	t.Setenv("SPREADSCOPE_METRICS_PARALLEL", "TRUE")
	t.Setenv("SPREADSCOPE_METRICS_TIME_BUDGET", "2m")
	t.Setenv("SPREADSCOPE_REDUCTION_SEED", "not-a-number")

	cfg := DefaultConfig()
	ApplyEnvOverrides(cfg)

	if cfg.Reduction.TargetSize != 123 {
		t.Errorf("target_size = %d", cfg.Reduction.TargetSize)
	}
	if !cfg.Metrics.Parallel {
		t.Error("parallel override not applied")
	}
	if cfg.Metrics.TimeBudget != 2*time.Minute {
		t.Errorf("time_budget = %v", cfg.Metrics.TimeBudget)
	}
	if cfg.Reduction.Seed != 42 {
		t.Errorf("invalid seed override should be ignored, got %d", cfg.Reduction.Seed)
	}
}
