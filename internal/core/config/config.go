package config

import "time"

type Config struct {
	Input         Input         `toml:"input"`
	Reduction     Reduction     `toml:"reduction"`
	Metrics       Metrics       `toml:"metrics"`
	Communities   Communities   `toml:"communities"`
	Ranking       Ranking       `toml:"ranking"`
	Stats         Stats         `toml:"stats"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
}

type Input struct {
	Path string `toml:"path"`
}

type Reduction struct {
	Enabled    bool   `toml:"enabled"`
	TargetSize int    `toml:"target_size"`
	Method     string `toml:"method"`
	Seed       uint64 `toml:"seed"`
}

type Metrics struct {
	Damping          float64       `toml:"damping"`
	Tolerance        float64       `toml:"tolerance"`
	MaxIterations    int           `toml:"max_iterations"`
	ExpensiveNodeCap int           `toml:"expensive_node_cap"`
	Parallel         bool          `toml:"parallel"`
	TimeBudget       time.Duration `toml:"time_budget"`
}

type Communities struct {
	Enabled bool `toml:"enabled"`
	TopN    int  `toml:"top_n"`
}

type Ranking struct {
	TopN       int `toml:"top_n"`
	MetricTopN int `toml:"metric_top_n"`
}

type Stats struct {
	DiameterCap int `toml:"diameter_cap"`
}

type Output struct {
	Markdown      string `toml:"markdown"`
	AttributesTSV string `toml:"attributes_tsv"`
}

type Watch struct {
	Enabled  bool          `toml:"enabled"`
	Debounce time.Duration `toml:"debounce"`
	// Exclude holds glob patterns for file names whose events are ignored.
	Exclude []string `toml:"exclude"`
}

type Observability struct {
	MetricsAddress string `toml:"metrics_address"`
	Tracing        bool   `toml:"tracing"`
	Exporter       string `toml:"exporter"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
}

const (
	DefaultTargetSize   = 500
	DefaultTopN         = 10
	DefaultMetricTopN   = 5
	DefaultCommunityTop = 5
	DefaultSeed         = 42
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{
		Reduction:   Reduction{Enabled: true, Seed: DefaultSeed},
		Communities: Communities{Enabled: true},
	}
	applyDefaults(cfg)
	return cfg
}
