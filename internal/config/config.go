// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Layer defaults -> optional YAML file -> env vars in Load.
// - External errors must be wrapped via this package's error kinds.
package config

// Default bin mapping applied when the config file defines none.
// Labels come from the classifier model; receptacle names are what the
// result page shows to students.
func defaultBins() map[string]string {
	return map[string]string{
		"plastic": "plastic recycling",
		"paper":   "paper recycling",
		"glass":   "glass recycling",
		"metal":   "can recycling",
	}
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5001".
	Addr string `koanf:"addr"`

	// DataFile is the path of the persisted student record document.
	DataFile string `koanf:"data_file"`

	// AwardPoints is the fixed increment per successful correct-bin event.
	AwardPoints int `koanf:"award_points"`

	// LeaderboardSize is the default top-N shown on the index page.
	LeaderboardSize int `koanf:"leaderboard_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// TokenCacheSize bounds the spent award-token tracker.
	TokenCacheSize int `koanf:"token_cache_size"`

	// Bins maps trash-type labels to receptacle names.
	Bins map[string]string `koanf:"bins"`

	// DefaultBin receives labels with no explicit mapping.
	DefaultBin string `koanf:"default_bin"`

	// StubLabel and StubConfidence configure the placeholder classifier
	// result until a real model is wired in.
	StubLabel      string  `koanf:"stub_label"`
	StubConfidence float64 `koanf:"stub_confidence"`

	// StubLatencyMinMS and StubLatencyMaxMS simulate model inference latency bounds.
	StubLatencyMinMS int `koanf:"stub_latency_min_ms"`
	StubLatencyMaxMS int `koanf:"stub_latency_max_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":5001",
		DataFile:            "data.json",
		AwardPoints:         10,
		LeaderboardSize:     3,
		MaxLeaderboardLimit: 100,
		TokenCacheSize:      10_000,
		Bins:                defaultBins(),
		DefaultBin:          "general waste",
		StubLabel:           "plastic",
		StubConfidence:      0.95,
		StubLatencyMinMS:    20,
		StubLatencyMaxMS:    60,
	}
}
