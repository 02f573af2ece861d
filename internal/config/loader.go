package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if BUNRIGO_CONFIG is set
//  3. env (prefix BUNRIGO_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("BUNRIGO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, WrapLoad(err)
		}
	}

	// Environment variables: BUNRIGO_ADDR, BUNRIGO_DATA_FILE, ...
	// Map env keys like BUNRIGO_AWARD_POINTS -> award_points (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("BUNRIGO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "bunrigo_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, WrapLoad(err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, WrapLoad(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return WrapInvalid("addr must not be empty")
	case c.DataFile == "":
		return WrapInvalid("data_file must not be empty")
	case c.AwardPoints <= 0:
		return WrapInvalid("award_points must be positive")
	case c.LeaderboardSize <= 0:
		return WrapInvalid("leaderboard_size must be positive")
	case c.MaxLeaderboardLimit < c.LeaderboardSize:
		return WrapInvalid("max_leaderboard_limit must be at least leaderboard_size")
	case c.StubLatencyMinMS < 0 || c.StubLatencyMaxMS <= c.StubLatencyMinMS:
		return WrapInvalid("stub latency range must satisfy 0 <= min < max")
	}
	return nil
}
