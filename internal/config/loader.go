package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STEADY_CONFIG is set
//  3. env (prefix STEADY_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("STEADY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: STEADY_EVENT_LOG, STEADY_TIMEZONE, ...
	// Map env keys like STEADY_EVENT_LOG -> event_log (flat keys);
	// underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("STEADY_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "steady_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.EventLog == "" {
		return nil, fmt.Errorf("%w: event_log must not be empty", ErrInvalidConfig)
	}
	if cfg.HistoryLimit < 1 {
		return nil, fmt.Errorf("%w: history_limit must be positive", ErrInvalidConfig)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
