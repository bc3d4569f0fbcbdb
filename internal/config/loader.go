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
//  2. file (YAML) if DECKRAY_CONFIG is set
//  3. env (prefix DECKRAY_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("DECKRAY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: DECKRAY_ADDR, DECKRAY_LLM_API_KEY, ...
	// Map env keys like DECKRAY_LLM_API_KEY -> llm_api_key (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("DECKRAY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "deckray_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("%w: unsupported llm_provider: %s", ErrInvalidConfig, c.LLMProvider)
	}
	switch c.CompetitorSearchMode {
	case CompetitorSearchStub, CompetitorSearchLive:
	default:
		return fmt.Errorf("%w: unsupported competitor_search_mode: %s", ErrInvalidConfig, c.CompetitorSearchMode)
	}
	if c.ScanPollIntervalSeconds <= 0 {
		return fmt.Errorf("%w: scan_poll_interval_seconds must be positive", ErrInvalidConfig)
	}
	if c.ScanTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: scan_timeout_seconds must be positive", ErrInvalidConfig)
	}
	if c.EnrichWorkerCount <= 0 {
		return fmt.Errorf("%w: enrich_worker_count must be positive", ErrInvalidConfig)
	}
	return nil
}
