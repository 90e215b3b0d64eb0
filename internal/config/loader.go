package config

import (
	"context"
	"errors"
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
//  2. file (YAML) if RELEVES_CONFIG is set
//  3. env (prefix RELEVES_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("RELEVES_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: RELEVES_ADDR, RELEVES_API_BASE_URL, ...
	// Map env keys like RELEVES_API_BASE_URL -> api_base_url (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("RELEVES_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "releves_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api_base_url must not be empty")
	}
	if cfg.CookieName == "" {
		return nil, errors.New("cookie_name must not be empty")
	}
	if cfg.TopElements <= 0 {
		return nil, errors.New("top_elements must be positive")
	}
	return &cfg, nil
}
