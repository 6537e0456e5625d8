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
//  2. file (YAML) if RFV_CONFIG is set
//  3. env (prefix RFV_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("RFV_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: RFV_ADDR, RFV_MAX_DATASETS, ...
	// Map env keys like RFV_MAX_DATASETS -> max_datasets (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("RFV_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rfv_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
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
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case c.MaxDatasets <= 0:
		return fmt.Errorf("%w: max_datasets must be positive", ErrInvalidConfig)
	case c.DatasetTTLMinutes < 0:
		return fmt.Errorf("%w: dataset_ttl_minutes must not be negative", ErrInvalidConfig)
	case c.PreviewRows <= 0:
		return fmt.Errorf("%w: preview_rows must be positive", ErrInvalidConfig)
	case c.MaxPageSize <= 0:
		return fmt.Errorf("%w: max_page_size must be positive", ErrInvalidConfig)
	case c.TopLimit <= 0:
		return fmt.Errorf("%w: top_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
