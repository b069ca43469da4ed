package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/resumeguide/internal/domain/catalog"
)

// Environment knobs read by Load.
const (
	EnvPrefix  = "RESUMEGUIDE_"
	EnvConfig  = EnvPrefix + "CONFIG"
	EnvDotFile = EnvPrefix + "DOTENV"
)

// Load builds a Config by layering defaults, .env, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env file (RESUMEGUIDE_DOTENV, or ./.env when present); never
//     overrides variables already set in the process
//  3. file (YAML) if RESUMEGUIDE_CONFIG is set
//  4. env (prefix RESUMEGUIDE_)
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// RESUMEGUIDE_MAX_BODY_BYTES -> max_body_bytes. Underscores are kept to
	// match the flat koanf tags on the struct.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv() error {
	path := os.Getenv(EnvDotFile)
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: dotenv %s: %v", ErrLoadConfig, path, err)
	}
	return nil
}

// Validate checks invariants Load cannot express through types.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case c.RankConcurrency <= 0:
		return fmt.Errorf("%w: rank_concurrency must be positive", ErrInvalidConfig)
	case c.MaxPostings <= 0:
		return fmt.Errorf("%w: max_postings must be positive", ErrInvalidConfig)
	case c.MinTokenLength <= 0:
		return fmt.Errorf("%w: min_token_length must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if len(c.Catalog) > 0 {
		if _, err := catalog.FromMap(c.Catalog); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// SkillCatalog returns the configured catalog, or the built-in one when
// the config carries none.
func (c *Config) SkillCatalog() (*catalog.Catalog, error) {
	if len(c.Catalog) == 0 {
		return catalog.Default(), nil
	}
	cat, err := catalog.FromMap(c.Catalog)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cat, nil
}
