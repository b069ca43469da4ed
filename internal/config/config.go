// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   .env, file and environment values on top.
// - External errors must be wrapped with this package's sentinel errors.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// MaxUploadBytes caps multipart uploads to /v1/extract.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// RankConcurrency bounds parallel scoring in /v1/rank.
	RankConcurrency int `koanf:"rank_concurrency"`

	// MaxPostings caps how many postings one rank request may carry.
	MaxPostings int `koanf:"max_postings"`

	// MinTokenLength is the shortest token the similarity scorer counts.
	MinTokenLength int `koanf:"min_token_length"`

	// Catalog overrides the built-in role -> skills table when non-empty.
	Catalog map[string][]string `koanf:"catalog"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		MaxBodyBytes:    1 << 20,
		MaxUploadBytes:  10 << 20,
		RankConcurrency: runtime.NumCPU(),
		MaxPostings:     100,
		MinTokenLength:  2,
	}
}
