package config

import "errors"

var (
	// ErrInvalidConfig is returned by Validate and SkillCatalog when a value
	// is out of range or the catalog override is malformed.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig covers unreadable .env, YAML or environment sources.
	ErrLoadConfig = errors.New("load config failed")
)
