package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/resumeguide/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		// Keep a stray ./.env in the package dir from leaking in.
		_ = os.Setenv(config.EnvDotFile, writeTemp(t, "empty.env", ""))
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MaxPostings, convey.ShouldEqual, 100)
				convey.So(cfg.Catalog, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RESUMEGUIDE_ADDR", ":8080")
			_ = os.Setenv("RESUMEGUIDE_MAX_POSTINGS", "25")
			_ = os.Setenv("RESUMEGUIDE_RANK_CONCURRENCY", "3")
			_ = os.Setenv("RESUMEGUIDE_LOG_FORMAT", "json")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxPostings, convey.ShouldEqual, 25)
				convey.So(cfg.RankConcurrency, convey.ShouldEqual, 3)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with a YAML file carrying a catalog", func() {
			path := writeTemp(t, "config.yaml", `
addr: ":9090"
min_token_length: 1
catalog:
  chef:
    - Knives
    - Sauces
  software engineer:
    - Go
    - SQL
`)
			_ = os.Setenv(config.EnvConfig, path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load the file and build the catalog", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MinTokenLength, convey.ShouldEqual, 1)
				cat, err := cfg.SkillCatalog()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cat.Roles(), convey.ShouldResemble, []string{"chef", "software engineer"})
				skills, _ := cat.Lookup("Software Engineer")
				convey.So(skills, convey.ShouldResemble, []string{"Go", "SQL"})
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			path := writeTemp(t, "config.yaml", "addr: \":9090\"\nmax_postings: 50\n")
			_ = os.Setenv(config.EnvConfig, path)
			_ = os.Setenv("RESUMEGUIDE_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxPostings, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When a .env file provides values", func() {
			_ = os.Setenv(config.EnvDotFile, writeTemp(t, "test.env", "RESUMEGUIDE_ADDR=:6060\n"))
			defer os.Unsetenv("RESUMEGUIDE_ADDR")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they should be picked up", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the .env file is missing", func() {
			_ = os.Setenv(config.EnvDotFile, filepath.Join(t.TempDir(), "nope.env"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			_ = os.Setenv(config.EnvConfig, writeTemp(t, "bad.yaml", "invalid: yaml: content: ["))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv(config.EnvConfig, "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("RESUMEGUIDE_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("RESUMEGUIDE_MAX_POSTINGS", "lots")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the catalog in the file is invalid", func() {
			path := writeTemp(t, "config.yaml", "catalog:\n  chef:\n    - \" \"\n")
			_ = os.Setenv(config.EnvConfig, path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			_ = os.Setenv("RESUMEGUIDE_LOG_FORMAT", "xml")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		config.EnvConfig,
		config.EnvDotFile,
		"RESUMEGUIDE_ADDR",
		"RESUMEGUIDE_LOG_LEVEL",
		"RESUMEGUIDE_LOG_FORMAT",
		"RESUMEGUIDE_MAX_POSTINGS",
		"RESUMEGUIDE_RANK_CONCURRENCY",
		"RESUMEGUIDE_MIN_TOKEN_LENGTH",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
