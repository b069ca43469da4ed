package main

import (
	"fmt"
	"io"
	"os"

	app "github.com/okian/resumeguide/internal/app"
	"github.com/okian/resumeguide/internal/config"
	"github.com/okian/resumeguide/pkg/logger"
	"github.com/spf13/cobra"
)

// cli holds state shared by all subcommands once the root has loaded
// configuration.
type cli struct {
	configPath string
	jsonOut    bool

	cfg *config.Config
	svc *app.Service
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "resumeguide",
		Short:         "Resume scoring and skill gap recommendations",
		Long:          "resumeguide scores a resume against a job description with bag-of-words cosine similarity and lists the catalog skills missing for a target role.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to a YAML config file (overrides "+config.EnvConfig+")")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Print results as JSON")

	root.AddCommand(
		newServeCmd(c),
		newScoreCmd(c),
		newRecommendCmd(c),
		newReportCmd(c),
		newRankCmd(c),
		newExtractCmd(c),
		newRolesCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, initializes logging and builds the service.
func (c *cli) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}
	if c.configPath != "" {
		if err := os.Setenv(config.EnvConfig, c.configPath); err != nil {
			return fmt.Errorf("set %s: %w", config.EnvConfig, err)
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	// The server logs to stdout; one-shot commands keep stdout for results.
	var w io.Writer = cmd.ErrOrStderr()
	if cmd.Name() == "serve" {
		w = cmd.OutOrStdout()
	}
	if err := logger.Init(logger.WithWriter(w), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	skills, err := cfg.SkillCatalog()
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = logger.Get()
	c.svc = app.New(
		app.WithLogger(logger.Named("service")),
		app.WithCatalog(skills),
		app.WithMinTokenLength(cfg.MinTokenLength),
		app.WithRankConcurrency(cfg.RankConcurrency),
		app.WithMaxPostings(cfg.MaxPostings),
	)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
