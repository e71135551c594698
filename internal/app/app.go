package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidinsight/backend/internal/config"
	"github.com/vidinsight/backend/internal/logging"
)

// Run bootstraps the VidInsight backend command line.
func Run(ctx context.Context, args []string) error {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

type commandContext struct {
	configPath string
	stdout     io.Writer
	stderr     io.Writer

	cfg    config.Config
	loaded bool
}

func (c *commandContext) loadConfig() (config.Config, error) {
	if c.loaded {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg, c.loaded = cfg, true
	return cfg, nil
}

// newLogger builds the configured logger and installs it as the slog default.
func (c *commandContext) newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	logger := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cc := &commandContext{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "vidinsight",
		Short:         "VidInsight video analysis backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := cc.loadConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&cc.configPath, "config", "c", "", "Configuration file path (TOML)")

	rootCmd.AddCommand(newServeCommand(cc))
	rootCmd.AddCommand(newMigrateCommand(cc))
	rootCmd.AddCommand(newSeedCommand(cc))
	rootCmd.AddCommand(newReportCommand(cc))

	return rootCmd
}
