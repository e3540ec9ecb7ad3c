package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/whalecast/internal/app"
	"github.com/riskibarqy/whalecast/internal/config"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

type appFactory func(ctx context.Context, logger *logging.Logger) (*app.App, error)

type cli struct {
	newApp  appFactory
	app     *app.App
	logger  *logging.Logger
	verbose bool
}

func loadApp(ctx context.Context, logger *logging.Logger) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// Writes must reach the store immediately.
	cfg.CacheEnabled = false
	return app.New(ctx, cfg, logger)
}

func newRootCmd(factory appFactory) *cobra.Command {
	if factory == nil {
		factory = loadApp
	}
	c := &cli{newApp: factory}

	root := &cobra.Command{
		Use:           "profilectl",
		Short:         "Manage WhaleCast trader profiles in the key-value store",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.LevelWarn
			if c.verbose {
				level = logging.LevelDebug
			}
			c.logger = logging.NewConsole(cmd.ErrOrStderr(), level)

			a, err := c.newApp(cmd.Context(), c.logger)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			defer func() { _ = c.logger.Sync() }()
			return c.app.Close()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.listCmd(),
		c.getCmd(),
		c.putCmd(),
		c.deleteCmd(),
		c.seedCmd(),
		c.verifyCmd(),
		c.notifyCmd(),
	)

	return root
}

func stdout(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
