package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/whalecast/db"
	"github.com/riskibarqy/whalecast/internal/app"
	"github.com/riskibarqy/whalecast/internal/config"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

func main() {
	logger := logging.NewConsole(os.Stderr, logging.LevelInfo).Named("migration")
	if err := newRootCmd(logger, openMigrator).Execute(); err != nil {
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Migrate(version uint) error
	Close() (error, error)
}

type openFunc func(dir string) (migrator, error)

// openMigrator uses the embedded migrations unless dir points at a directory on disk.
func openMigrator(dir string) (migrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.DBURL) == "" {
		return nil, errors.New("DB_URL is required for the postgres kv backend")
	}
	dbURL := app.PostgresURL(cfg)

	if dir = strings.TrimSpace(dir); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve migrations dir: %w", err)
		}
		m, err := migrate.New("file://"+filepath.ToSlash(abs), dbURL)
		if err != nil {
			return nil, fmt.Errorf("create migrator: %w", err)
		}
		return m, nil
	}

	src, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func newRootCmd(logger *logging.Logger, open openFunc) *cobra.Command {
	var (
		dir string
		m   migrator
	)

	root := &cobra.Command{
		Use:           "migration",
		Short:         "Manage the kv_entries schema of the postgres store backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			opened, err := open(dir)
			if err != nil {
				return err
			}
			m = opened
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if m == nil {
				return
			}
			srcErr, dbErr := m.Close()
			if srcErr != nil {
				logger.Warn("close migration source", "error", srcErr)
			}
			if dbErr != nil {
				logger.Warn("close migration db", "error", dbErr)
			}
		},
	}
	root.PersistentFlags().StringVar(&dir, "dir", os.Getenv("MIGRATIONS_DIR"), "read migrations from this directory instead of the embedded set")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				if err := ignoreNoChange(logger, m.Up()); err != nil {
					return err
				}
				logger.Info("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations, one step by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				steps, err := parseSteps(args)
				if err != nil {
					return err
				}
				if err := ignoreNoChange(logger, m.Steps(-steps)); err != nil {
					return err
				}
				logger.Info("rolled back migrations", "steps", steps)
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied version and dirty flag",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out := cmd.OutOrStdout()
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(out, "version: none")
					fmt.Fprintln(out, "dirty: false")
					return nil
				}
				if err != nil {
					return fmt.Errorf("read version: %w", err)
				}
				fmt.Fprintf(out, "version: %d\n", version)
				fmt.Fprintf(out, "dirty: %t\n", dirty)
				return nil
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the version without running migrations, clearing the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				version, err := parseVersion(args[0])
				if err != nil {
					return err
				}
				if err := m.Force(version); err != nil {
					return fmt.Errorf("force version %d: %w", version, err)
				}
				logger.Info("forced version", "version", version)
				return nil
			},
		},
		&cobra.Command{
			Use:     "goto <version>",
			Aliases: []string{"migrate"},
			Short:   "Migrate up or down to the target version",
			Args:    cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				target, err := parseTarget(args[0])
				if err != nil {
					return err
				}
				if err := ignoreNoChange(logger, m.Migrate(target)); err != nil {
					return err
				}
				logger.Info("migrated", "version", target)
				return nil
			},
		},
	)
	return root
}

func ignoreNoChange(logger *logging.Logger, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}
