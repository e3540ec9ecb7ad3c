package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/infrastructure/repository/demo"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

type seedResult struct {
	Written int
	Skipped int
}

func (c *cli) seedCmd() *cobra.Command {
	var (
		workers   int
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demo profile table into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := seedProfiles(cmd.Context(), c.app.StoreProfiles, demo.Profiles(), workers, overwrite, c.logger)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "seeded %d profiles (%d skipped)\n", res.Written, res.Skipped)
			return err
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent writes")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace profiles that already exist")
	return cmd
}

func seedProfiles(ctx context.Context, repo profile.Repository, items []profile.Profile, workers int, overwrite bool, logger *logging.Logger) (seedResult, error) {
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return seedResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		written atomic.Int32
		skipped atomic.Int32
	)
	for _, item := range items {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			if !overwrite {
				_, exists, err := repo.GetByID(ctx, item.ID)
				if err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("check %s: %w", profile.Key(item.ID), err))
					mu.Unlock()
					return
				}
				if exists {
					skipped.Add(1)
					logger.Debug("profile exists, skipping", "profile_id", item.ID)
					return
				}
			}

			if err := repo.Upsert(ctx, item); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("write %s: %w", profile.Key(item.ID), err))
				mu.Unlock()
				return
			}
			written.Add(1)
			logger.Debug("profile written", "profile_id", item.ID, "handle", item.Handle)
		}); err != nil {
			wg.Done()
			return seedResult{}, fmt.Errorf("submit seed task: %w", err)
		}
	}
	wg.Wait()

	return seedResult{Written: int(written.Load()), Skipped: int(skipped.Load())}, errors.Join(errs...)
}
