package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
)

type verifyResult struct {
	ID    int64
	Found bool
	Match bool
}

func (c *cli) verifyCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Print every stored profile and check single retrieval of each id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return verifyProfiles(cmd.Context(), stdout(cmd), c.app.StoreProfiles, workers)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 8, "concurrent lookups")
	return cmd
}

func verifyProfiles(ctx context.Context, w io.Writer, repo profile.Repository, workers int) error {
	fmt.Fprintln(w, "Verifying profile data...")
	fmt.Fprintln(w)

	items, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	fmt.Fprintf(w, "Total profiles found: %d\n\n", len(items))
	for _, p := range items {
		writeProfileSummary(w, p)
	}

	if workers < 1 {
		workers = 1
	}
	p := pool.NewWithResults[verifyResult]().WithContext(ctx).WithMaxGoroutines(workers)
	for _, item := range items {
		p.Go(func(ctx context.Context) (verifyResult, error) {
			got, ok, err := repo.GetByID(ctx, item.ID)
			if err != nil {
				return verifyResult{}, fmt.Errorf("get %s: %w", profile.Key(item.ID), err)
			}
			return verifyResult{ID: item.ID, Found: ok, Match: ok && got == item}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })

	fmt.Fprintln(w, "Testing individual profile retrieval:")
	failed := 0
	for _, r := range results {
		switch {
		case !r.Found:
			failed++
			fmt.Fprintf(w, "❌ %s not found\n", profile.Key(r.ID))
		case !r.Match:
			failed++
			fmt.Fprintf(w, "❌ %s differs from listing\n", profile.Key(r.ID))
		default:
			fmt.Fprintf(w, "✅ %s found\n", profile.Key(r.ID))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed verification", failed, len(results))
	}
	return nil
}

func writeProfileSummary(w io.Writer, p profile.Profile) {
	sign := ""
	if p.PnL30d > 0 {
		sign = "+"
	}
	fmt.Fprintf(w, "%s\n", profile.Key(p.ID))
	fmt.Fprintf(w, "  Username: @%s\n", p.Handle)
	fmt.Fprintf(w, "  Display Name: %s\n", p.DisplayName)
	fmt.Fprintf(w, "  Wallet: %s\n", p.WalletAddress)
	fmt.Fprintf(w, "  Verified: %t\n", p.Verified)
	fmt.Fprintf(w, "  Whale Score: %d (%s)\n", p.WhaleScore, p.Tier())
	fmt.Fprintf(w, "  Followers: %d\n", p.FollowerCount)
	fmt.Fprintf(w, "  Winrate (30d): %.1f%%\n", p.WinRate30d*100)
	fmt.Fprintf(w, "  PnL (30d): %s%g%%\n\n", sign, p.PnL30d)
}
