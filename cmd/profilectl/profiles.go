package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/usecase"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id must be a positive integer, got %q", raw)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func (c *cli) listCmd() *cobra.Command {
	var withFallback bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored profiles ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				items []profile.Profile
				err   error
			)
			if withFallback {
				items, err = c.app.ProfileService.ListProfiles(cmd.Context())
			} else {
				items, err = c.app.StoreProfiles.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(stdout(cmd), items)
		},
	}
	cmd.Flags().BoolVar(&withFallback, "with-fallback", false, "substitute demo profiles when the store is empty or unreachable")
	return cmd
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print one stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, ok, err := c.app.StoreProfiles.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("profile %d not found", id)
			}
			return printJSON(stdout(cmd), item)
		},
	}
}

func (c *cli) putCmd() *cobra.Command {
	var input usecase.UpsertProfileInput
	cmd := &cobra.Command{
		Use:   "put",
		Short: "Create or replace a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			item, err := c.app.ProfileService.UpsertProfile(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(stdout(cmd), item)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&input.ID, "id", 0, "profile id (fid)")
	flags.StringVar(&input.Handle, "handle", "", "username without @")
	flags.StringVar(&input.DisplayName, "display-name", "", "display name")
	flags.StringVar(&input.WalletAddress, "wallet", "", "wallet address (0x...)")
	flags.BoolVar(&input.Verified, "verified", false, "verified trader")
	flags.IntVar(&input.WhaleScore, "score", 0, "whale score 0-100")
	flags.IntVar(&input.FollowerCount, "followers", 0, "follower count")
	flags.Float64Var(&input.WinRate30d, "winrate", 0, "30 day win rate in [0,1]")
	flags.Float64Var(&input.PnL30d, "pnl", 0, "30 day pnl percent")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("handle")

	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile. Deleting a missing id succeeds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.app.ProfileService.DeleteProfile(cmd.Context(), id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "deleted %s\n", profile.Key(id))
			return err
		},
	}
}
