package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/whalecast/internal/domain/notification"
)

func (c *cli) notifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Manage per-user notification details",
	}

	get := &cobra.Command{
		Use:   "get <fid>",
		Short: "Print notification details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fid, err := parseID(args[0])
			if err != nil {
				return err
			}
			details, err := c.app.NotificationService.GetDetails(cmd.Context(), fid)
			if err != nil {
				return err
			}
			return printJSON(stdout(cmd), details)
		},
	}

	var details notification.Details
	set := &cobra.Command{
		Use:   "set <fid>",
		Short: "Store notification details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fid, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.app.NotificationService.SetDetails(cmd.Context(), fid, details); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "stored notification details for %d\n", fid)
			return err
		},
	}
	set.Flags().StringVar(&details.URL, "url", "", "notification endpoint url")
	set.Flags().StringVar(&details.Token, "token", "", "notification token")
	_ = set.MarkFlagRequired("url")
	_ = set.MarkFlagRequired("token")

	del := &cobra.Command{
		Use:   "delete <fid>",
		Short: "Remove notification details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fid, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.app.NotificationService.DeleteDetails(cmd.Context(), fid); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "deleted notification details for %d\n", fid)
			return err
		},
	}

	cmd.AddCommand(get, set, del)
	return cmd
}
