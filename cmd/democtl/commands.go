package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/gymdemos/pkg"

	"github.com/spf13/cobra"
)

func newResolveCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <exercise name>",
		Short: "Resolve the demo media of an exercise",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client().Resolve(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result == nil {
				_, err = fmt.Fprintln(out, "no demo")
				return err
			}
			_, err = fmt.Fprintf(out, "%s\t%s\tcached=%t\n", result.Kind, result.DisplayURL, result.Cached)
			return err
		},
	}
}

func newCachedCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "cached <exercise name>",
		Short: "Report whether an exercise demo is cached locally",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cached, err := client().IsCached(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cached)
			return err
		},
	}
}

func newStatsCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := client().Stats(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "entries: %d\nsize: %s (%d bytes)\n",
				stats.EntryCount, stats.SizeHuman, stats.ApproxSizeBytes)
			return err
		},
	}
}

func newClearCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached demo metadata and media",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client().ClearAll(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return err
		},
	}
}

func newHashTokenCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-token <token>",
		Short: "Print the bcrypt hash to put in GYMDEMOS_ADMIN_TOKEN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return errors.New("empty token")
			}
			hash, err := pkg.HashToken(args[0], cost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", pkg.DefaultTokenHashCost, "bcrypt cost")
	return cmd
}
