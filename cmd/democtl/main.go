package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL    string
		adminToken string
	)

	rootCmd := &cobra.Command{
		Use:           "democtl",
		Short:         "Talk to a running gymdemos service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "addr", envOr("GYMDEMOS_ADDR", "http://localhost:9000"), "gymdemos service base url")
	rootCmd.PersistentFlags().StringVar(&adminToken, "token", os.Getenv("GYMDEMOS_ADMIN_TOKEN"), "admin token, needed by clear")

	client := func() *apiClient {
		return newAPIClient(baseURL, adminToken, nil)
	}

	rootCmd.AddCommand(
		newResolveCmd(client),
		newCachedCmd(client),
		newStatsCmd(client),
		newClearCmd(client),
		newHashTokenCmd(),
	)

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
