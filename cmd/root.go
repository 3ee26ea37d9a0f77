package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/krau/download-manager/config"
)

var rootCmd = &cobra.Command{
	Use:          "download-manager",
	Short:        "Collect media URLs, download them with yt-dlp and index what was saved",
	SilenceUsage: true,
	RunE:         Run,
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.Flags().Bool("no-progress", false, "disable progress bar")
	rootCmd.AddCommand(VersionCmd)
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
