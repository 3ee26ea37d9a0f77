package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/krau/download-manager/pkg/consts"
)

var VersionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Print the version number of download-manager",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("download-manager version: %s %s/%s\nBuildTime: %s, Commit: %s\n", consts.Version, runtime.GOOS, runtime.GOARCH, consts.BuildTime, consts.GitCommit)
	},
}
