package cmd

import (
	"fmt"

	"github.com/alexiusacademia/goprofile/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goprofile",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "goprofile v%s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		fmt.Fprintln(cmd.OutOrStdout(), "Profile Section Calculator")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
