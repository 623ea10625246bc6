package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version will be set by the build process
var Version = "dev"
var Commit = "none"
var Date = "unknown"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of taskxm",
		Args:  cobra.NoArgs,
		// version works without a readable config
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "taskxm version: %s\n", Version)
			fmt.Fprintf(out, "Git Commit: %s\n", Commit)
			fmt.Fprintf(out, "Build Date: %s\n", Date)
		},
	}
}
