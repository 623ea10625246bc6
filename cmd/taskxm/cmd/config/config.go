package config

import (
	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
)

// AddConfigCommand adds the config command group to parentCmd.
func AddConfigCommand(parentCmd *cobra.Command, env *cmdutil.Env) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage taskxm configuration",
		Long:  `View the effective configuration or write a default configuration file.`,
	}
	configCmd.AddCommand(newViewCmd(env))
	configCmd.AddCommand(newInitCmd(env))
	parentCmd.AddCommand(configCmd)
}
