package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
)

func newViewCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after the config file, TASKXM_* environment
variables and command-line flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(env.Config)
			if err != nil {
				return errors.Wrap(err, "failed to marshal configuration")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
