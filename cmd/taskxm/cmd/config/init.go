package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/common"
	taskconfig "github.com/mensylisir/taskxm/pkg/config"
)

type initOptions struct {
	path  string
	force bool
}

func newInitCmd(env *cmdutil.Env) *cobra.Command {
	o := &initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.path
			if path == "" {
				path = common.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !o.force {
				return errors.Errorf("config file %s already exists, use --force to overwrite", path)
			}

			data, err := yaml.Marshal(taskconfig.Default())
			if err != nil {
				return errors.Wrap(err, "failed to marshal default configuration")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrapf(err, "failed to create directory for %s", path)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return errors.Wrapf(err, "failed to write config file %s", path)
			}
			env.Log.Successf("configuration written to %s", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&o.path, "path", "", "Where to write the file (default is $HOME/.taskxm/config.yaml)")
	cmd.Flags().BoolVar(&o.force, "force", false, "Overwrite an existing file")
	return cmd
}
