package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/console"
)

func newShellCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive task manager menu",
		Long: `Start the numbered menu. The configured task file is preloaded when it
exists, and is used by "Save" and "Load" when no file name is entered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), env)
		},
	}
}

func runShell(ctx context.Context, env *cmdutil.Env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := env.OpenStore()
	if err != nil {
		return err
	}
	p, err := env.Printer()
	if err != nil {
		return err
	}

	opts := []console.Option{
		console.WithPrinter(p),
		console.WithPicker(env.Picker()),
		console.WithLogger(env.Log),
		console.WithDefaultFile(env.Config.DataFile),
	}
	if env.Config.Output.Banner {
		opts = append(opts, console.WithBanner("taskxm"))
	}

	c := console.New(st, env.In, env.Out, opts...)
	env.Log.Debugf("starting shell session %s with %d tasks", c.SessionID(), st.Len())
	return c.Run(ctx)
}
