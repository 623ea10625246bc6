package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/config"
	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/task"
	"github.com/mensylisir/taskxm/pkg/store"
)

// NewRootCmd builds the taskxm command tree around env.
// Without a subcommand it starts the interactive shell.
func NewRootCmd(env *cmdutil.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskxm",
		Short: "taskxm manages a simulated process table.",
		Long: `taskxm keeps a table of simulated tasks with a priority, CPU and memory
usage and a lifecycle state. Run it without arguments for the interactive
menu, or use the task subcommands to script single operations against the
task file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.Log != nil {
				_ = env.Log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), env)
		},
	}
	rootCmd.SetIn(env.In)
	rootCmd.SetOut(env.Out)
	rootCmd.SetErr(env.Err)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&env.Options.ConfigFile, "config", "", "Config file (default is $HOME/.taskxm/config.yaml)")
	flags.StringVarP(&env.Options.DataFile, "file", "f", "", "Task file to operate on (default is $HOME/.taskxm/tasks.txt)")
	flags.StringVarP(&env.Options.Output, "output", "o", "", "Output format: table, json, yaml, toml or template")
	flags.StringVar(&env.Options.Template, "template", "", "Go template used with --output=template")
	flags.BoolVarP(&env.Options.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&env.Options.NoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newShellCmd(env))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	task.AddTaskCommand(rootCmd, env)
	config.AddConfigCommand(rootCmd, env)
	return rootCmd
}

// Execute runs the root command on the process streams. This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, cmdutil.NewEnv(os.Stdin, os.Stdout, os.Stderr), os.Args[1:])
}

func run(ctx context.Context, env *cmdutil.Env, args []string) error {
	rootCmd := NewRootCmd(env)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(env, err)
	}
	return err
}

// reportError prints a failed command on stderr. A refused task operation is
// logged as FAIL, anything else (bad file, bad config) as ERROR.
func reportError(env *cmdutil.Env, err error) {
	if env.Log == nil {
		// the command failed before the logger was configured
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return
	}
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrAlreadyStopped),
		errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrInvalidName):
		env.Log.Failf("%v", err)
	default:
		env.Log.Errorf("%v", err)
	}
	_ = env.Log.Sync()
}
