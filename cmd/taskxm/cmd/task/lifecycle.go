package task

import (
	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/store"
)

// idCmd builds a command that applies op to the task named by its single id argument.
func idCmd(env *cmdutil.Env, use, short, done string, op func(st *store.Store, id int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				if err := op(st, id); err != nil {
					return false, err
				}
				env.Successf(done, id)
				return true, nil
			})
		},
	}
}

func newStopCmd(env *cmdutil.Env) *cobra.Command {
	return idCmd(env, "stop", "Stop a task", "Task %d stopped.", (*store.Store).Stop)
}

func newSuspendCmd(env *cmdutil.Env) *cobra.Command {
	return idCmd(env, "suspend", "Suspend a running task", "Task %d suspended.", (*store.Store).Suspend)
}

func newResumeCmd(env *cmdutil.Env) *cobra.Command {
	return idCmd(env, "resume", "Resume a suspended task", "Task %d resumed.", (*store.Store).Resume)
}

func newTerminateCmd(env *cmdutil.Env) *cobra.Command {
	cmd := idCmd(env, "terminate", "Remove a task from the table", "Task %d terminated and removed.", (*store.Store).Terminate)
	cmd.Aliases = []string{"rm", "delete"}
	return cmd
}
