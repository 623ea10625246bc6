// Package task holds the one-shot commands that run a single store operation
// against the task file.
package task

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/store"
	"github.com/mensylisir/taskxm/pkg/task"
)

// AddTaskCommand adds the task command group to parentCmd.
func AddTaskCommand(parentCmd *cobra.Command, env *cmdutil.Env) {
	taskCmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Run a single operation against the task file",
		Long: `Each task subcommand loads the task file (when it exists), runs one
operation and writes the file back if the operation changed it.`,
	}

	taskCmd.AddCommand(
		newAddCmd(env),
		newListCmd(env),
		newGetCmd(env),
		newSearchCmd(env),
		newStopCmd(env),
		newSuspendCmd(env),
		newResumeCmd(env),
		newTerminateCmd(env),
		newPriorityCmd(env),
		newEditCmd(env),
		newSortCmd(env),
		newTickCmd(env),
		newSummaryCmd(env),
		newClearStoppedCmd(env),
	)
	parentCmd.AddCommand(taskCmd)
}

// withStore opens the task file, runs fn and saves the file when fn reports a change.
func withStore(env *cmdutil.Env, fn func(st *store.Store) (changed bool, err error)) error {
	st, err := env.OpenStore()
	if err != nil {
		return err
	}
	changed, err := fn(st)
	if err != nil || !changed {
		return err
	}
	return env.SaveStore(st)
}

// parseStateFlag matches a state name ignoring case.
func parseStateFlag(name string) (task.State, bool) {
	for _, s := range task.States {
		if strings.EqualFold(s.String(), name) {
			return s, true
		}
	}
	return 0, false
}
