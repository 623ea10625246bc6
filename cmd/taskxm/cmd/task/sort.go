package task

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/store"
	"github.com/mensylisir/taskxm/pkg/task"
)

func newSortCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:       "sort priority|cpu|memory",
		Short:     "Reorder the table by a field, highest first",
		Long:      `Reorder the stored table by a field, highest first. Equal values keep their order.`,
		ValidArgs: []string{"priority", "cpu", "memory"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := task.ParseSortKey(args[0])
			if !ok {
				return errors.Errorf("invalid sort key %q", args[0])
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				st.SortBy(key)
				env.Successf("Sorted by %s (high to low).", key)
				return true, nil
			})
		},
	}
}

func newTickCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Simulate a state change on a random task",
		Long: `Pick a random task and toggle it between Running and Waiting. Stopped and
suspended tasks are picked too but stay unchanged. Set tick.seed or
TASKXM_TICK_SEED for reproducible picks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(env, func(st *store.Store) (bool, error) {
				id, ok := st.SimulateTick(env.Picker())
				if !ok {
					fmt.Fprintln(env.Out, "No tasks to simulate.")
					return false, nil
				}
				env.Successf("Simulated state change for Task ID %d.", id)
				return true, nil
			})
		},
	}
}

func newClearStoppedCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-stopped",
		Short: "Remove every stopped task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(env, func(st *store.Store) (bool, error) {
				n := st.ClearStopped()
				env.Successf("%d stopped tasks removed.", n)
				return n > 0, nil
			})
		},
	}
}
