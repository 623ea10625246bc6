package task

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/store"
	"github.com/mensylisir/taskxm/pkg/task"
)

func newListCmd(env *cmdutil.Env) *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, optionally only those in one state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *task.State
			if state != "" {
				s, ok := parseStateFlag(state)
				if !ok {
					return errors.Errorf("unknown state %q, must be one of running, waiting, stopped, suspended", state)
				}
				filter = &s
			}
			p, err := env.Printer()
			if err != nil {
				return err
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				if filter != nil {
					return false, p.Tasks(st.ListByState(*filter))
				}
				return false, p.Tasks(st.List())
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Only list tasks in this state")
	return cmd
}

func newGetCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one task by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}
			p, err := env.Printer()
			if err != nil {
				return err
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				t, err := st.FindByID(id)
				if err != nil {
					return false, errors.Wrapf(err, "task %d", id)
				}
				return false, p.Tasks([]task.Task{t})
			})
		},
	}
}

func newSearchCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "search NAME",
		Short: "Show all tasks with exactly this name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := env.Printer()
			if err != nil {
				return err
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				found := st.FindByName(args[0])
				if len(found) == 0 {
					return false, errors.Wrapf(store.ErrNotFound, "no task named %q", args[0])
				}
				return false, p.Tasks(found)
			})
		},
	}
}

func newSummaryCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show task counts per state and total resource usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := env.Printer()
			if err != nil {
				return err
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				return false, p.Summary(st.Summary())
			})
		},
	}
}
