package task

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/store"
)

func newPriorityCmd(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "priority ID PRIORITY",
		Short: "Change the priority of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}
			priority, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Errorf("invalid priority %q", args[1])
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				if err := st.SetPriority(id, priority); err != nil {
					return false, errors.Wrapf(err, "task %d", id)
				}
				env.Successf("Priority updated.")
				return true, nil
			})
		},
	}
}

type editOptions struct {
	name     string
	priority int
	cpu      int
	memory   int
}

func newEditCmd(env *cmdutil.Env) *cobra.Command {
	o := &editOptions{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the name, priority or usage of a task",
		Long: `Change the name, priority, CPU or memory usage of a task. Fields whose
flag is not given keep their current value. The state is never changed.`,
		Example: `  taskxm task edit 2 --name database --mem 2048`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				if err := store.ValidateName(o.name); err != nil {
					return err
				}
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				t, err := st.FindByID(id)
				if err != nil {
					return false, errors.Wrapf(err, "task %d", id)
				}
				if flags.Changed("name") {
					t.Name = o.name
				}
				if flags.Changed("priority") {
					t.Priority = o.priority
				}
				if flags.Changed("cpu") {
					t.CPU = o.cpu
				}
				if flags.Changed("mem") {
					t.Memory = o.memory
				}
				if err := st.Edit(id, t.Name, t.Priority, t.CPU, t.Memory); err != nil {
					return false, err
				}
				env.Successf("Task updated.")
				return true, nil
			})
		},
	}
	cmd.Flags().StringVar(&o.name, "name", "", "New task name")
	cmd.Flags().IntVarP(&o.priority, "priority", "p", 0, "New priority (1-10)")
	cmd.Flags().IntVar(&o.cpu, "cpu", 0, "New CPU usage (%)")
	cmd.Flags().IntVar(&o.memory, "mem", 0, "New memory usage (MB)")
	return cmd
}
