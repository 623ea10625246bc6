package task

import (
	"github.com/spf13/cobra"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/store"
)

type addOptions struct {
	priority int
	cpu      int
	memory   int
}

func newAddCmd(env *cmdutil.Env) *cobra.Command {
	o := &addOptions{}
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a new running task",
		Example: `  taskxm task add "nightly backup" --priority 3 --cpu 15 --mem 512`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.ValidateName(args[0]); err != nil {
				return err
			}
			return withStore(env, func(st *store.Store) (bool, error) {
				id := st.Add(args[0], o.priority, o.cpu, o.memory)
				env.Successf("Task %d added.", id)
				return true, nil
			})
		},
	}
	cmd.Flags().IntVarP(&o.priority, "priority", "p", 5, "Priority (1-10)")
	cmd.Flags().IntVar(&o.cpu, "cpu", 0, "CPU usage (%)")
	cmd.Flags().IntVar(&o.memory, "mem", 0, "Memory usage (MB)")
	return cmd
}
