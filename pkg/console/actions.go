package console

import (
	"github.com/pkg/errors"

	"github.com/mensylisir/taskxm/pkg/store"
	"github.com/mensylisir/taskxm/pkg/task"
)

func (c *Console) addTask() error {
	name, err := c.readLine("Enter task name: ")
	if err != nil {
		return err
	}
	if store.ValidateName(name) != nil {
		return errInvalidName
	}
	priority, cpu, mem, err := c.readUsage("Enter priority (1-10): ", "Enter CPU usage (%): ", "Enter memory usage (MB): ")
	if err != nil {
		return err
	}
	id := c.st.Add(name, priority, cpu, mem)
	c.println("Task added.")
	c.log.With("task_id", id).Debugf("task added from console")
	return nil
}

func (c *Console) readUsage(prompts ...string) (priority, cpu, mem int, err error) {
	vals := make([]int, len(prompts))
	for i, p := range prompts {
		if vals[i], err = c.readInt(p); err != nil {
			return 0, 0, 0, err
		}
	}
	return vals[0], vals[1], vals[2], nil
}

func (c *Console) displayAll() error {
	return c.printer.Tasks(c.st.List())
}

func (c *Console) displayState(s task.State) func() error {
	return func() error {
		return c.printer.Tasks(c.st.ListByState(s))
	}
}

func (c *Console) stopTask() error {
	id, err := c.readInt("Enter Task ID to stop: ")
	if err != nil {
		return err
	}
	switch err := c.st.Stop(id); {
	case err == nil:
		c.printf("Task %d stopped.\n", id)
	case errors.Is(err, store.ErrAlreadyStopped):
		c.printf("Task %d is already stopped.\n", id)
	default:
		c.report(err)
	}
	return nil
}

func (c *Console) terminateTask() error {
	id, err := c.readInt("Enter Task ID to terminate/delete: ")
	if err != nil {
		return err
	}
	if err := c.st.Terminate(id); err != nil {
		c.report(err)
		return nil
	}
	c.printf("Task %d terminated and removed.\n", id)
	return nil
}

func (c *Console) changePriority() error {
	id, err := c.readInt("Enter Task ID: ")
	if err != nil {
		return err
	}
	priority, err := c.readInt("Enter new priority (1-10): ")
	if err != nil {
		return err
	}
	if err := c.st.SetPriority(id, priority); err != nil {
		c.report(err)
		return nil
	}
	c.println("Priority updated.")
	return nil
}

func (c *Console) editTask() error {
	id, err := c.readInt("Enter Task ID to edit: ")
	if err != nil {
		return err
	}
	if _, err := c.st.FindByID(id); err != nil {
		c.report(err)
		return nil
	}
	name, err := c.readLine("Enter new task name: ")
	if err != nil {
		return err
	}
	if store.ValidateName(name) != nil {
		return errInvalidName
	}
	priority, cpu, mem, err := c.readUsage("Enter new priority (1-10): ", "Enter new CPU usage (%): ", "Enter new memory usage (MB): ")
	if err != nil {
		return err
	}
	if err := c.st.Edit(id, name, priority, cpu, mem); err != nil {
		c.report(err)
		return nil
	}
	c.println("Task updated.")
	return nil
}

func (c *Console) suspendTask() error {
	id, err := c.readInt("Enter Task ID to suspend: ")
	if err != nil {
		return err
	}
	if err := c.st.Suspend(id); err != nil {
		c.reportTransition(err, "running")
		return nil
	}
	c.printf("Task %d suspended.\n", id)
	return nil
}

func (c *Console) resumeTask() error {
	id, err := c.readInt("Enter Task ID to resume: ")
	if err != nil {
		return err
	}
	if err := c.st.Resume(id); err != nil {
		c.reportTransition(err, "suspended")
		return nil
	}
	c.printf("Task %d resumed.\n", id)
	return nil
}

func (c *Console) searchTask() error {
	choice, err := c.readInt("Search by: 1. ID  2. Name\nEnter choice: ")
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		id, err := c.readInt("Enter Task ID: ")
		if err != nil {
			return err
		}
		t, err := c.st.FindByID(id)
		if err != nil {
			c.report(err)
			return nil
		}
		return c.printer.Tasks([]task.Task{t})
	case 2:
		name, err := c.readLine("Enter Task Name: ")
		if err != nil {
			return err
		}
		found := c.st.FindByName(name)
		if len(found) == 0 {
			c.println("Task not found.")
			return nil
		}
		return c.printer.Tasks(found)
	default:
		c.println("Invalid choice.")
		return nil
	}
}

var sortChoices = map[int]struct {
	key  task.SortKey
	desc string
}{
	1: {task.SortByPriority, "priority"},
	2: {task.SortByCPU, "CPU usage"},
	3: {task.SortByMemory, "memory usage"},
}

func (c *Console) sortTasks() error {
	choice, err := c.readInt("Sort by: 1. Priority 2. CPU usage 3. Memory usage\nEnter choice: ")
	if err != nil {
		return err
	}
	sc, ok := sortChoices[choice]
	if !ok || !c.st.SortBy(sc.key) {
		c.println("Invalid choice.")
		return nil
	}
	c.printf("Sorted by %s (high to low).\n", sc.desc)
	return nil
}

func (c *Console) simulateTick() error {
	id, ok := c.st.SimulateTick(c.picker)
	if !ok {
		c.println("No tasks to simulate.")
		return nil
	}
	c.printf("Simulated state change for Task ID %d.\n", id)
	return nil
}

func (c *Console) showSummary() error {
	return c.printer.Summary(c.st.Summary())
}

func (c *Console) readFileName(prompt string) (string, bool, error) {
	name, err := c.readLine(prompt)
	if err != nil {
		return "", false, err
	}
	if name == "" {
		name = c.defaultFile
	}
	return name, name != "", nil
}

func (c *Console) saveTasks() error {
	path, ok, err := c.readFileName("Enter filename to save: ")
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidInput
	}
	switch err := c.st.Save(path); {
	case err == nil:
	case errors.Is(err, store.ErrInvalidName):
		c.log.Debugf("save failed: %v", err)
		c.println("A task name contains a line break; nothing was saved.")
		return nil
	default:
		c.log.Debugf("save failed: %v", err)
		c.println("Could not open file for writing.")
		return nil
	}
	c.println("Tasks saved to file.")
	return nil
}

func (c *Console) loadTasks() error {
	path, ok, err := c.readFileName("Enter filename to load: ")
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidInput
	}
	switch err := c.st.Load(path); {
	case err == nil:
		c.println("Tasks loaded from file.")
	case errors.Is(err, store.ErrParse):
		c.log.Debugf("load failed: %v", err)
		c.println("Task file is malformed; nothing was loaded.")
	default:
		c.log.Debugf("load failed: %v", err)
		c.println("Could not open file for reading.")
	}
	return nil
}

func (c *Console) clearStopped() error {
	c.printf("%d stopped tasks removed.\n", c.st.ClearStopped())
	return nil
}

// report prints the message for a store error that needs no extra context.
func (c *Console) report(err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.println("Task not found.")
	default:
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) reportTransition(err error, required string) {
	var te *store.TransitionError
	if errors.Is(err, store.ErrNotFound) || !errors.As(err, &te) {
		c.report(err)
		return
	}
	c.printf("Task %d is not %s (state: %s).\n", te.ID, required, te.From)
}
