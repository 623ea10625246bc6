// Package task defines the record model of the simulated process table:
// the Task itself, its lifecycle State and the keys a task list can be sorted by.
package task

import "strconv"

// Task is one simulated process. ID is assigned by the store and never changes.
type Task struct {
	ID       int
	Name     string
	Priority int
	CPU      int // percent
	Memory   int // MB
	State    State
}

// Columns are the headers of the tabular task listing, in Row order.
var Columns = []string{"ID", "Name", "Priority", "CPU(%)", "Memory(MB)", "State"}

// Row returns the task's cells in Columns order.
func (t Task) Row() []string {
	return []string{
		strconv.Itoa(t.ID),
		t.Name,
		strconv.Itoa(t.Priority),
		strconv.Itoa(t.CPU),
		strconv.Itoa(t.Memory),
		t.State.String(),
	}
}

// SortKey selects the field a task list is ordered by. Sorting is always descending.
type SortKey int

const (
	SortByPriority SortKey = iota + 1
	SortByCPU
	SortByMemory
)

var sortKeyNames = map[SortKey]string{
	SortByPriority: "priority",
	SortByCPU:      "cpu",
	SortByMemory:   "memory",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k names a sortable field.
func (k SortKey) Valid() bool {
	_, ok := sortKeyNames[k]
	return ok
}

// Value returns the field of t that k orders by.
func (k SortKey) Value(t Task) int {
	switch k {
	case SortByPriority:
		return t.Priority
	case SortByCPU:
		return t.CPU
	case SortByMemory:
		return t.Memory
	default:
		return 0
	}
}

// ParseSortKey accepts "priority", "cpu" or "memory".
func ParseSortKey(name string) (SortKey, bool) {
	for k, n := range sortKeyNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
