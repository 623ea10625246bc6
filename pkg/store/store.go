// Package store implements the in-memory process table: an ordered sequence
// of tasks addressed by id, the id counter, the lifecycle rules and the
// line-oriented file format used to save and load it.
//
// A Store is not safe for concurrent use; it is owned by a single caller.
package store

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"

	"github.com/mensylisir/taskxm/pkg/logger"
	"github.com/mensylisir/taskxm/pkg/task"
)

// Store owns the task sequence and the id counter.
type Store struct {
	tasks  []task.Task
	nextID int
	log    *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for operation tracing.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty store whose first task will get id 1.
func New(opts ...Option) *Store {
	s := &Store{nextID: 1, log: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary aggregates the table. The four state counts always add up to Total.
type Summary struct {
	Total       int `json:"total" yaml:"total" toml:"total"`
	Running     int `json:"running" yaml:"running" toml:"running"`
	Waiting     int `json:"waiting" yaml:"waiting" toml:"waiting"`
	Stopped     int `json:"stopped" yaml:"stopped" toml:"stopped"`
	Suspended   int `json:"suspended" yaml:"suspended" toml:"suspended"`
	TotalCPU    int `json:"totalCPU" yaml:"totalCPU" toml:"totalCPU"`
	TotalMemory int `json:"totalMemory" yaml:"totalMemory" toml:"totalMemory"`
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// NextID returns the id the next Add will assign.
func (s *Store) NextID() int { return s.nextID }

// Add appends a Running task and returns its id. Numeric fields are stored as given.
func (s *Store) Add(name string, priority, cpu, mem int) int {
	id := s.nextID
	s.nextID++
	s.tasks = append(s.tasks, task.Task{
		ID:       id,
		Name:     name,
		Priority: priority,
		CPU:      cpu,
		Memory:   mem,
		State:    task.StateRunning,
	})
	s.log.With("op", "add", "task_id", id).Debugf("task %q added", name)
	return id
}

// List returns a copy of every task in sequence order.
func (s *Store) List() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ListByState returns the tasks in state st, in sequence order.
// An undefined state matches nothing.
func (s *Store) ListByState(st task.State) []task.Task {
	out := make([]task.Task, 0)
	for _, t := range s.tasks {
		if t.State == st {
			out = append(out, t)
		}
	}
	return out
}

// FindByID returns the task with the given id.
func (s *Store) FindByID(id int) (task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, errors.Wrapf(ErrNotFound, "task %d", id)
	}
	return s.tasks[i], nil
}

// FindByName returns every task whose name equals name exactly.
func (s *Store) FindByName(name string) []task.Task {
	out := make([]task.Task, 0)
	for _, t := range s.tasks {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// SetPriority replaces the priority of a task.
func (s *Store) SetPriority(id, priority int) error {
	i := s.index(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "set priority of task %d", id)
	}
	s.tasks[i].Priority = priority
	s.log.With("op", "priority", "task_id", id).Debugf("priority set to %d", priority)
	return nil
}

// Edit replaces all four mutable fields of a task at once.
func (s *Store) Edit(id int, name string, priority, cpu, mem int) error {
	i := s.index(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "edit task %d", id)
	}
	t := &s.tasks[i]
	t.Name, t.Priority, t.CPU, t.Memory = name, priority, cpu, mem
	s.log.With("op", "edit", "task_id", id).Debugf("task updated")
	return nil
}

// Terminate removes a task whatever its state.
func (s *Store) Terminate(id int) error {
	i := s.index(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "terminate task %d", id)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.log.With("op", "terminate", "task_id", id).Debugf("task removed")
	return nil
}

// ClearStopped removes every Stopped task and returns how many were removed.
func (s *Store) ClearStopped() int {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t task.Task) bool {
		return t.State == task.StateStopped
	})
	removed := before - len(s.tasks)
	s.log.With("op", "clear").Debugf("%d stopped tasks removed", removed)
	return removed
}

// SortBy reorders the sequence in place, descending by key, keeping the
// relative order of equal elements. It returns false, leaving the order
// untouched, when key is not a sortable field.
func (s *Store) SortBy(key task.SortKey) bool {
	if !key.Valid() {
		return false
	}
	slices.SortStableFunc(s.tasks, func(a, b task.Task) int {
		return cmp.Compare(key.Value(b), key.Value(a))
	})
	s.log.With("op", "sort").Debugf("sorted by %s", key)
	return true
}

// Summary counts tasks per state and totals their resource usage.
func (s *Store) Summary() Summary {
	sum := Summary{Total: len(s.tasks)}
	for _, t := range s.tasks {
		sum.TotalCPU += t.CPU
		sum.TotalMemory += t.Memory
		switch t.State {
		case task.StateRunning:
			sum.Running++
		case task.StateWaiting:
			sum.Waiting++
		case task.StateStopped:
			sum.Stopped++
		case task.StateSuspended:
			sum.Suspended++
		}
	}
	return sum
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
}
