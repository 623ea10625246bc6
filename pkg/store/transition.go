package store

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/mensylisir/taskxm/pkg/task"
)

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// isAllowedTransition lists every edge of the lifecycle. Anything missing is rejected.
func isAllowedTransition(from, to task.State) bool {
	switch from {
	case task.StateRunning:
		return to == task.StateStopped || to == task.StateSuspended || to == task.StateWaiting
	case task.StateWaiting:
		return to == task.StateStopped || to == task.StateRunning
	case task.StateSuspended:
		return to == task.StateStopped || to == task.StateRunning
	default:
		return false
	}
}

// Stop moves a task from any state but Stopped to Stopped.
func (s *Store) Stop(id int) error {
	i := s.index(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "stop task %d", id)
	}
	from := s.tasks[i].State
	if from == task.StateStopped {
		return errors.Wrapf(ErrAlreadyStopped, "stop task %d", id)
	}
	s.setState(i, "stop", task.StateStopped)
	return nil
}

// Suspend moves a Running task to Suspended.
func (s *Store) Suspend(id int) error {
	return s.transition("suspend", id, task.StateRunning, task.StateSuspended)
}

// Resume moves a Suspended task back to Running.
func (s *Store) Resume(id int) error {
	return s.transition("resume", id, task.StateSuspended, task.StateRunning)
}

// transition applies from -> to on task id, rejecting any other source state.
func (s *Store) transition(op string, id int, from, to task.State) error {
	i := s.index(id)
	if i < 0 {
		return &TransitionError{Op: op, ID: id, Missing: true}
	}
	cur := s.tasks[i].State
	if cur != from || !isAllowedTransition(cur, to) {
		return &TransitionError{Op: op, ID: id, From: cur}
	}
	s.setState(i, op, to)
	return nil
}

// SimulateTick picks one task with p and toggles it between Running and
// Waiting. A picked Stopped or Suspended task keeps its state but its id is
// still returned. ok is false only when the store is empty or p picks out of range.
// A nil p uses the math/rand global source.
func (s *Store) SimulateTick(p Picker) (id int, ok bool) {
	if len(s.tasks) == 0 {
		return 0, false
	}
	var i int
	if p == nil {
		i = rand.Intn(len(s.tasks))
	} else {
		i = p.Intn(len(s.tasks))
	}
	if i < 0 || i >= len(s.tasks) {
		return 0, false
	}
	switch s.tasks[i].State {
	case task.StateRunning:
		s.setState(i, "tick", task.StateWaiting)
	case task.StateWaiting:
		s.setState(i, "tick", task.StateRunning)
	default:
		s.log.With("op", "tick", "task_id", s.tasks[i].ID).Debugf("state %s left unchanged", s.tasks[i].State)
	}
	return s.tasks[i].ID, true
}

func (s *Store) setState(i int, op string, to task.State) {
	from := s.tasks[i].State
	s.tasks[i].State = to
	s.log.With("op", op, "task_id", s.tasks[i].ID).Debugf("state %s -> %s", from, to)
}
