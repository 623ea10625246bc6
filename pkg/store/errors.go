package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mensylisir/taskxm/pkg/task"
)

var (
	ErrNotFound          = errors.New("task not found")
	ErrAlreadyStopped    = errors.New("task already stopped")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrIO                = errors.New("task file i/o failed")
	ErrParse             = errors.New("malformed task file")
	// ErrInvalidName is returned for names the line-based task file cannot hold.
	ErrInvalidName = errors.New("task name cannot contain line breaks")
)

// TransitionError reports a rejected suspend or resume.
// It matches ErrInvalidTransition, and also ErrNotFound when the task does not exist.
type TransitionError struct {
	Op      string
	ID      int
	From    task.State
	Missing bool
}

func (e *TransitionError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s task %d: %v", e.Op, e.ID, ErrNotFound)
	}
	return fmt.Sprintf("%s task %d: %v from %s", e.Op, e.ID, ErrInvalidTransition, e.From)
}

func (e *TransitionError) Is(target error) bool {
	if target == ErrInvalidTransition {
		return true
	}
	return e.Missing && target == ErrNotFound
}

// ValidateName rejects names containing "\n" or "\r", which would not survive a save and load.
func ValidateName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return errors.Wrapf(ErrInvalidName, "name %q", name)
	}
	return nil
}

func parseErrorf(line int, format string, args ...interface{}) error {
	return errors.Wrapf(ErrParse, "line %d: %s", line, fmt.Sprintf(format, args...))
}
