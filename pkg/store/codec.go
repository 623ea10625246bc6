package store

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mensylisir/taskxm/pkg/task"
)

// Encode writes tasks in the data file format:
//
//	<count>
//	<id>
//	<name>
//	<priority>
//	<cpu>
//	<memory>
//	<state>
//	...
//
// Every line, including the last, ends with "\n". Nothing is written when a
// name contains a line break; the error wraps ErrInvalidName.
func Encode(w io.Writer, tasks []task.Task) error {
	return encode(w, tasks, nil)
}

// Decode parses the data file format. An unrecognized state name decodes as
// Running; anything after the last record is ignored.
func Decode(r io.Reader) ([]task.Task, error) {
	return decode(r, nil)
}

func encode(w io.Writer, tasks []task.Task, progress func(done, total int)) error {
	for _, t := range tasks {
		if err := ValidateName(t.Name); err != nil {
			return errors.Wrapf(err, "task %d", t.ID)
		}
	}

	bw := bufio.NewWriter(w)
	writeLine := func(s string) {
		bw.WriteString(s)
		bw.WriteByte('\n')
	}

	writeLine(strconv.Itoa(len(tasks)))
	for i, t := range tasks {
		writeLine(strconv.Itoa(t.ID))
		writeLine(t.Name)
		writeLine(strconv.Itoa(t.Priority))
		writeLine(strconv.Itoa(t.CPU))
		writeLine(strconv.Itoa(t.Memory))
		writeLine(t.State.String())
		if progress != nil {
			progress(i+1, len(tasks))
		}
	}
	// bufio.Writer keeps the first write error and returns it from Flush.
	if err := bw.Flush(); err != nil {
		return errors.Wrapf(ErrIO, "write tasks: %v", err)
	}
	return nil
}

type lineReader struct {
	r    *bufio.Reader
	line int
}

// next returns the next line without its "\n" or "\r\n" terminator.
// It returns io.EOF only when no bytes are left.
func (lr *lineReader) next() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrapf(ErrIO, "read line %d: %v", lr.line+1, err)
	}
	if err == io.EOF && s == "" {
		return "", io.EOF
	}
	lr.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

func (lr *lineReader) number(what string) (int, error) {
	s, err := lr.next()
	if err == io.EOF {
		return 0, parseErrorf(lr.line+1, "missing %s", what)
	}
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(s))
	if convErr != nil {
		return 0, parseErrorf(lr.line, "invalid %s %q", what, s)
	}
	return n, nil
}

func (lr *lineReader) text(what string) (string, error) {
	s, err := lr.next()
	if err == io.EOF {
		return "", parseErrorf(lr.line+1, "missing %s", what)
	}
	return s, err
}

func decode(r io.Reader, progress func(done, total int)) ([]task.Task, error) {
	lr := &lineReader{r: bufio.NewReader(r)}

	count, err := lr.number("task count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, parseErrorf(lr.line, "negative task count %d", count)
	}

	// The count is untrusted; grow as records are actually read.
	tasks := make([]task.Task, 0, min(count, 1024))
	seen := make(map[int]struct{}, min(count, 1024))

	for i := 0; i < count; i++ {
		var t task.Task
		if t.ID, err = lr.number("id"); err != nil {
			return nil, err
		}
		if _, dup := seen[t.ID]; dup {
			return nil, parseErrorf(lr.line, "duplicate id %d", t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Name, err = lr.text("name"); err != nil {
			return nil, err
		}
		if t.Priority, err = lr.number("priority"); err != nil {
			return nil, err
		}
		if t.CPU, err = lr.number("cpu usage"); err != nil {
			return nil, err
		}
		if t.Memory, err = lr.number("memory usage"); err != nil {
			return nil, err
		}
		var state string
		if state, err = lr.text("state"); err != nil {
			return nil, err
		}
		t.State = task.ParseStateOrRunning(state)

		tasks = append(tasks, t)
		if progress != nil {
			progress(i+1, count)
		}
	}
	return tasks, nil
}
