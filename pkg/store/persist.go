package store

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mensylisir/taskxm/pkg/task"
)

type persistOptions struct {
	progress func(done, total int)
}

// PersistOption configures Save and Load.
type PersistOption func(*persistOptions)

// WithProgress reports each record written or read as (done, total).
func WithProgress(fn func(done, total int)) PersistOption {
	return func(o *persistOptions) {
		o.progress = fn
	}
}

func buildPersistOptions(opts []PersistOption) persistOptions {
	var o persistOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Save replaces path with every task in sequence order. The tasks are written
// to a temporary file next to path and renamed over it, so a failed save
// leaves the previous file intact.
func (s *Store) Save(path string, opts ...PersistOption) error {
	o := buildPersistOptions(opts)

	var buf bytes.Buffer
	if err := encode(&buf, s.tasks, o.progress); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return errors.Wrapf(ErrIO, "save %s: %v", path, err)
	}
	s.log.With("op", "save").Infof("%d tasks saved to %s", len(s.tasks), path)
	return nil
}

// Load replaces the whole sequence with the contents of path and resets the
// id counter past the highest loaded id. On error the store is unchanged.
func (s *Store) Load(path string, opts ...PersistOption) error {
	o := buildPersistOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(ErrIO, "load %s: %v", path, err)
	}
	defer f.Close()

	tasks, err := decode(f, o.progress)
	if err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	s.replace(tasks)
	s.log.With("op", "load").Infof("%d tasks loaded from %s", len(tasks), path)
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func (s *Store) replace(tasks []task.Task) {
	next := 1
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	s.tasks = tasks
	s.nextID = next
}
