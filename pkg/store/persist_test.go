package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/taskxm/pkg/task"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")

	src := newTestStore(t)
	require.NoError(t, src.Stop(1))
	require.NoError(t, src.Suspend(3))
	_, ok := src.SimulateTick(fixedPicker(1))
	require.True(t, ok)
	require.NoError(t, src.Save(path))

	dst := New()
	require.NoError(t, dst.Load(path))
	assert.Equal(t, src.List(), dst.List())
	assert.Equal(t, 4, dst.NextID())
}

func TestSave_WritesFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := New()
	s.Add("web server", 5, 20, 256)
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n1\nweb server\n5\n20\n256\nRunning\n", string(data))
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is much longer than the new file\n"), 0644))

	require.NoError(t, New().Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n", string(data))
}

func TestSave_IOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tasks.txt")
	err := newTestStore(t).Save(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
}

func TestLoad_ResetsNextID(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name    string
		content string
		want    int
	}{
		{"empty file", "0\n", 1},
		{"gap in ids", "2\n3\na\n1\n1\n1\nRunning\n9\nb\n1\n1\n1\nStopped\n", 10},
		{"unordered ids", "2\n12\na\n1\n1\n1\nRunning\n5\nb\n1\n1\n1\nStopped\n", 13},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			s := newTestStore(t)
			require.NoError(t, s.Load(path))
			assert.Equal(t, tc.want, s.NextID())
			assert.Equal(t, tc.want, s.Add("new", 1, 1, 1))
		})
	}
}

func TestLoad_ReplacesSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0644))

	s := newTestStore(t)
	require.NoError(t, s.Load(path))
	assert.Equal(t, fixtureTasks, s.List())
	_, err := s.FindByID(2)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoad_FailureLeavesStoreUnchanged(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(malformed, []byte("2\n1\nweb\n5\n20\n256\nRunning\n"), 0644))

	testCases := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "absent.txt"), ErrIO},
		{"directory", dir, ErrIO},
		{"count exceeds records", malformed, ErrParse},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			before := s.List()

			err := s.Load(tc.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want))
			assert.Equal(t, before, s.List())
			assert.Equal(t, 4, s.NextID())
		})
	}
}

func TestSaveLoad_Progress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := newTestStore(t)

	var saved, loaded []int
	require.NoError(t, s.Save(path, WithProgress(func(done, total int) {
		assert.Equal(t, 3, total)
		saved = append(saved, done)
	})))
	require.NoError(t, New().Load(path, WithProgress(func(done, total int) {
		assert.Equal(t, 3, total)
		loaded = append(loaded, done)
	})))

	assert.Equal(t, []int{1, 2, 3}, saved)
	assert.Equal(t, []int{1, 2, 3}, loaded)
}

func TestLoad_UnknownStateIsRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\nold\n1\n1\n1\nBlocked\n"), 0644))

	s := New()
	require.NoError(t, s.Load(path))
	assert.Equal(t, []task.Task{{ID: 2, Name: "old", Priority: 1, CPU: 1, Memory: 1, State: task.StateRunning}}, s.ListByState(task.StateRunning))
}

func TestSave_InvalidNameKeepsPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	st := newTestStore(t)
	require.NoError(t, st.Save(path))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, name := range []string{"multi\nline", "trailing\r"} {
		id := st.Add(name, 1, 1, 1)
		err := st.Save(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidName))

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		require.NoError(t, st.Terminate(id))
	}

	fresh := New()
	require.NoError(t, fresh.Load(path))
	assert.Equal(t, 3, fresh.Len())
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.txt")
	st := newTestStore(t)
	require.NoError(t, st.Save(path))
	require.NoError(t, st.Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.txt", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
