package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd/cmdutil"
	"github.com/mensylisir/taskxm/pkg/store"
)

// isolate points HOME at a temp dir so no real config or task file is read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	env := cmdutil.NewEnv(strings.NewReader(stdin), &out, &errOut)
	root := NewRootCmd(env)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := execute(t, "", args...)
	require.NoError(t, err, stderr)
	return out
}

func TestTaskCommands_Lifecycle(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")

	assert.Equal(t, "Task 1 added.\n", mustExecute(t, "task", "add", "web", "-p", "5", "--cpu", "20", "--mem", "256", "-f", file))
	assert.Equal(t, "Task 2 added.\n", mustExecute(t, "task", "add", "db", "-p", "8", "--cpu", "40", "--mem", "1024", "-f", file))
	assert.Equal(t, "Task 1 stopped.\n", mustExecute(t, "task", "stop", "1", "-f", file))

	_, _, err := execute(t, "", "task", "stop", "1", "-f", file)
	assert.ErrorIs(t, err, store.ErrAlreadyStopped)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "2\n1\nweb\n5\n20\n256\nStopped\n2\ndb\n8\n40\n1024\nRunning\n", string(data))
}

func TestTaskCommands_SuspendResume(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")
	mustExecute(t, "task", "add", "web", "-f", file)

	_, _, err := execute(t, "", "task", "resume", "1", "-f", file)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	assert.Equal(t, "Task 1 suspended.\n", mustExecute(t, "task", "suspend", "1", "-f", file))
	assert.Equal(t, "Task 1 resumed.\n", mustExecute(t, "task", "resume", "1", "-f", file))

	_, _, err = execute(t, "", "task", "suspend", "7", "-f", file)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTaskCommands_ListAndFilter(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")
	mustExecute(t, "task", "add", "web", "-f", file)
	mustExecute(t, "task", "add", "db", "-f", file)
	mustExecute(t, "task", "stop", "2", "-f", file)

	out := mustExecute(t, "task", "list", "-o", "json", "-f", file)
	assert.Equal(t, int64(2), gjson.Get(out, "count").Int())

	out = mustExecute(t, "task", "list", "--state", "STOPPED", "-o", "json", "-f", file)
	assert.Equal(t, int64(1), gjson.Get(out, "count").Int())
	assert.Equal(t, "db", gjson.Get(out, "tasks.0.name").String())

	out = mustExecute(t, "task", "list", "--state", "suspended", "-f", file)
	assert.Equal(t, "No tasks to display for this filter.\n", out)

	_, _, err := execute(t, "", "task", "list", "--state", "zombie", "-f", file)
	assert.ErrorContains(t, err, `unknown state "zombie"`)

	out = mustExecute(t, "task", "list", "-o", "template", "--template", "{{ range .Tasks }}{{ .Name }};{{ end }}", "-f", file)
	assert.Equal(t, "web;db;", out)
}

func TestTaskCommands_GetSearch(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")
	mustExecute(t, "task", "add", "nightly backup", "-p", "3", "-f", file)

	out := mustExecute(t, "task", "get", "1", "-o", "json", "-f", file)
	assert.Equal(t, "nightly backup", gjson.Get(out, "tasks.0.name").String())

	out = mustExecute(t, "task", "search", "nightly backup", "-f", file)
	assert.Regexp(t, `1\s+nightly backup\s+3`, out)

	_, _, err := execute(t, "", "task", "get", "9", "-f", file)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, _, err = execute(t, "", "task", "search", "nightly", "-f", file)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, _, err = execute(t, "", "task", "get", "one", "-f", file)
	assert.ErrorContains(t, err, `invalid task id "one"`)
}

func TestTaskCommands_EditPrioritySort(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")
	mustExecute(t, "task", "add", "web", "-p", "5", "--cpu", "20", "--mem", "256", "-f", file)
	mustExecute(t, "task", "add", "db", "-p", "8", "--cpu", "40", "--mem", "1024", "-f", file)

	assert.Equal(t, "Task updated.\n", mustExecute(t, "task", "edit", "2", "--name", "database", "--mem", "2048", "-f", file))
	out := mustExecute(t, "task", "get", "2", "-o", "json", "-f", file)
	assert.Equal(t, "database", gjson.Get(out, "tasks.0.name").String())
	assert.Equal(t, int64(8), gjson.Get(out, "tasks.0.priority").Int())
	assert.Equal(t, int64(2048), gjson.Get(out, "tasks.0.memory").Int())

	assert.Equal(t, "Priority updated.\n", mustExecute(t, "task", "priority", "1", "10", "-f", file))
	_, _, err := execute(t, "", "task", "priority", "1", "high", "-f", file)
	assert.ErrorContains(t, err, `invalid priority "high"`)

	assert.Equal(t, "Sorted by priority (high to low).\n", mustExecute(t, "task", "sort", "priority", "-f", file))
	out = mustExecute(t, "task", "list", "-o", "json", "-f", file)
	assert.Equal(t, "web", gjson.Get(out, "tasks.0.name").String())

	mustExecute(t, "task", "sort", "memory", "-f", file)
	out = mustExecute(t, "task", "list", "-o", "json", "-f", file)
	assert.Equal(t, "database", gjson.Get(out, "tasks.0.name").String())

	_, _, err = execute(t, "", "task", "sort", "name", "-f", file)
	assert.Error(t, err)
}

func TestTaskCommands_TickSummaryClear(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")

	assert.Equal(t, "No tasks to simulate.\n", mustExecute(t, "task", "tick", "-f", file))
	assert.NoFileExists(t, file)

	mustExecute(t, "task", "add", "web", "--cpu", "20", "--mem", "256", "-f", file)
	assert.Equal(t, "Simulated state change for Task ID 1.\n", mustExecute(t, "task", "tick", "-f", file))

	out := mustExecute(t, "task", "summary", "-o", "json", "-f", file)
	assert.Equal(t, int64(1), gjson.Get(out, "waiting").Int())
	assert.Equal(t, int64(256), gjson.Get(out, "totalMemory").Int())

	out = mustExecute(t, "task", "summary", "-f", file)
	assert.Contains(t, out, "Running: 0, Waiting: 1, Stopped: 0, Suspended: 0\n")

	mustExecute(t, "task", "terminate", "1", "-f", file)
	mustExecute(t, "task", "add", "a", "-f", file)
	mustExecute(t, "task", "stop", "2", "-f", file)
	assert.Equal(t, "1 stopped tasks removed.\n", mustExecute(t, "task", "clear-stopped", "-f", file))
	assert.Equal(t, "0 stopped tasks removed.\n", mustExecute(t, "task", "clear-stopped", "-f", file))
}

func TestTaskCommands_MalformedFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(file, []byte("2\n1\nweb\n"), 0644))

	_, _, err := execute(t, "", "task", "list", "-f", file)
	assert.ErrorIs(t, err, store.ErrParse)
}

func TestRoot_InvalidOutputFlag(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "", "task", "list", "-o", "xml")
	assert.ErrorContains(t, err, "output.format")
}

func TestRoot_DefaultDataFile(t *testing.T) {
	home := isolate(t)
	mustExecute(t, "task", "add", "web")
	assert.FileExists(t, filepath.Join(home, ".taskxm", "tasks.txt"))
}

func TestShell(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")
	mustExecute(t, "task", "add", "web", "--cpu", "20", "--mem", "256", "-f", file)

	out, stderr, err := execute(t, "2\n1\ncron\n2\n5\n64\n17\n\n20\n", "-f", file)
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "--- SYSTEM TASK MANAGER ---")
	assert.Regexp(t, `1\s+web\s+5\s+20\s+256\s+Running`, out)
	assert.Contains(t, out, "Tasks saved to file.")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "2\n"))

	out, _, err = execute(t, "20\n", "shell", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "20. Exit")
}

func TestConfigView(t *testing.T) {
	isolate(t)
	out := mustExecute(t, "config", "view", "-f", "/tmp/custom.txt", "-o", "YAML")
	assert.Contains(t, out, "dataFile: /tmp/custom.txt")
	assert.Contains(t, out, "format: yaml")
	assert.Contains(t, out, "color: false")
}

func TestConfigView_EnvAndFile(t *testing.T) {
	isolate(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output:\n  banner: false\n"), 0644))
	t.Setenv("TASKXM_TICK_SEED", "42")

	out := mustExecute(t, "config", "view", "--config", cfg)
	assert.Contains(t, out, "banner: false")
	assert.Contains(t, out, "seed: 42")

	_, _, err := execute(t, "", "config", "view", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)

	mustExecute(t, "config", "init")
	path := filepath.Join(home, ".taskxm", "config.yaml")
	require.FileExists(t, path)

	_, _, err := execute(t, "", "config", "init")
	assert.ErrorContains(t, err, "already exists")
	mustExecute(t, "config", "init", "--force")

	out := mustExecute(t, "config", "view")
	assert.Contains(t, out, "progressThreshold: 1000")
}

func TestVersionAndCompletion(t *testing.T) {
	isolate(t)
	out := mustExecute(t, "version")
	assert.Contains(t, out, "taskxm version: dev")

	out = mustExecute(t, "completion", "bash")
	assert.Contains(t, out, "taskxm")

	_, _, err := execute(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestTaskCommands_RejectLineBreaksInName(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")
	mustExecute(t, "task", "add", "web", "-f", file)

	for _, name := range []string{"multi\nline", "trailing\r"} {
		_, _, err := execute(t, "", "task", "add", name, "-f", file)
		assert.ErrorIs(t, err, store.ErrInvalidName)

		_, _, err = execute(t, "", "task", "edit", "1", "--name", name, "-f", file)
		assert.ErrorIs(t, err, store.ErrInvalidName)
	}

	out := mustExecute(t, "task", "list", "-o", "json", "-f", file)
	assert.Equal(t, int64(1), gjson.Get(out, "count").Int())
	assert.Equal(t, "web", gjson.Get(out, "tasks.0.name").String())
}

func TestRun_ReportsErrors(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "tasks.txt")

	runWith := func(args ...string) (string, error) {
		var errOut bytes.Buffer
		env := cmdutil.NewEnv(strings.NewReader(""), &bytes.Buffer{}, &errOut)
		err := run(context.Background(), env, append([]string{"--no-color"}, args...))
		return errOut.String(), err
	}

	stderr, err := runWith("task", "get", "4", "-f", file)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, stderr, "[FAIL] task 4: task not found")

	require.NoError(t, os.WriteFile(file, []byte("1\n1\n"), 0644))
	stderr, err = runWith("task", "list", "-f", file)
	assert.ErrorIs(t, err, store.ErrParse)
	assert.Contains(t, stderr, "[ERROR] load "+file)

	stderr, err = runWith("task", "list", "-o", "xml")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(stderr, "Error: invalid flags"), stderr)

	stderr, err = runWith("nope")
	require.Error(t, err)
	assert.Contains(t, stderr, "Error: unknown command")
}
