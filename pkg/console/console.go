// Package console implements the interactive numbered menu over a task store.
// It reads one answer per line from its input, so task names may contain spaces.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mensylisir/taskxm/pkg/logger"
	"github.com/mensylisir/taskxm/pkg/printer"
	"github.com/mensylisir/taskxm/pkg/store"
	"github.com/mensylisir/taskxm/pkg/task"
)

var (
	errInvalidInput = errors.New("invalid input")
	errInvalidName  = errors.New("invalid task name")
)

// Console runs the menu loop against one store.
type Console struct {
	st          *store.Store
	in          *bufio.Reader
	out         io.Writer
	printer     *printer.Printer
	picker      store.Picker
	log         *logger.Logger
	banner      string
	defaultFile string
	sessionID   string
}

type Option func(*Console)

// WithPrinter replaces the default uncolored table printer.
func WithPrinter(p *printer.Printer) Option {
	return func(c *Console) { c.printer = p }
}

// WithPicker sets the randomness used by "Simulate State Change".
func WithPicker(p store.Picker) Option {
	return func(c *Console) { c.picker = p }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

// WithBanner prints text as ASCII art when the session starts.
func WithBanner(text string) Option {
	return func(c *Console) {
		if text != "" {
			c.banner = figure.NewFigure(text, "", true).String()
		}
	}
}

// WithDefaultFile is used by save and load when the file name is left empty.
func WithDefaultFile(path string) Option {
	return func(c *Console) { c.defaultFile = path }
}

// WithSessionID overrides the generated session id attached to log entries.
func WithSessionID(id string) Option {
	return func(c *Console) { c.sessionID = id }
}

func New(st *store.Store, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		st:  st,
		in:  bufio.NewReader(in),
		out: out,
		log: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.printer == nil {
		// table output with no template cannot fail validation
		c.printer, _ = printer.New(out)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()[:8]
	}
	c.log = c.log.With("session", c.sessionID)
	return c
}

// SessionID identifies this console run in the logs.
func (c *Console) SessionID() string { return c.sessionID }

type menuItem struct {
	label string
	run   func() error
}

func (c *Console) menu() []menuItem {
	return []menuItem{
		{"Add Task", c.addTask},
		{"Display All Tasks", c.displayAll},
		{"Display Running Tasks", c.displayState(task.StateRunning)},
		{"Display Waiting Tasks", c.displayState(task.StateWaiting)},
		{"Display Stopped Tasks", c.displayState(task.StateStopped)},
		{"Display Suspended Tasks", c.displayState(task.StateSuspended)},
		{"End (Stop) Task", c.stopTask},
		{"Terminate (Delete) Task", c.terminateTask},
		{"Change Task Priority", c.changePriority},
		{"Edit Task Details", c.editTask},
		{"Suspend Task", c.suspendTask},
		{"Resume Task", c.resumeTask},
		{"Search Task", c.searchTask},
		{"Sort Tasks", c.sortTasks},
		{"Simulate State Change", c.simulateTick},
		{"Show System Resource Summary", c.showSummary},
		{"Save Tasks to File", c.saveTasks},
		{"Load Tasks from File", c.loadTasks},
		{"Clear All Stopped Tasks", c.clearStopped},
		{"Exit", nil},
	}
}

// Run shows the menu until the user picks Exit, the input ends or ctx is done.
// Reaching the end of the input is a normal exit.
func (c *Console) Run(ctx context.Context) error {
	if c.banner != "" {
		c.printf("%s\n", c.banner)
	}
	c.log.Debugf("console session started")
	defer c.log.Debugf("console session ended")

	items := c.menu()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu(items)
		choice, err := c.readInt("Enter choice: ")
		if err == nil {
			if choice < 1 || choice > len(items) {
				c.println("Invalid choice.")
				continue
			}
			item := items[choice-1]
			if item.run == nil {
				return nil
			}
			c.log.With("op", item.label).Debugf("menu choice %d", choice)
			err = item.run()
		}

		switch {
		case err == nil:
		case err == io.EOF:
			c.println()
			return nil
		case errors.Is(err, errInvalidInput):
			c.println("Invalid input.")
		case errors.Is(err, errInvalidName):
			c.println("Task name cannot contain line breaks.")
		default:
			return err
		}
	}
}

func (c *Console) printMenu(items []menuItem) {
	var b strings.Builder
	b.WriteString("\n--- SYSTEM TASK MANAGER ---\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.label)
	}
	io.WriteString(c.out, b.String())
}

// readLine prints prompt and returns the next input line without its terminator.
// It returns io.EOF once the input is exhausted.
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "read input")
	}
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) readInt(prompt string) (int, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		return 0, errInvalidInput
	}
	return n, nil
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}
