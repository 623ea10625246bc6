// Package printer renders task lists and summaries for the console and the
// task commands: as a table (the default), or as json, yaml, toml or a go template.
package printer

import (
	"fmt"
	"io"

	"github.com/mensylisir/taskxm/pkg/common"
	"github.com/mensylisir/taskxm/pkg/store"
	"github.com/mensylisir/taskxm/pkg/task"
)

// EmptyMessage is printed by the table format when there is nothing to list.
const EmptyMessage = "No tasks to display for this filter."

// Printer writes tasks and summaries to out in one format.
type Printer struct {
	out      io.Writer
	format   string
	template string
	color    bool
}

type Option func(*Printer)

// WithFormat selects one of common.OutputFormats. The default is table.
func WithFormat(format string) Option {
	return func(p *Printer) { p.format = format }
}

// WithTemplate sets the go template body used by the template format.
func WithTemplate(tmpl string) Option {
	return func(p *Printer) { p.template = tmpl }
}

// WithColor colors the state column of tables.
func WithColor(enabled bool) Option {
	return func(p *Printer) { p.color = enabled }
}

func New(out io.Writer, opts ...Option) (*Printer, error) {
	p := &Printer{out: out, format: common.OutputTable}
	for _, opt := range opts {
		opt(p)
	}
	switch p.format {
	case common.OutputTable, common.OutputJSON, common.OutputYAML, common.OutputTOML:
	case common.OutputTemplate:
		if p.template == "" {
			return nil, fmt.Errorf("output format %q requires a template", p.format)
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q, must be one of %v", p.format, common.OutputFormats)
	}
	return p, nil
}

// Format returns the selected output format.
func (p *Printer) Format() string { return p.format }

// Tasks renders a task list in sequence order.
func (p *Printer) Tasks(tasks []task.Task) error {
	views := newTaskViews(tasks)
	switch p.format {
	case common.OutputJSON:
		return p.write(tasksJSON(views))
	case common.OutputYAML:
		return p.writeYAML(taskList{Tasks: views})
	case common.OutputTOML:
		return p.writeTOML(taskList{Tasks: views})
	case common.OutputTemplate:
		return p.writeTemplate(templateData{Tasks: views})
	default:
		return p.tasksTable(tasks)
	}
}

// Summary renders the resource summary.
func (p *Printer) Summary(sum store.Summary) error {
	switch p.format {
	case common.OutputJSON:
		return p.write(summaryJSON(sum))
	case common.OutputYAML:
		return p.writeYAML(sum)
	case common.OutputTOML:
		return p.writeTOML(sum)
	case common.OutputTemplate:
		return p.writeTemplate(templateData{Summary: &sum})
	default:
		return p.summaryText(sum)
	}
}

func (p *Printer) write(data []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = p.out.Write(data)
	return err
}

// taskView is the serialized shape of a task, with the state spelled out.
type taskView struct {
	ID       int    `json:"id" yaml:"id" toml:"id"`
	Name     string `json:"name" yaml:"name" toml:"name"`
	Priority int    `json:"priority" yaml:"priority" toml:"priority"`
	CPU      int    `json:"cpu" yaml:"cpu" toml:"cpu"`
	Memory   int    `json:"memory" yaml:"memory" toml:"memory"`
	State    string `json:"state" yaml:"state" toml:"state"`
}

type taskList struct {
	Tasks []taskView `yaml:"tasks" toml:"tasks"`
}

func newTaskViews(tasks []task.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView{
			ID:       t.ID,
			Name:     t.Name,
			Priority: t.Priority,
			CPU:      t.CPU,
			Memory:   t.Memory,
			State:    t.State.String(),
		})
	}
	return views
}
