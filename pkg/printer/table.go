package printer

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mensylisir/taskxm/pkg/store"
	"github.com/mensylisir/taskxm/pkg/task"
)

var stateColors = map[task.State]color.Attribute{
	task.StateRunning:   color.FgGreen,
	task.StateWaiting:   color.FgYellow,
	task.StateStopped:   color.FgRed,
	task.StateSuspended: color.FgMagenta,
}

func (p *Printer) tasksTable(tasks []task.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(p.out, EmptyMessage)
		return err
	}

	table := tablewriter.NewWriter(p.out)
	table.SetHeader(task.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("-")
	table.SetHeaderLine(true)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, t := range tasks {
		row := t.Row()
		row[len(row)-1] = p.colorState(t.State)
		table.Append(row)
	}
	table.Render()
	return nil
}

func (p *Printer) colorState(s task.State) string {
	attr, ok := stateColors[s]
	if !p.color || !ok {
		return s.String()
	}
	c := color.New(attr)
	// Force escapes even when out is not a terminal.
	c.EnableColor()
	return c.Sprint(s.String())
}

func (p *Printer) summaryText(sum store.Summary) error {
	_, err := fmt.Fprintf(p.out,
		"\n--- System Resource Summary ---\n"+
			"Total tasks: %d\n"+
			"Running: %d, Waiting: %d, Stopped: %d, Suspended: %d\n"+
			"Total CPU usage: %d%%\n"+
			"Total Memory usage: %d MB\n",
		sum.Total, sum.Running, sum.Waiting, sum.Stopped, sum.Suspended, sum.TotalCPU, sum.TotalMemory)
	return err
}
