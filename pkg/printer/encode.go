package printer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/mensylisir/taskxm/pkg/store"
)

type jsonField struct {
	path  string
	value interface{}
}

func setFields(doc string, fields []jsonField) (string, error) {
	var err error
	for _, f := range fields {
		doc, err = sjson.Set(doc, f.path, f.value)
		if err != nil {
			return "", fmt.Errorf("failed to set JSON value at path '%s': %w", f.path, err)
		}
	}
	return doc, nil
}

// tasksJSON builds {"tasks":[...],"count":n}.
func tasksJSON(views []taskView) ([]byte, error) {
	items := make([]string, 0, len(views))
	for _, v := range views {
		obj, err := setFields("", []jsonField{
			{"id", v.ID},
			{"name", v.Name},
			{"priority", v.Priority},
			{"cpu", v.CPU},
			{"memory", v.Memory},
			{"state", v.State},
		})
		if err != nil {
			return nil, err
		}
		items = append(items, obj)
	}

	doc, err := sjson.SetRaw("", "tasks", "["+strings.Join(items, ",")+"]")
	if err != nil {
		return nil, fmt.Errorf("failed to build task list JSON: %w", err)
	}
	doc, err = setFields(doc, []jsonField{{"count", len(views)}})
	if err != nil {
		return nil, err
	}
	return pretty.Pretty([]byte(doc)), nil
}

func summaryJSON(sum store.Summary) ([]byte, error) {
	doc, err := setFields("", []jsonField{
		{"total", sum.Total},
		{"running", sum.Running},
		{"waiting", sum.Waiting},
		{"stopped", sum.Stopped},
		{"suspended", sum.Suspended},
		{"totalCPU", sum.TotalCPU},
		{"totalMemory", sum.TotalMemory},
	})
	if err != nil {
		return nil, err
	}
	return pretty.Pretty([]byte(doc)), nil
}

func (p *Printer) writeYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml output: %w", err)
	}
	return p.write(data, nil)
}

func (p *Printer) writeTOML(v interface{}) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal toml output: %w", err)
	}
	return p.write(data, nil)
}

// templateData is the dot of user templates. Exactly one field is set.
type templateData struct {
	Tasks   []taskView
	Summary *store.Summary
}

func (p *Printer) writeTemplate(data templateData) error {
	tmpl, err := template.New("output").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(p.template)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return p.write(buf.Bytes(), nil)
}
