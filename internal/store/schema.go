package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tm-cli/tm/internal/model"
)

// dataSchema describes the canonical shape of the data file. Fields the
// store heals on load (null lists, a missing current_project) stay nullable
// or optional here so the doctor only errors on damage Load would refuse.
const dataSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "tm data file",
  "type": "object",
  "properties": {
    "current_project": {"type": "string"},
    "projects": {
      "type": ["array", "null"],
      "items": {"$ref": "#/$defs/project"}
    }
  },
  "$defs": {
    "project": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "tasks": {
          "type": ["array", "null"],
          "items": {"$ref": "#/$defs/task"}
        },
        "created_at": {"type": "string", "format": "date-time"}
      }
    },
    "task": {
      "type": "object",
      "required": ["text"],
      "properties": {
        "text": {"type": "string"},
        "completed": {"type": "boolean"},
        "created_at": {"type": "string", "format": "date-time"},
        "completed_at": {"type": ["string", "null"], "format": "date-time"},
        "subtasks": {
          "type": ["array", "null"],
          "items": {"$ref": "#/$defs/task"}
        }
      }
    }
  }
}`

var dataFileSchema = mustSchema()

func mustSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(dataSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("tasks.schema.json")
}

// Diagnosis is the doctor's report on a data file. Errors are conditions
// Load would refuse or that lose data silently; Warnings are conditions the
// store heals on its own.
type Diagnosis struct {
	Path     string
	Exists   bool
	Legacy   bool
	Errors   []string
	Warnings []string
}

// Healthy reports whether the file is safe to load.
func (d *Diagnosis) Healthy() bool { return len(d.Errors) == 0 }

func (d *Diagnosis) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Diagnosis) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// Diagnose inspects the data file at path without modifying it. A missing
// file is healthy: the store starts fresh.
func Diagnose(path string) Diagnosis {
	d := Diagnosis{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d
		}
		d.errorf("cannot read file: %v", err)
		return d
	}
	d.Exists = true

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		d.errorf("file is empty")
		return d
	}

	switch trimmed[0] {
	case '[':
		d.Legacy = true
		d.warnf("legacy array format; the file will be upgraded on the next run")
		var tasks []model.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			d.errorf("legacy array is not a task list: %v", err)
			return d
		}
		checkTasks(&d, model.DefaultProject, nil, tasks)
		return d
	case '{':
		diagnoseObject(&d, trimmed)
		return d
	default:
		d.errorf("file is neither a JSON object nor a JSON array")
		return d
	}
}

func diagnoseObject(d *Diagnosis, data []byte) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		d.errorf("not valid JSON: %v", err)
		return
	}

	if err := dataFileSchema.Validate(doc); err != nil {
		appendSchemaErrors(d, err)
		return
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		d.errorf("cannot decode data file: %v", err)
		return
	}

	if st.CurrentProject == "" && st.Projects == nil {
		d.errorf("object carries neither \"current_project\" nor \"projects\"; this is not a task data file")
		return
	}

	seen := map[string]bool{}
	hasDefault := false
	hasCurrent := false
	for _, p := range st.Projects {
		if seen[p.Name] {
			d.errorf("duplicate project name '%s'", p.Name)
		}
		seen[p.Name] = true
		if p.Name == model.DefaultProject {
			hasDefault = true
		}
		if p.Name == st.CurrentProject {
			hasCurrent = true
		}
		checkTasks(d, p.Name, nil, p.Tasks)
	}
	if !hasCurrent {
		d.warnf("current project '%s' does not exist; it will be reset to '%s'", st.CurrentProject, model.DefaultProject)
	}
	if !hasDefault {
		d.warnf("the '%s' project is missing; it will be recreated when needed", model.DefaultProject)
	}
}

// checkTasks flags completion states that disagree with their timestamps.
// The store never writes these, but hand edits can.
func checkTasks(d *Diagnosis, project string, path []int, tasks []model.Task) {
	for i, t := range tasks {
		p := append(append([]int{}, path...), i)
		if t.Completed && t.CompletedAt == nil {
			d.warnf("task %s in project '%s' is completed but has no completion timestamp", FormatPath(p), project)
		}
		if !t.Completed && t.CompletedAt != nil {
			d.warnf("task %s in project '%s' has a completion timestamp but is not completed", FormatPath(p), project)
		}
		checkTasks(d, project, p, t.Subtasks)
	}
}

func appendSchemaErrors(d *Diagnosis, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		d.errorf("%v", err)
		return
	}
	collectSchemaErrors(d, ve)
}

func collectSchemaErrors(d *Diagnosis, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		if loc := jsonPointerToPath(err.InstanceLocation); loc != "" {
			d.errorf("%s: %s", loc, err.Message)
		} else {
			d.errorf("%s", err.Message)
		}
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(d, cause)
	}
}

// jsonPointerToPath converts an RFC 6901 pointer like "/projects/0/tasks/2"
// to the dotted form the rest of the CLI uses: "projects[0].tasks[2]".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
