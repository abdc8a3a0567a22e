// Package store owns the task forest for every project and its persistence:
// a single JSON document that is read once per invocation and rewritten in
// full after every mutation.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tm-cli/tm/internal/clierr"
	"github.com/tm-cli/tm/internal/filelock"
	"github.com/tm-cli/tm/internal/model"
)

// DataFileName is the JSON document holding every project.
const DataFileName = "tasks.json"

// State is the persisted aggregate: the active project name plus every
// project in storage order.
type State struct {
	CurrentProject string          `json:"current_project"`
	Projects       []model.Project `json:"projects"`
}

// Store keeps the in-memory State synchronized with the data file. Callers
// construct it with New, call Load once, then perform one operation; every
// mutating operation saves before returning.
type Store struct {
	path  string
	state State
}

// New returns a store with the fresh default shape (a single empty "default"
// project), pointing at dataDir/tasks.json. Load replaces the shape if the
// file exists.
func New(dataDir string) *Store {
	return &Store{
		path: filepath.Join(dataDir, DataFileName),
		state: State{
			CurrentProject: model.DefaultProject,
			Projects:       []model.Project{model.NewProject(model.DefaultProject)},
		},
	}
}

// Path returns the location of the data file.
func (s *Store) Path() string { return s.path }

// CurrentProjectName returns the active project's name.
func (s *Store) CurrentProjectName() string { return s.state.CurrentProject }

// Projects returns every project in storage order.
func (s *Store) Projects() []model.Project { return s.state.Projects }

// CurrentTasks returns the active project's root task list.
func (s *Store) CurrentTasks() []model.Task { return *s.currentTasks() }

// Load reads the data file into the store. A missing file keeps the fresh
// default state. An object parses as the current aggregate; an array parses
// as the legacy bare task list, which is wrapped into the default project and
// written back immediately so the file is upgraded in place. Anything else is
// data corruption: the caller must abort rather than overwrite the file.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return clierr.Wrap(clierr.IOFailure, err, "reading data file")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return corruptionErr(nil)
	}

	switch trimmed[0] {
	case '{':
		var st State
		if err := json.Unmarshal(trimmed, &st); err != nil {
			return corruptionErr(err)
		}
		// An object carrying neither field is some other document; healing
		// it to an empty store would overwrite foreign data on save.
		if st.CurrentProject == "" && st.Projects == nil {
			return corruptionErr(nil)
		}
		s.state = st
		s.normalize()
		log.Debug("loaded data file", "path", s.path, "projects", len(s.state.Projects))
		return nil
	case '[':
		var tasks []model.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return corruptionErr(err)
		}
		project := model.NewProject(model.DefaultProject)
		project.Tasks = tasks
		s.state = State{
			CurrentProject: model.DefaultProject,
			Projects:       []model.Project{project},
		}
		s.normalize()
		if err := s.save(); err != nil {
			return err
		}
		log.Debug("migrated legacy data file", "path", s.path, "tasks", model.Count(tasks))
		return nil
	default:
		return corruptionErr(nil)
	}
}

func corruptionErr(cause error) error {
	msg := fmt.Sprintf("invalid data format in %s", DataFileName)
	if cause != nil {
		return clierr.Wrap(clierr.DataCorruption, cause, msg)
	}
	return clierr.New(clierr.DataCorruption, msg)
}

// save rewrites the whole data file. The bytes go to a temp file in the same
// directory and are renamed into place while holding an advisory lock, so an
// interrupted or concurrent invocation cannot leave a torn file. Between
// racing invocations the contract is still last-write-wins.
func (s *Store) save() error {
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return clierr.Wrap(clierr.IOFailure, err, "encoding data file")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return clierr.Wrap(clierr.IOFailure, err, "creating data directory")
	}

	unlock, err := filelock.Lock(s.path + ".lock")
	if err != nil {
		return clierr.Wrap(clierr.IOFailure, err, "locking data file")
	}
	defer func() { _ = unlock() }()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return clierr.Wrap(clierr.IOFailure, err, "writing data file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return clierr.Wrap(clierr.IOFailure, err, "replacing data file")
	}
	log.Debug("saved data file", "path", s.path)
	return nil
}

// normalize repairs holes hand-edited files can introduce: nil task and
// subtask lists become empty lists so the serialized form stays canonical.
func (s *Store) normalize() {
	for i := range s.state.Projects {
		if s.state.Projects[i].Tasks == nil {
			s.state.Projects[i].Tasks = []model.Task{}
		}
		model.Normalize(s.state.Projects[i].Tasks)
	}
}

// currentTasks returns a pointer to the active project's root list. A
// dangling current-project pointer (for example after a crash mid-delete)
// is reset to the default project, which is recreated if even that is gone.
func (s *Store) currentTasks() *[]model.Task {
	if s.projectIndex(s.state.CurrentProject) == -1 {
		s.state.CurrentProject = model.DefaultProject
		if s.projectIndex(model.DefaultProject) == -1 {
			s.state.Projects = append(s.state.Projects, model.NewProject(model.DefaultProject))
		}
	}
	return &s.state.Projects[s.projectIndex(s.state.CurrentProject)].Tasks
}

func (s *Store) projectIndex(name string) int {
	for i := range s.state.Projects {
		if s.state.Projects[i].Name == name {
			return i
		}
	}
	return -1
}
