package store

import (
	"github.com/tm-cli/tm/internal/clierr"
	"github.com/tm-cli/tm/internal/model"
)

// CreateProject registers a new empty project. The current project does not
// change.
func (s *Store) CreateProject(name string) error {
	if s.projectIndex(name) >= 0 {
		return clierr.Newf(clierr.AlreadyExists, "project '%s' already exists", name)
	}
	s.state.Projects = append(s.state.Projects, model.NewProject(name))
	return s.save()
}

// SwitchProject makes name the current project.
func (s *Store) SwitchProject(name string) error {
	if s.projectIndex(name) < 0 {
		return projectNotFoundErr(name)
	}
	s.state.CurrentProject = name
	return s.save()
}

// DeleteProject removes a project and all of its tasks. The default project
// is protected; deleting the current project switches back to the default.
func (s *Store) DeleteProject(name string) error {
	if name == model.DefaultProject {
		return clierr.New(clierr.Protected, "the default project cannot be deleted")
	}
	i := s.projectIndex(name)
	if i < 0 {
		return projectNotFoundErr(name)
	}
	s.state.Projects = append(s.state.Projects[:i], s.state.Projects[i+1:]...)
	if s.state.CurrentProject == name {
		s.state.CurrentProject = model.DefaultProject
	}
	return s.save()
}

func projectNotFoundErr(name string) error {
	return clierr.Newf(clierr.NotFound, "project '%s' not found", name)
}
