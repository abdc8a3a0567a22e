package model

import "time"

// DefaultProject is the name of the project every store starts with. It can
// never be deleted.
const DefaultProject = "default"

// Project is a named container of root-level tasks. The name is the identity;
// two projects in one store never share it.
type Project struct {
	Name      string    `json:"name"`
	Tasks     []Task    `json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProject returns an empty project stamped with the current time.
func NewProject(name string) Project {
	return Project{
		Name:      name,
		Tasks:     []Task{},
		CreatedAt: now(),
	}
}
