package store

import (
	"strconv"
	"strings"

	"github.com/tm-cli/tm/internal/clierr"
	"github.com/tm-cli/tm/internal/model"
)

// FormatPath renders a zero-based index path the way the CLI prints it:
// indices joined with dots.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// resolveList descends parentPath through the current project's forest and
// returns the task list those indices lead to. An empty path is the root
// list itself.
func (s *Store) resolveList(parentPath []int) (*[]model.Task, bool) {
	list := s.currentTasks()
	for _, i := range parentPath {
		if i < 0 || i >= len(*list) {
			return nil, false
		}
		list = &(*list)[i].Subtasks
	}
	return list, true
}

// findTask resolves path to a single task. An empty path never names a task.
func (s *Store) findTask(path []int) (*model.Task, bool) {
	if len(path) == 0 {
		return nil, false
	}
	list, ok := s.resolveList(path[:len(path)-1])
	if !ok {
		return nil, false
	}
	i := path[len(path)-1]
	if i < 0 || i >= len(*list) {
		return nil, false
	}
	return &(*list)[i], true
}

// Add appends a new incomplete task: to the current project's root list when
// path is empty, otherwise to the subtasks of the task path resolves to.
func (s *Store) Add(path []int, text string) error {
	task := model.NewTask(text)
	if len(path) == 0 {
		list := s.currentTasks()
		*list = append(*list, task)
		return s.save()
	}
	parent, ok := s.findTask(path)
	if !ok {
		return clierr.Newf(clierr.NotFound, "parent item at path %s not found", FormatPath(path))
	}
	parent.Subtasks = append(parent.Subtasks, task)
	return s.save()
}

// Complete marks the task at path, and every task below it, as done.
func (s *Store) Complete(path []int) error {
	task, ok := s.findTask(path)
	if !ok {
		return notFoundErr(path)
	}
	task.Complete()
	return s.save()
}

// Uncomplete clears the completion state of the task at path and every task
// below it.
func (s *Store) Uncomplete(path []int) error {
	task, ok := s.findTask(path)
	if !ok {
		return notFoundErr(path)
	}
	task.Uncomplete()
	return s.save()
}

// Delete removes the task at path together with its whole subtree.
func (s *Store) Delete(path []int) error {
	if len(path) == 0 {
		return notFoundErr(path)
	}
	list, ok := s.resolveList(path[:len(path)-1])
	if !ok {
		return notFoundErr(path)
	}
	i := path[len(path)-1]
	if i < 0 || i >= len(*list) {
		return notFoundErr(path)
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	return s.save()
}

// ClearCompleted removes every completed task at every depth of the current
// project. Children of a removed task are removed with it.
func (s *Store) ClearCompleted() error {
	list := s.currentTasks()
	*list = model.ClearCompleted(*list)
	return s.save()
}

// ClearAll empties the current project's task list unconditionally.
func (s *Store) ClearAll() error {
	list := s.currentTasks()
	*list = []model.Task{}
	return s.save()
}

// Move repositions the task at path within its sibling list. The direction is
// case-insensitive: "up", "down", "top", "bottom", or a non-negative integer
// naming the destination index. Repositioning is a two-element swap, and a
// numeric move to the task's own index succeeds without touching the file.
func (s *Store) Move(path []int, direction string) error {
	if len(path) == 0 {
		return notFoundErr(path)
	}
	list, ok := s.resolveList(path[:len(path)-1])
	if !ok {
		return notFoundErr(path)
	}
	index := path[len(path)-1]
	if index < 0 || index >= len(*list) {
		return notFoundErr(path)
	}

	var newIndex int
	switch strings.ToLower(direction) {
	case "up":
		if index == 0 {
			return clierr.Newf(clierr.InvalidDirection, "item at path %s is already at the top", FormatPath(path))
		}
		newIndex = index - 1
	case "down":
		if index >= len(*list)-1 {
			return clierr.Newf(clierr.InvalidDirection, "item at path %s is already at the bottom", FormatPath(path))
		}
		newIndex = index + 1
	case "top":
		if index == 0 {
			return clierr.Newf(clierr.InvalidDirection, "item at path %s is already at the top", FormatPath(path))
		}
		newIndex = 0
	case "bottom":
		if index >= len(*list)-1 {
			return clierr.Newf(clierr.InvalidDirection, "item at path %s is already at the bottom", FormatPath(path))
		}
		newIndex = len(*list) - 1
	default:
		pos, err := strconv.Atoi(direction)
		if err != nil || pos < 0 {
			return clierr.Newf(clierr.InvalidDirection, "invalid move direction %q", direction)
		}
		if pos >= len(*list) {
			return clierr.Newf(clierr.InvalidDirection, "position %d is out of range", pos)
		}
		newIndex = pos
	}

	if newIndex == index {
		return nil
	}
	(*list)[index], (*list)[newIndex] = (*list)[newIndex], (*list)[index]
	return s.save()
}

func notFoundErr(path []int) error {
	return clierr.Newf(clierr.NotFound, "item at path %s not found", FormatPath(path))
}
