package model

import "time"

// Task is one node in a project's task forest. Children live in Subtasks and
// are owned exclusively by their parent; nothing points back up, so the
// structure is a tree by construction.
type Task struct {
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Subtasks    []Task     `json:"subtasks"`
}

// NewTask returns an incomplete task with no subtasks.
func NewTask(text string) Task {
	return Task{
		Text:      text,
		CreatedAt: now(),
		Subtasks:  []Task{},
	}
}

// Complete marks t and every descendant as done. Each node gets its own
// completion stamp, not a shared one.
func (t *Task) Complete() {
	t.Completed = true
	at := now()
	t.CompletedAt = &at
	for i := range t.Subtasks {
		t.Subtasks[i].Complete()
	}
}

// Uncomplete clears the completion state of t and every descendant.
func (t *Task) Uncomplete() {
	t.Completed = false
	t.CompletedAt = nil
	for i := range t.Subtasks {
		t.Subtasks[i].Uncomplete()
	}
}

// ClearCompleted removes completed tasks from the list and, recursively, from
// the subtasks of every survivor. Children of a removed task go with it; an
// incomplete child never rescues a completed parent.
func ClearCompleted(tasks []Task) []Task {
	kept := tasks[:0]
	for _, t := range tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	for i := range kept {
		kept[i].Subtasks = ClearCompleted(kept[i].Subtasks)
	}
	return kept
}

// Count returns the number of tasks in the forest, subtasks included.
func Count(tasks []Task) int {
	n := len(tasks)
	for i := range tasks {
		n += Count(tasks[i].Subtasks)
	}
	return n
}

// Normalize replaces nil subtask lists with empty ones so the serialized form
// always carries "subtasks": []. Hand-edited files may omit the field.
func Normalize(tasks []Task) {
	for i := range tasks {
		if tasks[i].Subtasks == nil {
			tasks[i].Subtasks = []Task{}
		}
		Normalize(tasks[i].Subtasks)
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
