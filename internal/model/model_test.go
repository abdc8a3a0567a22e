package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task := NewTask("buy milk")
	assert.Equal(t, "buy milk", task.Text)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.NotNil(t, task.Subtasks)
	assert.Empty(t, task.Subtasks)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestComplete_Cascades(t *testing.T) {
	task := NewTask("parent")
	task.Subtasks = []Task{NewTask("child")}
	task.Subtasks[0].Subtasks = []Task{NewTask("grandchild")}

	task.Complete()

	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.Subtasks[0].Completed)
	require.NotNil(t, task.Subtasks[0].CompletedAt)
	assert.True(t, task.Subtasks[0].Subtasks[0].Completed)
	require.NotNil(t, task.Subtasks[0].Subtasks[0].CompletedAt)
}

func TestUncomplete_Cascades(t *testing.T) {
	task := NewTask("parent")
	task.Subtasks = []Task{NewTask("child")}
	task.Complete()

	task.Uncomplete()

	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.Subtasks[0].Completed)
	assert.Nil(t, task.Subtasks[0].CompletedAt)
}

func TestClearCompleted_RemovesSubtreesWhole(t *testing.T) {
	// [A(done), B(open, child C(done))] -> [B(open, no children)]
	a := NewTask("A")
	a.Complete()
	c := NewTask("C")
	c.Complete()
	b := NewTask("B")
	b.Subtasks = []Task{c}

	got := ClearCompleted([]Task{a, b})

	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Text)
	assert.Empty(t, got[0].Subtasks)
}

func TestClearCompleted_DoesNotRescueChildren(t *testing.T) {
	// An incomplete child under a completed parent disappears with the parent.
	parent := NewTask("parent")
	parent.Subtasks = []Task{NewTask("open child")}
	parent.Complete()
	parent.Subtasks[0].Uncomplete()

	got := ClearCompleted([]Task{parent})
	assert.Empty(t, got)
}

func TestClearCompleted_KeepsOrder(t *testing.T) {
	a := NewTask("a")
	done := NewTask("done")
	done.Complete()
	b := NewTask("b")

	got := ClearCompleted([]Task{a, done, b})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
}

func TestCount(t *testing.T) {
	root := NewTask("root")
	root.Subtasks = []Task{NewTask("c1"), NewTask("c2")}
	root.Subtasks[0].Subtasks = []Task{NewTask("g1")}

	assert.Equal(t, 4, Count([]Task{root}))
	assert.Equal(t, 0, Count(nil))
}

func TestNormalize(t *testing.T) {
	tasks := []Task{{Text: "bare", Subtasks: []Task{{Text: "child"}}}}

	Normalize(tasks)

	assert.NotNil(t, tasks[0].Subtasks)
	assert.NotNil(t, tasks[0].Subtasks[0].Subtasks)
}

func TestNewProject(t *testing.T) {
	p := NewProject("work")
	assert.Equal(t, "work", p.Name)
	assert.NotNil(t, p.Tasks)
	assert.Empty(t, p.Tasks)
	assert.False(t, p.CreatedAt.IsZero())
}
