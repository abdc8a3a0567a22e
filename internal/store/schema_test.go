package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnose_MissingFile(t *testing.T) {
	d := Diagnose(filepath.Join(t.TempDir(), DataFileName))
	assert.True(t, d.Healthy())
	assert.False(t, d.Exists)
	assert.Empty(t, d.Warnings)
}

func TestDiagnose_HealthyFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(nil, "a"))
	require.NoError(t, s.Add([]int{0}, "b"))
	require.NoError(t, s.Complete([]int{0}))
	require.NoError(t, s.CreateProject("work"))

	d := Diagnose(s.path)
	assert.True(t, d.Healthy())
	assert.True(t, d.Exists)
	assert.False(t, d.Legacy)
	assert.Empty(t, d.Warnings)
}

func TestDiagnose_LegacyArray(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, `[{"id": 1, "text": "old", "completed": false}]`)

	d := Diagnose(filepath.Join(dir, DataFileName))
	assert.True(t, d.Healthy())
	assert.True(t, d.Legacy)
	require.NotEmpty(t, d.Warnings)
	assert.Contains(t, d.Warnings[0], "legacy array format")
}

func TestDiagnose_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "")

	d := Diagnose(filepath.Join(dir, DataFileName))
	assert.False(t, d.Healthy())
	assert.Contains(t, d.Errors[0], "empty")
}

func TestDiagnose_NotJSON(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "garbage")

	d := Diagnose(filepath.Join(dir, DataFileName))
	assert.False(t, d.Healthy())
}

func TestDiagnose_WrongFieldType(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, `{"current_project": 5, "projects": []}`)

	d := Diagnose(filepath.Join(dir, DataFileName))
	require.False(t, d.Healthy())
	found := false
	for _, e := range d.Errors {
		if strings.Contains(e, "current_project") {
			found = true
		}
	}
	assert.True(t, found, "expected an error naming current_project, got %v", d.Errors)
}

func TestDiagnose_ForeignObject(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, `{"version": 2}`)

	d := Diagnose(filepath.Join(dir, DataFileName))
	require.False(t, d.Healthy())
	assert.Contains(t, d.Errors[0], "neither")
}

func TestDiagnose_DuplicateProjects(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, `{
		"current_project": "default",
		"projects": [
			{"name": "default", "tasks": [], "created_at": "2024-01-01T00:00:00Z"},
			{"name": "default", "tasks": [], "created_at": "2024-01-01T00:00:00Z"}
		]
	}`)

	d := Diagnose(filepath.Join(dir, DataFileName))
	require.False(t, d.Healthy())
	assert.Contains(t, d.Errors[0], "duplicate project name")
}

func TestDiagnose_DanglingCurrentProject(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, `{
		"current_project": "ghost",
		"projects": [{"name": "default", "tasks": [], "created_at": "2024-01-01T00:00:00Z"}]
	}`)

	d := Diagnose(filepath.Join(dir, DataFileName))
	assert.True(t, d.Healthy())
	require.NotEmpty(t, d.Warnings)
	assert.Contains(t, d.Warnings[0], "ghost")
}

func TestDiagnose_MissingDefault(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, `{
		"current_project": "work",
		"projects": [{"name": "work", "tasks": [], "created_at": "2024-01-01T00:00:00Z"}]
	}`)

	d := Diagnose(filepath.Join(dir, DataFileName))
	assert.True(t, d.Healthy())
	require.NotEmpty(t, d.Warnings)
	assert.Contains(t, d.Warnings[0], "'default' project is missing")
}

func TestDiagnose_CompletionMismatch(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, `{
		"current_project": "default",
		"projects": [{
			"name": "default",
			"created_at": "2024-01-01T00:00:00Z",
			"tasks": [
				{"text": "a", "completed": true, "created_at": "2024-01-01T00:00:00Z", "completed_at": null, "subtasks": []},
				{"text": "b", "completed": false, "created_at": "2024-01-01T00:00:00Z", "completed_at": "2024-01-02T00:00:00Z", "subtasks": []}
			]
		}]
	}`)

	d := Diagnose(filepath.Join(dir, DataFileName))
	assert.True(t, d.Healthy())
	require.Len(t, d.Warnings, 2)
	assert.Contains(t, d.Warnings[0], "task 0")
	assert.Contains(t, d.Warnings[0], "no completion timestamp")
	assert.Contains(t, d.Warnings[1], "task 1")
	assert.Contains(t, d.Warnings[1], "not completed")
}

func TestDiagnose_BadTimestampFormat(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, `{
		"current_project": "default",
		"projects": [{
			"name": "default",
			"created_at": "yesterday",
			"tasks": []
		}]
	}`)

	d := Diagnose(filepath.Join(dir, DataFileName))
	assert.False(t, d.Healthy())
}

func TestJSONPointerToPath(t *testing.T) {
	assert.Equal(t, "projects[0].tasks[2]", jsonPointerToPath("/projects/0/tasks/2"))
	assert.Equal(t, "current_project", jsonPointerToPath("#/current_project"))
	assert.Equal(t, "", jsonPointerToPath(""))
}
