// Package render formats store contents for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tm-cli/tm/internal/model"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	markerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var colorEnabled = true

// DisableColor strips all styling and pins the color profile to plain ASCII.
func DisableColor() {
	doneStyle = lipgloss.NewStyle()
	pendingStyle = lipgloss.NewStyle()
	currentStyle = lipgloss.NewStyle()
	markerStyle = lipgloss.NewStyle()
	okStyle = lipgloss.NewStyle()
	warnStyle = lipgloss.NewStyle()
	failStyle = lipgloss.NewStyle()
	labelStyle = lipgloss.NewStyle()
	colorEnabled = false
	lipgloss.SetColorProfile(termenv.Ascii)
}

// TaskTree writes the task forest, one line per task, indented two spaces per
// level starting three levels in. Indices restart at zero on every level.
func TaskTree(w io.Writer, tasks []model.Task, depth int) {
	indent := strings.Repeat("  ", depth+3)
	for i, t := range tasks {
		status := pendingStyle.Render("○")
		if t.Completed {
			status = doneStyle.Render("✓")
		}
		fmt.Fprintf(w, "%s[%s]  %d.  %s\n", indent, status, i, t.Text)
		if len(t.Subtasks) > 0 {
			TaskTree(w, t.Subtasks, depth+1)
		}
	}
}

// TaskList writes the full list view: the current project header followed by
// the task tree, padded with the blank lines the layout depends on.
func TaskList(w io.Writer, current string, tasks []model.Task) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "      Current: %s\n", currentStyle.Render(current))
	fmt.Fprintln(w)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "      list is empty.")
	} else {
		TaskTree(w, tasks, 0)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}

// ProjectList writes one line per project and marks the current one.
func ProjectList(w io.Writer, current string, projects []model.Project) {
	for _, p := range projects {
		marker := "   "
		if p.Name == current {
			marker = markerStyle.Render(" * ")
		}
		fmt.Fprintf(w, "%s%s\n", marker, p.Name)
	}
}

// Markdown renders markdown for the terminal.
func Markdown(content string) (string, error) {
	style := glamour.WithAutoStyle()
	if !colorEnabled {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// OK styles a healthy diagnostic line.
func OK(s string) string { return okStyle.Render(s) }

// Warn styles a warning diagnostic line.
func Warn(s string) string { return warnStyle.Render(s) }

// Fail styles a failing diagnostic line.
func Fail(s string) string { return failStyle.Render(s) }

// Label styles a field label.
func Label(s string) string { return labelStyle.Render(s) }
