// Package tui implements the interactive task tree view.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tm-cli/tm/internal/model"
	"github.com/tm-cli/tm/internal/store"
)

// view represents the current screen state.
type view int

const (
	viewTree view = iota
	viewConfirmDelete
	viewAdd
)

const keyEsc = "esc"

// quitKeys works in every view; view-specific keys are matched by string.
var quitKeys = key.NewBinding(key.WithKeys("ctrl+c"))

// Tree is the top-level bubbletea model: the current project's tasks
// flattened into selectable rows.
type Tree struct {
	st     *store.Store
	rows   []row
	cursor int
	scroll int
	view   view
	width  int
	height int
	err    error

	// Delete confirmation.
	deletePath []int
	deleteText string

	// Add input.
	input      textinput.Model
	parentPath []int
}

// row is one visible line of the tree.
type row struct {
	path  []int
	depth int
	task  model.Task
}

// NewTree creates the model over an already loaded store.
func NewTree(st *store.Store) *Tree {
	ti := textinput.New()
	ti.Placeholder = "task text"
	ti.CharLimit = 256

	t := &Tree{st: st, input: ti}
	t.rebuild()
	return t
}

// Init implements tea.Model.
func (m *Tree) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Tree) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.ensureVisible()
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	}
	if m.view == viewAdd {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Tree) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.view == viewConfirmDelete {
		return m.viewDeleteConfirm()
	}
	return m.viewTree()
}

func (m *Tree) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, quitKeys) {
		return m, tea.Quit
	}

	switch m.view {
	case viewTree:
		return m.handleTreeKey(msg)
	case viewConfirmDelete:
		return m.handleDeleteKey(msg)
	case viewAdd:
		return m.handleAddKey(msg)
	}
	return m, nil
}

func (m *Tree) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case "g":
		m.cursor = 0
		m.ensureVisible()
	case "G":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
			m.ensureVisible()
		}
	case " ":
		m.toggle()
	case "d":
		if r := m.selectedRow(); r != nil {
			m.deletePath = r.path
			m.deleteText = r.task.Text
			m.view = viewConfirmDelete
		}
	case "a":
		return m, m.startAdd(nil)
	case "A":
		if r := m.selectedRow(); r != nil {
			return m, m.startAdd(r.path)
		}
	case "J":
		m.move("down")
	case "K":
		m.move("up")
	case "r":
		m.reload()
	}
	return m, nil
}

func (m *Tree) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.finish(m.st.Delete(m.deletePath))
		m.view = viewTree
	case "n", "N", keyEsc, "q":
		m.view = viewTree
	}
	return m, nil
}

func (m *Tree) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text != "" {
			m.finish(m.st.Add(m.parentPath, text))
		}
		m.view = viewTree
		m.input.Blur()
		return m, nil
	case keyEsc:
		m.view = viewTree
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Tree) startAdd(parent []int) tea.Cmd {
	m.parentPath = parent
	m.input.SetValue("")
	m.view = viewAdd
	return m.input.Focus()
}

func (m *Tree) toggle() {
	r := m.selectedRow()
	if r == nil {
		return
	}
	if r.task.Completed {
		m.finish(m.st.Uncomplete(r.path))
	} else {
		m.finish(m.st.Complete(r.path))
	}
}

func (m *Tree) move(direction string) {
	r := m.selectedRow()
	if r == nil {
		return
	}
	if err := m.st.Move(r.path, direction); err != nil {
		m.err = err
		return
	}

	// Follow the task to its new slot.
	last := r.path[len(r.path)-1]
	newPath := append(append([]int{}, r.path[:len(r.path)-1]...), last+1)
	if direction == "up" {
		newPath[len(newPath)-1] = last - 1
	}
	m.err = nil
	m.rebuild()
	if i := m.rowIndex(newPath); i >= 0 {
		m.cursor = i
		m.ensureVisible()
	}
}

// finish applies the outcome of a store mutation to the model.
func (m *Tree) finish(err error) {
	m.err = err
	m.rebuild()
}

// reload re-reads the data file, for example after another tm invocation
// changed it.
func (m *Tree) reload() {
	m.err = m.st.Load()
	m.rebuild()
}

// rebuild re-flattens the current project into rows and clamps the cursor.
func (m *Tree) rebuild() {
	m.rows = flatten(nil, 0, m.st.CurrentTasks())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func flatten(prefix []int, depth int, tasks []model.Task) []row {
	var rows []row
	for i, t := range tasks {
		path := append(append([]int{}, prefix...), i)
		rows = append(rows, row{path: path, depth: depth, task: t})
		rows = append(rows, flatten(path, depth+1, t.Subtasks)...)
	}
	return rows
}

func (m *Tree) selectedRow() *row {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return &m.rows[m.cursor]
	}
	return nil
}

func (m *Tree) rowIndex(path []int) int {
	for i := range m.rows {
		if pathEqual(m.rows[i].path, path) {
			return i
		}
	}
	return -1
}

func pathEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// chromeHeight is the number of lines consumed by non-row elements: header,
// the blank line under it, the blank line above the status bar, and the bar
// itself (plus an error line when one is shown).
func (m *Tree) chromeHeight() int {
	h := 4
	if m.err != nil {
		h++
	}
	return h
}

func (m *Tree) visibleRows() int {
	n := m.height - m.chromeHeight()
	if n < 1 {
		return 1
	}
	return n
}

// ensureVisible adjusts the scroll offset so the cursor row stays on screen.
func (m *Tree) ensureVisible() {
	if m.height == 0 {
		return
	}
	vis := m.visibleRows()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+vis {
		m.scroll = m.cursor - vis + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to refresh the tree.
type ReloadMsg struct{}

// --- Styles ---

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("238"))

	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	openStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// --- View rendering ---

func (m *Tree) viewTree() string {
	header := headerStyle.Render(fmt.Sprintf("tm: %s", m.st.CurrentProjectName()))

	var body strings.Builder
	if len(m.rows) == 0 {
		body.WriteString(dimStyle.Render("  list is empty. press a to add a task."))
		body.WriteString("\n")
	}

	vis := m.visibleRows()
	end := m.scroll + vis
	if end > len(m.rows) {
		end = len(m.rows)
	}
	if m.scroll > 0 {
		body.WriteString(dimStyle.Render(fmt.Sprintf("  ↑ %d more", m.scroll)))
		body.WriteString("\n")
	}
	for i := m.scroll; i < end; i++ {
		body.WriteString(m.renderRow(i))
		body.WriteString("\n")
	}
	if end < len(m.rows) {
		body.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.rows)-end)))
		body.WriteString("\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "", strings.TrimRight(body.String(), "\n"), "", m.renderStatusBar())
}

func (m *Tree) renderRow(i int) string {
	r := m.rows[i]

	box := openStyle.Render("○")
	if r.task.Completed {
		box = doneStyle.Render("✓")
	}

	gutter := "  "
	if i == m.cursor {
		gutter = cursorStyle.Render("> ")
	}

	text := r.task.Text
	if r.task.Completed {
		text = dimStyle.Render(text)
	}

	line := fmt.Sprintf("%s%s[%s] %s", gutter, strings.Repeat("  ", r.depth), box, text)
	return truncate(line, m.width)
}

func (m *Tree) renderStatusBar() string {
	var bar string
	if m.view == viewAdd {
		label := "add task: "
		if len(m.parentPath) > 0 {
			label = fmt.Sprintf("add subtask to %s: ", store.FormatPath(m.parentPath))
		}
		bar = label + m.input.View()
	} else {
		bar = statusBarStyle.Render(truncate(
			fmt.Sprintf(" %d tasks | space:toggle a:add A:subtask J/K:reorder d:delete r:reload q:quit",
				len(m.rows)), m.width))
	}

	if m.err != nil {
		errLine := errorStyle.Render(truncate("Error: "+m.err.Error(), m.width))
		return errLine + "\n" + bar
	}
	return bar
}

func (m *Tree) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  %s: %s", store.FormatPath(m.deletePath), m.deleteText) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := maxLen - 3
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
