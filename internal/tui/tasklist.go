package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/carcare/internal/models"
)

var (
	listTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusPending   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	statusCompleted = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green

	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true) // Red
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))            // Cyan
	priorityOther  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TaskItem implements list.Item for the task list
type TaskItem struct {
	ID        string
	Number    int
	Item      string
	Priority  string
	Desc      string
	Completed bool
}

func newTaskItem(n int, t models.Task) TaskItem {
	return TaskItem{
		ID:        t.ID,
		Number:    n,
		Item:      t.Item,
		Priority:  t.Priority,
		Desc:      t.Description,
		Completed: t.Completed,
	}
}

func (i TaskItem) FilterValue() string { return i.Item }
func (i TaskItem) Title() string       { return fmt.Sprintf("%d. %s", i.Number, i.Item) }
func (i TaskItem) Description() string {
	line := formatStatus(i.Completed) + " • " + formatPriority(i.Priority)
	if i.Desc != "" {
		line += " • " + i.Desc
	}
	return line
}

func formatStatus(completed bool) string {
	if completed {
		return statusCompleted.Render("● Done")
	}
	return statusPending.Render("○ Pending")
}

func formatPriority(p string) string {
	switch models.Priority(p) {
	case models.PriorityHigh:
		return priorityHigh.Render(p)
	case models.PriorityMedium:
		return priorityMedium.Render(p)
	case "":
		return priorityOther.Render("no priority")
	default:
		return priorityOther.Render(p)
	}
}

// TaskListModel manages the task list screen
type TaskListModel struct {
	list        list.Model
	tasks       []models.Task
	filterIndex int
}

var filterLabels = []string{"all", "pending", "done"}

// NewTaskListModel creates a new task list model
func NewTaskListModel() *TaskListModel {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 80, 20)
	l.Title = "Maintenance Tasks"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = listTitleStyle

	return &TaskListModel{list: l}
}

// SetSize sets the list dimensions
func (m *TaskListModel) SetSize(w, h int) {
	m.list.SetSize(w, h)
}

// SetTasks replaces the listed tasks, keeping the selection on the same task
// when it still exists.
func (m *TaskListModel) SetTasks(tasks []models.Task) tea.Cmd {
	selectedID := ""
	if sel := m.SelectedTask(); sel != nil {
		selectedID = sel.ID
	}
	m.tasks = tasks

	var items []list.Item
	for i, t := range tasks {
		if !m.matchesFilter(t) {
			continue
		}
		items = append(items, newTaskItem(i+1, t))
	}
	cmd := m.list.SetItems(items)

	for i, it := range items {
		if it.(TaskItem).ID == selectedID {
			m.list.Select(i)
			break
		}
	}
	return cmd
}

func (m *TaskListModel) matchesFilter(t models.Task) bool {
	switch filterLabels[m.filterIndex] {
	case "pending":
		return !t.Completed
	case "done":
		return t.Completed
	default:
		return true
	}
}

// SelectedTask returns the currently selected task
func (m *TaskListModel) SelectedTask() *TaskItem {
	if item := m.list.SelectedItem(); item != nil {
		task := item.(TaskItem)
		return &task
	}
	return nil
}

// Filtering reports whether the user is typing a list filter.
func (m *TaskListModel) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// CycleFilter cycles through status filters
func (m *TaskListModel) CycleFilter() tea.Cmd {
	m.filterIndex = (m.filterIndex + 1) % len(filterLabels)
	m.list.Title = fmt.Sprintf("Maintenance Tasks [%s]", filterLabels[m.filterIndex])
	return m.SetTasks(m.tasks)
}

// Update handles messages
func (m *TaskListModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

// View renders the task list
func (m *TaskListModel) View() string {
	if len(m.tasks) == 0 {
		return "\n  No tasks available. Press a to add one.\n"
	}
	return m.list.View()
}
