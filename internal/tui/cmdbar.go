package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cmdBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// CmdBarModel manages the command input bar
type CmdBarModel struct {
	input   textinput.Model
	focused bool
}

// NewCmdBarModel creates a new command bar
func NewCmdBarModel() *CmdBarModel {
	ti := textinput.New()
	ti.Placeholder = "add <item> | <priority> | <description>, done 2, rm 3, save"
	ti.CharLimit = 256
	ti.Prompt = ""
	return &CmdBarModel{input: ti}
}

// Focus focuses the command bar
func (m *CmdBarModel) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur unfocuses the command bar
func (m *CmdBarModel) Blur() {
	m.focused = false
	m.input.Blur()
	m.input.SetValue("")
}

// Value returns the current input.
func (m *CmdBarModel) Value() string {
	return m.input.Value()
}

// SetValue replaces the input and moves the cursor to the end.
func (m *CmdBarModel) SetValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

// Submit returns the current input and blurs
func (m *CmdBarModel) Submit() string {
	val := m.input.Value()
	m.Blur()
	return val
}

// Update handles messages
func (m *CmdBarModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the command bar
func (m *CmdBarModel) View() string {
	if m.focused {
		return cmdBarStyle.Render(promptStyle.Render(": ") + m.input.View())
	}
	return cmdBarStyle.Render("Press : to enter a command (add, done, rm, recommend, save)")
}

// command is one parsed command bar line.
type command struct {
	name string
	args []string
	rest string
}

func parseCommand(input string) command {
	input = strings.TrimSpace(input)
	name, rest, _ := strings.Cut(input, " ")
	return command{
		name: strings.ToLower(name),
		args: strings.Fields(rest),
		rest: strings.TrimSpace(rest),
	}
}

// taskNumber returns the explicit task number argument, or fallback when the
// command has none.
func (c command) taskNumber(fallback int) (int, error) {
	if len(c.args) == 0 {
		if fallback < 1 {
			return 0, fmt.Errorf("no task selected")
		}
		return fallback, nil
	}
	n, err := strconv.Atoi(c.args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", c.args[0])
	}
	return n, nil
}

// splitCustom splits "item | priority | description" into its parts.
func splitCustom(rest string) (item, priority, description string) {
	parts := strings.SplitN(rest, "|", 3)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	item = parts[0]
	if len(parts) > 1 {
		priority = parts[1]
	}
	if len(parts) > 2 {
		description = parts[2]
	}
	return item, priority, description
}

// executeCommand runs a command bar line against the session.
func (a *App) executeCommand(input string) tea.Cmd {
	c := parseCommand(input)
	switch c.name {
	case "":
		return nil

	case "add":
		if c.rest == "" {
			a.setError("Usage: add <item> [| priority [| description]]")
			return nil
		}
		item, priority, desc := splitCustom(c.rest)
		task := a.svc.AddCustom(item, priority, desc)
		a.setStatus(fmt.Sprintf("Task '%s' added successfully.", task.Item))
		return a.refresh()

	case "done":
		n, err := c.taskNumber(a.selectedNumber())
		if err != nil {
			a.setError(err.Error())
			return nil
		}
		return a.complete(n)

	case "rm":
		n, err := c.taskNumber(a.selectedNumber())
		if err != nil {
			a.setError(err.Error())
			return nil
		}
		return a.remove(n)

	case "recommend":
		return a.startAdd()

	case "vehicle":
		v, ok := a.svc.Vehicle()
		if !ok {
			a.setStatus("Car information is not set yet.")
			return nil
		}
		a.setStatus(fmt.Sprintf("%s, model year %d, %d km", v.Category, v.ModelYear, v.OdometerKm))
		return nil

	case "filter":
		return a.tasks.CycleFilter()

	case "save":
		return a.save()

	case "quit", "q":
		return a.quit()

	default:
		a.setError(fmt.Sprintf("Unknown command: %s", c.name))
		return nil
	}
}
