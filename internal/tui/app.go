// Package tui provides the full-screen terminal interface for carcare.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/carcare/internal/garage"
	"github.com/fentz26/carcare/internal/log"
	"github.com/fentz26/carcare/internal/models"
	"github.com/fentz26/carcare/internal/schedule"
	"github.com/fentz26/carcare/internal/store"
	"github.com/fsnotify/fsnotify"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#6366F1")
	successColor   = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	fgColor        = lipgloss.Color("#F9FAFB")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	recItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)
)

type mode int

const (
	modeList mode = iota
	modeVehicle
	modeRecommend
	modeCustom
	modeCommand
)

type savedMsg struct {
	err error
}

type fileChangedMsg struct {
	op fsnotify.Op
}

// App is the main TUI application model.
type App struct {
	svc         *garage.Service
	tasks       *TaskListModel
	cmdBar      *CmdBarModel
	suggestions *Suggestions
	form        *FormModel
	recs        []models.Recommendation
	recIdx      int
	mode        mode
	message     string
	isError     bool
	confirmQuit bool
	width       int
	height      int
	changes     chan fsnotify.Op
}

// New creates a new TUI application over a session.
func New(svc *garage.Service) *App {
	a := &App{
		svc:         svc,
		tasks:       NewTaskListModel(),
		cmdBar:      NewCmdBarModel(),
		suggestions: NewSuggestions(),
		mode:        modeList,
	}
	a.tasks.SetTasks(svc.Tasks())
	return a
}

// Run starts the TUI and watches the task file for outside changes until the
// program exits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.changes = make(chan fsnotify.Op, 1)
	err := store.Watch(ctx, a.svc.Store().Path(), func(op fsnotify.Op) {
		select {
		case a.changes <- op:
		default:
		}
	})
	if err != nil {
		log.Warn().Err(err).Msg("task file watch disabled")
		a.changes = nil
	}

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.waitForChange()
}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	ch := a.changes
	return func() tea.Msg {
		op, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{op: op}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tasks.SetSize(msg.Width, max(msg.Height-6, 5))
		return a, nil

	case savedMsg:
		path := a.svc.Store().Path()
		if msg.err != nil {
			a.setError(fmt.Sprintf("Failed to save tasks to '%s': %v", path, msg.err))
		} else {
			a.setStatus(fmt.Sprintf("Tasks saved to '%s' successfully.", path))
		}
		return a, nil

	case fileChangedMsg:
		if a.svc.Store().ExternallyModified() {
			a.setError(fmt.Sprintf("'%s' changed on disk. Saving will overwrite it.", a.svc.Store().Path()))
		}
		return a, a.waitForChange()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.mode {
		case modeVehicle:
			return a, a.updateVehicleForm(msg)
		case modeCustom:
			return a, a.updateCustomForm(msg)
		case modeRecommend:
			return a, a.updateRecommend(msg)
		case modeCommand:
			return a, a.updateCommand(msg)
		default:
			return a, a.updateList(msg)
		}
	}

	if a.mode == modeList {
		return a, a.tasks.Update(msg)
	}
	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) tea.Cmd {
	if a.tasks.Filtering() {
		return a.tasks.Update(msg)
	}

	key := msg.String()
	if key != "q" {
		a.confirmQuit = false
	}

	switch key {
	case "q":
		return a.quit()
	case ":":
		a.mode = modeCommand
		a.message = ""
		return a.cmdBar.Focus()
	case "a":
		return a.startAdd()
	case "n":
		return a.startCustom()
	case "c", " ":
		return a.complete(a.selectedNumber())
	case "x", "delete":
		return a.remove(a.selectedNumber())
	case "s":
		return a.save()
	case "f", "tab":
		return a.tasks.CycleFilter()
	}
	return a.tasks.Update(msg)
}

// quit leaves immediately when everything is saved; otherwise the first
// request only warns.
func (a *App) quit() tea.Cmd {
	if a.svc.Unsaved() && !a.confirmQuit {
		a.confirmQuit = true
		a.mode = modeList
		a.setError("Unsaved changes. Press s to save or q again to quit without saving.")
		return nil
	}
	return tea.Quit
}

func (a *App) updateCommand(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.cmdBar.Blur()
		a.suggestions.Update("")
		a.mode = modeList
		return nil
	case "up":
		a.suggestions.Prev()
		return nil
	case "down":
		a.suggestions.Next()
		return nil
	case "tab":
		if sel := a.suggestions.Selected(); sel != nil {
			a.cmdBar.SetValue(sel.Text + " ")
			a.suggestions.Update(a.cmdBar.Value())
		}
		return nil
	case "enter":
		input := a.cmdBar.Submit()
		a.suggestions.Update("")
		a.mode = modeList
		return a.executeCommand(input)
	}
	cmd := a.cmdBar.Update(msg)
	a.suggestions.Update(a.cmdBar.Value())
	return cmd
}

// startAdd shows the recommendation picker, collecting vehicle information
// first if this session has none.
func (a *App) startAdd() tea.Cmd {
	if _, ok := a.svc.Vehicle(); !ok {
		a.form = NewFormModel("Car Information",
			"Car type ("+categoryList()+")",
			"Car year (e.g. 2021)",
			"Car mileage in km (e.g. 30000)")
		a.mode = modeVehicle
		return nil
	}
	recs, err := a.svc.Recommendations()
	if err != nil {
		a.setError(err.Error())
		return nil
	}
	a.recs = recs
	a.recIdx = 0
	a.mode = modeRecommend
	return nil
}

func (a *App) startCustom() tea.Cmd {
	a.form = NewFormModel("Custom Task", "Task item", "Priority (High, Medium, Low)", "Description")
	a.mode = modeCustom
	return nil
}

func categoryList() string {
	var names []string
	for _, c := range schedule.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func (a *App) updateVehicleForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		return nil
	case "shift+tab", "up":
		a.form.Prev()
		return nil
	case "tab", "down", "enter":
		if !a.form.Next() || msg.String() != "enter" {
			return nil
		}
		vals := a.form.Values()
		v, err := parseVehicle(vals[0], vals[1], vals[2])
		if err == nil {
			err = a.svc.SetVehicle(v)
		}
		if err != nil {
			a.form.SetError(fmt.Sprintf("Invalid input: %v. Please try again.", err))
			return nil
		}
		a.setStatus("Car information saved.")
		return a.startAdd()
	}
	return a.form.Update(msg)
}

func parseVehicle(category, year, odometer string) (models.VehicleProfile, error) {
	var v models.VehicleProfile
	cat, err := schedule.ParseCategory(category)
	if err != nil {
		return v, err
	}
	v.Category = cat
	if v.ModelYear, err = strconv.Atoi(year); err != nil {
		return v, fmt.Errorf("car year must be a whole number, got %q", year)
	}
	if v.OdometerKm, err = strconv.Atoi(odometer); err != nil {
		return v, fmt.Errorf("car mileage must be a whole number, got %q", odometer)
	}
	return v, nil
}

func (a *App) updateCustomForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		return nil
	case "shift+tab", "up":
		a.form.Prev()
		return nil
	case "tab", "down", "enter":
		if !a.form.Next() || msg.String() != "enter" {
			return nil
		}
		vals := a.form.Values()
		task := a.svc.AddCustom(vals[0], vals[1], vals[2])
		a.mode = modeList
		a.setStatus(fmt.Sprintf("Task '%s' added successfully.", task.Item))
		return a.refresh()
	}
	return a.form.Update(msg)
}

func (a *App) updateRecommend(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		a.mode = modeList
	case "up", "k":
		if a.recIdx > 0 {
			a.recIdx--
		}
	case "down", "j":
		if a.recIdx < len(a.recs)-1 {
			a.recIdx++
		}
	case "0", "n":
		return a.startCustom()
	case "enter", " ":
		return a.addRecommendation(a.recIdx + 1)
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil {
			return a.addRecommendation(n)
		}
	}
	return nil
}

func (a *App) addRecommendation(n int) tea.Cmd {
	task, err := a.svc.AddRecommendation(n)
	if err != nil {
		a.setError("Invalid number. Please select a valid option.")
		return nil
	}
	a.mode = modeList
	a.setStatus(fmt.Sprintf("Task '%s' added successfully.", task.Item))
	return a.refresh()
}

// selectedNumber returns the 1-based task number of the highlighted row, or 0.
func (a *App) selectedNumber() int {
	sel := a.tasks.SelectedTask()
	if sel == nil {
		return 0
	}
	return a.svc.Store().IndexOf(sel.ID)
}

func (a *App) complete(n int) tea.Cmd {
	task, err := a.svc.Complete(n)
	if err != nil {
		a.setError("Invalid task number. Please try again.")
		return nil
	}
	a.setStatus(fmt.Sprintf("Task '%s' marked as completed.", task.Item))
	return a.refresh()
}

func (a *App) remove(n int) tea.Cmd {
	task, err := a.svc.Remove(n)
	if err != nil {
		a.setError("Invalid task number. Please try again.")
		return nil
	}
	a.setStatus(fmt.Sprintf("Task '%s' removed successfully.", task.Item))
	return a.refresh()
}

func (a *App) save() tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		return savedMsg{err: svc.Save()}
	}
}

func (a *App) refresh() tea.Cmd {
	return a.tasks.SetTasks(a.svc.Tasks())
}

func (a *App) setStatus(msg string) {
	a.message = msg
	a.isError = false
}

func (a *App) setError(msg string) {
	a.message = msg
	a.isError = true
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	header := titleStyle.Render("carcare")
	if v, ok := a.svc.Vehicle(); ok {
		header += lipgloss.NewStyle().Foreground(mutedColor).
			Render(fmt.Sprintf("  %s %d (%d years), %d km", v.Category, v.ModelYear, a.svc.CurrentYear()-v.ModelYear, v.OdometerKm))
	}
	if a.svc.Unsaved() {
		header += "  " + lipgloss.NewStyle().Foreground(warningColor).Render("● unsaved")
	}
	b.WriteString(header + "\n")

	switch a.mode {
	case modeVehicle, modeCustom:
		b.WriteString(panelStyle.Render(a.form.View()))
	case modeRecommend:
		b.WriteString(panelStyle.Render(a.renderRecommendations()))
	default:
		b.WriteString(a.tasks.View())
	}
	b.WriteString("\n")

	if a.mode == modeCommand {
		if s := a.suggestions.Render(a.width); s != "" {
			b.WriteString(s + "\n")
		}
		b.WriteString(a.cmdBar.View() + "\n")
	}

	if a.message != "" {
		color := successColor
		if a.isError {
			color = errorColor
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(a.message) + "\n")
	}

	b.WriteString(statusBarStyle.Render(a.statusLine()))
	return b.String()
}

func (a *App) statusLine() string {
	switch a.mode {
	case modeRecommend:
		return " ↑↓:nav | Enter/1-9:add | 0:custom task | Esc:back"
	case modeVehicle, modeCustom:
		return " Enter:next | Esc:cancel"
	case modeCommand:
		return " Enter:run | Tab:complete | Esc:cancel"
	default:
		return fmt.Sprintf(" Tasks: %d | a:add | n:custom | c:done | x:remove | s:save | f:filter | ::command | q:quit",
			a.svc.Store().Len())
	}
}

func (a *App) renderRecommendations() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recommended Maintenance Tasks"))
	b.WriteString("\n\n")
	for i, r := range a.recs {
		line := fmt.Sprintf("%d. %s - Priority: %s, %s", i+1, r.Item, r.Priority, r.Description)
		if i == a.recIdx {
			b.WriteString(selectedStyle.Render("▶ " + line))
		} else {
			b.WriteString(recItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + helpStyle.Render("Press 0 to skip these and add a custom task."))
	return b.String()
}
