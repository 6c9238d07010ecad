package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var formLabelStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Width(34)

// FormModel is a small stack of labelled text inputs.
type FormModel struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

// NewFormModel creates a form with one input per label, focused on the first.
func NewFormModel(title string, labels ...string) *FormModel {
	f := &FormModel{title: title, labels: labels}
	for range labels {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		f.inputs = append(f.inputs, ti)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Next moves focus forward and reports whether the form was on its last field.
func (f *FormModel) Next() bool {
	if f.focus == len(f.inputs)-1 {
		return true
	}
	f.setFocus(f.focus + 1)
	return false
}

// Prev moves focus back one field.
func (f *FormModel) Prev() {
	if f.focus > 0 {
		f.setFocus(f.focus - 1)
	}
}

func (f *FormModel) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// Values returns the trimmed input values in label order.
func (f *FormModel) Values() []string {
	vals := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		vals[i] = strings.TrimSpace(in.Value())
	}
	return vals
}

// SetError shows a validation message under the form.
func (f *FormModel) SetError(msg string) {
	f.err = msg
}

// Update forwards a message to the focused input.
func (f *FormModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the form.
func (f *FormModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		marker := "  "
		if i == f.focus {
			marker = lipgloss.NewStyle().Foreground(primaryColor).Render("▶ ")
		}
		b.WriteString(marker + formLabelStyle.Render(f.labels[i]) + in.View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(errorColor).Render(f.err) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("Enter: next/submit • Shift+Tab: back • Esc: cancel"))
	return b.String()
}
