// Package input provides labelled text inputs for the annotation form.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nerset/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a category label.
type Field struct {
	label     string
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewField creates an unfocused field.
func NewField(label string, s *styles.Styles) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "leave empty if absent"
	ti.CharLimit = 256
	ti.Width = 50

	return &Field{
		label:     label,
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input.
func (f *Field) View() string {
	label := f.styles.FieldLabel.Render(f.label + ":")
	if f.Focused() {
		label = f.styles.FocusedLabel.Render(f.label + ":")
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, f.styles.InputField.Render(f.textinput.View()))
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the field.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Account for label, border and padding
	inputWidth := width - 17
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}
