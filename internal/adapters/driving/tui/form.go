package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/nerset/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/nerset/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/nerset/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nerset/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nerset/internal/core/domain"
)

// Form asks for one value per label for a single sample.
type Form struct {
	index  int
	total  int
	sample string
	labels []domain.Label

	fields []*input.Field
	focus  int

	styles *styles.Styles
	keys   *keymap.KeyMap
	status *status.Bar
	width  int

	submitted bool
	cancelled bool
}

// NewForm creates a form for sample number index (0-based) of total.
// The first field is focused.
func NewForm(index, total int, sample string, labels []domain.Label, s *styles.Styles) *Form {
	if s == nil {
		s = styles.DefaultStyles()
	}
	keys := keymap.DefaultKeyMap()

	f := &Form{
		index:  index,
		total:  total,
		sample: sample,
		labels: labels,
		fields: make([]*input.Field, len(labels)),
		styles: s,
		keys:   keys,
		status: status.NewBar(s, keys),
		width:  80,
	}
	for i, label := range labels {
		f.fields[i] = input.NewField(label.Prompt(), s)
	}
	if len(f.fields) > 0 {
		f.fields[0].Focus()
	}
	f.status.SetProgress(index+1, total)
	return f
}

// Init starts the cursor blink.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key and window messages.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.setWidth(msg.Width)
		return f, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, f.keys.Cancel):
			f.cancelled = true
			f.status.SetMessage("Annotation aborted")
			return f, tea.Quit
		case keymap.Matches(keyStr, f.keys.Next):
			if f.focus >= len(f.fields)-1 {
				f.submitted = true
				return f, tea.Quit
			}
			return f, f.focusField(f.focus + 1)
		case keymap.Matches(keyStr, f.keys.Down):
			return f, f.focusField(f.focus + 1)
		case keymap.Matches(keyStr, f.keys.Up):
			return f, f.focusField(f.focus - 1)
		}
	}

	if len(f.fields) == 0 {
		return f, nil
	}
	_, cmd := f.fields[f.focus].Update(msg)
	return f, cmd
}

// View renders the sample, the fields and the status bar.
func (f *Form) View() string {
	if f.submitted || f.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(f.styles.Title.Render(fmt.Sprintf("#%d sample", f.index+1)))
	b.WriteString("\n")
	b.WriteString(f.styles.Sample.Width(f.width - 2).Render(f.sample))
	b.WriteString("\n\n")
	for _, field := range f.fields {
		b.WriteString(field.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.status.View())
	return b.String()
}

// Values returns the current answers keyed by label.
func (f *Form) Values() domain.CategoryValues {
	values := make(domain.CategoryValues, len(f.labels))
	for i, label := range f.labels {
		values[label] = f.fields[i].Value()
	}
	return values
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int {
	return f.focus
}

// Submitted reports whether the last field was confirmed.
func (f *Form) Submitted() bool {
	return f.submitted
}

// Cancelled reports whether the user aborted.
func (f *Form) Cancelled() bool {
	return f.cancelled
}

// focusField moves focus, clamped to the field range.
func (f *Form) focusField(i int) tea.Cmd {
	if i < 0 || i >= len(f.fields) || i == f.focus {
		return nil
	}
	f.fields[f.focus].Blur()
	f.focus = i
	return f.fields[i].Focus()
}

func (f *Form) setWidth(width int) {
	if width <= 0 {
		return
	}
	f.width = width
	for _, field := range f.fields {
		field.SetWidth(width)
	}
	f.status.SetWidth(width)
}
