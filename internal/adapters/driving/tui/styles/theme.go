// Package styles provides colour themes and styling for the annotation form
// and entity highlighting.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

// Theme defines the colour palette.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Labels maps each entity label to its highlight colour.
	Labels map[domain.Label]lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
		Labels: map[domain.Label]lipgloss.Color{
			domain.LabelType:      lipgloss.Color("#A6E3A1"), // Green
			domain.LabelPrice:     lipgloss.Color("#F9E2AF"), // Yellow
			domain.LabelMaterial:  lipgloss.Color("#89B4FA"), // Blue
			domain.LabelBoardgame: lipgloss.Color("#FAB387"), // Peach
		},
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Sample frames the text being annotated.
	Sample lipgloss.Style

	// FieldLabel is the label of an unfocused input.
	FieldLabel lipgloss.Style

	// FocusedLabel is the label of the focused input.
	FocusedLabel lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	entities map[domain.Label]lipgloss.Style
	fallback lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	s := &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Sample: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Foreground).
			Padding(0, 1),

		FieldLabel: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(11),

		FocusedLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary).
			Width(11),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		entities: make(map[domain.Label]lipgloss.Style, len(theme.Labels)),
		fallback: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
	}
	for label, colour := range theme.Labels {
		s.entities[label] = lipgloss.NewStyle().Bold(true).Foreground(colour)
	}
	return s
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Entity returns the highlight style for a label.
// Labels outside the theme share the primary colour.
func (s *Styles) Entity(label string) lipgloss.Style {
	if style, ok := s.entities[domain.Label(label)]; ok {
		return style
	}
	return s.fallback
}

// Highlight renders the document text with each entity shown as
// "[text LABEL]" in its label colour.
func (s *Styles) Highlight(doc *domain.Doc) string {
	var b strings.Builder
	next := 0
	for _, ent := range doc.Entities {
		for i := next; i < ent.Start; i++ {
			writeToken(&b, doc.Tokens[i])
		}
		b.WriteString(s.Entity(ent.Label).Render("[" + doc.EntityText(ent) + " " + ent.Label + "]"))
		if doc.Tokens[ent.End-1].SpaceAfter {
			b.WriteByte(' ')
		}
		next = ent.End
	}
	for i := next; i < len(doc.Tokens); i++ {
		writeToken(&b, doc.Tokens[i])
	}
	return b.String()
}

func writeToken(b *strings.Builder, tok domain.Token) {
	b.WriteString(tok.Text)
	if tok.SpaceAfter {
		b.WriteByte(' ')
	}
}
