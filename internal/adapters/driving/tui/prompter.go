package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/nerset/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
)

// Ensure Prompter implements the interface.
var _ driven.Prompter = (*Prompter)(nil)

// Prompter runs one Form program per sample.
type Prompter struct {
	styles  *styles.Styles
	options []tea.ProgramOption
}

// NewPrompter creates a prompter. Without options the form uses the alternate
// screen on the controlling terminal.
func NewPrompter(opts ...tea.ProgramOption) *Prompter {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return &Prompter{
		styles:  styles.DefaultStyles(),
		options: opts,
	}
}

// Prompt shows the form and waits for it to be submitted or aborted.
func (p *Prompter) Prompt(
	ctx context.Context, index, total int, sample string, labels []domain.Label,
) (domain.CategoryValues, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form := NewForm(index, total, sample, labels, p.styles)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.options...)
	final, err := tea.NewProgram(form, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("running annotation form: %w", err)
	}

	done, ok := final.(*Form)
	if !ok || !done.Submitted() {
		return nil, fmt.Errorf("%w: at sample %d of %d", domain.ErrInterrupted, index+1, total)
	}
	return done.Values(), nil
}
