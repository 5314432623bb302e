package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

func scripted(input string) *Prompter {
	return NewPrompter(
		tea.WithInput(strings.NewReader(input)),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
}

func TestPrompter_Submit(t *testing.T) {
	p := scripted("Orc\r\rPLA\r\r")

	values, err := p.Prompt(context.Background(), 0, 1, "Orc miniature in PLA", domain.Categories())

	require.NoError(t, err)
	assert.Equal(t, "Orc", values.Get(domain.LabelType))
	assert.Empty(t, values.Get(domain.LabelPrice))
	assert.Equal(t, "PLA", values.Get(domain.LabelMaterial))
}

func TestPrompter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scripted("").Prompt(ctx, 0, 1, "Orc", domain.Categories())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPrompter_DefaultsToAltScreen(t *testing.T) {
	p := NewPrompter()

	assert.Len(t, p.options, 1)
	assert.NotNil(t, p.styles)
}
