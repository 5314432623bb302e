package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

func TestLine_Prompt(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewLine(strings.NewReader("Orc\n\nPLA\n\n"), out)

	values, err := p.Prompt(context.Background(), 0, 3, "Orc miniature in PLA", domain.Categories())

	require.NoError(t, err)
	assert.Equal(t, "Orc", values.Get(domain.LabelType))
	assert.Empty(t, values.Get(domain.LabelPrice))
	assert.Equal(t, "PLA", values.Get(domain.LabelMaterial))
	assert.Empty(t, values.Get(domain.LabelBoardgame))
	assert.Equal(t, "#1 sample: Orc miniature in PLA\nType: Price: Material: Boardgame: ", out.String())
}

func TestLine_Prompt_KeepsSpacesInAnswers(t *testing.T) {
	p := NewLine(strings.NewReader(" Orc \r\n\n\n\n"), new(bytes.Buffer))

	values, err := p.Prompt(context.Background(), 0, 1, "an Orc ", []domain.Label{domain.LabelType})

	require.NoError(t, err)
	assert.Equal(t, " Orc ", values.Get(domain.LabelType))
}

func TestLine_Prompt_FinalLineWithoutNewline(t *testing.T) {
	p := NewLine(strings.NewReader("Orc"), new(bytes.Buffer))

	values, err := p.Prompt(context.Background(), 0, 1, "Orc", []domain.Label{domain.LabelType})

	require.NoError(t, err)
	assert.Equal(t, "Orc", values.Get(domain.LabelType))
}

func TestLine_Prompt_EOFIsInterrupted(t *testing.T) {
	p := NewLine(strings.NewReader("Orc\n"), new(bytes.Buffer))

	_, err := p.Prompt(context.Background(), 0, 1, "Orc", domain.Categories())

	assert.ErrorIs(t, err, domain.ErrInterrupted)
}

func TestLine_Prompt_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := new(bytes.Buffer)
	p := NewLine(strings.NewReader("Orc\n"), out)

	_, err := p.Prompt(ctx, 0, 1, "Orc", domain.Categories())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestLine_Prompt_ClearsBetweenSamples(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewLine(strings.NewReader("a\nb\n"), out, WithClear(true))
	labels := []domain.Label{domain.LabelType}

	_, err := p.Prompt(context.Background(), 0, 2, "first", labels)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), clearScreen)

	_, err = p.Prompt(context.Background(), 1, 2, "second", labels)
	require.NoError(t, err)
	assert.Contains(t, out.String(), clearScreen+"#2 sample: second\n")
}

func TestNewLine_BufferIsNotTerminal(t *testing.T) {
	p := NewLine(strings.NewReader(""), new(bytes.Buffer))

	assert.False(t, p.clear)
}
