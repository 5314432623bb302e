package driven

import (
	"context"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

// Prompter shows a sample to a person and collects one value per label.
// Implementations own the terminal: they display the sample, read the
// answers and clear the screen before the next sample.
type Prompter interface {
	// Prompt asks for the category values of sample number index (0-based)
	// out of total. Returns domain.ErrInterrupted if the user aborts.
	Prompt(ctx context.Context, index, total int, sample string, labels []domain.Label) (domain.CategoryValues, error)
}
