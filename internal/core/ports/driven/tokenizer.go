package driven

import "github.com/custodia-labs/nerset/internal/core/domain"

// Tokenizer splits text into tokens.
// Token offsets count characters and concatenating the tokens with their
// trailing spaces must reproduce the input text exactly.
type Tokenizer interface {
	// Tokenize returns the tokens of text in order.
	Tokenize(text string) ([]domain.Token, error)

	// Name identifies the tokenizer in logs and run history.
	Name() string
}
