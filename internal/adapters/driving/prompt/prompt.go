// Package prompt implements a line-oriented annotation prompter.
//
// Each sample is printed as "#N sample: <text>" followed by one question per
// category. Answers are used verbatim apart from the line terminator.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
)

// Ensure Line implements the interface.
var _ driven.Prompter = (*Line)(nil)

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\033[H\033[2J"

// Line asks for category values one line at a time.
type Line struct {
	in    *bufio.Reader
	out   io.Writer
	clear bool
}

// Option configures a Line prompter.
type Option func(*Line)

// WithClear overrides terminal detection for screen clearing.
func WithClear(clear bool) Option {
	return func(l *Line) {
		l.clear = clear
	}
}

// NewLine creates a prompter reading answers from in and writing to out.
// The screen is cleared between samples only when out is a terminal.
func NewLine(in io.Reader, out io.Writer, opts ...Option) *Line {
	l := &Line{
		in:    bufio.NewReader(in),
		out:   out,
		clear: isTerminal(out),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Prompt prints the sample and reads one answer per label.
func (l *Line) Prompt(
	ctx context.Context, index, _ int, sample string, labels []domain.Label,
) (domain.CategoryValues, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.clear && index > 0 {
		fmt.Fprint(l.out, clearScreen)
	}

	fmt.Fprintf(l.out, "#%d sample: %s\n", index+1, sample)
	values := make(domain.CategoryValues, len(labels))
	for _, label := range labels {
		fmt.Fprintf(l.out, "%s: ", label.Prompt())
		answer, err := l.readLine()
		if err != nil {
			return nil, err
		}
		values[label] = answer
	}
	return values, nil
}

// readLine returns the next line without its terminator.
// A final line without a newline is still an answer; EOF before any input is not.
func (l *Line) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: input closed", domain.ErrInterrupted)
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
