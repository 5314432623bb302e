package domain

import (
	"fmt"
	"strings"
)

// WordsAndSpaces aligns destructively tokenised words with their original
// text and recovers whitespace.
//
// Whitespace-only words are dropped. Text skipped between words becomes a
// word of its own, a single space directly after a word becomes its
// trailing-space flag, and any text left after the last word becomes a
// final word.
func WordsAndSpaces(words []string, text string) ([]string, []bool, error) {
	if squash(strings.Join(words, "")) != squash(text) {
		return nil, nil, fmt.Errorf("%w: %q", ErrTokenMismatch, text)
	}

	outWords := make([]string, 0, len(words))
	outSpaces := make([]bool, 0, len(words))
	pos := 0
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		idx := strings.Index(text[pos:], w)
		if idx < 0 {
			return nil, nil, fmt.Errorf("%w: word %q not found after offset %d", ErrTokenMismatch, w, pos)
		}
		if idx > 0 {
			outWords = append(outWords, text[pos:pos+idx])
			outSpaces = append(outSpaces, false)
			pos += idx
		}
		outWords = append(outWords, w)
		outSpaces = append(outSpaces, false)
		pos += len(w)
		if pos < len(text) && text[pos] == ' ' {
			outSpaces[len(outSpaces)-1] = true
			pos++
		}
	}
	if pos < len(text) {
		outWords = append(outWords, text[pos:])
		outSpaces = append(outSpaces, false)
	}
	return outWords, outSpaces, nil
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}
