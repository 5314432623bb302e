package domain

import "errors"

// Domain errors represent conversion failures.
// None of them are retried; each one aborts the current run.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file type or setting value nerset cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Annotation Errors.

	// ErrSubstringNotFound indicates a category value does not occur verbatim in the sample.
	ErrSubstringNotFound = errors.New("substring not found in text")

	// ErrInvalidSpan indicates a span is empty, reversed or outside the text.
	ErrInvalidSpan = errors.New("invalid span")

	// ErrMisalignedSpan indicates a character span does not fall on token boundaries.
	ErrMisalignedSpan = errors.New("span does not align to token boundaries")

	// ErrOverlappingEntities indicates two entities of the same document share a token.
	ErrOverlappingEntities = errors.New("overlapping entities")

	// ErrTokenMismatch indicates record tokens cannot be aligned with the record text.
	ErrTokenMismatch = errors.New("tokens do not match text")

	// File Errors.

	// ErrSourceNotFound indicates the input file does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrDestinationExists indicates the output file exists and override was not requested.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrCorruptContainer indicates a training container could not be decoded.
	ErrCorruptContainer = errors.New("corrupt container")

	// ErrInterrupted indicates the user aborted an interactive session.
	ErrInterrupted = errors.New("interrupted")
)
