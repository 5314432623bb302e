// Package domain defines the core entities for nerset.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Label: one of the four fixed entity categories
//   - Annotation: a labelled character span within a sample
//   - AnnotatedEntry: a sample paired with its annotations
//   - Record: a pre-tokenised annotation record (JSON-lines input)
//   - Doc: a tokenised document with token-aligned entities
//   - Run: a recorded serialize or annotate invocation
//
// # Offsets
//
// All character offsets count Unicode code points, not bytes. The
// downstream trainer measures text the same way, so spans computed here
// line up with spans it reads back.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
