// Package tokenizer groups the driven.Tokenizer adapters.
//
// The rule subpackage is a grapheme-aware word tokenizer tuned for short
// Spanish product descriptions. The pretrained subpackage loads a
// HuggingFace tokenizer.json and derives words from its offsets.
package tokenizer
