// Package tui implements the annotation prompter as a bubbletea form.
//
// Each sample gets its own short-lived program on the alternate screen, so
// the terminal is clean between samples and restored when the session ends.
package tui
