// Package memory provides in-memory implementations of driven ports.
//
// The stores keep everything in process memory and lose it on exit. They
// back tests and runs where history is disabled.
package memory
