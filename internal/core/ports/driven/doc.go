// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Tokenizer: Splits raw samples into tokens with character offsets
//   - ContainerCodec: Encodes documents into the training container format
//   - SampleLoader: Reads raw samples (plain text, delimited, spreadsheets)
//   - RecordStore: Reads and writes JSON-lines annotation records
//   - ArtifactStore: Reads and writes whole files, honouring the override flag
//   - Prompter: Asks the annotator for category values
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Run history. Without it, runs are not recorded.
//   - MetricsRecorder: Run counters. Without it, nothing is exported.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
