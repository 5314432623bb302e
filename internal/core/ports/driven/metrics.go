package driven

import "github.com/custodia-labs/nerset/internal/core/domain"

// MetricsRecorder counts conversion activity.
type MetricsRecorder interface {
	// DocConverted records one converted document and its entities.
	DocConverted(doc *domain.Doc)

	// AlignmentFailed records a span that did not align to tokens.
	AlignmentFailed()

	// RunFinished records the outcome of a run.
	RunFinished(command string, status domain.RunStatus)

	// Flush exports the current values, if an export target is configured.
	Flush() error
}
