package domain

import "time"

// RunStatus is the outcome of a recorded run.
type RunStatus string

const (
	// RunSucceeded indicates the container was written.
	RunSucceeded RunStatus = "succeeded"

	// RunFailed indicates the run aborted before writing.
	RunFailed RunStatus = "failed"
)

// Run is a recorded serialize or annotate invocation.
type Run struct {
	ID          string    `json:"id"`
	Command     string    `json:"command"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Docs        int       `json:"docs"`
	Entities    int       `json:"entities"`
	Status      RunStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunSummary describes what a successful run produced.
type RunSummary struct {
	Docs     int
	Entities int
	Labels   map[string]int
}

// SummariseDocs counts documents, entities and entities per label.
func SummariseDocs(docs []*Doc) RunSummary {
	summary := RunSummary{Docs: len(docs), Labels: make(map[string]int)}
	for _, doc := range docs {
		for _, ent := range doc.Entities {
			summary.Entities++
			summary.Labels[ent.Label]++
		}
	}
	return summary
}
