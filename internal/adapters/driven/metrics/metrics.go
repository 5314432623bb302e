// Package metrics records conversion counters with Prometheus.
//
// Counters live on a private registry. When a textfile path is configured
// the registry is written there after every run, in the format read by the
// node-exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.MetricsRecorder = (*Recorder)(nil)

// Recorder is a Prometheus-backed driven.MetricsRecorder.
type Recorder struct {
	registry *prometheus.Registry
	textfile string

	runsTotal              *prometheus.CounterVec
	docsTotal              prometheus.Counter
	entitiesTotal          *prometheus.CounterVec
	alignmentFailuresTotal prometheus.Counter
}

// New creates a recorder. An empty textfile disables export.
func New(textfile string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		textfile: textfile,
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nerset_runs_total",
				Help: "Count of serialize and annotate runs",
			},
			[]string{"command", "status"},
		),
		docsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "nerset_docs_total",
				Help: "Number of documents converted",
			},
		),
		entitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nerset_entities_total",
				Help: "Number of entities aligned to tokens",
			},
			[]string{"label"},
		),
		alignmentFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "nerset_alignment_failures_total",
				Help: "Number of spans that did not align to token boundaries",
			},
		),
	}
	r.registry.MustRegister(r.runsTotal, r.docsTotal, r.entitiesTotal, r.alignmentFailuresTotal)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// DocConverted counts a document and its entities.
func (r *Recorder) DocConverted(doc *domain.Doc) {
	r.docsTotal.Inc()
	for _, ent := range doc.Entities {
		r.entitiesTotal.WithLabelValues(ent.Label).Inc()
	}
}

// AlignmentFailed counts a misaligned span.
func (r *Recorder) AlignmentFailed() {
	r.alignmentFailuresTotal.Inc()
}

// RunFinished counts a completed run.
func (r *Recorder) RunFinished(command string, status domain.RunStatus) {
	r.runsTotal.WithLabelValues(command, string(status)).Inc()
}

// Flush writes the registry to the textfile, if one is configured.
func (r *Recorder) Flush() error {
	if r.textfile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.textfile), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
