package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/nerset/internal/core/domain"
	"github.com/custodia-labs/nerset/internal/core/ports/driven"
	"github.com/custodia-labs/nerset/internal/core/ports/driving"
	"github.com/custodia-labs/nerset/internal/logger"
)

// Ensure TrainsetService implements the interface.
var _ driving.TrainsetService = (*TrainsetService)(nil)

// Command names recorded in run history.
const (
	CommandSerialize = "serialize"
	CommandAnnotate  = "annotate"
)

// TrainsetConfig holds the dependencies of a TrainsetService.
// Runs and Metrics are optional.
type TrainsetConfig struct {
	Tokenizer driven.Tokenizer
	Codec     driven.ContainerCodec
	Samples   driven.SampleLoader
	Records   driven.RecordStore
	Artifacts driven.ArtifactStore
	Prompter  driven.Prompter
	Runs      driven.RunStore
	Metrics   driven.MetricsRecorder
	Matching  domain.MatchingMode
}

// TrainsetService builds training containers from annotations.
type TrainsetService struct {
	codec     driven.ContainerCodec
	samples   driven.SampleLoader
	records   driven.RecordStore
	artifacts driven.ArtifactStore
	runs      driven.RunStore
	metrics   driven.MetricsRecorder
	converter *Converter
	builder   *Builder
	now       func() time.Time
}

// NewTrainsetService creates a new trainset service.
func NewTrainsetService(cfg TrainsetConfig) *TrainsetService {
	assembler := NewRecordAssembler(NewSpanResolver(cfg.Matching))
	return &TrainsetService{
		codec:     cfg.Codec,
		samples:   cfg.Samples,
		records:   cfg.Records,
		artifacts: cfg.Artifacts,
		runs:      cfg.Runs,
		metrics:   cfg.Metrics,
		converter: NewConverter(cfg.Tokenizer, cfg.Metrics),
		builder:   NewBuilder(cfg.Prompter, assembler),
		now:       time.Now,
	}
}

// Serialize converts a JSON-lines annotation file into a container.
func (s *TrainsetService) Serialize(ctx context.Context, req driving.SerializeRequest) (*domain.RunSummary, error) {
	logger.Section("Serialize")
	run := s.startRun(CommandSerialize, req.Source, req.Destination)
	summary, err := s.serialize(ctx, req)
	s.finishRun(ctx, run, summary, err)
	return summary, err
}

func (s *TrainsetService) serialize(ctx context.Context, req driving.SerializeRequest) (*domain.RunSummary, error) {
	if req.Source == "" || req.Destination == "" {
		return nil, fmt.Errorf("%w: source and destination are required", domain.ErrInvalidInput)
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	exists, err := s.artifacts.Exists(req.Source)
	if err != nil {
		return nil, fmt.Errorf("checking source: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, req.Source)
	}
	if err := s.checkDestination(req.Destination, req.Override); err != nil {
		return nil, err
	}

	records, err := s.records.Read(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	logger.Debug("Read %d records from %s", len(records), req.Source)

	docs, err := s.converter.RecordsToDocs(records)
	if err != nil {
		return nil, err
	}
	data, err := s.encodeContainer(docs)
	if err != nil {
		return nil, err
	}
	return s.writeContainer(ctx, docs, data, req.Destination, req.Override)
}

// Annotate prompts for every sample and writes the resulting container.
func (s *TrainsetService) Annotate(ctx context.Context, req driving.AnnotateRequest) (*domain.RunSummary, error) {
	logger.Section("Annotate")
	run := s.startRun(CommandAnnotate, req.Samples, req.Destination)
	summary, err := s.annotate(ctx, req)
	s.finishRun(ctx, run, summary, err)
	return summary, err
}

func (s *TrainsetService) annotate(ctx context.Context, req driving.AnnotateRequest) (*domain.RunSummary, error) {
	if req.Samples == "" || req.Destination == "" {
		return nil, fmt.Errorf("%w: samples and destination are required", domain.ErrInvalidInput)
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if s.samples == nil {
		return nil, errors.New("sample loader not configured")
	}

	samples, err := s.samples.Load(ctx, req.Samples)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded %d samples from %s", len(samples), req.Samples)

	// Refuse before prompting so nobody annotates a session that cannot be saved.
	if err := s.checkDestination(req.Destination, req.Override); err != nil {
		return nil, err
	}
	if req.JSONL != "" {
		if err := s.checkDestination(req.JSONL, req.Override); err != nil {
			return nil, err
		}
	}

	entries, err := s.builder.Run(ctx, samples)
	if err != nil {
		return nil, err
	}

	docs, err := s.converter.EntriesToDocs(entries)
	if err != nil {
		return nil, err
	}

	container, err := s.encodeContainer(docs)
	if err != nil {
		return nil, err
	}
	var records []byte
	if req.JSONL != "" {
		recs := make([]domain.Record, len(docs))
		for i, doc := range docs {
			recs[i] = doc.Record()
		}
		if records, err = s.records.Encode(recs); err != nil {
			return nil, fmt.Errorf("encoding records: %w", err)
		}
	}

	summary, err := s.writeContainer(ctx, docs, container, req.Destination, req.Override)
	if err != nil {
		return nil, err
	}
	if req.JSONL != "" {
		if err := s.artifacts.Write(ctx, req.JSONL, records, req.Override); err != nil {
			// Nothing is kept from a failed session.
			if rmErr := s.artifacts.Remove(context.WithoutCancel(ctx), req.Destination); rmErr != nil {
				logger.Warn("Failed to remove %s: %v", req.Destination, rmErr)
			}
			return nil, fmt.Errorf("writing records: %w", err)
		}
		logger.Info("Wrote %d records to %s", len(docs), req.JSONL)
	}
	return summary, nil
}

// Inspect reads a container back into documents.
func (s *TrainsetService) Inspect(ctx context.Context, path string) ([]*domain.Doc, error) {
	if s.artifacts == nil || s.codec == nil {
		return nil, errors.New("container storage not configured")
	}
	data, err := s.artifacts.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(data)
}

// History returns recorded runs, most recent first.
func (s *TrainsetService) History(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.runs == nil {
		return []domain.Run{}, nil
	}
	return s.runs.List(ctx, limit)
}

func (s *TrainsetService) ready() error {
	switch {
	case s.codec == nil:
		return errors.New("container codec not configured")
	case s.records == nil:
		return errors.New("record store not configured")
	case s.artifacts == nil:
		return errors.New("artifact store not configured")
	}
	return nil
}

func (s *TrainsetService) checkDestination(path string, override bool) error {
	if override {
		return nil
	}
	exists, err := s.artifacts.Exists(path)
	if err != nil {
		return fmt.Errorf("checking destination: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s (use --override to replace it)", domain.ErrDestinationExists, path)
	}
	return nil
}

func (s *TrainsetService) encodeContainer(docs []*domain.Doc) ([]byte, error) {
	defer logger.Timed("encode")()
	data, err := s.codec.Encode(docs)
	if err != nil {
		return nil, fmt.Errorf("encoding container: %w", err)
	}
	return data, nil
}

func (s *TrainsetService) writeContainer(
	ctx context.Context, docs []*domain.Doc, data []byte, path string, override bool,
) (*domain.RunSummary, error) {
	if err := s.artifacts.Write(ctx, path, data, override); err != nil {
		return nil, fmt.Errorf("writing container: %w", err)
	}
	summary := domain.SummariseDocs(docs)
	logger.Info("Wrote %d docs with %d entities to %s", summary.Docs, summary.Entities, path)
	return &summary, nil
}

func (s *TrainsetService) startRun(command, source, destination string) domain.Run {
	return domain.Run{
		ID:          uuid.NewString(),
		Command:     command,
		Source:      source,
		Destination: destination,
		StartedAt:   s.now(),
	}
}

// finishRun records the outcome. History and metrics failures are logged,
// never returned.
func (s *TrainsetService) finishRun(ctx context.Context, run domain.Run, summary *domain.RunSummary, runErr error) {
	// A cancelled session is still recorded.
	ctx = context.WithoutCancel(ctx)
	run.FinishedAt = s.now()
	run.Status = domain.RunSucceeded
	if runErr != nil {
		run.Status = domain.RunFailed
		run.Error = runErr.Error()
	}
	if summary != nil {
		run.Docs = summary.Docs
		run.Entities = summary.Entities
	}

	if s.runs != nil {
		if err := s.runs.Save(ctx, run); err != nil {
			logger.Warn("Failed to record run %s: %v", run.ID, err)
		}
	}
	if s.metrics != nil {
		s.metrics.RunFinished(run.Command, run.Status)
		if err := s.metrics.Flush(); err != nil {
			logger.Warn("Failed to export metrics: %v", err)
		}
	}
}
