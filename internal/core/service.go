package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/csvingest/internal/logging"
	"github.com/google/uuid"
)

// ServiceOptions configures a Service. Zero values fall back to defaults.
type ServiceOptions struct {
	MaxFileSize     int64         // Maximum raw file size in bytes; 0 means unlimited
	MaxConcurrent   int           // Concurrent ingest slots
	MaxWaitTime     time.Duration // How long Ingest waits for a slot
	DefaultEncoding string        // Encoding used when Ingest is given none
}

// Service provides the ingest workflow: read, parse, validate.
type Service struct {
	maxFileSize     int64
	defaultEncoding string
	limiter         *IngestLimiter
}

// NewService creates a new Service instance.
// It fails if the default encoding is not supported.
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.DefaultEncoding == "" {
		opts.DefaultEncoding = DefaultEncoding
	}
	if _, err := LookupEncoding(opts.DefaultEncoding); err != nil {
		return nil, fmt.Errorf("default encoding: %w", err)
	}

	return &Service{
		maxFileSize:     opts.MaxFileSize,
		defaultEncoding: opts.DefaultEncoding,
		limiter:         NewIngestLimiter(opts.MaxConcurrent, opts.MaxWaitTime),
	}, nil
}

// ListDatasets returns every registered dataset sorted by key.
func (s *Service) ListDatasets() []Dataset {
	return All()
}

// Ingest reads f, parses it against the dataset's required columns and, unless
// the parse failed structurally, validates the accepted rows.
//
// An invalid file is not an error: the returned IngestResult carries the
// feedback. Errors are reserved for unknown datasets, a busy limiter, a
// cancelled context and unreadable files (*ReadError).
func (s *Service) Ingest(ctx context.Context, datasetKey string, f File, encoding string) (*IngestResult, error) {
	ds, err := Lookup(datasetKey)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		recordIngest(ds.Key, nil, err)
		return nil, err
	}
	defer s.limiter.Release()

	if encoding == "" {
		encoding = s.defaultEncoding
	}

	result := &IngestResult{
		ID:               uuid.New().String(),
		Dataset:          ds.Key,
		ValidationErrors: []string{},
	}
	if f != nil {
		result.FileName = f.Name()
	}

	log := logging.WithFields(ctx,
		"ingest_id", result.ID,
		"dataset", ds.Key,
		"file", result.FileName,
	)
	log.Info("ingest started", "encoding", encoding)
	start := time.Now()

	text, err := ReadFileAsText(f, ReadOptions{Encoding: encoding, MaxBytes: s.maxFileSize})
	if err != nil {
		log.Warn("ingest read failed", "error", err)
		recordIngest(ds.Key, nil, err)
		return nil, err
	}

	result.Parse = ParseCSV(text, ds.RequiredColumns)
	if !structuralFailure(result.Parse) {
		result.ValidationErrors = ds.Validate(result.Parse.Data)
	}
	result.Valid = result.Parse.Success && len(result.ValidationErrors) == 0
	result.Duration = time.Since(start)

	log.Info("ingest finished",
		"valid", result.Valid,
		"rows", len(result.Parse.Data),
		"parse_errors", len(result.Parse.Errors),
		"validation_errors", len(result.ValidationErrors),
		"duration", result.Duration,
	)
	recordIngest(ds.Key, result, nil)

	return result, nil
}

// LimiterStatus returns the current ingest limiter state.
func (s *Service) LimiterStatus() IngestLimiterStatus {
	return s.limiter.Status()
}

// WaitForIngests blocks until in-flight ingests finish or ctx is done.
func (s *Service) WaitForIngests(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// structuralFailure reports whether the parse stopped before reading any rows.
func structuralFailure(r ParseResult) bool {
	return !r.Success && len(r.Data) == 0 && len(r.Errors) == 1 && !isRowError(r.Errors[0])
}
