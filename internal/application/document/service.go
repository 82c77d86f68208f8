// Package document coordinates evidence uploads and AI extraction: object
// bytes go to the document store, metadata to the upload repository, and
// extracted events to the event repository.
package document

import (
	"context"
	"io"
	"time"

	"github.com/BackCheck/justice-unveiled/internal/domain/document"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/prometheus"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/storage/minio"
	"github.com/BackCheck/justice-unveiled/internal/intelligence/extraction"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// extractReadLimit caps how many document bytes are read for extraction.
// The extractor truncates further by character count.
const extractReadLimit = 1 << 20

// Service wires object storage, metadata persistence, and the extraction
// model into the upload and extract operations.
type Service struct {
	uploads   document.UploadRepository
	events    document.EventRepository
	store     minio.DocumentStore
	extractor extraction.Extractor
	logger    logging.Logger
	metrics   *prometheus.AppMetrics
}

// NewService constructs the document service.  The extractor and metrics
// may be nil; extraction then reports unavailable.
func NewService(
	uploads document.UploadRepository,
	events document.EventRepository,
	store minio.DocumentStore,
	extractor extraction.Extractor,
	logger logging.Logger,
	metrics *prometheus.AppMetrics,
) *Service {
	return &Service{
		uploads:   uploads,
		events:    events,
		store:     store,
		extractor: extractor,
		logger:    logger.Named("document"),
		metrics:   metrics,
	}
}

// UploadInput carries one incoming evidence document.
type UploadInput struct {
	CaseID      string
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
	UploadedBy  common.ActorID
}

// Upload stores the document bytes and records its metadata.  If the
// metadata write fails the stored object is removed again.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*document.Upload, error) {
	u, err := document.NewUpload(in.CaseID, in.FileName, in.ContentType, in.SizeBytes, in.UploadedBy)
	if err != nil {
		s.countUpload("rejected")
		return nil, err
	}

	if err := s.store.Put(ctx, u.ObjectKey, in.Body, in.SizeBytes, in.ContentType); err != nil {
		s.countUpload("storage_error")
		return nil, err
	}
	if err := s.uploads.Create(ctx, u); err != nil {
		if rmErr := s.store.Remove(ctx, u.ObjectKey); rmErr != nil {
			s.logger.Error("orphaned object after failed metadata write",
				logging.String("object_key", u.ObjectKey), logging.Err(rmErr))
		}
		s.countUpload("db_error")
		return nil, err
	}

	s.countUpload("ok")
	if s.metrics != nil {
		s.metrics.DocumentUploadBytes.WithLabelValues(in.ContentType).Observe(float64(in.SizeBytes))
	}
	s.logger.Info("document uploaded",
		logging.String("upload_id", string(u.ID)),
		logging.String("case_id", u.CaseID),
		logging.String("file_name", u.FileName),
		logging.Int64("size_bytes", u.SizeBytes))
	return u, nil
}

// Get returns the upload metadata.
func (s *Service) Get(ctx context.Context, id common.ID) (*document.Upload, error) {
	return s.uploads.GetByID(ctx, id)
}

// ListByCase returns the case's upload metadata.
func (s *Service) ListByCase(ctx context.Context, caseID string) ([]*document.Upload, error) {
	return s.uploads.ListByCase(ctx, caseID)
}

// DownloadURL returns a time-limited URL for the stored document.
func (s *Service) DownloadURL(ctx context.Context, id common.ID) (string, error) {
	u, err := s.uploads.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignedGet(ctx, u.ObjectKey, u.FileName)
}

// ExtractResult pairs the persisted events of an extraction run with the
// model's claim suggestions, which are advisory and not persisted.
type ExtractResult struct {
	Events          []*document.ExtractedEvent  `json:"events"`
	SuggestedClaims []extraction.SuggestedClaim `json:"suggested_claims"`
	Model           string                      `json:"model"`
	Truncated       bool                        `json:"truncated"`
}

// Extract reads the stored document, runs the extraction model over its
// text, and persists the resulting events.
func (s *Service) Extract(ctx context.Context, uploadID common.ID) (*ExtractResult, error) {
	if s.extractor == nil {
		return nil, errors.New(errors.ErrCodeExtractionUnavailable, "extraction is not configured")
	}

	u, err := s.uploads.GetByID(ctx, uploadID)
	if err != nil {
		return nil, err
	}

	body, err := s.store.Get(ctx, u.ObjectKey)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	text, err := io.ReadAll(io.LimitReader(body, extractReadLimit))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "document read failed").
			WithDetail(u.ObjectKey)
	}

	start := time.Now()
	result, err := s.extractor.Extract(ctx, extraction.Input{
		CaseID:   u.CaseID,
		UploadID: u.ID,
		Text:     string(text),
	})
	if err != nil {
		s.countExtraction("error")
		return nil, err
	}
	s.countExtraction("ok")
	if s.metrics != nil {
		s.metrics.ExtractionDuration.WithLabelValues(result.Model).Observe(time.Since(start).Seconds())
	}

	events := make([]*document.ExtractedEvent, 0, len(result.Events))
	for _, cand := range result.Events {
		ev, err := document.NewExtractedEvent(u.CaseID, u.ID, cand.Title, cand.Confidence)
		if err != nil {
			s.logger.Warn("skipping invalid extracted event", logging.Err(err))
			continue
		}
		ev.Description = cand.Description
		ev.EventDate = cand.EventDate
		ev.Actors = cand.Actors
		events = append(events, ev)
	}
	if len(events) > 0 {
		if err := s.events.CreateBatch(ctx, events); err != nil {
			return nil, err
		}
	}

	s.logger.Info("extraction run stored",
		logging.String("upload_id", string(u.ID)),
		logging.Int("events", len(events)),
		logging.Int("suggested_claims", len(result.Claims)))

	return &ExtractResult{
		Events:          events,
		SuggestedClaims: result.Claims,
		Model:           result.Model,
		Truncated:       result.Truncated,
	}, nil
}

// ListEvents returns the case's extracted events.
func (s *Service) ListEvents(ctx context.Context, caseID string) ([]*document.ExtractedEvent, error) {
	return s.events.ListByCase(ctx, caseID)
}

// DisplayNames maps upload and event IDs to human-readable labels for the
// exhibit tree.
func (s *Service) DisplayNames(ctx context.Context, caseID string) (map[common.ID]string, error) {
	names := make(map[common.ID]string)

	uploads, err := s.uploads.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	for _, u := range uploads {
		names[u.ID] = u.FileName
	}

	events, err := s.events.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		names[ev.ID] = ev.Title
	}
	return names, nil
}

func (s *Service) countUpload(status string) {
	if s.metrics != nil {
		s.metrics.DocumentUploadsTotal.WithLabelValues(status).Inc()
	}
}

func (s *Service) countExtraction(status string) {
	if s.metrics != nil {
		s.metrics.ExtractionRequestsTotal.WithLabelValues(status).Inc()
	}
}
