package document

import (
	"context"

	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// UploadRepository defines the persistence contract for upload metadata.
type UploadRepository interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, id common.ID) (*Upload, error)
	ListByCase(ctx context.Context, caseID string) ([]*Upload, error)
}

// EventRepository defines the persistence contract for extracted events.
type EventRepository interface {
	// CreateBatch stores the events of one extraction run together.
	CreateBatch(ctx context.Context, events []*ExtractedEvent) error
	GetByID(ctx context.Context, id common.ID) (*ExtractedEvent, error)
	ListByCase(ctx context.Context, caseID string) ([]*ExtractedEvent, error)
	ListByUpload(ctx context.Context, uploadID common.ID) ([]*ExtractedEvent, error)
}
