// Package document implements the evidence-document side of the system:
// uploaded files kept in object storage and the structured events the AI
// extraction service derives from them.  Both can be referenced by
// claim-evidence links as artifacts.
package document

import (
	"strings"
	"time"

	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// Upload is the metadata record of a stored evidence document.  The bytes
// themselves live in object storage under ObjectKey.
type Upload struct {
	ID          common.ID      `json:"id"`
	CaseID      string         `json:"case_id"`
	FileName    string         `json:"file_name"`
	ContentType string         `json:"content_type"`
	SizeBytes   int64          `json:"size_bytes"`
	ObjectKey   string         `json:"object_key"`
	UploadedBy  common.ActorID `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewUpload validates and constructs an Upload record.
func NewUpload(caseID, fileName, contentType string, sizeBytes int64, uploadedBy common.ActorID) (*Upload, error) {
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return nil, errors.InvalidParam("case_id must not be empty")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, errors.InvalidParam("file_name must not be empty")
	}
	if sizeBytes <= 0 {
		return nil, errors.New(errors.ErrCodeDocumentTooLarge, "document size must be positive").
			WithDetail(fileName)
	}

	id := common.NewID()
	return &Upload{
		ID:          id,
		CaseID:      caseID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		ObjectKey:   objectKey(caseID, id, fileName),
		UploadedBy:  uploadedBy,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// objectKey namespaces stored objects by case so one case's documents can be
// listed or removed together.
func objectKey(caseID string, id common.ID, fileName string) string {
	return caseID + "/" + string(id) + "/" + fileName
}

// ExtractedEvent is a structured event the extraction service pulled out of
// an uploaded document.  Confidence is the service's own estimate in [0,1].
type ExtractedEvent struct {
	ID          common.ID  `json:"id"`
	CaseID      string     `json:"case_id"`
	UploadID    common.ID  `json:"upload_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	Actors      []string   `json:"actors,omitempty"`
	Confidence  float64    `json:"confidence"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewExtractedEvent validates and constructs an ExtractedEvent.
func NewExtractedEvent(caseID string, uploadID common.ID, title string, confidence float64) (*ExtractedEvent, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New(errors.ErrCodeExtractionBadPayload, "extracted event title must not be empty")
	}
	if err := uploadID.Validate(); err != nil {
		return nil, errors.InvalidParam("upload_id").WithDetail(err.Error())
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return &ExtractedEvent{
		ID:         common.NewID(),
		CaseID:     strings.TrimSpace(caseID),
		UploadID:   uploadID,
		Title:      strings.TrimSpace(title),
		Confidence: confidence,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
