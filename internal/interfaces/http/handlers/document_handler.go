package handlers

import (
	"net/http"

	appdoc "github.com/BackCheck/justice-unveiled/internal/application/document"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// DocumentHandler serves evidence document upload, download, and
// extraction endpoints.
type DocumentHandler struct {
	svc         *appdoc.Service
	maxBodySize int64
}

// NewDocumentHandler constructs a DocumentHandler.  maxBodySize bounds the
// multipart upload body.
func NewDocumentHandler(svc *appdoc.Service, maxBodySize int64) *DocumentHandler {
	if maxBodySize <= 0 {
		maxBodySize = 32 << 20
	}
	return &DocumentHandler{svc: svc, maxBodySize: maxBodySize}
}

// Upload stores a multipart evidence document under the case.
// POST /api/v1/cases/{caseID}/documents  (multipart field "file")
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	caseID, err := urlCaseID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeAppError(w, errors.New(errors.ErrCodeDocumentTooLarge, "multipart field 'file' is required").
			WithDetail(err.Error()))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	u, err := h.svc.Upload(r.Context(), appdoc.UploadInput{
		CaseID:      caseID,
		FileName:    header.Filename,
		ContentType: contentType,
		SizeBytes:   header.Size,
		Body:        file,
		UploadedBy:  common.ActorID(r.Header.Get("X-Actor-ID")),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, u)
}

// List returns the case's upload metadata.
// GET /api/v1/cases/{caseID}/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	caseID, err := urlCaseID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	uploads, err := h.svc.ListByCase(r.Context(), caseID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, uploads)
}

type downloadResponse struct {
	URL string `json:"url"`
}

// Download returns a time-limited URL for the stored document.
// GET /api/v1/documents/{documentID}/download
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "documentID")
	if err != nil {
		writeAppError(w, err)
		return
	}

	url, err := h.svc.DownloadURL(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, downloadResponse{URL: url})
}

// Extract runs the extraction model over the stored document and persists
// the resulting events.
// POST /api/v1/documents/{documentID}/extract
func (h *DocumentHandler) Extract(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "documentID")
	if err != nil {
		writeAppError(w, err)
		return
	}

	result, err := h.svc.Extract(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

// Events returns the case's extracted events.
// GET /api/v1/cases/{caseID}/events
func (h *DocumentHandler) Events(w http.ResponseWriter, r *http.Request) {
	caseID, err := urlCaseID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	events, err := h.svc.ListEvents(r.Context(), caseID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, events)
}
