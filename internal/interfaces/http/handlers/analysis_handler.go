package handlers

import (
	"net/http"

	"github.com/BackCheck/justice-unveiled/internal/application/correlation"
	appdoc "github.com/BackCheck/justice-unveiled/internal/application/document"
	"github.com/BackCheck/justice-unveiled/internal/domain/claim"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// AnalysisHandler serves the case-level correlation views.
type AnalysisHandler struct {
	correlation *correlation.Service
	documents   *appdoc.Service
}

// NewAnalysisHandler constructs an AnalysisHandler.  The document service
// supplies display names for exhibit leaves and may be nil.
func NewAnalysisHandler(corr *correlation.Service, docs *appdoc.Service) *AnalysisHandler {
	return &AnalysisHandler{correlation: corr, documents: docs}
}

// Analyze returns the aggregated correlation analysis for a case.
// GET /api/v1/cases/{caseID}/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	caseID, err := urlCaseID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	analysis, err := h.correlation.Analyze(r.Context(), caseID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, analysis)
}

// ExhibitTree returns the section / claim / exhibit view of the case.
// GET /api/v1/cases/{caseID}/exhibits/tree?q=&claim_type=&status=&framework=
func (h *AnalysisHandler) ExhibitTree(w http.ResponseWriter, r *http.Request) {
	caseID, err := urlCaseID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	q := r.URL.Query()
	f := claim.Filter{
		Search:    q.Get("q"),
		ClaimType: q.Get("claim_type"),
		Status:    q.Get("status"),
		Framework: q.Get("framework"),
	}

	var names map[common.ID]string
	if h.documents != nil {
		names, err = h.documents.DisplayNames(r.Context(), caseID)
		if err != nil {
			writeAppError(w, err)
			return
		}
	}

	tree, err := h.correlation.ExhibitTree(r.Context(), caseID, f, names)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, tree)
}
