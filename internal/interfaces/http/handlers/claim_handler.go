package handlers

import (
	"net/http"

	"github.com/BackCheck/justice-unveiled/internal/application/correlation"
	"github.com/BackCheck/justice-unveiled/internal/domain/claim"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// ClaimHandler serves claim, link, and fulfillment endpoints.
type ClaimHandler struct {
	svc *correlation.Service
}

// NewClaimHandler constructs a ClaimHandler.
func NewClaimHandler(svc *correlation.Service) *ClaimHandler {
	return &ClaimHandler{svc: svc}
}

// List returns the case's claims, derived and filtered.
// GET /api/v1/cases/{caseID}/claims?q=&claim_type=&status=&framework=
func (h *ClaimHandler) List(w http.ResponseWriter, r *http.Request) {
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

	claims, err := h.svc.ListClaims(r.Context(), caseID, f)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, claims)
}

// Create registers a new claim for the case.
// POST /api/v1/cases/{caseID}/claims
func (h *ClaimHandler) Create(w http.ResponseWriter, r *http.Request) {
	caseID, err := urlCaseID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var in correlation.CreateClaimInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeAppError(w, err)
		return
	}
	in.CaseID = caseID

	c, err := h.svc.CreateClaim(r.Context(), in)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, c)
}

// ListLinks returns every evidence link in the case.
// GET /api/v1/cases/{caseID}/links
func (h *ClaimHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	caseID, err := urlCaseID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	links, err := h.svc.ListLinks(r.Context(), caseID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, links)
}

// CreateLink attaches an evidence artifact to a claim.
// POST /api/v1/claims/{claimID}/links
func (h *ClaimHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	claimID, err := urlID(r, "claimID")
	if err != nil {
		writeAppError(w, err)
		return
	}

	var in correlation.CreateLinkInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeAppError(w, err)
		return
	}
	in.ClaimID = claimID

	l, err := h.svc.CreateLink(r.Context(), in)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, l)
}

// DeleteLink removes an evidence link.
// DELETE /api/v1/links/{linkID}
func (h *ClaimHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	linkID, err := urlID(r, "linkID")
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.svc.DeleteLink(r.Context(), linkID); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setFulfillmentRequest struct {
	Fulfilled   bool           `json:"fulfilled"`
	EvidenceRef *common.ID     `json:"evidence_ref,omitempty"`
	VerifiedBy  common.ActorID `json:"verified_by,omitempty"`
}

// SetFulfillment appends a fulfillment record for a claim requirement.
// PUT /api/v1/claims/{claimID}/requirements/{requirementID}/fulfillment
func (h *ClaimHandler) SetFulfillment(w http.ResponseWriter, r *http.Request) {
	claimID, err := urlID(r, "claimID")
	if err != nil {
		writeAppError(w, err)
		return
	}
	requirementID, err := urlID(r, "requirementID")
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req setFulfillmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, err)
		return
	}

	f, err := h.svc.SetFulfillment(r.Context(), claimID, requirementID, req.Fulfilled, req.EvidenceRef, req.VerifiedBy)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, f)
}

// ListFulfillments returns the case's fulfillment history, oldest first.
// GET /api/v1/cases/{caseID}/fulfillments
func (h *ClaimHandler) ListFulfillments(w http.ResponseWriter, r *http.Request) {
	caseID, err := urlCaseID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	history, err := h.svc.ListFulfillments(r.Context(), caseID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, history)
}
