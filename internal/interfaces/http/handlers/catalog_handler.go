package handlers

import (
	"net/http"

	"github.com/BackCheck/justice-unveiled/internal/application/correlation"
	"github.com/BackCheck/justice-unveiled/internal/domain/catalog"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// CatalogHandler serves the legal section catalog and the evidence
// requirement catalog.
type CatalogHandler struct {
	svc *correlation.Service
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(svc *correlation.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Sections returns the known legal sections for a framework and claim type.
// GET /api/v1/catalog/sections?framework=&claim_type=
func (h *CatalogHandler) Sections(w http.ResponseWriter, r *http.Request) {
	framework := legal.Framework(r.URL.Query().Get("framework"))
	if !framework.IsValid() {
		writeAppError(w, errors.New(errors.ErrCodeClaimInvalidFramework, "framework must be pakistani or international"))
		return
	}

	claimType := legal.ClaimType(r.URL.Query().Get("claim_type"))
	if framework == legal.FrameworkPakistani && !claimType.IsValid() {
		writeAppError(w, errors.New(errors.ErrCodeClaimInvalidType, "claim_type must be criminal, regulatory, or civil"))
		return
	}

	writeSuccess(w, http.StatusOK, catalog.Sections(framework, claimType))
}

// Requirements returns the evidence requirement catalog, optionally
// narrowed to a (section, framework) pair.
// GET /api/v1/requirements?section=&framework=
func (h *CatalogHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	framework := legal.Framework(r.URL.Query().Get("framework"))
	if section != "" && !framework.IsValid() {
		writeAppError(w, errors.New(errors.ErrCodeClaimInvalidFramework, "framework is required when filtering by section"))
		return
	}

	reqs, err := h.svc.ListRequirements(r.Context(), section, framework)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, reqs)
}
