package evidence

import (
	"time"

	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// Fulfillment records whether a specific requirement has been met for a
// specific claim.  History is retained; where several records exist for the
// same (claim, requirement) pair the most recently verified one governs.
type Fulfillment struct {
	ID            common.ID      `json:"id"`
	ClaimID       common.ID      `json:"claim_id"`
	RequirementID common.ID      `json:"requirement_id"`
	Fulfilled     bool           `json:"fulfilled"`
	EvidenceRef   *common.ID     `json:"evidence_ref,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	VerifiedBy    common.ActorID `json:"verified_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NewFulfillment validates and constructs a Fulfillment record.
func NewFulfillment(claimID, requirementID common.ID, fulfilled bool, evidenceRef *common.ID, verifiedBy common.ActorID) (*Fulfillment, error) {
	if err := claimID.Validate(); err != nil {
		return nil, errors.InvalidParam("claim_id").WithDetail(err.Error())
	}
	if err := requirementID.Validate(); err != nil {
		return nil, errors.InvalidParam("requirement_id").WithDetail(err.Error())
	}
	return &Fulfillment{
		ID:            common.NewID(),
		ClaimID:       claimID,
		RequirementID: requirementID,
		Fulfilled:     fulfilled,
		EvidenceRef:   evidenceRef,
		VerifiedBy:    verifiedBy,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// fulfillmentKey identifies the (claim, requirement) pair a record applies to.
type fulfillmentKey struct {
	claimID       common.ID
	requirementID common.ID
}

// ResolveAuthoritative collapses a fulfillment history to one governing
// record per (claim, requirement) pair: the most recently created record
// wins.  Ties on timestamp fall back to input order, later entries winning,
// so that repeated resolution over the same slice is stable.
func ResolveAuthoritative(history []*Fulfillment) map[common.ID]map[common.ID]*Fulfillment {
	latest := make(map[fulfillmentKey]*Fulfillment, len(history))
	for _, f := range history {
		key := fulfillmentKey{claimID: f.ClaimID, requirementID: f.RequirementID}
		cur, ok := latest[key]
		if !ok || !f.CreatedAt.Before(cur.CreatedAt) {
			latest[key] = f
		}
	}

	out := make(map[common.ID]map[common.ID]*Fulfillment)
	for key, f := range latest {
		byReq, ok := out[key.claimID]
		if !ok {
			byReq = make(map[common.ID]*Fulfillment)
			out[key.claimID] = byReq
		}
		byReq[key.requirementID] = f
	}
	return out
}

// IsFulfilled reports whether the governing record for (claimID,
// requirementID) marks the requirement as met.  Absent records count as
// unfulfilled.
func IsFulfilled(resolved map[common.ID]map[common.ID]*Fulfillment, claimID, requirementID common.ID) bool {
	byReq, ok := resolved[claimID]
	if !ok {
		return false
	}
	f, ok := byReq[requirementID]
	return ok && f.Fulfilled
}
