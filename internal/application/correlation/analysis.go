// Package correlation implements the application services of the
// claim-evidence correlation engine: per-claim status and score derivation
// over store data, the case-level analysis aggregate, and the hierarchical
// exhibit view.  All computation is pure and synchronous; the service
// recomputes on every read rather than reacting to mutation events.
package correlation

import (
	"github.com/BackCheck/justice-unveiled/internal/domain/claim"
	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// Analysis is the point-in-time aggregate over a case's claims.  It is
// derived on demand and never persisted.
type Analysis struct {
	CaseID                   string                    `json:"case_id"`
	TotalClaims              int                       `json:"total_claims"`
	SupportedClaims          int                       `json:"supported_claims"`
	UnsupportedClaims        int                       `json:"unsupported_claims"`
	PartiallySupported       int                       `json:"partially_supported"`
	UnverifiedClaims         int                       `json:"unverified_claims"`
	AverageSupportScore      float64                   `json:"average_support_score"`
	MissingMandatoryEvidence int                       `json:"missing_mandatory_evidence"`
	ClaimsByType             map[legal.ClaimType]int   `json:"claims_by_type"`
	ClaimsByFramework        map[legal.Framework]int   `json:"claims_by_framework"`
	Statuses                 map[legal.ClaimStatus]int `json:"statuses"`
}

// deriveAll recomputes every claim's status and score in place and returns
// the per-claim link grouping and resolved fulfillments for reuse by the
// aggregate and tree builders.
func deriveAll(claims []*claim.LegalClaim, requirements []*evidence.Requirement, links []*evidence.Link, history []*evidence.Fulfillment) (map[common.ID][]*evidence.Link, map[common.ID]map[common.ID]*evidence.Fulfillment) {
	linksByClaim := evidence.ByClaim(links)
	resolved := evidence.ResolveAuthoritative(history)

	for _, c := range claims {
		applicable := evidence.FilterForClaim(requirements, c.LegalSection, c.LegalFramework)
		c.ApplyDerivation(claim.Derive(c, linksByClaim[c.ID], applicable, resolved))
	}
	return linksByClaim, resolved
}

// Aggregate computes the case-level Analysis from already-derived claims.
// The status counters partition the claim set exactly; a claim missing
// several mandatory requirements still counts once toward
// MissingMandatoryEvidence.
//
// International claims are excluded from ClaimsByType: the type subdivision
// only exists under the Pakistani framework.  ClaimsByFramework counts every
// claim.
func Aggregate(caseID string, claims []*claim.LegalClaim, requirements []*evidence.Requirement, resolved map[common.ID]map[common.ID]*evidence.Fulfillment) *Analysis {
	a := &Analysis{
		CaseID:            caseID,
		TotalClaims:       len(claims),
		ClaimsByType:      make(map[legal.ClaimType]int),
		ClaimsByFramework: make(map[legal.Framework]int),
		Statuses:          make(map[legal.ClaimStatus]int),
	}

	scoreSum := 0
	for _, c := range claims {
		a.Statuses[c.Status]++
		switch c.Status {
		case legal.StatusSupported:
			a.SupportedClaims++
		case legal.StatusUnsupported:
			a.UnsupportedClaims++
		case legal.StatusPartiallySupported:
			a.PartiallySupported++
		case legal.StatusUnverified:
			a.UnverifiedClaims++
		}

		scoreSum += c.SupportScore
		a.ClaimsByFramework[c.LegalFramework]++
		if c.LegalFramework == legal.FrameworkPakistani && c.ClaimType.IsValid() {
			a.ClaimsByType[c.ClaimType]++
		}

		applicable := evidence.FilterForClaim(requirements, c.LegalSection, c.LegalFramework)
		if claim.HasMissingMandatoryEvidence(c, applicable, resolved) {
			a.MissingMandatoryEvidence++
		}
	}

	if len(claims) > 0 {
		a.AverageSupportScore = float64(scoreSum) / float64(len(claims))
	}
	return a
}
