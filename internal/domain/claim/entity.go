// Package claim implements the legal-claim bounded context: the claim
// aggregate, its validation rules, the status and score derivation policy,
// and the filter predicates the interface layer composes over claim lists.
package claim

import (
	"strings"
	"time"

	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// LegalClaim is an allegation made against or by a party under a specific
// law.  Status and SupportScore are derived, never user-set; Derive
// recomputes both from the claim's links and fulfillments.
type LegalClaim struct {
	ID             common.ID         `json:"id"`
	CaseID         string            `json:"case_id,omitempty"`
	ClaimType      legal.ClaimType   `json:"claim_type,omitempty"`
	LegalSection   string            `json:"legal_section"`
	LegalFramework legal.Framework   `json:"legal_framework"`
	Allegation     string            `json:"allegation"`
	AllegedBy      string            `json:"alleged_by,omitempty"`
	AllegedAgainst string            `json:"alleged_against,omitempty"`
	DateOfClaim    *time.Time        `json:"date_of_claim,omitempty"`
	SourceDocument *common.ID        `json:"source_document,omitempty"`
	Status         legal.ClaimStatus `json:"status"`
	SupportScore   int               `json:"support_score"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewLegalClaim validates and constructs a LegalClaim.  New claims start as
// unverified with score zero until the first derivation runs.
//
// The claim type only subdivides Pakistani-framework claims; a type passed
// with an international claim is discarded rather than rejected, matching
// how the intake forms behave.
func NewLegalClaim(caseID string, claimType legal.ClaimType, section string, framework legal.Framework, allegation string) (*LegalClaim, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, errors.New(errors.ErrCodeClaimInvalidSection, "legal section must not be empty")
	}
	if strings.TrimSpace(allegation) == "" {
		return nil, errors.New(errors.ErrCodeClaimEmptyAllegation, "allegation text must not be empty")
	}
	if !framework.IsValid() {
		return nil, errors.New(errors.ErrCodeClaimInvalidFramework, "unknown legal framework").
			WithDetail(string(framework))
	}
	switch framework {
	case legal.FrameworkPakistani:
		if !claimType.IsValid() {
			return nil, errors.New(errors.ErrCodeClaimInvalidType,
				"pakistani claims require a claim type of criminal, regulatory, or civil").
				WithDetail(string(claimType))
		}
	case legal.FrameworkInternational:
		claimType = ""
	}

	now := time.Now().UTC()
	return &LegalClaim{
		ID:             common.NewID(),
		CaseID:         strings.TrimSpace(caseID),
		ClaimType:      claimType,
		LegalSection:   section,
		LegalFramework: framework,
		Allegation:     strings.TrimSpace(allegation),
		Status:         legal.StatusUnverified,
		SupportScore:   0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ApplyDerivation stores a derivation result on the claim and bumps the
// update timestamp when either field actually changed.
func (c *LegalClaim) ApplyDerivation(d Derivation) {
	if c.Status == d.Status && c.SupportScore == d.Score {
		return
	}
	c.Status = d.Status
	c.SupportScore = d.Score
	c.UpdatedAt = time.Now().UTC()
}
