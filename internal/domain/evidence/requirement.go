// Package evidence implements the evidentiary side of the correlation
// domain: the requirement catalog that states what each legal section
// demands, the links that attach artifacts to claims, and the fulfillment
// records that mark mandatory requirements as satisfied.
package evidence

import (
	"strings"

	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// Requirement declares that a legal section mandates (or recommends) a
// category of evidence.  Requirements are reference data: seeded once,
// read-only afterwards.
type Requirement struct {
	ID                 common.ID       `json:"id"`
	LegalSection       string          `json:"legal_section"`
	LegalFramework     legal.Framework `json:"legal_framework"`
	RequirementName    string          `json:"requirement_name"`
	Description        string          `json:"description,omitempty"`
	Mandatory          bool            `json:"mandatory"`
	EvidenceTypeHint   string          `json:"evidence_type_hint,omitempty"`
	StatutoryReference string          `json:"statutory_reference,omitempty"`
}

// NewRequirement validates and constructs a Requirement.
func NewRequirement(section string, framework legal.Framework, name string, mandatory bool) (*Requirement, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, errors.New(errors.ErrCodeClaimInvalidSection, "requirement legal section must not be empty")
	}
	if !framework.IsValid() {
		return nil, errors.New(errors.ErrCodeClaimInvalidFramework, "unknown legal framework").
			WithDetail(string(framework))
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.Validation("requirement name must not be empty")
	}
	return &Requirement{
		ID:              common.NewID(),
		LegalSection:    section,
		LegalFramework:  framework,
		RequirementName: strings.TrimSpace(name),
		Mandatory:       mandatory,
	}, nil
}

// AppliesTo reports whether the requirement applies to the given
// (section, framework) pair.  Section codes compare case-insensitively.
func (r *Requirement) AppliesTo(section string, framework legal.Framework) bool {
	return r.LegalFramework == framework && strings.EqualFold(r.LegalSection, section)
}

// FilterForClaim returns the requirements applicable to a claim's
// (section, framework) pair, preserving input order.
func FilterForClaim(reqs []*Requirement, section string, framework legal.Framework) []*Requirement {
	var out []*Requirement
	for _, r := range reqs {
		if r.AppliesTo(section, framework) {
			out = append(out, r)
		}
	}
	return out
}

// MandatoryOf returns only the mandatory requirements of the input set.
func MandatoryOf(reqs []*Requirement) []*Requirement {
	var out []*Requirement
	for _, r := range reqs {
		if r.Mandatory {
			out = append(out, r)
		}
	}
	return out
}
