package evidence

import (
	"context"

	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// RequirementRepository defines the persistence contract for the evidence
// requirement catalog.
type RequirementRepository interface {
	Create(ctx context.Context, r *Requirement) error
	GetByID(ctx context.Context, id common.ID) (*Requirement, error)
	// ListBySection returns the requirements applicable to one
	// (section, framework) pair.
	ListBySection(ctx context.Context, section string, framework legal.Framework) ([]*Requirement, error)
	// ListAll returns the full catalog; the derivation layer filters
	// per claim in memory.
	ListAll(ctx context.Context) ([]*Requirement, error)
}

// LinkRepository defines the persistence contract for claim-evidence links.
type LinkRepository interface {
	Create(ctx context.Context, l *Link) error
	GetByID(ctx context.Context, id common.ID) (*Link, error)
	// ListByCase returns every link attached to any claim of the case.
	ListByCase(ctx context.Context, caseID string) ([]*Link, error)
	ListByClaim(ctx context.Context, claimID common.ID) ([]*Link, error)
	Delete(ctx context.Context, id common.ID) error
}

// FulfillmentRepository defines the persistence contract for requirement
// fulfillment history.  Records are append-only; SetFulfillment writes a new
// record rather than updating in place.
type FulfillmentRepository interface {
	Create(ctx context.Context, f *Fulfillment) error
	// ListByCase returns the full fulfillment history for the case's
	// claims, oldest first.
	ListByCase(ctx context.Context, caseID string) ([]*Fulfillment, error)
	ListByClaim(ctx context.Context, claimID common.ID) ([]*Fulfillment, error)
}
