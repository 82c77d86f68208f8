package claim

import (
	"context"

	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// Repository defines the persistence contract for legal claims.  Status and
// score columns are written only via UpdateDerivation; claim deletion is not
// part of the contract.
type Repository interface {
	Create(ctx context.Context, c *LegalClaim) error
	GetByID(ctx context.Context, id common.ID) (*LegalClaim, error)
	// ListByCase returns the case's claims in creation order.
	ListByCase(ctx context.Context, caseID string) ([]*LegalClaim, error)
	// UpdateDerivation persists a freshly derived status and score.
	UpdateDerivation(ctx context.Context, id common.ID, d Derivation) error
}
