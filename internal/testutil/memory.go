// Package testutil provides in-memory repository implementations shared by
// tests that exercise services end to end without a database.
package testutil

import (
	"context"
	"sync"

	"github.com/BackCheck/justice-unveiled/internal/domain/claim"
	"github.com/BackCheck/justice-unveiled/internal/domain/document"
	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// MemClaimRepo is an in-memory claim.Repository.
type MemClaimRepo struct {
	mu     sync.Mutex
	Claims []*claim.LegalClaim
}

func (r *MemClaimRepo) Create(_ context.Context, c *claim.LegalClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Claims = append(r.Claims, c)
	return nil
}

func (r *MemClaimRepo) GetByID(_ context.Context, id common.ID) (*claim.LegalClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Claims {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New(errors.ErrCodeClaimNotFound, "claim not found").WithDetail(string(id))
}

func (r *MemClaimRepo) ListByCase(_ context.Context, caseID string) ([]*claim.LegalClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*claim.LegalClaim
	for _, c := range r.Claims {
		if c.CaseID == caseID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemClaimRepo) UpdateDerivation(_ context.Context, id common.ID, d claim.Derivation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Claims {
		if c.ID == id {
			c.Status = d.Status
			c.SupportScore = d.Score
			return nil
		}
	}
	return errors.New(errors.ErrCodeClaimNotFound, "claim not found")
}

// MemRequirementRepo is an in-memory evidence.RequirementRepository.
type MemRequirementRepo struct {
	mu   sync.Mutex
	Reqs []*evidence.Requirement
}

func (r *MemRequirementRepo) Create(_ context.Context, req *evidence.Requirement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reqs = append(r.Reqs, req)
	return nil
}

func (r *MemRequirementRepo) GetByID(_ context.Context, id common.ID) (*evidence.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.Reqs {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, errors.New(errors.ErrCodeRequirementNotFound, "requirement not found")
}

func (r *MemRequirementRepo) ListBySection(_ context.Context, section string, fw legal.Framework) ([]*evidence.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return evidence.FilterForClaim(r.Reqs, section, fw), nil
}

func (r *MemRequirementRepo) ListAll(_ context.Context) ([]*evidence.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Reqs, nil
}

// MemLinkRepo is an in-memory evidence.LinkRepository.  It resolves case
// membership through the claim repository, mirroring the SQL join.
type MemLinkRepo struct {
	mu     sync.Mutex
	Links  []*evidence.Link
	Claims *MemClaimRepo
}

func (r *MemLinkRepo) Create(_ context.Context, l *evidence.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Links = append(r.Links, l)
	return nil
}

func (r *MemLinkRepo) GetByID(_ context.Context, id common.ID) (*evidence.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.Links {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, errors.New(errors.ErrCodeLinkNotFound, "link not found")
}

func (r *MemLinkRepo) ListByCase(ctx context.Context, caseID string) ([]*evidence.Link, error) {
	claims, err := r.Claims.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	inCase := make(map[common.ID]bool, len(claims))
	for _, c := range claims {
		inCase[c.ID] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*evidence.Link
	for _, l := range r.Links {
		if inCase[l.ClaimID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *MemLinkRepo) ListByClaim(_ context.Context, claimID common.ID) ([]*evidence.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*evidence.Link
	for _, l := range r.Links {
		if l.ClaimID == claimID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *MemLinkRepo) Delete(_ context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.Links {
		if l.ID == id {
			r.Links = append(r.Links[:i], r.Links[i+1:]...)
			return nil
		}
	}
	return errors.New(errors.ErrCodeLinkNotFound, "link not found")
}

// MemFulfillmentRepo is an in-memory evidence.FulfillmentRepository.
type MemFulfillmentRepo struct {
	mu      sync.Mutex
	Records []*evidence.Fulfillment
	Claims  *MemClaimRepo
}

func (r *MemFulfillmentRepo) Create(_ context.Context, f *evidence.Fulfillment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = append(r.Records, f)
	return nil
}

func (r *MemFulfillmentRepo) ListByCase(ctx context.Context, caseID string) ([]*evidence.Fulfillment, error) {
	claims, err := r.Claims.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	inCase := make(map[common.ID]bool, len(claims))
	for _, c := range claims {
		inCase[c.ID] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*evidence.Fulfillment
	for _, f := range r.Records {
		if inCase[f.ClaimID] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *MemFulfillmentRepo) ListByClaim(_ context.Context, claimID common.ID) ([]*evidence.Fulfillment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*evidence.Fulfillment
	for _, f := range r.Records {
		if f.ClaimID == claimID {
			out = append(out, f)
		}
	}
	return out, nil
}

// MemUploadRepo is an in-memory document.UploadRepository.
type MemUploadRepo struct {
	mu      sync.Mutex
	Uploads []*document.Upload
}

func (r *MemUploadRepo) Create(_ context.Context, u *document.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Uploads = append(r.Uploads, u)
	return nil
}

func (r *MemUploadRepo) GetByID(_ context.Context, id common.ID) (*document.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Uploads {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New(errors.ErrCodeDocumentNotFound, "document not found")
}

func (r *MemUploadRepo) ListByCase(_ context.Context, caseID string) ([]*document.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*document.Upload
	for _, u := range r.Uploads {
		if u.CaseID == caseID {
			out = append(out, u)
		}
	}
	return out, nil
}

// MemEventRepo is an in-memory document.EventRepository.
type MemEventRepo struct {
	mu     sync.Mutex
	Events []*document.ExtractedEvent
}

func (r *MemEventRepo) CreateBatch(_ context.Context, events []*document.ExtractedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, events...)
	return nil
}

func (r *MemEventRepo) GetByID(_ context.Context, id common.ID) (*document.ExtractedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.Events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "extracted event not found")
}

func (r *MemEventRepo) ListByCase(_ context.Context, caseID string) ([]*document.ExtractedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*document.ExtractedEvent
	for _, ev := range r.Events {
		if ev.CaseID == caseID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *MemEventRepo) ListByUpload(_ context.Context, uploadID common.ID) ([]*document.ExtractedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*document.ExtractedEvent
	for _, ev := range r.Events {
		if ev.UploadID == uploadID {
			out = append(out, ev)
		}
	}
	return out, nil
}
