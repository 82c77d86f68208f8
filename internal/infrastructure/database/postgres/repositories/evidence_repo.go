package repositories

import (
	"context"
	"database/sql"

	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// ---------------------------------------------------------------------------
// Requirement catalog
// ---------------------------------------------------------------------------

type postgresRequirementRepo struct {
	conn *postgres.Connection
	log  logging.Logger
}

// NewRequirementRepo builds the PostgreSQL requirement repository.
func NewRequirementRepo(conn *postgres.Connection, log logging.Logger) evidence.RequirementRepository {
	return &postgresRequirementRepo{conn: conn, log: log}
}

func (r *postgresRequirementRepo) executor() queryExecutor {
	return r.conn.DB()
}

const requirementColumns = `
	id, legal_section, legal_framework, requirement_name, description,
	mandatory, evidence_type_hint, statutory_reference`

func (r *postgresRequirementRepo) Create(ctx context.Context, req *evidence.Requirement) error {
	query := `
		INSERT INTO evidence_requirements (
			id, legal_section, legal_framework, requirement_name, description,
			mandatory, evidence_type_hint, statutory_reference
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (legal_section, legal_framework, requirement_name) DO NOTHING
	`
	_, err := r.executor().ExecContext(ctx, query,
		req.ID, req.LegalSection, req.LegalFramework, req.RequirementName,
		nullString(req.Description), req.Mandatory,
		nullString(req.EvidenceTypeHint), nullString(req.StatutoryReference),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create requirement")
	}
	return nil
}

func (r *postgresRequirementRepo) GetByID(ctx context.Context, id common.ID) (*evidence.Requirement, error) {
	query := `SELECT` + requirementColumns + ` FROM evidence_requirements WHERE id = $1`
	req, err := scanRequirement(r.executor().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeRequirementNotFound, "requirement not found").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get requirement")
	}
	return req, nil
}

func (r *postgresRequirementRepo) ListBySection(ctx context.Context, section string, framework legal.Framework) ([]*evidence.Requirement, error) {
	query := `SELECT` + requirementColumns + `
		FROM evidence_requirements
		WHERE lower(legal_section) = lower($1) AND legal_framework = $2
		ORDER BY mandatory DESC, requirement_name`
	return r.list(ctx, query, section, framework)
}

func (r *postgresRequirementRepo) ListAll(ctx context.Context) ([]*evidence.Requirement, error) {
	query := `SELECT` + requirementColumns + `
		FROM evidence_requirements
		ORDER BY legal_framework, legal_section, requirement_name`
	return r.list(ctx, query)
}

func (r *postgresRequirementRepo) list(ctx context.Context, query string, args ...interface{}) ([]*evidence.Requirement, error) {
	rows, err := r.executor().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list requirements")
	}
	defer rows.Close()

	var out []*evidence.Requirement
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan requirement")
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate requirements")
	}
	return out, nil
}

func scanRequirement(s scanner) (*evidence.Requirement, error) {
	var (
		req       evidence.Requirement
		desc      sql.NullString
		hint      sql.NullString
		statutory sql.NullString
	)
	err := s.Scan(
		&req.ID, &req.LegalSection, &req.LegalFramework, &req.RequirementName,
		&desc, &req.Mandatory, &hint, &statutory,
	)
	if err != nil {
		return nil, err
	}
	req.Description = desc.String
	req.EvidenceTypeHint = hint.String
	req.StatutoryReference = statutory.String
	return &req, nil
}

// ---------------------------------------------------------------------------
// Claim-evidence links
// ---------------------------------------------------------------------------

type postgresLinkRepo struct {
	conn *postgres.Connection
	log  logging.Logger
}

// NewLinkRepo builds the PostgreSQL link repository.
func NewLinkRepo(conn *postgres.Connection, log logging.Logger) evidence.LinkRepository {
	return &postgresLinkRepo{conn: conn, log: log}
}

func (r *postgresLinkRepo) executor() queryExecutor {
	return r.conn.DB()
}

const linkColumns = `
	l.id, l.claim_id, l.upload_id, l.extracted_event_id, l.link_type,
	l.exhibit_number, l.relevance_score, l.notes, l.linked_by, l.created_at`

func (r *postgresLinkRepo) Create(ctx context.Context, l *evidence.Link) error {
	query := `
		INSERT INTO claim_evidence_links (
			id, claim_id, upload_id, extracted_event_id, link_type,
			exhibit_number, relevance_score, notes, linked_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	var exhibit sql.NullString
	if l.ExhibitNumber != nil {
		exhibit = sql.NullString{String: *l.ExhibitNumber, Valid: true}
	}
	_, err := r.executor().ExecContext(ctx, query,
		l.ID, l.ClaimID, nullID(l.UploadID), nullID(l.ExtractedEventID), l.LinkType,
		exhibit, l.RelevanceScore, nullString(l.Notes), nullString(string(l.LinkedBy)), l.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create link")
	}
	return nil
}

func (r *postgresLinkRepo) GetByID(ctx context.Context, id common.ID) (*evidence.Link, error) {
	query := `SELECT` + linkColumns + ` FROM claim_evidence_links l WHERE l.id = $1`
	l, err := scanLink(r.executor().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeLinkNotFound, "link not found").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get link")
	}
	return l, nil
}

func (r *postgresLinkRepo) ListByCase(ctx context.Context, caseID string) ([]*evidence.Link, error) {
	query := `SELECT` + linkColumns + `
		FROM claim_evidence_links l
		JOIN claims c ON c.id = l.claim_id
		WHERE c.case_id = $1
		ORDER BY l.created_at, l.id`
	return r.list(ctx, query, caseID)
}

func (r *postgresLinkRepo) ListByClaim(ctx context.Context, claimID common.ID) ([]*evidence.Link, error) {
	query := `SELECT` + linkColumns + `
		FROM claim_evidence_links l
		WHERE l.claim_id = $1
		ORDER BY l.created_at, l.id`
	return r.list(ctx, query, claimID)
}

func (r *postgresLinkRepo) Delete(ctx context.Context, id common.ID) error {
	res, err := r.executor().ExecContext(ctx, `DELETE FROM claim_evidence_links WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete link")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrCodeLinkNotFound, "link not found").WithDetail(string(id))
	}
	return nil
}

func (r *postgresLinkRepo) list(ctx context.Context, query string, args ...interface{}) ([]*evidence.Link, error) {
	rows, err := r.executor().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list links")
	}
	defer rows.Close()

	var out []*evidence.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan link")
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate links")
	}
	return out, nil
}

func scanLink(s scanner) (*evidence.Link, error) {
	var (
		l        evidence.Link
		uploadID sql.NullString
		eventID  sql.NullString
		exhibit  sql.NullString
		notes    sql.NullString
		linkedBy sql.NullString
	)
	err := s.Scan(
		&l.ID, &l.ClaimID, &uploadID, &eventID, &l.LinkType,
		&exhibit, &l.RelevanceScore, &notes, &linkedBy, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if uploadID.Valid {
		id := common.ID(uploadID.String)
		l.UploadID = &id
	}
	if eventID.Valid {
		id := common.ID(eventID.String)
		l.ExtractedEventID = &id
	}
	if exhibit.Valid {
		l.ExhibitNumber = &exhibit.String
	}
	l.Notes = notes.String
	l.LinkedBy = common.ActorID(linkedBy.String)
	return &l, nil
}

// ---------------------------------------------------------------------------
// Requirement fulfillments
// ---------------------------------------------------------------------------

type postgresFulfillmentRepo struct {
	conn *postgres.Connection
	log  logging.Logger
}

// NewFulfillmentRepo builds the PostgreSQL fulfillment repository.
func NewFulfillmentRepo(conn *postgres.Connection, log logging.Logger) evidence.FulfillmentRepository {
	return &postgresFulfillmentRepo{conn: conn, log: log}
}

func (r *postgresFulfillmentRepo) executor() queryExecutor {
	return r.conn.DB()
}

const fulfillmentColumns = `
	f.id, f.claim_id, f.requirement_id, f.fulfilled, f.evidence_ref,
	f.notes, f.verified_by, f.created_at`

func (r *postgresFulfillmentRepo) Create(ctx context.Context, f *evidence.Fulfillment) error {
	query := `
		INSERT INTO requirement_fulfillments (
			id, claim_id, requirement_id, fulfilled, evidence_ref,
			notes, verified_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.executor().ExecContext(ctx, query,
		f.ID, f.ClaimID, f.RequirementID, f.Fulfilled, nullID(f.EvidenceRef),
		nullString(f.Notes), nullString(string(f.VerifiedBy)), f.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create fulfillment")
	}
	return nil
}

func (r *postgresFulfillmentRepo) ListByCase(ctx context.Context, caseID string) ([]*evidence.Fulfillment, error) {
	query := `SELECT` + fulfillmentColumns + `
		FROM requirement_fulfillments f
		JOIN claims c ON c.id = f.claim_id
		WHERE c.case_id = $1
		ORDER BY f.created_at, f.id`
	return r.list(ctx, query, caseID)
}

func (r *postgresFulfillmentRepo) ListByClaim(ctx context.Context, claimID common.ID) ([]*evidence.Fulfillment, error) {
	query := `SELECT` + fulfillmentColumns + `
		FROM requirement_fulfillments f
		WHERE f.claim_id = $1
		ORDER BY f.created_at, f.id`
	return r.list(ctx, query, claimID)
}

func (r *postgresFulfillmentRepo) list(ctx context.Context, query string, args ...interface{}) ([]*evidence.Fulfillment, error) {
	rows, err := r.executor().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list fulfillments")
	}
	defer rows.Close()

	var out []*evidence.Fulfillment
	for rows.Next() {
		f, err := scanFulfillment(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan fulfillment")
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate fulfillments")
	}
	return out, nil
}

func scanFulfillment(s scanner) (*evidence.Fulfillment, error) {
	var (
		f           evidence.Fulfillment
		evidenceRef sql.NullString
		notes       sql.NullString
		verifiedBy  sql.NullString
	)
	err := s.Scan(
		&f.ID, &f.ClaimID, &f.RequirementID, &f.Fulfilled, &evidenceRef,
		&notes, &verifiedBy, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if evidenceRef.Valid {
		id := common.ID(evidenceRef.String)
		f.EvidenceRef = &id
	}
	f.Notes = notes.String
	f.VerifiedBy = common.ActorID(verifiedBy.String)
	return &f, nil
}
