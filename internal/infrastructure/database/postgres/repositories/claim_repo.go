package repositories

import (
	"context"
	"database/sql"

	"github.com/BackCheck/justice-unveiled/internal/domain/claim"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

type postgresClaimRepo struct {
	conn *postgres.Connection
	log  logging.Logger
}

// NewClaimRepo builds the PostgreSQL claim repository.
func NewClaimRepo(conn *postgres.Connection, log logging.Logger) claim.Repository {
	return &postgresClaimRepo{conn: conn, log: log}
}

func (r *postgresClaimRepo) executor() queryExecutor {
	return r.conn.DB()
}

const claimColumns = `
	id, case_id, claim_type, legal_section, legal_framework, allegation,
	alleged_by, alleged_against, date_of_claim, source_document,
	status, support_score, created_at, updated_at`

func (r *postgresClaimRepo) Create(ctx context.Context, c *claim.LegalClaim) error {
	query := `
		INSERT INTO claims (
			id, case_id, claim_type, legal_section, legal_framework, allegation,
			alleged_by, alleged_against, date_of_claim, source_document,
			status, support_score, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.executor().ExecContext(ctx, query,
		c.ID, c.CaseID, nullString(string(c.ClaimType)), c.LegalSection, c.LegalFramework,
		c.Allegation, nullString(c.AllegedBy), nullString(c.AllegedAgainst),
		c.DateOfClaim, nullID(c.SourceDocument),
		c.Status, c.SupportScore, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create claim")
	}
	return nil
}

func (r *postgresClaimRepo) GetByID(ctx context.Context, id common.ID) (*claim.LegalClaim, error) {
	query := `SELECT` + claimColumns + ` FROM claims WHERE id = $1`
	c, err := scanClaim(r.executor().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeClaimNotFound, "claim not found").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get claim")
	}
	return c, nil
}

func (r *postgresClaimRepo) ListByCase(ctx context.Context, caseID string) ([]*claim.LegalClaim, error) {
	query := `SELECT` + claimColumns + ` FROM claims WHERE case_id = $1 ORDER BY created_at, id`
	rows, err := r.executor().QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list claims")
	}
	defer rows.Close()

	var out []*claim.LegalClaim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan claim")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate claims")
	}
	return out, nil
}

func (r *postgresClaimRepo) UpdateDerivation(ctx context.Context, id common.ID, d claim.Derivation) error {
	query := `UPDATE claims SET status = $1, support_score = $2, updated_at = NOW() WHERE id = $3`
	res, err := r.executor().ExecContext(ctx, query, d.Status, d.Score, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update claim derivation")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrCodeClaimNotFound, "claim not found").WithDetail(string(id))
	}
	return nil
}

func scanClaim(s scanner) (*claim.LegalClaim, error) {
	var (
		c              claim.LegalClaim
		claimType      sql.NullString
		allegedBy      sql.NullString
		allegedAgainst sql.NullString
		dateOfClaim    sql.NullTime
		sourceDocument sql.NullString
	)
	err := s.Scan(
		&c.ID, &c.CaseID, &claimType, &c.LegalSection, &c.LegalFramework, &c.Allegation,
		&allegedBy, &allegedAgainst, &dateOfClaim, &sourceDocument,
		&c.Status, &c.SupportScore, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if claimType.Valid {
		c.ClaimType = legal.ClaimType(claimType.String)
	}
	c.AllegedBy = allegedBy.String
	c.AllegedAgainst = allegedAgainst.String
	if dateOfClaim.Valid {
		t := dateOfClaim.Time
		c.DateOfClaim = &t
	}
	if sourceDocument.Valid {
		id := common.ID(sourceDocument.String)
		c.SourceDocument = &id
	}
	return &c, nil
}
