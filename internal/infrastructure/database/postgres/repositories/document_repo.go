package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/BackCheck/justice-unveiled/internal/domain/document"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

// ---------------------------------------------------------------------------
// Uploads
// ---------------------------------------------------------------------------

type postgresUploadRepo struct {
	conn *postgres.Connection
	log  logging.Logger
}

// NewUploadRepo builds the PostgreSQL upload repository.
func NewUploadRepo(conn *postgres.Connection, log logging.Logger) document.UploadRepository {
	return &postgresUploadRepo{conn: conn, log: log}
}

func (r *postgresUploadRepo) executor() queryExecutor {
	return r.conn.DB()
}

const uploadColumns = `
	id, case_id, file_name, content_type, size_bytes, object_key, uploaded_by, created_at`

func (r *postgresUploadRepo) Create(ctx context.Context, u *document.Upload) error {
	query := `
		INSERT INTO uploads (
			id, case_id, file_name, content_type, size_bytes, object_key, uploaded_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.executor().ExecContext(ctx, query,
		u.ID, u.CaseID, u.FileName, nullString(u.ContentType), u.SizeBytes,
		u.ObjectKey, nullString(string(u.UploadedBy)), u.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create upload")
	}
	return nil
}

func (r *postgresUploadRepo) GetByID(ctx context.Context, id common.ID) (*document.Upload, error) {
	query := `SELECT` + uploadColumns + ` FROM uploads WHERE id = $1`
	u, err := scanUpload(r.executor().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "upload not found").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get upload")
	}
	return u, nil
}

func (r *postgresUploadRepo) ListByCase(ctx context.Context, caseID string) ([]*document.Upload, error) {
	query := `SELECT` + uploadColumns + ` FROM uploads WHERE case_id = $1 ORDER BY created_at, id`
	rows, err := r.executor().QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list uploads")
	}
	defer rows.Close()

	var out []*document.Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan upload")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate uploads")
	}
	return out, nil
}

func scanUpload(s scanner) (*document.Upload, error) {
	var (
		u           document.Upload
		contentType sql.NullString
		uploadedBy  sql.NullString
	)
	err := s.Scan(
		&u.ID, &u.CaseID, &u.FileName, &contentType, &u.SizeBytes,
		&u.ObjectKey, &uploadedBy, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.ContentType = contentType.String
	u.UploadedBy = common.ActorID(uploadedBy.String)
	return &u, nil
}

// ---------------------------------------------------------------------------
// Extracted events
// ---------------------------------------------------------------------------

type postgresEventRepo struct {
	conn *postgres.Connection
	log  logging.Logger
}

// NewEventRepo builds the PostgreSQL extracted-event repository.
func NewEventRepo(conn *postgres.Connection, log logging.Logger) document.EventRepository {
	return &postgresEventRepo{conn: conn, log: log}
}

func (r *postgresEventRepo) executor() queryExecutor {
	return r.conn.DB()
}

const eventColumns = `
	id, case_id, upload_id, title, description, event_date, actors, confidence, created_at`

func (r *postgresEventRepo) CreateBatch(ctx context.Context, events []*document.ExtractedEvent) error {
	if len(events) == 0 {
		return nil
	}
	query := `
		INSERT INTO extracted_events (
			id, case_id, upload_id, title, description, event_date, actors, confidence, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, e := range events {
		actors, err := json.Marshal(e.Actors)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event actors")
		}
		_, err = r.executor().ExecContext(ctx, query,
			e.ID, e.CaseID, e.UploadID, e.Title, nullString(e.Description),
			e.EventDate, actors, e.Confidence, e.CreatedAt,
		)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create extracted event")
		}
	}
	return nil
}

func (r *postgresEventRepo) GetByID(ctx context.Context, id common.ID) (*document.ExtractedEvent, error) {
	query := `SELECT` + eventColumns + ` FROM extracted_events WHERE id = $1`
	e, err := scanEvent(r.executor().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeNotFound, "extracted event not found").WithDetail(string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get extracted event")
	}
	return e, nil
}

func (r *postgresEventRepo) ListByCase(ctx context.Context, caseID string) ([]*document.ExtractedEvent, error) {
	query := `SELECT` + eventColumns + ` FROM extracted_events WHERE case_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, caseID)
}

func (r *postgresEventRepo) ListByUpload(ctx context.Context, uploadID common.ID) ([]*document.ExtractedEvent, error) {
	query := `SELECT` + eventColumns + ` FROM extracted_events WHERE upload_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, uploadID)
}

func (r *postgresEventRepo) list(ctx context.Context, query string, args ...interface{}) ([]*document.ExtractedEvent, error) {
	rows, err := r.executor().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list extracted events")
	}
	defer rows.Close()

	var out []*document.ExtractedEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan extracted event")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate extracted events")
	}
	return out, nil
}

func scanEvent(s scanner) (*document.ExtractedEvent, error) {
	var (
		e         document.ExtractedEvent
		desc      sql.NullString
		eventDate sql.NullTime
		actorsRaw []byte
	)
	err := s.Scan(
		&e.ID, &e.CaseID, &e.UploadID, &e.Title, &desc,
		&eventDate, &actorsRaw, &e.Confidence, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Description = desc.String
	if eventDate.Valid {
		t := eventDate.Time
		e.EventDate = &t
	}
	if len(actorsRaw) > 0 {
		if err := json.Unmarshal(actorsRaw, &e.Actors); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode event actors")
		}
	}
	return &e, nil
}
