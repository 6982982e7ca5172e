package audits

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"audit-backend/internal/scoring"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const auditColumns = `id, source, answers, result, revenue_goal, client_acquisition, company, created_at, updated_at`

// Create inserts a new audit.
func (r *PGRepo) Create(ctx context.Context, audit Audit) error {
	const query = `
INSERT INTO audits (
	id, source, business_name, contact_email, overall_score, answers, result,
	revenue_goal, client_acquisition, company, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	answers, err := json.Marshal(audit.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	result, err := json.Marshal(audit.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	acquisition := audit.ClientAcquisition
	if acquisition == nil {
		acquisition = []string{}
	}
	acquisitionJSON, err := json.Marshal(acquisition)
	if err != nil {
		return fmt.Errorf("encode client acquisition: %w", err)
	}
	updatedAt := audit.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = audit.CreatedAt
	}
	_, err = r.DB.ExecContext(ctx, query,
		audit.ID,
		audit.Source,
		audit.Answers.BusinessName,
		audit.Answers.ContactInfo.Email,
		audit.Result.OverallScore,
		string(answers),
		string(result),
		audit.RevenueGoal,
		string(acquisitionJSON),
		audit.Company,
		audit.CreatedAt,
		updatedAt,
	)
	return err
}

// GetByID returns an audit by ID.
func (r *PGRepo) GetByID(ctx context.Context, auditID string) (Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE id = $1 LIMIT 1`
	audit, err := scanAudit(r.DB.QueryRowContext(ctx, query, auditID))
	if errors.Is(err, sql.ErrNoRows) {
		return Audit{}, ErrNotFound
	}
	return audit, err
}

// UpdateContact replaces the stored contact details of an audit.
func (r *PGRepo) UpdateContact(ctx context.Context, auditID string, contact scoring.ContactInfo, updatedAt time.Time) (Audit, error) {
	payload, err := json.Marshal(contact)
	if err != nil {
		return Audit{}, fmt.Errorf("encode contact: %w", err)
	}
	query := `
UPDATE audits
SET answers = jsonb_set(answers, '{contactInfo}', $2::jsonb, true),
    contact_email = $3,
    updated_at = $4
WHERE id = $1
RETURNING ` + auditColumns
	audit, err := scanAudit(r.DB.QueryRowContext(ctx, query, auditID, string(payload), contact.Email, updatedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return Audit{}, ErrNotFound
	}
	return audit, err
}

// List returns audits newest first with limit/offset. A zero limit means no limit.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Audit, error) {
	if offset < 0 {
		offset = 0
	}
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	query := `SELECT ` + auditColumns + ` FROM audits ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Audit{}
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, audit)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAudit(row rowScanner) (Audit, error) {
	var (
		a           Audit
		answers     []byte
		result      []byte
		acquisition []byte
	)
	err := row.Scan(
		&a.ID,
		&a.Source,
		&answers,
		&result,
		&a.RevenueGoal,
		&acquisition,
		&a.Company,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Audit{}, err
	}
	if err := json.Unmarshal(answers, &a.Answers); err != nil {
		return Audit{}, fmt.Errorf("decode answers: %w", err)
	}
	if err := json.Unmarshal(result, &a.Result); err != nil {
		return Audit{}, fmt.Errorf("decode result: %w", err)
	}
	if len(acquisition) > 0 {
		if err := json.Unmarshal(acquisition, &a.ClientAcquisition); err != nil {
			a.ClientAcquisition = nil
		}
	}
	return a, nil
}

var _ Repo = (*PGRepo)(nil)
