package leads

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new lead.
func (r *PGRepo) Create(ctx context.Context, lead Lead) error {
	const query = `
INSERT INTO leads (id, source, form_type, name, email, company, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Source,
		lead.FormType,
		lead.Name,
		lead.Email,
		lead.Company,
		lead.Message,
		lead.CreatedAt,
	)
	return err
}

// List returns leads newest first. A zero limit means no limit.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Lead, error) {
	const query = `
SELECT id, source, form_type, name, email, company, message, created_at
FROM leads
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`
	if offset < 0 {
		offset = 0
	}
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := r.DB.QueryContext(ctx, query, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Lead{}
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.ID, &l.Source, &l.FormType, &l.Name, &l.Email, &l.Company, &l.Message, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
