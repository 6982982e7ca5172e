package audits

import (
	"context"
	"time"

	"audit-backend/internal/scoring"
)

// Repo defines persistence operations for audits.
type Repo interface {
	Create(ctx context.Context, audit Audit) error
	GetByID(ctx context.Context, auditID string) (Audit, error)
	UpdateContact(ctx context.Context, auditID string, contact scoring.ContactInfo, updatedAt time.Time) (Audit, error)
	List(ctx context.Context, limit, offset int) ([]Audit, error)
}
