package audits

import (
	"context"
	"sort"
	"sync"
	"time"

	"audit-backend/internal/scoring"
)

// MemoryRepo stores audits in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Audit
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Audit)}
}

func (r *MemoryRepo) Create(ctx context.Context, audit Audit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[audit.ID] = cloneAudit(audit)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, auditID string) (Audit, error) {
	if err := ctx.Err(); err != nil {
		return Audit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	audit, ok := r.byID[auditID]
	if !ok {
		return Audit{}, ErrNotFound
	}
	return cloneAudit(audit), nil
}

func (r *MemoryRepo) UpdateContact(ctx context.Context, auditID string, contact scoring.ContactInfo, updatedAt time.Time) (Audit, error) {
	if err := ctx.Err(); err != nil {
		return Audit{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	audit, ok := r.byID[auditID]
	if !ok {
		return Audit{}, ErrNotFound
	}
	audit.Answers.ContactInfo = contact
	audit.UpdatedAt = updatedAt
	r.byID[auditID] = audit
	return cloneAudit(audit), nil
}

// List returns audits newest first with limit/offset. A zero limit means no limit.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Audit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	all := make([]Audit, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, cloneAudit(a))
	}
	r.mu.RUnlock()

	if offset >= len(all) {
		return []Audit{}, nil
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func cloneAudit(a Audit) Audit {
	a.Answers.Bottlenecks = cloneStrings(a.Answers.Bottlenecks)
	a.ClientAcquisition = cloneStrings(a.ClientAcquisition)
	a.Result.AutomationOpportunities = cloneStrings(a.Result.AutomationOpportunities)
	a.Result.RecommendedTools = cloneStrings(a.Result.RecommendedTools)
	a.Result.TopPriorities = cloneStrings(a.Result.TopPriorities)
	return a
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
