package leads

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores leads in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	leads []Lead
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, lead Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, lead)
	return nil
}

// List returns leads newest first. A zero limit means no limit.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	all := make([]Lead, len(r.leads))
	copy(all, r.leads)
	r.mu.RUnlock()

	if offset >= len(all) {
		return []Lead{}, nil
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
