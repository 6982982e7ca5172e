package leads

import "context"

// Repo defines persistence operations for leads.
type Repo interface {
	Create(ctx context.Context, lead Lead) error
	List(ctx context.Context, limit, offset int) ([]Lead, error)
}
