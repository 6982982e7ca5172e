package health

import (
	"context"
	"database/sql"
	"time"

	"audit-backend/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Status is the health payload served by the API.
type Status struct {
	OK       bool     `json:"ok"`
	Database string   `json:"database"`
	Delivery string   `json:"delivery"`
	Sinks    []string `json:"sinks"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB     *sql.DB
	Queued bool
	Sinks  []string
}

// NewService constructs a new health service.
func NewService(sqlDB *sql.DB, queued bool, sinks []string) *Service {
	return &Service{DB: sqlDB, Queued: queued, Sinks: sinks}
}

// Status reports database reachability and how events are delivered.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", Delivery: "inline", Sinks: []string{}}
	if s == nil {
		return st
	}
	if s.Sinks != nil {
		st.Sinks = s.Sinks
	}
	if s.Queued {
		st.Delivery = "queue"
	}
	if s.DB != nil {
		st.Database = "ok"
		if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
			st.OK = false
			st.Database = "unreachable"
		}
	}
	return st
}
