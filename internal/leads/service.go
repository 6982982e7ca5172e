package leads

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"audit-backend/internal/notify"
	"audit-backend/internal/scoring"
	"audit-backend/internal/shared/metrics"
	"audit-backend/internal/shared/telemetry"
)

// Service records contact inquiries and notifies the sinks.
type Service struct {
	Repo      Repo
	Publisher notify.Publisher
	Now       func() time.Time
	NewID     func() string
}

func NewService(repo Repo, publisher notify.Publisher) *Service {
	return &Service{
		Repo:      repo,
		Publisher: publisher,
		Now:       func() time.Time { return time.Now().UTC() },
		NewID:     uuid.NewString,
	}
}

// Submit stores and publishes a lead. Storage failures are logged only.
func (s *Service) Submit(ctx context.Context, in Lead) Lead {
	lead := Lead{
		ID:        s.NewID(),
		Source:    normalizeSource(in.Source),
		FormType:  notify.FormTypeContactInquiry,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Company:   strings.TrimSpace(in.Company),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.Now(),
	}
	metrics.IncLeadsSubmitted()

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, lead); err != nil {
			metrics.IncLeadsPersistFailed()
			telemetry.Error("lead.persist_failed", map[string]any{
				"lead_id": lead.ID,
				"error":   err.Error(),
			})
		}
	}
	telemetry.Info("lead.submitted", map[string]any{
		"lead_id": lead.ID,
		"source":  lead.Source,
	})
	if s.Publisher != nil {
		s.Publisher.Publish(ctx, EventFor(lead))
	}
	return lead
}

// List returns stored leads newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Lead, error) {
	if s.Repo == nil {
		return []Lead{}, nil
	}
	return s.Repo.List(ctx, limit, offset)
}

// EventFor builds the notification event for a lead.
func EventFor(lead Lead) notify.Event {
	return notify.Event{
		Kind:      notify.KindContact,
		ID:        lead.ID,
		Source:    lead.Source,
		FormType:  lead.FormType,
		Timestamp: lead.CreatedAt,
		Contact:   scoring.ContactInfo{Name: lead.Name, Email: lead.Email},
		Company:   lead.Company,
		Message:   lead.Message,
	}
}

func normalizeSource(source string) string {
	if strings.TrimSpace(source) == notify.SourceWelcomePopup {
		return notify.SourceWelcomePopup
	}
	return notify.SourceContactPage
}
