package audits

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"audit-backend/internal/notify"
	"audit-backend/internal/scoring"
	"audit-backend/internal/shared/metrics"
	"audit-backend/internal/shared/telemetry"
	"audit-backend/internal/survey"
)

// Service evaluates survey submissions and records them.
type Service struct {
	Repo      Repo
	Publisher notify.Publisher
	Now       func() time.Time
	NewID     func() string
}

// NewService constructs a Service. A nil publisher disables notifications.
func NewService(repo Repo, publisher notify.Publisher) *Service {
	return &Service{
		Repo:      repo,
		Publisher: publisher,
		Now:       func() time.Time { return time.Now().UTC() },
		NewID:     uuid.NewString,
	}
}

// Submit evaluates the submission and returns the stored audit. Storage and
// notification failures are logged; the evaluated result is always returned.
func (s *Service) Submit(ctx context.Context, sub survey.Submission, source string) Audit {
	if strings.TrimSpace(source) == "" {
		source = notify.SourceAuditSurvey
	}
	answers := survey.Normalize(sub.Answers)
	now := s.Now()
	audit := Audit{
		ID:                s.NewID(),
		Source:            source,
		Answers:           answers,
		Result:            scoring.Evaluate(answers),
		RevenueGoal:       strings.TrimSpace(sub.RevenueGoal),
		ClientAcquisition: sub.ClientAcquisition,
		Company:           strings.TrimSpace(sub.Company),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	metrics.IncAuditsSubmitted()
	metrics.ObserveAuditScore(audit.Result.OverallScore)

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, audit); err != nil {
			metrics.IncAuditsPersistFailed()
			telemetry.Error("audit.persist_failed", map[string]any{
				"audit_id": audit.ID,
				"error":    err.Error(),
			})
		}
	}

	telemetry.Info("audit.submitted", map[string]any{
		"audit_id":          audit.ID,
		"source":            audit.Source,
		"overall_score":     audit.Result.OverallScore,
		"bottleneck_count":  len(answers.Bottlenecks),
		"has_contact_email": answers.ContactInfo.Email != "",
	})
	s.publish(ctx, audit)
	return audit
}

// Get returns a stored audit.
func (s *Service) Get(ctx context.Context, auditID string) (Audit, error) {
	if s.Repo == nil {
		return Audit{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, auditID)
}

// List returns stored audits newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Audit, error) {
	if s.Repo == nil {
		return []Audit{}, nil
	}
	return s.Repo.List(ctx, limit, offset)
}

// UpdateContact replaces an audit's contact details and notifies the sinks again.
func (s *Service) UpdateContact(ctx context.Context, auditID string, contact scoring.ContactInfo) (Audit, error) {
	if s.Repo == nil {
		return Audit{}, ErrNotFound
	}
	audit, err := s.Repo.UpdateContact(ctx, auditID, survey.CleanContact(contact), s.Now())
	if err != nil {
		return Audit{}, err
	}
	telemetry.Info("audit.contact_updated", map[string]any{"audit_id": audit.ID})
	s.publish(ctx, audit)
	return audit, nil
}

func (s *Service) publish(ctx context.Context, audit Audit) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(ctx, EventFor(audit))
}

// EventFor builds the notification event for an audit.
func EventFor(audit Audit) notify.Event {
	result := audit.Result
	return notify.Event{
		Kind:         notify.KindAudit,
		ID:           audit.ID,
		Source:       audit.Source,
		Timestamp:    audit.UpdatedAt,
		Contact:      audit.Answers.ContactInfo,
		BusinessName: audit.Answers.BusinessName,
		Industry:     audit.Answers.Industry,
		Bottlenecks:  audit.Answers.Bottlenecks,
		Company:      audit.Company,
		Result:       &result,
	}
}
