package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"audit-backend/internal/notify"
)

const maxErrorBody = 512

// StatusError is returned when the webhook answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d: %s", e.StatusCode, e.Body)
}

// Sink posts events as JSON to per-kind webhook URLs.
type Sink struct {
	urls       map[notify.Kind]string
	httpClient *http.Client
}

// New builds a webhook sink. An empty URL disables that kind.
func New(auditURL, leadURL string, timeout time.Duration) *Sink {
	urls := map[notify.Kind]string{}
	if u := strings.TrimSpace(auditURL); u != "" {
		urls[notify.KindAudit] = u
	}
	if u := strings.TrimSpace(leadURL); u != "" {
		urls[notify.KindContact] = u
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sink{urls: urls, httpClient: &http.Client{Timeout: timeout}}
}

// Enabled reports whether any URL is configured.
func (s *Sink) Enabled() bool { return len(s.urls) > 0 }

func (s *Sink) Name() string { return "webhook" }

func (s *Sink) Accepts(kind notify.Kind) bool {
	_, ok := s.urls[kind]
	return ok
}

func (s *Sink) Send(ctx context.Context, ev notify.Event) error {
	url, ok := s.urls[ev.Kind]
	if !ok {
		return nil
	}
	body, err := json.Marshal(Payload(ev))
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Payload returns the JSON body posted for ev.
func Payload(ev notify.Event) map[string]any {
	if ev.Kind == notify.KindContact {
		source := ev.Source
		if source == "" {
			source = notify.SourceContactPage
		}
		formType := ev.FormType
		if formType == "" {
			formType = notify.FormTypeContactInquiry
		}
		return map[string]any{
			"source":    source,
			"formType":  formType,
			"name":      ev.Contact.Name,
			"email":     ev.Contact.Email,
			"company":   ev.Company,
			"message":   ev.Message,
			"timestamp": ev.Timestamp.UTC().Format(time.RFC3339),
		}
	}

	out := map[string]any{
		"name":                     ev.Contact.Name,
		"email":                    ev.Contact.Email,
		"phone":                    ev.Contact.Phone,
		"business_name":            ev.BusinessName,
		"automation_opportunities": []string{},
		"recommended_tools":        []string{},
		"top_priorities":           []string{},
	}
	if ev.Result != nil {
		out["overall_score"] = ev.Result.OverallScore
		out["automation_opportunities"] = nonNil(ev.Result.AutomationOpportunities)
		out["recommended_tools"] = nonNil(ev.Result.RecommendedTools)
		out["top_priorities"] = nonNil(ev.Result.TopPriorities)
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

var _ notify.Sink = (*Sink)(nil)
