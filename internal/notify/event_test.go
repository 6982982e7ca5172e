package notify

import (
	"testing"
	"time"

	"audit-backend/internal/scoring"
)

func TestFlattenAuditWithoutResultUsesPlaceholders(t *testing.T) {
	ev := Event{
		Kind:      KindAudit,
		Timestamp: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
	}
	got := ev.Map()

	want := map[string]string{
		"timestamp":         "2026-03-04T05:06:07Z",
		"name":              "Not provided",
		"email":             "Not provided",
		"phone":             "Not provided",
		"business_name":     "Not provided",
		"industry":          "Not provided",
		"bottlenecks":       "Not provided",
		"score":             "Not calculated",
		"opportunities":     "None identified",
		"recommended_tools": "None recommended",
		"source":            "audit-survey",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestFlattenAuditWithResult(t *testing.T) {
	ev := Event{
		Kind:         KindAudit,
		Contact:      scoring.ContactInfo{Name: " Ana ", Email: "ana@x.io"},
		BusinessName: "Acme",
		Bottlenecks:  []string{"Lead handling", " ", "Scheduling"},
		Result: &scoring.AuditResult{
			OverallScore:            82,
			AutomationOpportunities: []string{"A", "B"},
			RecommendedTools:        []string{"Zapier"},
			TimeEstimate:            "10-15 hours per week",
		},
	}
	got := ev.Map()

	checks := map[string]string{
		"name":              "Ana",
		"bottlenecks":       "Lead handling, Scheduling",
		"score":             "82",
		"opportunities":     "A, B",
		"recommended_tools": "Zapier",
		"time_savings":      "10-15 hours per week",
		"cost_savings":      "Not calculated",
		"top_priorities":    "None identified",
	}
	for k, v := range checks {
		if got[k] != v {
			t.Fatalf("%s = %q, want %q", k, got[k], v)
		}
	}

	fields := ev.Flatten()
	if fields[0].Key != "timestamp" || fields[len(fields)-1].Key != "source" {
		t.Fatalf("unexpected column order: first=%s last=%s", fields[0].Key, fields[len(fields)-1].Key)
	}
	if row := ev.Row(); len(row) != len(fields) {
		t.Fatalf("row has %d cells, want %d", len(row), len(fields))
	}
}

func TestFlattenContact(t *testing.T) {
	ev := Event{
		Kind:    KindContact,
		Source:  SourceWelcomePopup,
		Contact: scoring.ContactInfo{Name: "Bo", Email: "bo@x.io"},
		Message: "hello",
	}
	got := ev.Map()

	if got["source"] != "welcome_popup" || got["form_type"] != "contact_inquiry" {
		t.Fatalf("unexpected source fields: %v", got)
	}
	if got["company"] != "Not provided" || got["message"] != "hello" {
		t.Fatalf("unexpected contact fields: %v", got)
	}
	if _, ok := got["score"]; ok {
		t.Fatalf("contact events carry no score")
	}
}
