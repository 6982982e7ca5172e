package notify

import (
	"strconv"
	"strings"
	"time"

	"audit-backend/internal/scoring"
)

// Kind distinguishes the two submissions that produce events.
type Kind string

const (
	KindAudit   Kind = "audit"
	KindContact Kind = "contact"
)

// Lead sources.
const (
	SourceAuditSurvey  = "audit-survey"
	SourceContactPage  = "contact_page"
	SourceWelcomePopup = "welcome_popup"

	FormTypeContactInquiry = "contact_inquiry"
)

const (
	notProvided    = "Not provided"
	notCalculated  = "Not calculated"
	noneIdentified = "None identified"
	noneRecommend  = "None recommended"
)

// Event is what sinks receive: one completed audit or one contact inquiry.
type Event struct {
	Kind         Kind                 `json:"kind"`
	ID           string               `json:"id"`
	Source       string               `json:"source"`
	FormType     string               `json:"formType,omitempty"`
	Timestamp    time.Time            `json:"timestamp"`
	Contact      scoring.ContactInfo  `json:"contact"`
	BusinessName string               `json:"businessName,omitempty"`
	Industry     string               `json:"industry,omitempty"`
	Bottlenecks  []string             `json:"bottlenecks,omitempty"`
	Company      string               `json:"company,omitempty"`
	Message      string               `json:"message,omitempty"`
	Result       *scoring.AuditResult `json:"result,omitempty"`
}

// Field is one key/value pair of a flattened event.
type Field struct {
	Key   string
	Value string
}

// Flatten renders the event as ordered string fields. Missing values get
// readable placeholders and lists are joined with ", ".
func (e Event) Flatten() []Field {
	ts := e.Timestamp.UTC().Format(time.RFC3339)
	if e.Kind == KindContact {
		return []Field{
			{"timestamp", ts},
			{"name", orDefault(e.Contact.Name, notProvided)},
			{"email", orDefault(e.Contact.Email, notProvided)},
			{"company", orDefault(e.Company, notProvided)},
			{"message", orDefault(e.Message, notProvided)},
			{"source", orDefault(e.Source, SourceContactPage)},
			{"form_type", orDefault(e.FormType, FormTypeContactInquiry)},
		}
	}

	fields := []Field{
		{"timestamp", ts},
		{"name", orDefault(e.Contact.Name, notProvided)},
		{"email", orDefault(e.Contact.Email, notProvided)},
		{"phone", orDefault(e.Contact.Phone, notProvided)},
		{"business_name", orDefault(e.BusinessName, notProvided)},
		{"industry", orDefault(e.Industry, notProvided)},
		{"bottlenecks", joinOr(e.Bottlenecks, notProvided)},
	}
	if e.Result == nil {
		fields = append(fields,
			Field{"score", notCalculated},
			Field{"opportunities", noneIdentified},
			Field{"recommended_tools", noneRecommend},
			Field{"time_savings", notCalculated},
			Field{"cost_savings", notCalculated},
			Field{"top_priorities", noneIdentified},
		)
	} else {
		r := e.Result
		fields = append(fields,
			Field{"score", strconv.Itoa(r.OverallScore)},
			Field{"opportunities", joinOr(r.AutomationOpportunities, noneIdentified)},
			Field{"recommended_tools", joinOr(r.RecommendedTools, noneRecommend)},
			Field{"time_savings", orDefault(r.TimeEstimate, notCalculated)},
			Field{"cost_savings", orDefault(r.CostSavingsEstimate, notCalculated)},
			Field{"top_priorities", joinOr(r.TopPriorities, noneIdentified)},
		)
	}
	return append(fields, Field{"source", orDefault(e.Source, SourceAuditSurvey)})
}

// Map returns Flatten as a map.
func (e Event) Map() map[string]string {
	fields := e.Flatten()
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// Row returns the flattened values in column order.
func (e Event) Row() []any {
	fields := e.Flatten()
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = f.Value
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func joinOr(items []string, def string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return def
	}
	return strings.Join(kept, ", ")
}
