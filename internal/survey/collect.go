package survey

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"audit-backend/internal/scoring"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is a collected survey: the engine input plus answers the engine
// does not score.
type Submission struct {
	Answers           scoring.SurveyAnswers `json:"answers"`
	RevenueGoal       string                `json:"revenueGoal,omitempty"`
	ClientAcquisition []string              `json:"clientAcquisition,omitempty"`
	Company           string                `json:"company,omitempty"`
}

// Collect maps raw answers keyed by question ID onto a Submission. Unknown
// question IDs and answers with an unexpected shape are ignored.
func Collect(raw map[string]json.RawMessage) Submission {
	byID := make(map[int]json.RawMessage, len(raw))
	for key, value := range raw {
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		byID[id] = value
	}

	var sub Submission
	a := &sub.Answers

	if fields, ok := decodeObject(byID[QBusiness]); ok {
		a.BusinessName = strings.TrimSpace(fields["businessName"])
		a.Industry = strings.TrimSpace(fields["industry"])
	}
	a.Bottlenecks = decodeList(byID[QBottlenecks])
	a.UsingAI = decodeString(byID[QUsingAI])
	if a.UsingAI == "Yes" {
		if fields, ok := decodeObject(byID[QCurrentTools]); ok {
			a.CurrentTools = strings.TrimSpace(fields["tools"])
		}
	}
	a.Revenue = decodeString(byID[QRevenue])
	if fields, ok := decodeObject(byID[QRevenueGoal]); ok {
		sub.RevenueGoal = strings.TrimSpace(fields["revenueGoal"])
	}
	sub.ClientAcquisition = decodeList(byID[QClientAcquisition])
	a.ManualHours = decodeString(byID[QManualHours])
	a.TeamSize = decodeString(byID[QTeamSize])
	a.Timeline = decodeString(byID[QTimeline])
	a.Budget = decodeString(byID[QBudget])
	if fields, ok := decodeObject(byID[QContact]); ok {
		a.ContactInfo = CleanContact(scoring.ContactInfo{
			Name:  fields["name"],
			Email: fields["email"],
			Phone: fields["phone"],
		})
		sub.Company = cleanField(fields["company"])
	}
	return sub
}

// Normalize trims a structured submission the same way Collect does.
func Normalize(a scoring.SurveyAnswers) scoring.SurveyAnswers {
	a.BusinessName = strings.TrimSpace(a.BusinessName)
	a.Industry = strings.TrimSpace(a.Industry)
	a.UsingAI = strings.TrimSpace(a.UsingAI)
	a.CurrentTools = strings.TrimSpace(a.CurrentTools)
	a.ContactInfo = CleanContact(a.ContactInfo)
	if a.Bottlenecks != nil {
		a.Bottlenecks = append([]string(nil), a.Bottlenecks...)
	}
	return a
}

// CleanContact trims contact fields and blanks the literal "None".
func CleanContact(c scoring.ContactInfo) scoring.ContactInfo {
	return scoring.ContactInfo{
		Name:  cleanField(c.Name),
		Email: cleanField(c.Email),
		Phone: cleanField(c.Phone),
	}
}

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func cleanField(v string) string {
	v = strings.TrimSpace(v)
	if v == "None" {
		return ""
	}
	return v
}

func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func decodeList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// decodeObject reads a flat object, keeping only string values.
func decodeObject(raw json.RawMessage) (map[string]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, true
}
