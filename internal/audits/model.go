package audits

import (
	"time"

	"audit-backend/internal/scoring"
)

// Audit is a stored survey submission together with its evaluated result.
type Audit struct {
	ID                string                `json:"id"`
	Source            string                `json:"source"`
	Answers           scoring.SurveyAnswers `json:"answers"`
	Result            scoring.AuditResult   `json:"result"`
	RevenueGoal       string                `json:"revenueGoal,omitempty"`
	ClientAcquisition []string              `json:"clientAcquisition,omitempty"`
	Company           string                `json:"company,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}
