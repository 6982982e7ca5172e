package scoring

// ContactInfo is carried through the engine untouched.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SurveyAnswers is the structured survey input. Every field is optional; the
// zero value is a valid input.
type SurveyAnswers struct {
	BusinessName string      `json:"businessName"`
	Industry     string      `json:"industry"`
	Bottlenecks  []string    `json:"bottlenecks"`
	UsingAI      string      `json:"usingAI"`
	CurrentTools string      `json:"currentTools"`
	Revenue      string      `json:"revenue"`
	TeamSize     string      `json:"teamSize"`
	ManualHours  string      `json:"manualHours"`
	Timeline     string      `json:"timeline"`
	Budget       string      `json:"budget"`
	ContactInfo  ContactInfo `json:"contactInfo"`
}

// AuditResult is the automation readiness report produced by Evaluate.
type AuditResult struct {
	OverallScore            int      `json:"overallScore"`
	AutomationOpportunities []string `json:"automationOpportunities"`
	RecommendedTools        []string `json:"recommendedTools"`
	TopPriorities           []string `json:"topPriorities"`
	TimeEstimate            string   `json:"timeEstimate"`
	CostSavingsEstimate     string   `json:"costSavingsEstimate"`
}

// BottleneckSolution describes a known workflow bottleneck.
type BottleneckSolution struct {
	Title        string   `json:"title"`
	Symptoms     []string `json:"symptoms"`
	Deliverables []string `json:"deliverables"`
}
