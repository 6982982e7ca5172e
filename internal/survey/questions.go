package survey

// Question types.
const (
	TypeTextInput    = "text-input"
	TypeSingleSelect = "single-select"
	TypeMultiSelect  = "multi-select"
	TypeContactInfo  = "contact-info"
)

// Question IDs, in survey order.
const (
	QBusiness          = 1
	QBottlenecks       = 2
	QUsingAI           = 3
	QCurrentTools      = 4
	QRevenue           = 5
	QRevenueGoal       = 6
	QClientAcquisition = 7
	QManualHours       = 8
	QTeamSize          = 9
	QTimeline          = 10
	QBudget            = 11
	QContact           = 12
)

// Field is an input on a text-input question.
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// Condition shows a question only when an earlier answer matches.
type Condition struct {
	QuestionID int    `json:"questionId"`
	Answer     string `json:"answer"`
}

// Question is one step of the audit survey.
type Question struct {
	ID        int        `json:"id"`
	Question  string     `json:"question"`
	Type      string     `json:"type"`
	Options   []string   `json:"options,omitempty"`
	Fields    []Field    `json:"fields,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
}

var questions = []Question{
	{
		ID:       QBusiness,
		Question: "What's your business name and industry?",
		Type:     TypeTextInput,
		Fields: []Field{
			{Name: "businessName", Label: "Business Name", Required: true},
			{Name: "industry", Label: "Industry", Required: true},
		},
	},
	{
		ID:       QBottlenecks,
		Question: "What is your biggest workflow bottleneck right now?",
		Type:     TypeMultiSelect,
		Options: []string{
			"Lead handling",
			"Client communication",
			"Content creation",
			"Administrative tasks",
			"Marketing and advertising",
			"Data entry and processing",
			"Customer support",
			"Project management",
			"Sales process",
			"Other (please specify)",
		},
	},
	{
		ID:       QUsingAI,
		Question: "Do you currently use any automation or AI tools?",
		Type:     TypeSingleSelect,
		Options:  []string{"Yes", "No"},
	},
	{
		ID:        QCurrentTools,
		Question:  "Which automation or AI tools do you currently use?",
		Type:      TypeTextInput,
		Fields:    []Field{{Name: "tools", Label: "List the tools you use (e.g., Zapier, ChatGPT, etc.)", Required: true}},
		Condition: &Condition{QuestionID: QUsingAI, Answer: "Yes"},
	},
	{
		ID:       QRevenue,
		Question: "What is your average monthly revenue?",
		Type:     TypeSingleSelect,
		Options: []string{
			"Less than $5,000",
			"$5,000 - $10,000",
			"$10,000 - $25,000",
			"$25,000 - $50,000",
			"$50,000 - $100,000",
			"More than $100,000",
			"Prefer not to say",
		},
	},
	{
		ID:       QRevenueGoal,
		Question: "What is your revenue goal for the next 6-12 months?",
		Type:     TypeTextInput,
		Fields:   []Field{{Name: "revenueGoal", Label: "Revenue Goal ($)", Required: false}},
	},
	{
		ID:       QClientAcquisition,
		Question: "How do you currently get clients?",
		Type:     TypeMultiSelect,
		Options: []string{
			"Organic content (social media, blog, etc.)",
			"Paid advertising",
			"Referrals",
			"Partnerships",
			"Cold outreach",
			"Events and networking",
			"Other (please specify)",
		},
	},
	{
		ID:       QManualHours,
		Question: "How much time do you spend per week on manual tasks?",
		Type:     TypeSingleSelect,
		Options:  []string{"Less than 5 hours", "5-10 hours", "10-20 hours", "20+ hours"},
	},
	{
		ID:       QTeamSize,
		Question: "Do you work solo or have a team?",
		Type:     TypeSingleSelect,
		Options: []string{
			"Solo",
			"Small team (2-5 people)",
			"Medium team (6-15 people)",
			"Larger team (15+ people)",
		},
	},
	{
		ID:       QTimeline,
		Question: "How soon would you like to solve these bottlenecks?",
		Type:     TypeSingleSelect,
		Options:  []string{"ASAP (within a month)", "1-3 months", "3-6 months", "6+ months"},
	},
	{
		ID:       QBudget,
		Question: "What is your estimated budget for automation solutions?",
		Type:     TypeSingleSelect,
		Options: []string{
			"Less than $1,000",
			"$1,000 - $3,000",
			"$3,000 - $5,000",
			"$5,000+",
			"Not sure / Need guidance",
		},
	},
	{
		ID:       QContact,
		Question: "What contact information can we use to send your personalized AI audit results?",
		Type:     TypeContactInfo,
	},
}

// Questions returns a copy of the survey in display order.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		cp := q
		cp.Options = append([]string(nil), q.Options...)
		cp.Fields = append([]Field(nil), q.Fields...)
		if q.Condition != nil {
			cond := *q.Condition
			cp.Condition = &cond
		}
		out[i] = cp
	}
	return out
}
