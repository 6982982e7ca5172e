package survey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audit-backend/internal/scoring"
)

func rawAnswers(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestCollectFullSurvey(t *testing.T) {
	raw := rawAnswers(t, `{
		"1": {"businessName": " Acme Co ", "industry": "Retail"},
		"2": ["Lead handling", "Sales process"],
		"3": "Yes",
		"4": {"tools": " Zapier, ChatGPT "},
		"5": "$50,000 - $100,000",
		"6": {"revenueGoal": "250000"},
		"7": ["Referrals", "Paid advertising"],
		"8": "10-20 hours",
		"9": "Small team (2-5 people)",
		"10": "ASAP (within a month)",
		"11": "$3,000 - $5,000",
		"12": {"name": "Jane", "email": "jane@acme.test", "phone": "None", "company": "Acme"}
	}`)

	sub := Collect(raw)
	a := sub.Answers
	assert.Equal(t, "Acme Co", a.BusinessName)
	assert.Equal(t, "Retail", a.Industry)
	assert.Equal(t, []string{"Lead handling", "Sales process"}, a.Bottlenecks)
	assert.Equal(t, "Yes", a.UsingAI)
	assert.Equal(t, "Zapier, ChatGPT", a.CurrentTools)
	assert.Equal(t, "$50,000 - $100,000", a.Revenue)
	assert.Equal(t, "10-20 hours", a.ManualHours)
	assert.Equal(t, "Small team (2-5 people)", a.TeamSize)
	assert.Equal(t, "ASAP (within a month)", a.Timeline)
	assert.Equal(t, "$3,000 - $5,000", a.Budget)
	assert.Equal(t, scoring.ContactInfo{Name: "Jane", Email: "jane@acme.test"}, a.ContactInfo)
	assert.Equal(t, "250000", sub.RevenueGoal)
	assert.Equal(t, []string{"Referrals", "Paid advertising"}, sub.ClientAcquisition)
	assert.Equal(t, "Acme", sub.Company)
}

func TestCollectDropsToolsUnlessUsingAI(t *testing.T) {
	raw := rawAnswers(t, `{"3": "No", "4": {"tools": "Zapier"}}`)
	sub := Collect(raw)
	assert.Equal(t, "No", sub.Answers.UsingAI)
	assert.Empty(t, sub.Answers.CurrentTools)
}

func TestCollectIgnoresMalformedAnswers(t *testing.T) {
	raw := rawAnswers(t, `{
		"abc": "ignored",
		"1": "not an object",
		"2": "not a list",
		"3": ["Yes"],
		"9": 4,
		"12": {"name": 42, "email": "a@b.co"}
	}`)
	sub := Collect(raw)
	a := sub.Answers
	assert.Empty(t, a.BusinessName)
	assert.Nil(t, a.Bottlenecks)
	assert.Empty(t, a.UsingAI)
	assert.Empty(t, a.TeamSize)
	assert.Equal(t, scoring.ContactInfo{Email: "a@b.co"}, a.ContactInfo)
}

func TestCollectEmptyEvaluatesToBaseline(t *testing.T) {
	sub := Collect(nil)
	assert.Equal(t, scoring.SurveyAnswers{}, sub.Answers)
	assert.Equal(t, 65, scoring.Evaluate(sub.Answers).OverallScore)
}

func TestCollectListKeepsOnlyStrings(t *testing.T) {
	raw := rawAnswers(t, `{"2": ["Sales process", 3, null, "Other"]}`)
	assert.Equal(t, []string{"Sales process", "Other"}, Collect(raw).Answers.Bottlenecks)
}

func TestNormalizeCopiesAndCleans(t *testing.T) {
	in := scoring.SurveyAnswers{
		BusinessName: "  Acme ",
		CurrentTools: "   ",
		Bottlenecks:  []string{"Sales process"},
		ContactInfo:  scoring.ContactInfo{Name: " None ", Email: " x@y.io "},
	}
	out := Normalize(in)
	assert.Equal(t, "Acme", out.BusinessName)
	assert.Empty(t, out.CurrentTools)
	assert.Equal(t, scoring.ContactInfo{Email: "x@y.io"}, out.ContactInfo)

	out.Bottlenecks[0] = "changed"
	assert.Equal(t, "Sales process", in.Bottlenecks[0])
}

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"jane@acme.test":  true,
		"a.b+c@d.co.uk":   true,
		"":                false,
		"jane":            false,
		"jane@acme":       false,
		"jane @acme.test": false,
		"@acme.test":      false,
		"jane@@acme.test": false,
	}
	for email, want := range cases {
		assert.Equal(t, want, ValidEmail(email), email)
	}
}

func TestQuestionsCatalog(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 12)
	for i, q := range qs {
		assert.Equal(t, i+1, q.ID)
		assert.NotEmpty(t, q.Question)
	}
	require.NotNil(t, qs[QCurrentTools-1].Condition)
	assert.Equal(t, QUsingAI, qs[QCurrentTools-1].Condition.QuestionID)

	// Every non-"Other" bottleneck option has a solution in the engine.
	for _, opt := range qs[QBottlenecks-1].Options {
		if opt == "Other (please specify)" {
			continue
		}
		_, ok := scoring.Solution(opt)
		assert.True(t, ok, opt)
	}
	for _, opt := range qs[QBudget-1].Options {
		if opt == scoring.BudgetNotSure {
			continue
		}
		_, ok := scoring.BudgetRecommendations(opt)
		assert.True(t, ok, opt)
	}

	qs[0].Fields[0].Name = "changed"
	qs[QCurrentTools-1].Condition.Answer = "No"
	fresh := Questions()
	assert.Equal(t, "businessName", fresh[0].Fields[0].Name)
	assert.Equal(t, "Yes", fresh[QCurrentTools-1].Condition.Answer)
}
