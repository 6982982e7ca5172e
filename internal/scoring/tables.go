package scoring

// Bottleneck labels as offered by the survey.
const (
	BottleneckLeadHandling   = "Lead handling"
	BottleneckClientComms    = "Client communication"
	BottleneckSales          = "Sales process"
	BottleneckContent        = "Content creation"
	BottleneckAdmin          = "Administrative tasks"
	BottleneckSupport        = "Customer support"
	BottleneckProjects       = "Project management"
	BottleneckMarketing      = "Marketing and advertising"
	BottleneckDataProcessing = "Data entry and processing"
)

// Budget brackets.
const (
	BudgetUnder1K   = "Less than $1,000"
	Budget1Kto3K    = "$1,000 - $3,000"
	Budget3Kto5K    = "$3,000 - $5,000"
	Budget5KPlus    = "$5,000+"
	BudgetNotSure   = "Not sure / Need guidance"
	timelineASAP    = "ASAP (within a month)"
	fallbackToolRec = "Custom AI workflow based on your specific needs"
)

// bottleneckOrder fixes the matching order of the bottleneck table.
var bottleneckOrder = []string{
	BottleneckLeadHandling,
	BottleneckClientComms,
	BottleneckSales,
	BottleneckContent,
	BottleneckAdmin,
	BottleneckSupport,
	BottleneckProjects,
	BottleneckMarketing,
	BottleneckDataProcessing,
}

var bottleneckSolutions = map[string]BottleneckSolution{
	BottleneckLeadHandling: {
		Title: "Bottleneck in Lead Generation & Management",
		Symptoms: []string{
			"Inconsistent lead flow or quality",
			"Manual lead qualification taking too much time",
			"Leads falling through the cracks",
			"No effective lead nurturing system",
			"Lost opportunities due to slow follow-up",
		},
		Deliverables: []string{
			"Custom Manychat chatbot for Instagram/DM lead capture and qualification",
			"Automated funnel using Make.com (form > CRM > email/SMS sequence)",
			"AI-powered landing page with embedded chatbot for 24/7 lead conversion",
			"Website popup or embedded lead form with CRM integration & tagging system",
			"Lead scoring automation to identify hot prospects",
		},
	},
	BottleneckClientComms: {
		Title: "Bottleneck in Client Communication & DM Management",
		Symptoms: []string{
			"Too much time spent manually replying to DMs",
			"Leads not followed up consistently and on time",
			"Delayed responses causing lost opportunities",
			"Same questions being answered repeatedly",
			"Client communication scattered across multiple channels",
		},
		Deliverables: []string{
			"Manychat + Make.com automation sequences to pre-qualify leads 24/7",
			"Auto-responder for social DMs with intelligent lead routing & tagging",
			"Calendar integration to automatically schedule meetings without back-and-forth",
			"Templated responses for common questions with personalization",
			"Multi-channel communication hub to centralize all client interactions",
		},
	},
	BottleneckSales: {
		Title: "Bottleneck in Sales Conversion & Closing",
		Symptoms: []string{
			"Leads ghost after initial contact",
			"Low conversion rate from call to client",
			"Inconsistent follow-up process",
			"Time-consuming proposal creation",
			"Difficulty tracking sales pipeline progress",
		},
		Deliverables: []string{
			"AI proposal generator (personalized PDF offers based on client needs)",
			"Automated proposal follow-up email/text sequences via Make.com",
			"Lead scoring automation to prioritize hot leads and optimize follow-up",
			"Voiceflow bot to handle objections & pre-close before sales calls",
			"Sales pipeline automation with status updates and notifications",
		},
	},
	BottleneckContent: {
		Title: "Bottleneck in Content Creation & Distribution",
		Symptoms: []string{
			"Time-consuming video/script creation process",
			"Inconsistent posting schedule and quality",
			"Lack of strategic content planning",
			"Manual content distribution across channels",
			"Difficulty measuring content performance",
		},
		Deliverables: []string{
			"Cursor AI content system for daily/weekly scripts with brand voice",
			"Auto-upload scripts to Notion/Google Docs with collaborative workflow",
			"Make.com workflow to auto-schedule content to Buffer/Publer across channels",
			"Content calendar generator AI tool with strategic planning features",
			"Automated content performance tracking and optimization system",
		},
	},
	BottleneckAdmin: {
		Title: "Bottleneck in Administrative Workflows",
		Symptoms: []string{
			"Manual creation of invoices, contracts and proposals",
			"Time-consuming client onboarding process",
			"Disorganized administrative systems",
			"Paper-based or manual document handling",
			"Repetitive data entry across multiple platforms",
		},
		Deliverables: []string{
			"Make.com automation: invoice + contract + onboarding in 1 click",
			"Custom form for client onboarding with automated document delivery",
			"Stripe + Make integration for auto-billing and payment reminders",
			"AI-powered proposal generator that pulls from audit data",
			"Document management system with automated filing and retrieval",
		},
	},
	BottleneckSupport: {
		Title: "Bottleneck in Client Support & Service Delivery",
		Symptoms: []string{
			"Repeating answers to the same questions",
			"Excessive time spent on routine support issues",
			"Slow response times to client inquiries",
			"Difficulty tracking support requests",
			"Inconsistent client experience",
		},
		Deliverables: []string{
			"Voiceflow chatbot or FAQ assistant on website to handle common questions",
			"AI assistant that answers queries from existing clients using company data",
			"Help center with searchable knowledge base and automated chatbot integration",
			"Automated check-in sequences for clients at strategic touchpoints",
			"Client portal with self-service options for common requests",
		},
	},
	BottleneckProjects: {
		Title: "Bottleneck in Team & Project Management",
		Symptoms: []string{
			"Team tasks unorganized or unclear",
			"Difficulty tracking project progress and deadlines",
			"Communication breakdowns between team members",
			"Inefficient resource allocation",
			"Manual status reporting and updates",
		},
		Deliverables: []string{
			"Team dashboard with task automation via Make.com",
			"Custom internal tools for real-time workflow visibility and tracking",
			"Automated check-ins/reminders using Slack/Email triggers at key milestones",
			"Workflow templates for recurring projects with auto-assignment",
			"Resource management system with AI optimization",
		},
	},
	BottleneckMarketing: {
		Title: "Bottleneck in Marketing Campaigns & Advertising",
		Symptoms: []string{
			"Inconsistent marketing results",
			"Manual campaign management taking too much time",
			"Difficulty tracking ROI across channels",
			"Ad creative and copy creation bottlenecks",
			"Poor targeting and audience segmentation",
		},
		Deliverables: []string{
			"Automated marketing campaign management system via Make.com",
			"AI-driven ad creative and copy generation tools",
			"Cross-channel performance tracking dashboard with ROI metrics",
			"Audience segmentation automation with personalized messaging",
			"Marketing calendar with automated execution and reporting",
		},
	},
	BottleneckDataProcessing: {
		Title: "Bottleneck in Data Management & Analysis",
		Symptoms: []string{
			"Manual data entry consuming valuable time",
			"Data scattered across multiple systems",
			"Inconsistent data formats and quality",
			"Difficulty extracting actionable insights",
			"Time-consuming report generation",
		},
		Deliverables: []string{
			"Automated data entry system using OCR and AI processing",
			"Data integration platform connecting all your business systems",
			"Automated data cleaning and standardization workflows",
			"AI-powered analytics dashboard with real-time insights",
			"Automated report generation and distribution on schedule",
		},
	},
}

var bottleneckTools = map[string]string{
	BottleneckLeadHandling:   "Manychat + Make.com automation suite",
	BottleneckClientComms:    "Manychat + Make.com automation suite",
	BottleneckContent:        "Cursor AI + content scheduling tools",
	BottleneckAdmin:          "Make.com + document automation system",
	BottleneckSales:          "AI proposal generator + automated follow-up system",
	BottleneckMarketing:      "Make.com marketing automation + AI creative suite",
	BottleneckDataProcessing: "OCR + data integration platform",
	BottleneckSupport:        "Voiceflow AI chatbot + knowledge base system",
	BottleneckProjects:       "Team workflow + Slack/Email automation suite",
}

var budgetRecommendations = map[string][]string{
	BudgetUnder1K: {
		"Done-with-you solution (templates, walkthroughs, weekly calls)",
		"Starter package (one high-leverage automation + tutorial)",
		"Mini-audit system you can use on your own",
		"AI tools training and implementation guidance",
	},
	Budget1Kto3K: {
		"Custom automation system (focused on your top bottleneck)",
		"Basic chatbot build + CRM integration",
		"Implementation of 2-3 key automations",
		"30-day support and optimization",
	},
	Budget3Kto5K: {
		"Comprehensive automation system (multi-step workflows)",
		"Full chatbot build + CRM integration",
		"Implementation of 4-5 key automations",
		"60-day support and optimization",
	},
	Budget5KPlus: {
		"Full-service automation implementation",
		"Complete audit → strategy → implementation",
		"Custom AI tools development",
		"90-day support and ongoing optimization",
		"Dedicated automation specialist",
	},
}

// Tool recommendations driven by the tool-maturity answers.
const (
	toolExtendMakeZapier = "Advanced Make.com or Zapier workflows to extend your current automations"
	toolCustomAI         = "Custom Cursor AI implementation for your specific workflows"
	toolManychat         = "Enhanced Manychat flows with advanced conditional logic"
	toolStarterBundle    = "Starter AI tools bundle (Make.com, Manychat, Cursor AI)"
	toolTeamWorkflow     = "Team workflow automation system with role-based dashboards"
	priorityQuickWin     = "Quick-win automation implementation focused on immediate ROI"
)

var timeEstimates = map[string]string{
	"Less than 5 hours": "2-3 hours per week (40-60% time savings)",
	"5-10 hours":        "4-6 hours per week (50-70% time savings)",
	"10-20 hours":       "8-12 hours per week (60-80% time savings)",
	"20+ hours":         "15+ hours per week (70-85% time savings)",
}

const defaultTimeEstimate = "5+ hours per week (estimated 60% time savings)"

type costBracket struct {
	markers  []string
	estimate string
}

// costBrackets is checked in order; the first bracket with any marker
// contained in the revenue answer wins.
var costBrackets = []costBracket{
	{markers: []string{"Less than $5,000"}, estimate: "$500-1,000 per month (potential 10-20% revenue increase)"},
	{markers: []string{"$5,000 - $10,000"}, estimate: "$1,000-2,000 per month (potential 15-25% revenue increase)"},
	{markers: []string{"$10,000 - $25,000"}, estimate: "$2,000-5,000 per month (potential 20-30% revenue increase)"},
	{markers: []string{"$25,000 - $50,000"}, estimate: "$5,000-10,000 per month (potential 15-25% revenue increase)"},
	{markers: []string{"$50,000", "$100,000"}, estimate: "$10,000+ per month (potential 15-20% revenue increase)"},
}

const defaultCostEstimate = "$2,000-5,000 per month (estimated based on industry averages)"

var (
	defaultOpportunities = []string{
		"Client communication automation",
		"Document processing automation",
		"Lead management workflow optimization",
		"Content creation and distribution system",
	}
	defaultTools = []string{
		"Cursor AI for content and workflow optimization",
		"Make.com for end-to-end workflow automation",
		"Manychat for lead capture and nurturing",
		"Industry-specific CRM with AI capabilities",
	}
	defaultPriorities = []string{
		"Conduct detailed workflow audit to identify automation opportunities",
		"Start with one high-impact automation project for quick ROI",
		"Implement time-tracking to measure automation effectiveness",
		"Develop an AI implementation roadmap for the next 6-12 months",
	}
)

// BottleneckKeys returns the known bottleneck labels in matching order.
func BottleneckKeys() []string {
	return append([]string(nil), bottleneckOrder...)
}

// Solution returns a copy of the solution for a bottleneck label.
func Solution(key string) (BottleneckSolution, bool) {
	sol, ok := bottleneckSolutions[key]
	if !ok {
		return BottleneckSolution{}, false
	}
	return BottleneckSolution{
		Title:        sol.Title,
		Symptoms:     append([]string(nil), sol.Symptoms...),
		Deliverables: append([]string(nil), sol.Deliverables...),
	}, true
}

// BudgetBrackets returns the budget brackets that carry recommendations.
func BudgetBrackets() []string {
	return []string{BudgetUnder1K, Budget1Kto3K, Budget3Kto5K, Budget5KPlus}
}

// BudgetRecommendations returns a copy of the recommendations for a bracket.
func BudgetRecommendations(bracket string) ([]string, bool) {
	recs, ok := budgetRecommendations[bracket]
	if !ok {
		return nil, false
	}
	return append([]string(nil), recs...), true
}

// ToolFor returns the tool recommendation for a bottleneck label.
func ToolFor(key string) string {
	if tool, ok := bottleneckTools[key]; ok {
		return tool
	}
	return fallbackToolRec
}
