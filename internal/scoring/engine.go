package scoring

import "strings"

const (
	baseScore         = 70
	minScore          = 60
	maxScore          = 98
	maxListItems      = 4
	bottleneckWeight  = 3
	maxBottleneckBump = 15
)

// Evaluate scores survey answers and builds recommendations. It never fails:
// missing or unrecognized answers fall back to defaults.
func Evaluate(answers SurveyAnswers) AuditResult {
	opportunities := newOrderedSet()
	tools := newOrderedSet()
	priorities := newOrderedSet()
	adjustment := 0

	if answers.UsingAI == "Yes" && answers.CurrentTools != "" {
		adjustment += 10
		current := strings.ToLower(answers.CurrentTools)
		if strings.Contains(current, "make") || strings.Contains(current, "zapier") {
			tools.Add(toolExtendMakeZapier)
		}
		if strings.Contains(current, "chatgpt") || strings.Contains(current, "openai") {
			tools.Add(toolCustomAI)
		}
		if strings.Contains(current, "manychat") {
			tools.Add(toolManychat)
		}
	} else {
		adjustment -= 5
		tools.Add(toolStarterBundle)
	}

	if strings.Contains(answers.Revenue, "$50,000") || strings.Contains(answers.Revenue, "$100,000") {
		adjustment += 5
	}

	if strings.Contains(answers.TeamSize, "Medium") || strings.Contains(answers.TeamSize, "Larger") {
		adjustment += 5
		tools.Add(toolTeamWorkflow)
	}

	if answers.Timeline == timelineASAP {
		priorities.Add(priorityQuickWin)
	}

	processed := make(map[string]bool, len(bottleneckOrder))
	for _, entry := range answers.Bottlenecks {
		key, ok := matchBottleneck(entry, processed)
		if !ok {
			continue
		}
		processed[key] = true
		sol := bottleneckSolutions[key]

		opportunities.Add(sol.Title)
		if len(sol.Symptoms) >= 2 {
			priorities.Add("Address: " + strings.Join(sol.Symptoms[:2], " and "))
		} else if len(sol.Symptoms) == 1 {
			priorities.Add("Address: " + sol.Symptoms[0])
		}
		if len(sol.Deliverables) > 0 {
			priorities.Add(sol.Deliverables[0])
			priorities.Add(sol.Deliverables[secondDeliverableIndex(answers.Budget, len(sol.Deliverables))])
		}
		tools.Add(ToolFor(key))
	}
	adjustment += min(maxBottleneckBump, bottleneckWeight*len(answers.Bottlenecks))

	if recs, ok := budgetRecommendations[answers.Budget]; ok && len(recs) > 0 {
		priorities.Add(recs[budgetRecommendationIndex(answers.TeamSize, len(recs))])
	}

	return AuditResult{
		OverallScore:            clamp(baseScore+adjustment, minScore, maxScore),
		AutomationOpportunities: finalize(opportunities, defaultOpportunities),
		RecommendedTools:        finalize(tools, defaultTools),
		TopPriorities:           finalize(priorities, defaultPriorities),
		TimeEstimate:            TimeEstimate(answers.ManualHours),
		CostSavingsEstimate:     CostEstimate(answers.Revenue),
	}
}

// matchBottleneck returns the first unprocessed known label contained in entry.
func matchBottleneck(entry string, processed map[string]bool) (string, bool) {
	for _, key := range bottleneckOrder {
		if processed[key] {
			continue
		}
		if strings.Contains(entry, key) {
			return key, true
		}
	}
	return "", false
}

// secondDeliverableIndex picks a simpler deliverable for small budgets and the
// most comprehensive one for the top bracket. An unanswered budget keeps index 1.
func secondDeliverableIndex(budget string, n int) int {
	idx := 1
	switch {
	case budget == "":
	case strings.Contains(budget, BudgetUnder1K):
		idx = 1
	case strings.Contains(budget, Budget5KPlus):
		idx = n - 1
	default:
		idx = min(2, n-1)
	}
	return clamp(idx, 0, n-1)
}

// budgetRecommendationIndex maps team size onto a recommendation. An
// unanswered team size keeps index 0.
func budgetRecommendationIndex(teamSize string, n int) int {
	idx := 0
	switch {
	case teamSize == "":
	case strings.Contains(teamSize, "Solo"):
		idx = 0
	case strings.Contains(teamSize, "Small"):
		idx = 1
	default:
		idx = min(2, n-1)
	}
	return clamp(idx, 0, n-1)
}

// TimeEstimate maps a manual-hours bracket to a savings estimate.
func TimeEstimate(manualHours string) string {
	if est, ok := timeEstimates[manualHours]; ok {
		return est
	}
	return defaultTimeEstimate
}

// CostEstimate maps a revenue bracket to a savings estimate.
func CostEstimate(revenue string) string {
	if revenue == "" {
		return defaultCostEstimate
	}
	for _, bracket := range costBrackets {
		for _, marker := range bracket.markers {
			if strings.Contains(revenue, marker) {
				return bracket.estimate
			}
		}
	}
	return defaultCostEstimate
}

// ReadinessMessage summarizes a readiness score for display.
func ReadinessMessage(score int) string {
	switch {
	case score >= 80:
		return "Excellent! Your business is well-positioned for AI automation."
	case score >= 70:
		return "Good! Your business has solid potential for AI automation."
	default:
		return "Your business has significant opportunities for improvement with AI automation."
	}
}

func finalize(set *orderedSet, fallback []string) []string {
	items := set.Items()
	if len(items) == 0 {
		fallbackSet := newOrderedSet()
		for _, item := range fallback {
			fallbackSet.Add(item)
		}
		items = fallbackSet.Items()
	}
	if len(items) > maxListItems {
		items = items[:maxListItems]
	}
	return items
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
