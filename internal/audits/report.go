package audits

import (
	"fmt"
	"strings"
	"time"

	"audit-backend/internal/shared/util"
)

const (
	defaultReportName = "your-business"
	reportFooter      = "Report generated by Stonebridge Acquisition AI Audit Tool"
)

// ReportFileName returns the download name for an audit's text report.
func ReportFileName(businessName string) string {
	return util.SlugFileName(businessName, defaultReportName) + "-ai-audit-report.txt"
}

// RenderReport renders the plain-text report for an audit.
func RenderReport(audit Audit, bookingURL string, date time.Time) string {
	name := strings.TrimSpace(audit.Answers.BusinessName)
	if name == "" {
		name = defaultReportName
	}
	r := audit.Result

	var b strings.Builder
	fmt.Fprintf(&b, "AI AUTOMATION AUDIT REPORT FOR: %s\n\n", name)
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format("January 2, 2006"))
	fmt.Fprintf(&b, "AUTOMATION READINESS SCORE: %d%%\n\n", r.OverallScore)
	fmt.Fprintf(&b, "ESTIMATED TIME SAVINGS: %s\n", r.TimeEstimate)
	fmt.Fprintf(&b, "POTENTIAL COST SAVINGS: %s\n\n", r.CostSavingsEstimate)

	writeNumbered(&b, "TOP AUTOMATION OPPORTUNITIES:", r.AutomationOpportunities)
	b.WriteString("\n")
	writeNumbered(&b, "RECOMMENDED TOOLS & TECHNOLOGIES:", r.RecommendedTools)
	b.WriteString("\n")
	writeNumbered(&b, "NEXT STEPS & PRIORITIES:", r.TopPriorities)
	b.WriteString("\n\n")

	if bookingURL != "" {
		b.WriteString("To discuss implementing these recommendations, book a free strategy call:\n")
		b.WriteString(bookingURL + "\n\n")
	}
	b.WriteString(reportFooter + "\n")
	return b.String()
}

func writeNumbered(b *strings.Builder, heading string, items []string) {
	b.WriteString(heading + "\n")
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
