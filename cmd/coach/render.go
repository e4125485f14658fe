package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dvloznov/finance-coach/internal/coach"
	"github.com/dvloznov/finance-coach/internal/domain"
)

const lineWidth = 80

var severityMarkers = map[domain.Severity]string{
	domain.SeverityHigh:   "[!]",
	domain.SeverityMedium: "[*]",
	domain.SeverityLow:    "[i]",
}

// renderReport prints the human-readable coach report. The full flag
// includes every insight and the confidence footer, used when saving to a
// text file; interactive output trims to the top three insights.
func renderReport(w io.Writer, report *coach.Report, full bool) {
	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "$$$  YOUR PERSONAL FINANCIAL COACH REPORT  $$$")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\n%s\n\n", report.Summary)

	insights := report.Insights
	if !full {
		insights = topInsights(insights, 3)
	}
	if len(insights) > 0 {
		fmt.Fprintln(w, thin)
		fmt.Fprintln(w, ">>>  KEY INSIGHTS (What we found)")
		fmt.Fprintln(w, thin)
		for _, ins := range insights {
			marker, ok := severityMarkers[ins.Severity]
			if !ok {
				marker = "[?]"
			}
			fmt.Fprintf(w, "\n%s  %s\n", marker, ins.Description)
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintf(w, "\n%s\n", rule)
		fmt.Fprintln(w, ">>>  YOUR ACTION PLAN (Let's fix this!)")
		fmt.Fprintln(w, rule)

		for i, rec := range report.Recommendations {
			fmt.Fprintf(w, "\nSTEP %d: %s\n", i+1, strings.ToUpper(rec.Title))
			fmt.Fprintln(w, strings.Repeat("-", len(rec.Title)+8))

			fmt.Fprintln(w, "\n[COACH SAYS]:")
			fmt.Fprintf(w, "   %q\n", rec.Description)

			if rec.Rationale != "" {
				fmt.Fprintln(w, "\n[WHY THIS MATTERS]:")
				fmt.Fprintf(w, "   %s\n", rec.Rationale)
			}

			fmt.Fprintln(w, "\n[ACTION STEPS]:")
			for _, step := range rec.ActionableSteps {
				fmt.Fprintf(w, "   [ ] %s\n", step)
			}

			if rec.EstimatedSavings > 0 {
				fmt.Fprintf(w, "\n[POTENTIAL SAVINGS]: %s%.0f/month\n", domain.CurrencyPrefix, rec.EstimatedSavings)
			}

			fmt.Fprintf(w, "\n%s\n", strings.Repeat(".", lineWidth))
		}
	}

	if full {
		fmt.Fprintf(w, "\n[System Confidence: %.0f%%]\n", report.ConfidenceScore*100)
	}
	fmt.Fprintln(w, rule)
}

// topInsights keeps up to limit high/medium insights, falling back to the
// first insight when everything is low severity.
func topInsights(insights []domain.Insight, limit int) []domain.Insight {
	var top []domain.Insight
	for _, ins := range insights {
		if ins.Severity == domain.SeverityHigh || ins.Severity == domain.SeverityMedium {
			top = append(top, ins)
			if len(top) == limit {
				break
			}
		}
	}
	if len(top) == 0 && len(insights) > 0 {
		top = insights[:1]
	}
	return top
}
