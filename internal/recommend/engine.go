// Package recommend turns an analysis result into a ranked list of
// personalized coaching recommendations. It classifies the user's income
// stability, maps each insight to a tailored recommendation, and adds two
// engine-driven recommendations (savings-rate gap and a trailing-window
// overspending alert). The engine is stateless and deterministic.
package recommend

import (
	"sort"

	"github.com/dvloznov/finance-coach/internal/domain"
)

// Policy constants shared by the builders.
const (
	// savingsTargetFixed is the savings-rate goal pitched to salaried users
	// (and the gate below which the savings recommendation fires at all).
	savingsTargetFixed = 0.20
	// savingsTargetVariable is the steeper goal pitched to variable-income
	// users, framed as building an emergency fund.
	savingsTargetVariable = 0.35
	// emergencyFundMonths sizes the buffer target for variable income as a
	// multiple of fixed monthly costs.
	emergencyFundMonths = 6
	// weekendDaysPerMonth approximates how many weekend days a month has.
	// Deliberately flat rather than calendar-accurate.
	weekendDaysPerMonth = 8
	// recentWindowDays is the trailing window the urgent-alert check looks at.
	recentWindowDays = 3
	// budgetDays spreads disposable income into a daily allowance.
	budgetDays = 30
	// overspendBuffer is the slack factor on the window budget before the
	// urgent alert fires.
	overspendBuffer = 1.5
)

// Engine generates recommendations from an analysis result and the
// transaction set it was computed from.
type Engine struct{}

// New creates a recommendation engine.
func New() *Engine {
	return &Engine{}
}

// Generate produces the ranked recommendation list. It never fails: an empty
// insight list, missing evidence on a single insight, or zero-valued
// aggregates simply produce fewer recommendations. The input slice is not
// mutated. Callers decide how many recommendations to surface.
func (e *Engine) Generate(analysis domain.AnalysisResult, transactions []domain.Transaction) []domain.Recommendation {
	recommendations := []domain.Recommendation{}

	incomeType := e.ClassifyIncome(transactions)

	for _, insight := range analysis.Insights {
		if rec, ok := e.recommendForInsight(insight, analysis, incomeType); ok {
			recommendations = append(recommendations, rec)
		}
	}

	if analysis.TotalExpense > 0 {
		if rate := analysis.SavingsRate(); rate < savingsTargetFixed {
			recommendations = append(recommendations, e.recommendSavingsImprovement(rate, analysis, incomeType))
		}
	}

	if rec, ok := e.recommendImmediateAction(transactions, analysis, incomeType); ok {
		recommendations = append(recommendations, rec)
	}

	// Stable sort keeps insertion order for equal rank.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Outranks(recommendations[j])
	})

	return recommendations
}

// recommendForInsight dispatches on the insight's structured evidence. An
// insight with missing or mismatched evidence is skipped rather than failing
// the batch.
func (e *Engine) recommendForInsight(insight domain.Insight, analysis domain.AnalysisResult, incomeType domain.IncomeType) (domain.Recommendation, bool) {
	switch ev := insight.Evidence.(type) {
	case domain.SpendLeakEvidence:
		return e.recommendForSpendLeak(ev), true
	case domain.WeekendEvidence:
		return e.recommendForWeekendOverspending(ev, incomeType), true
	case domain.SubscriptionEvidence:
		return e.recommendForSubscription(ev), true
	case domain.CategorySpikeEvidence:
		return e.recommendForCategorySpike(ev), true
	default:
		// Trend insights feed the summary, not a dedicated recommendation.
		return domain.Recommendation{}, false
	}
}
