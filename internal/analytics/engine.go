// Package analytics computes aggregate spending totals and detects
// behavioral patterns (spend leaks, weekend overspending, subscriptions,
// category spikes, month-over-month trends) from a categorized transaction
// set. The engine is stateless and never mutates its input.
package analytics

import (
	"github.com/dvloznov/finance-coach/internal/domain"
)

// Detection thresholds. These are policy constants, not tuning knobs; the
// option funcs below exist for tests and experiments but every caller in the
// repo uses the defaults.
const (
	// DefaultSmallTxnCutoff is the per-transaction ceiling for a charge to
	// count toward a spend leak.
	DefaultSmallTxnCutoff = 500.0
	// DefaultLeakMinCount is the minimum number of small charges at one
	// merchant before a leak is considered.
	DefaultLeakMinCount = 3
	// DefaultLeakMinTotal is the minimum summed amount for a leak to be
	// worth surfacing.
	DefaultLeakMinTotal = 1000.0
	// DefaultWeekendExcessRatio flags weekend overspending when the weekend
	// per-day average exceeds the weekday average by this factor.
	DefaultWeekendExcessRatio = 1.5
	// DefaultSubscriptionSpread is the maximum relative spread
	// (max−min)/mean for repeated charges to look like a subscription.
	DefaultSubscriptionSpread = 0.10
	// DefaultSpikeThreshold is the category total above which a
	// category_spike insight fires.
	DefaultSpikeThreshold = 5000.0
	// DefaultTrendUpRatio / DefaultTrendDownRatio compare the last
	// chronological month's expense total against the first month's.
	DefaultTrendUpRatio   = 1.2
	DefaultTrendDownRatio = 0.8
)

// defaultSpikeExempt lists categories whose totals are structurally large and
// never count as spikes.
func defaultSpikeExempt() map[string]struct{} {
	return map[string]struct{}{
		"Rent":      {},
		"Salary":    {},
		"Utilities": {},
	}
}

// Engine detects insights and computes totals over a transaction set.
type Engine struct {
	smallTxnCutoff     float64
	leakMinCount       int
	leakMinTotal       float64
	weekendExcessRatio float64
	subscriptionSpread float64
	spikeThreshold     float64
	spikeExempt        map[string]struct{}
	trendUpRatio       float64
	trendDownRatio     float64
}

// Option adjusts a threshold on the engine.
type Option func(*Engine)

// WithSpikeThreshold overrides the category spike threshold.
func WithSpikeThreshold(v float64) Option {
	return func(e *Engine) { e.spikeThreshold = v }
}

// WithLeakThresholds overrides the spend-leak cutoff, count and total.
func WithLeakThresholds(cutoff float64, minCount int, minTotal float64) Option {
	return func(e *Engine) {
		e.smallTxnCutoff = cutoff
		e.leakMinCount = minCount
		e.leakMinTotal = minTotal
	}
}

// New creates an engine with the default policy thresholds.
func New(opts ...Option) *Engine {
	e := &Engine{
		smallTxnCutoff:     DefaultSmallTxnCutoff,
		leakMinCount:       DefaultLeakMinCount,
		leakMinTotal:       DefaultLeakMinTotal,
		weekendExcessRatio: DefaultWeekendExcessRatio,
		subscriptionSpread: DefaultSubscriptionSpread,
		spikeThreshold:     DefaultSpikeThreshold,
		spikeExempt:        defaultSpikeExempt(),
		trendUpRatio:       DefaultTrendUpRatio,
		trendDownRatio:     DefaultTrendDownRatio,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze computes totals and runs every detector over the transaction set.
// An empty input yields a zero-valued result with no insights. Detector
// results are concatenated in a fixed order: spend leaks, weekend
// overspending, subscriptions, category spikes, trend.
func (e *Engine) Analyze(transactions []domain.Transaction) domain.AnalysisResult {
	result := domain.AnalysisResult{
		Insights:           []domain.Insight{},
		SpendingByCategory: map[string]float64{},
	}
	if len(transactions) == 0 {
		return result
	}

	expenses := make([]domain.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		switch txn.Type {
		case domain.TypeIncome:
			result.TotalIncome += txn.Amount
		case domain.TypeExpense:
			result.TotalExpense += txn.Amount
			if txn.IsFixed {
				result.FixedExpensesTotal += txn.Amount
			} else {
				result.VariableExpensesTotal += txn.Amount
			}
			category := txn.Category
			if category == "" {
				category = "Uncategorized"
			}
			result.SpendingByCategory[category] += txn.Amount
			expenses = append(expenses, txn)
		}
	}

	result.Insights = append(result.Insights, e.detectSpendLeaks(expenses)...)
	result.Insights = append(result.Insights, e.detectWeekendOverspending(expenses)...)
	result.Insights = append(result.Insights, e.detectSubscriptions(expenses)...)
	result.Insights = append(result.Insights, e.detectCategorySpikes(expenses)...)
	result.Insights = append(result.Insights, e.detectTrend(expenses)...)

	return result
}
