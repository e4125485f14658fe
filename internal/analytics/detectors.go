package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/dvloznov/finance-coach/internal/domain"
)

// merchantGroup accumulates expense transactions per merchant.
type merchantGroup struct {
	amounts []float64
	ids     []string
	total   float64
}

func groupByMerchant(expenses []domain.Transaction, keep func(domain.Transaction) bool) (map[string]*merchantGroup, []string) {
	groups := map[string]*merchantGroup{}
	for _, txn := range expenses {
		if keep != nil && !keep(txn) {
			continue
		}
		g := groups[txn.Merchant]
		if g == nil {
			g = &merchantGroup{}
			groups[txn.Merchant] = g
		}
		g.amounts = append(g.amounts, txn.Amount)
		g.ids = append(g.ids, txn.ID)
		g.total += txn.Amount
	}
	merchants := make([]string, 0, len(groups))
	for m := range groups {
		merchants = append(merchants, m)
	}
	// Map iteration order is random; sorted merchants keep insight order
	// identical across runs.
	sort.Strings(merchants)
	return groups, merchants
}

// detectSpendLeaks flags merchants with repeated small charges that add up to
// a material total.
func (e *Engine) detectSpendLeaks(expenses []domain.Transaction) []domain.Insight {
	small := e.smallTxnCutoff
	groups, merchants := groupByMerchant(expenses, func(t domain.Transaction) bool {
		return t.Amount < small
	})

	var insights []domain.Insight
	for _, merchant := range merchants {
		g := groups[merchant]
		if len(g.amounts) < e.leakMinCount || g.total <= e.leakMinTotal {
			continue
		}
		insights = append(insights, domain.Insight{
			Type: domain.InsightSpendLeak,
			Description: fmt.Sprintf("Multiple small transactions at %s totaling %s (%d transactions)",
				merchant, domain.FormatAmount(g.total), len(g.amounts)),
			Severity:              domain.SeverityMedium,
			RelatedTransactionIDs: g.ids,
			Evidence: domain.SpendLeakEvidence{
				Merchant: merchant,
				Total:    g.total,
				Count:    len(g.amounts),
			},
		})
	}
	return insights
}

// detectWeekendOverspending compares the per-day average of weekend spending
// against weekdays. Requires at least one active day in both partitions.
func (e *Engine) detectWeekendOverspending(expenses []domain.Transaction) []domain.Insight {
	var weekendSum, weekdaySum float64
	weekendDays := map[string]struct{}{}
	weekdayDays := map[string]struct{}{}

	for _, txn := range expenses {
		day := txn.Date.Format("2006-01-02")
		if txn.IsWeekend() {
			weekendSum += txn.Amount
			weekendDays[day] = struct{}{}
		} else {
			weekdaySum += txn.Amount
			weekdayDays[day] = struct{}{}
		}
	}

	if len(weekendDays) == 0 || len(weekdayDays) == 0 {
		return nil
	}

	weekendAvg := weekendSum / float64(len(weekendDays))
	weekdayAvg := weekdaySum / float64(len(weekdayDays))
	if weekdayAvg <= 0 || weekendAvg <= weekdayAvg*e.weekendExcessRatio {
		return nil
	}

	excessPct := (weekendAvg/weekdayAvg - 1) * 100
	return []domain.Insight{{
		Type: domain.InsightWeekendOverspending,
		Description: fmt.Sprintf("Weekend spending (%s/day) is %.0f%% higher than weekdays (%s/day)",
			domain.FormatAmount(weekendAvg), excessPct, domain.FormatAmount(weekdayAvg)),
		Severity: domain.SeverityMedium,
		Evidence: domain.WeekendEvidence{
			WeekendAvg: weekendAvg,
			WeekdayAvg: weekdayAvg,
		},
	}}
}

// detectSubscriptions flags merchants charged two or more times for the same
// (or nearly the same) amount.
func (e *Engine) detectSubscriptions(expenses []domain.Transaction) []domain.Insight {
	groups, merchants := groupByMerchant(expenses, nil)

	var insights []domain.Insight
	for _, merchant := range merchants {
		g := groups[merchant]
		if len(g.amounts) < 2 {
			continue
		}
		if !amountsRecurring(g.amounts, e.subscriptionSpread) {
			continue
		}
		insights = append(insights, domain.Insight{
			Type: domain.InsightSubscription,
			Description: fmt.Sprintf("Recurring payment to %s: %s x %d = %s",
				merchant, domain.FormatAmount(g.amounts[0]), len(g.amounts), domain.FormatAmount(g.total)),
			Severity:              domain.SeverityLow,
			RelatedTransactionIDs: g.ids,
			Evidence: domain.SubscriptionEvidence{
				Merchant: merchant,
				Amount:   g.amounts[0],
				Count:    len(g.amounts),
				Total:    g.total,
			},
		})
	}
	return insights
}

// amountsRecurring reports whether the amounts are identical or spread less
// than maxSpread relative to their mean.
func amountsRecurring(amounts []float64, maxSpread float64) bool {
	min, max, sum := amounts[0], amounts[0], 0.0
	identical := true
	for _, a := range amounts {
		if a != amounts[0] {
			identical = false
		}
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
		sum += a
	}
	if identical {
		return true
	}
	mean := sum / float64(len(amounts))
	if mean <= 0 {
		return false
	}
	return (max-min)/mean < maxSpread
}

// detectCategorySpikes flags non-exempt categories whose totals exceed the
// spike threshold.
func (e *Engine) detectCategorySpikes(expenses []domain.Transaction) []domain.Insight {
	totals := map[string]float64{}
	counts := map[string]int{}
	for _, txn := range expenses {
		category := txn.Category
		if category == "" {
			category = "Uncategorized"
		}
		totals[category] += txn.Amount
		counts[category]++
	}

	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var insights []domain.Insight
	for _, category := range categories {
		if totals[category] <= e.spikeThreshold {
			continue
		}
		if _, exempt := e.spikeExempt[category]; exempt {
			continue
		}
		insights = append(insights, domain.Insight{
			Type: domain.InsightCategorySpike,
			Description: fmt.Sprintf("High spending in %s: %s across %d transactions",
				category, domain.FormatAmount(totals[category]), counts[category]),
			Severity: domain.SeverityMedium,
			Evidence: domain.CategorySpikeEvidence{
				Category: category,
				Total:    totals[category],
				Count:    counts[category],
			},
		})
	}
	return insights
}

// detectTrend compares the first and last chronological month's expense
// totals. At most one trend insight is emitted per call.
func (e *Engine) detectTrend(expenses []domain.Transaction) []domain.Insight {
	monthly := map[time.Time]float64{}
	for _, txn := range expenses {
		monthly[txn.Month()] += txn.Amount
	}
	if len(monthly) < 2 {
		return nil
	}

	months := make([]time.Time, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	first := monthly[months[0]]
	last := monthly[months[len(months)-1]]

	evidence := domain.TrendEvidence{FirstMonthTotal: first, LastMonthTotal: last}

	switch {
	case last > first*e.trendUpRatio:
		return []domain.Insight{{
			Type: domain.InsightTrendIncreasing,
			Description: fmt.Sprintf("Spending increased from %s to %s over time",
				domain.FormatAmount(first), domain.FormatAmount(last)),
			Severity: domain.SeverityHigh,
			Evidence: evidence,
		}}
	case last < first*e.trendDownRatio:
		return []domain.Insight{{
			Type: domain.InsightTrendDecreasing,
			Description: fmt.Sprintf("Spending decreased from %s to %s - great progress!",
				domain.FormatAmount(first), domain.FormatAmount(last)),
			Severity: domain.SeverityLow,
			Evidence: evidence,
		}}
	}
	return nil
}
