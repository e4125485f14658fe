package recommend

import (
	"fmt"
	"strings"

	"github.com/dvloznov/finance-coach/internal/domain"
)

// recommendForSpendLeak targets halving the flagged merchant total.
func (e *Engine) recommendForSpendLeak(ev domain.SpendLeakEvidence) domain.Recommendation {
	merchant := ev.Merchant
	if merchant == "" {
		merchant = "this merchant"
	}
	halved := ev.Total * 0.5

	description := fmt.Sprintf(
		"I noticed something: you've been to %s quite a few times, and it's added up to %s.\n\n"+
			"Now, I'm not saying stop completely - life's too short! But here's the math: if you cut this by "+
			"just HALF, that's %s back in your pocket this month. Over a year? %s!",
		merchant, domain.FormatAmount(ev.Total), domain.FormatAmount(halved), domain.FormatAmount(halved*12))

	var steps []string
	lower := strings.ToLower(merchant)
	if strings.Contains(lower, "coffee") || strings.Contains(lower, "cafe") || strings.Contains(lower, "starbucks") {
		steps = []string{
			fmt.Sprintf("WEEK 1: Try making coffee at home 3 days this week. Good beans still cost less than %s.", merchant),
			fmt.Sprintf("WEEK 2: Challenge yourself - can you go from daily %s to just 2x per week?", merchant),
			"MAKE IT FUN: Put the money you would've spent into a jar. Watch it grow.",
			"BE REALISTIC: If you LOVE your morning coffee out, keep it! But maybe skip the afternoon one?",
		}
	} else {
		weeklyBudget := ev.Total / 4
		steps = []string{
			fmt.Sprintf("STEP 1: Set a weekly budget: %s max at %s per week. Use cash only - when it's gone, it's gone.",
				domain.FormatAmount(weeklyBudget), merchant),
			"STEP 2: Before each purchase, ask: 'Do I need this NOW, or do I just want it?' Wait 10 minutes.",
			fmt.Sprintf("STEP 3: Find a cheaper alternative. Can you get the same thing for 30%% less (%s) somewhere else?",
				domain.FormatAmount(ev.Total*0.3)),
			"STEP 4: Every time you skip a purchase, note the money 'saved'. Watch it add up.",
		}
	}

	return domain.Recommendation{
		Title:            fmt.Sprintf("Hey, Let's Talk About Those %s Visits...", merchant),
		Description:      description,
		ActionableSteps:  steps,
		EstimatedSavings: halved,
		Rationale: fmt.Sprintf(
			"Small recurring expenses are sneaky. One %s visit feels harmless, but %d visits? That's real money.",
			merchant, ev.Count),
		Priority: domain.PriorityNormal,
	}
}

// recommendForWeekendOverspending assumes half of the weekend excess can be
// recovered, scaled by the flat weekend-days-per-month approximation.
func (e *Engine) recommendForWeekendOverspending(ev domain.WeekendEvidence, incomeType domain.IncomeType) domain.Recommendation {
	diff := ev.WeekendAvg - ev.WeekdayAvg
	monthlyOverspend := diff * weekendDaysPerMonth

	excessPct := 0.0
	if ev.WeekdayAvg > 0 {
		excessPct = (ev.WeekendAvg/ev.WeekdayAvg - 1) * 100
	}

	description := fmt.Sprintf(
		"I've got some news: your weekends are costing you %s per day vs weekdays at %s. That's %.0f%% more!\n\n"+
			"Weekends should be fun - you've earned it. But spending %s extra EVERY month on weekends? "+
			"That's %s per year.",
		domain.FormatAmount(ev.WeekendAvg), domain.FormatAmount(ev.WeekdayAvg), excessPct,
		domain.FormatAmount(monthlyOverspend), domain.FormatAmount(monthlyOverspend*12))

	var steps []string
	if incomeType == domain.IncomeVariable {
		steps = []string{
			fmt.Sprintf("FRIDAY RULE: Good income week? Okay to spend %s this weekend. Slow week? Weekend budget is %s max.",
				domain.FormatAmount(ev.WeekendAvg*0.7), domain.FormatAmount(ev.WeekdayAvg)),
			"PLAN FRIDAY MORNING (not Friday evening when tired): decide what you'll do this weekend and budget for it.",
			"CASH ENVELOPE: Put your weekend budget in cash. When it's gone, switch to free activities.",
			fmt.Sprintf("FREE WEEKENDS: Try 1-2 'free weekends' per month - parks, game nights, cooking. Each one saves %s.",
				domain.FormatAmount(ev.WeekendAvg*2)),
		}
	} else {
		steps = []string{
			fmt.Sprintf("THE BUDGET: Allocate %s for BOTH weekend days. Period.", domain.FormatAmount(ev.WeekendAvg*0.6)),
			"THURSDAY NIGHT: Plan your weekend activities WITH budgets. Specific numbers!",
			"SATURDAY MORNING: Withdraw weekend cash. Leave cards at home. Seriously - this works.",
			fmt.Sprintf("ONE SPLURGE: Every 2 weekends, have ONE planned splurge (%s). Other weekends, low-cost fun.",
				domain.FormatAmount(ev.WeekendAvg)),
		}
	}

	return domain.Recommendation{
		Title:            "Your Weekends Are Expensive (But We Can Fix This!)",
		Description:      description,
		ActionableSteps:  steps,
		EstimatedSavings: monthlyOverspend * 0.5,
		Rationale: "Weekend overspending is common: we work hard all week and feel we 'deserve' to spend. " +
			"Your future self deserves financial security more than your present self deserves that expensive brunch.",
		Priority: domain.PriorityNormal,
	}
}

// recommendForSubscription frames a cancel-and-reevaluate trial; the savings
// estimate is the recurring per-cycle charge.
func (e *Engine) recommendForSubscription(ev domain.SubscriptionEvidence) domain.Recommendation {
	merchant := ev.Merchant
	if merchant == "" {
		merchant = "this service"
	}

	description := fmt.Sprintf(
		"I see you're paying %s for %s. You've paid this %d times already.\n\n"+
			"Here's a question most people never ask: when was the last time you ACTUALLY used %s? "+
			"The math: %s per cycle adds up to %s per year - for something you might not even use.",
		domain.FormatAmount(ev.Amount), merchant, ev.Count, merchant,
		domain.FormatAmount(ev.Amount), domain.FormatAmount(ev.Amount*12))

	steps := []string{
		fmt.Sprintf("RIGHT NOW: Open %s. When did you last use it? Be honest.", merchant),
		"THE 30-DAY TEST: Cancel it for one month. If you don't miss it, keep it cancelled. If you do, reactivate.",
		fmt.Sprintf("ANNUAL PLANS: If you use %s regularly, check if annual plans are cheaper. Often saves 20-30%%.", merchant),
		"THE AUDIT: List ALL your subscriptions. Add them up. Keep the 3 you actually use, cancel the rest.",
	}

	return domain.Recommendation{
		Title:            fmt.Sprintf("Quick Question: Still Using %s?", merchant),
		Description:      description,
		ActionableSteps:  steps,
		EstimatedSavings: ev.Amount,
		Rationale: "Subscriptions are designed to be 'set and forget' - that's how they make money. " +
			"Every charge you cancel here is money YOU control, not some company's recurring revenue.",
		Priority: domain.PriorityNormal,
	}
}

// Category groups with dedicated step sets for spikes.
var (
	shoppingCategories = map[string]struct{}{
		"shopping": {}, "amazon": {}, "flipkart": {}, "myntra": {},
	}
	diningCategories = map[string]struct{}{
		"dining": {}, "dining out": {}, "zomato": {}, "swiggy": {}, "restaurant": {},
	}
)

// recommendForCategorySpike assumes a 20% cut of the flagged category total.
func (e *Engine) recommendForCategorySpike(ev domain.CategorySpikeEvidence) domain.Recommendation {
	category := ev.Category
	if category == "" {
		category = "this category"
	}

	avgPerTxn := ev.Total
	if ev.Count > 0 {
		avgPerTxn = ev.Total / float64(ev.Count)
	}
	targetCut := ev.Total * 0.2

	description := fmt.Sprintf(
		"Okay, let's talk about %s. You spent %s across %d transactions. That averages %s each time!\n\n"+
			"I'm not saying %s is bad - we all need things. But this is a LOT for one category. "+
			"If you cut this by just 20%%, that's %s saved.",
		category, domain.FormatAmount(ev.Total), ev.Count, domain.FormatAmount(avgPerTxn),
		category, domain.FormatAmount(targetCut))

	var steps []string
	lower := strings.ToLower(category)
	if _, ok := shoppingCategories[lower]; ok {
		steps = []string{
			"THE 48-HOUR RULE: Before buying ANYTHING non-essential, wait 48 hours. Most of the time the urge passes.",
			fmt.Sprintf("SET A LIMIT: Max %s on shopping this month. When you hit it, STOP.", domain.FormatAmount(ev.Total*0.5)),
			"DELETE THE APPS: Remove shopping apps from your phone for a month. Makes impulse buying way harder.",
			fmt.Sprintf("SHOPPING FUND: Love shopping? Fine - save for it. Put %s aside each month and shop only with that fund.",
				domain.FormatAmount(avgPerTxn)),
		}
	} else if _, ok := diningCategories[lower]; ok {
		steps = []string{
			fmt.Sprintf("HOME COOKING CHALLENGE: Cook at home 4 days this week. Even a simple meal saves %s vs ordering.",
				domain.FormatAmount(avgPerTxn*0.7)),
			fmt.Sprintf("MEAL PREP SUNDAY: Two hours of cooking covers 4-5 meals and saves %s in delivery fees alone.",
				domain.FormatAmount(avgPerTxn*4)),
			fmt.Sprintf("DINING OUT BUDGET: %s per month for eating out. Quality over quantity.", domain.FormatAmount(ev.Total*0.4)),
			"ONE RULE: Order out max 2x per week. Other days, cook or eat leftovers.",
		}
	} else {
		steps = []string{
			fmt.Sprintf("BUDGET IT: %s gets max %s next month. Track every purchase in this category.",
				category, domain.FormatAmount(ev.Total*0.6)),
			"COMPARE PRICES: Before buying, check 3 places. Often a 20-30% price difference for the same item.",
			fmt.Sprintf("TRACK & REDUCE: Each month, try to spend 5%% less (%s) in %s than last month.",
				domain.FormatAmount(ev.Total*0.05), category),
		}
	}

	return domain.Recommendation{
		Title:            fmt.Sprintf("Whoa - %s on %s?!", domain.FormatAmount(ev.Total), category),
		Description:      description,
		ActionableSteps:  steps,
		EstimatedSavings: targetCut,
		Rationale: fmt.Sprintf(
			"High spending in one category means opportunity. Cut %s spending by 20%% and you won't notice "+
				"the difference in your life - but you'll definitely notice %s extra in savings.",
			category, domain.FormatAmount(targetCut)),
		Priority: domain.PriorityNormal,
	}
}
