package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dvloznov/finance-coach/internal/domain"
)

// recommendSavingsImprovement builds the savings-rate gap recommendation.
// The target rate and buffer framing depend on income type; the savings
// estimate is clamped at zero so an already-on-target user never sees a
// negative figure.
func (e *Engine) recommendSavingsImprovement(savingsRate float64, analysis domain.AnalysisResult, incomeType domain.IncomeType) domain.Recommendation {
	income := analysis.TotalIncome
	breakdown := spendingBreakdown(analysis)

	needsBudget := income * 0.5
	wantsBudget := income * 0.3
	savingsBudget := income * savingsTargetFixed

	var rec domain.Recommendation

	switch incomeType {
	case domain.IncomeFixed:
		rec = domain.Recommendation{
			Title: "Let's Build Your Savings Together (You Have a Steady Salary!)",
			Description: fmt.Sprintf(
				"I see you're saving %.1f%% right now. Here's the thing - with your regular monthly income of %s, "+
					"you have a huge advantage: predictability! Let's use that to automatically grow your wealth.\n\n"+
					"Here's what I noticed about your spending:\n%s\n\n"+
					"The goal? Get to at least 20%% savings (that's %s/month). But let's be realistic - step by step.",
				savingsRate*100, domain.FormatAmount(income), breakdown, domain.FormatAmount(savingsBudget)),
			ActionableSteps: []string{
				fmt.Sprintf("DAY 1: Set up auto-transfer of %s (just 5%%!) to savings on salary day. You won't even miss it.",
					domain.FormatAmount(income*0.05)),
				"THE 50/30/20 CHECK: Here is what your budget SHOULD look like:",
				fmt.Sprintf("   - NEEDS (50%% = %s): Rent, Groceries, Utilities, EMI. (You spent %s)",
					domain.FormatAmount(needsBudget), domain.FormatAmount(analysis.FixedExpensesTotal)),
				fmt.Sprintf("   - WANTS (30%% = %s): Dining, Shopping, Netflix. (You spent %s)",
					domain.FormatAmount(wantsBudget), domain.FormatAmount(analysis.VariableExpensesTotal)),
				fmt.Sprintf("   - SAVINGS (20%% = %s): SIPs, Emergency Fund.", domain.FormatAmount(savingsBudget)),
				fmt.Sprintf("WEEK 1: Review your 'Wants'. Can you cut %s from %s?",
					domain.FormatAmount(analysis.VariableExpensesTotal*0.1), topVariableCategories(analysis)),
				"MONTH 2: Increase auto-transfer by 2%. Keep doing this until you hit 20%.",
			},
			EstimatedSavings: math.Max(0, (savingsTargetFixed-savingsRate)*income),
			Rationale: "Successful savers pay themselves FIRST (that auto-transfer), then spend what's left. " +
				"Your future self will thank you - for emergencies, a house down payment, or just peace of mind.",
			Priority: domain.PriorityNormal,
		}

	case domain.IncomeVariable:
		bufferTarget := analysis.FixedExpensesTotal * emergencyFundMonths
		rec = domain.Recommendation{
			Title: "Building Your Safety Net (Freelancer Edition!)",
			Description: fmt.Sprintf(
				"Okay, fellow freelancer! Your income isn't fixed, which means you need a different game plan. "+
					"Right now you're saving %.1f%%, but one slow month could wipe that out.\n\n"+
					"Your current situation:\n- Income this period: %s\n- Expenses: %s\n%s\n\n"+
					"What you NEED: a %d-month emergency fund. Your income varies - the fund smooths out the bumps.",
				savingsRate*100, domain.FormatAmount(income), domain.FormatAmount(analysis.TotalExpense),
				breakdown, emergencyFundMonths),
			ActionableSteps: []string{
				fmt.Sprintf("IMMEDIATELY: Put 40%% of EVERY payment into a separate 'safety account'. That's %s from your current income.",
					domain.FormatAmount(income*0.4)),
				fmt.Sprintf("CALCULATE YOUR 'SURVIVAL NUMBER': Your fixed costs are %s/month. You need %dx that = %s in your emergency fund.",
					domain.FormatAmount(analysis.FixedExpensesTotal), emergencyFundMonths, domain.FormatAmount(bufferTarget)),
				"LIVE ON YOUR WORST MONTH: Budget as if your lowest-earning month is your income EVERY month.",
				fmt.Sprintf("VARIABLE EXPENSES (%s): These are your 'flex' categories - %s. Cut these FIRST in slow months.",
					topVariableCategories(analysis), domain.FormatAmount(analysis.VariableExpensesTotal)),
				"GOOD MONTH? Bank it. Don't increase lifestyle. Your bad months will come - be ready.",
			},
			EstimatedSavings: math.Max(0, (savingsTargetVariable-savingsRate)*income),
			Rationale: "Too many freelancers live like they earn their best month every month. Build the buffer NOW " +
				"while money is coming in; think of it as paying your future self a salary during lean times.",
			Priority: domain.PriorityNormal,
		}

	default:
		rec = domain.Recommendation{
			Title: "Let's Get Your Money Working For You",
			Description: fmt.Sprintf(
				"Currently saving %.1f%% of income. Financial experts recommend 20%% minimum. "+
					"Here's what that means for YOU:\n\n%s",
				savingsRate*100, breakdown),
			ActionableSteps: []string{
				"Automate it: Set up auto-transfer of 10% to savings right after income comes in.",
				fmt.Sprintf("Your variable expenses (%s): Find %s to cut.",
					domain.FormatAmount(analysis.VariableExpensesTotal), domain.FormatAmount(analysis.VariableExpensesTotal*0.1)),
				fmt.Sprintf("THE 50/30/20 RULE: Aim for Needs %s, Wants %s, Savings %s.",
					domain.FormatAmount(needsBudget), domain.FormatAmount(wantsBudget), domain.FormatAmount(savingsBudget)),
			},
			EstimatedSavings: math.Max(0, (savingsTargetFixed-savingsRate)*income),
			Rationale:        "Small changes now = big results later. Start with 10%, increase gradually.",
			Priority:         domain.PriorityNormal,
		}
	}

	return rec
}

// recommendImmediateAction checks the trailing window against the daily
// budget and raises an urgent alert on a significant overshoot. "Now" is the
// maximum transaction date, so historical files replay deterministically.
func (e *Engine) recommendImmediateAction(transactions []domain.Transaction, analysis domain.AnalysisResult, incomeType domain.IncomeType) (domain.Recommendation, bool) {
	if len(transactions) == 0 {
		return domain.Recommendation{}, false
	}

	lastDate := transactions[0].Date
	for _, txn := range transactions[1:] {
		if txn.Date.After(lastDate) {
			lastDate = txn.Date
		}
	}
	cutoff := lastDate.AddDate(0, 0, -recentWindowDays)

	var recentTotal float64
	recentByCategory := map[string]float64{}
	for _, txn := range transactions {
		if txn.Type != domain.TypeExpense || !txn.Date.After(cutoff) {
			continue
		}
		recentTotal += txn.Amount
		category := txn.Category
		if category == "" {
			category = "Uncategorized"
		}
		recentByCategory[category] += txn.Amount
	}
	if recentTotal == 0 {
		return domain.Recommendation{}, false
	}

	disposable := analysis.TotalIncome - analysis.FixedExpensesTotal
	dailyBudget := 0.0
	if disposable > 0 {
		dailyBudget = disposable / budgetDays
	}
	windowBudget := dailyBudget * recentWindowDays
	if dailyBudget <= 0 || recentTotal <= windowBudget*overspendBuffer {
		return domain.Recommendation{}, false
	}

	topCategory, topAmount := "", 0.0
	categories := make([]string, 0, len(recentByCategory))
	for c := range recentByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		if recentByCategory[c] > topAmount {
			topCategory, topAmount = c, recentByCategory[c]
		}
	}

	excess := recentTotal - windowBudget

	description := fmt.Sprintf(
		"I've noticed a spike in your spending over the last %d days. You've spent %s, mainly on %s (%s).\n\n"+
			"Based on your income, your 'safe' daily spending limit is around %s. You've exceeded this significantly.",
		recentWindowDays, domain.FormatAmount(recentTotal), topCategory, domain.FormatAmount(topAmount),
		domain.FormatAmount(dailyBudget))

	var steps []string
	var rationale string
	if incomeType == domain.IncomeVariable {
		steps = []string{
			fmt.Sprintf("URGENT: For the next %d days, limit spending to essentials only. No eating out, no shopping.", recentWindowDays),
			fmt.Sprintf("TRANSFER NOW: Move %s from checking to savings immediately to 'pay back' this overspending.",
				domain.FormatAmount(excess)),
			fmt.Sprintf("Next time you get a client payment, take out %s FIRST before budgeting the rest.",
				domain.FormatAmount(excess)),
		}
		rationale = "As a freelancer, your cash flow is your lifeline. Overspending today steals from your safety net tomorrow."
	} else {
		steps = []string{
			fmt.Sprintf("For the next %d days, try a 'No Spend' challenge. Eat at home, free entertainment only.", recentWindowDays),
			"Check your bank balance. Do you have enough for upcoming fixed bills?",
			fmt.Sprintf("Set a daily reminder for the next week: 'Budget left: %s'", domain.FormatAmount(dailyBudget)),
			fmt.Sprintf("Review the %s purchases. Were they planned? If not, return what you can.", topCategory),
		}
		rationale = "Getting back on track quickly is the key. A few days of strict budgeting now prevents a month of stress later."
	}

	return domain.Recommendation{
		Title:            fmt.Sprintf("[URGENT] Immediate Action: High Spending Alert (%s)", topCategory),
		Description:      description,
		ActionableSteps:  steps,
		EstimatedSavings: excess,
		Rationale:        rationale,
		Priority:         domain.PriorityUrgent,
	}, true
}

// spendingBreakdown renders the fixed/variable/top-category split in plain
// language for the savings narrative.
func spendingBreakdown(analysis domain.AnalysisResult) string {
	var lines []string

	if analysis.FixedExpensesTotal > 0 {
		pct := 0.0
		if analysis.TotalExpense > 0 {
			pct = analysis.FixedExpensesTotal / analysis.TotalExpense * 100
		}
		lines = append(lines, fmt.Sprintf("- Fixed costs (rent, utilities, etc.): %s (%.0f%% of spending)",
			domain.FormatAmount(analysis.FixedExpensesTotal), pct))
	}
	if analysis.VariableExpensesTotal > 0 {
		pct := 0.0
		if analysis.TotalExpense > 0 {
			pct = analysis.VariableExpensesTotal / analysis.TotalExpense * 100
		}
		lines = append(lines, fmt.Sprintf("- Variable spending (food, shopping, etc.): %s (%.0f%% of spending)",
			domain.FormatAmount(analysis.VariableExpensesTotal), pct))
	}
	if top, amt := analysis.TopCategory(); top != "" && top != "Rent" && top != "Salary" {
		lines = append(lines, fmt.Sprintf("- Your biggest expense? %s at %s", top, domain.FormatAmount(amt)))
	}

	if len(lines) == 0 {
		return "- Analyzing your spending patterns..."
	}
	return strings.Join(lines, "\n")
}

// fixedNarrativeCategories are excluded when naming flexible categories the
// user could trim.
var fixedNarrativeCategories = map[string]struct{}{
	"Rent": {}, "Utilities": {}, "Insurance": {}, "Education": {},
}

// topVariableCategories names the user's top three flexible categories,
// lowercased and comma-separated, with a generic fallback.
func topVariableCategories(analysis domain.AnalysisResult) string {
	type catAmount struct {
		name   string
		amount float64
	}
	var variable []catAmount
	for cat, amt := range analysis.SpendingByCategory {
		if _, fixed := fixedNarrativeCategories[cat]; fixed {
			continue
		}
		variable = append(variable, catAmount{cat, amt})
	}
	if len(variable) == 0 {
		return "dining, shopping, entertainment"
	}

	sort.Slice(variable, func(i, j int) bool {
		if variable[i].amount != variable[j].amount {
			return variable[i].amount > variable[j].amount
		}
		return variable[i].name < variable[j].name
	})
	if len(variable) > 3 {
		variable = variable[:3]
	}

	names := make([]string, len(variable))
	for i, c := range variable {
		names[i] = strings.ToLower(c.name)
	}
	return strings.Join(names, ", ")
}
