package domain

// AnalysisResult is the combined output of the analytics engine: all detected
// insights plus the aggregate totals the recommendation engine builds on.
// FixedExpensesTotal + VariableExpensesTotal equals TotalExpense (within
// floating tolerance) whenever every expense carries a fixed/variable flag.
type AnalysisResult struct {
	Insights              []Insight          `json:"insights"`
	SpendingByCategory    map[string]float64 `json:"spending_by_category"`
	FixedExpensesTotal    float64            `json:"fixed_expenses_total"`
	VariableExpensesTotal float64            `json:"variable_expenses_total"`
	TotalIncome           float64            `json:"total_income"`
	TotalExpense          float64            `json:"total_expense"`
}

// SavingsRate returns (income − expense) / income, or 0 when there is no
// income to divide by.
func (r AnalysisResult) SavingsRate() float64 {
	if r.TotalIncome <= 0 {
		return 0
	}
	return (r.TotalIncome - r.TotalExpense) / r.TotalIncome
}

// TopCategory returns the highest-spend category and its total, or "" and 0
// when no category spending was recorded.
func (r AnalysisResult) TopCategory() (string, float64) {
	top := ""
	topAmt := 0.0
	for cat, amt := range r.SpendingByCategory {
		if amt > topAmt || (amt == topAmt && top != "" && cat < top) {
			top = cat
			topAmt = amt
		}
	}
	return top, topAmt
}
