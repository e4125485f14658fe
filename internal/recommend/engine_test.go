package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/dvloznov/finance-coach/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func incomeTxn(id string, when time.Time, amount float64) domain.Transaction {
	return domain.Transaction{
		ID: id, Date: when, Amount: amount, Type: domain.TypeIncome,
		Merchant: "Client", Description: "Payment", Category: "Salary",
	}
}

func expenseTxn(id string, when time.Time, amount float64, category string) domain.Transaction {
	return domain.Transaction{
		ID: id, Date: when, Amount: amount, Type: domain.TypeExpense,
		Merchant: "Store", Description: "Purchase", Category: category,
	}
}

func TestClassifyIncome(t *testing.T) {
	tests := []struct {
		name string
		txns []domain.Transaction
		want domain.IncomeType
	}{
		{
			name: "no transactions",
			txns: nil,
			want: domain.IncomeUnknown,
		},
		{
			name: "single income transaction",
			txns: []domain.Transaction{incomeTxn("i1", date(2023, 10, 1), 50000)},
			want: domain.IncomeUnknown,
		},
		{
			name: "same salary three consecutive months",
			txns: []domain.Transaction{
				incomeTxn("i1", date(2023, 8, 1), 50000),
				incomeTxn("i2", date(2023, 9, 1), 50000),
				incomeTxn("i3", date(2023, 10, 1), 50000),
			},
			want: domain.IncomeFixed,
		},
		{
			name: "two distinct amounts within ten percent",
			txns: []domain.Transaction{
				incomeTxn("i1", date(2023, 9, 1), 50000),
				incomeTxn("i2", date(2023, 10, 1), 52000),
			},
			want: domain.IncomeFixed,
		},
		{
			name: "varying amounts but steady monthly cadence",
			txns: []domain.Transaction{
				incomeTxn("i1", date(2023, 8, 1), 40000),
				incomeTxn("i2", date(2023, 9, 1), 55000),
				incomeTxn("i3", date(2023, 10, 1), 62000),
			},
			want: domain.IncomeFixed,
		},
		{
			name: "many irregular payments in one month",
			txns: []domain.Transaction{
				incomeTxn("i1", date(2023, 10, 2), 8000),
				incomeTxn("i2", date(2023, 10, 9), 15000),
				incomeTxn("i3", date(2023, 10, 16), 4000),
				incomeTxn("i4", date(2023, 10, 23), 22000),
			},
			want: domain.IncomeVariable,
		},
		{
			name: "expenses ignored",
			txns: []domain.Transaction{
				expenseTxn("e1", date(2023, 10, 1), 500, "Groceries"),
				incomeTxn("i1", date(2023, 10, 2), 50000),
			},
			want: domain.IncomeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().ClassifyIncome(tt.txns)
			if got != tt.want {
				t.Errorf("ClassifyIncome() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGenerate_SavingsGap(t *testing.T) {
	analysis := domain.AnalysisResult{
		TotalIncome:           50000,
		TotalExpense:          45000,
		FixedExpensesTotal:    15000,
		VariableExpensesTotal: 30000,
		SpendingByCategory:    map[string]float64{"Shopping": 20000, "Dining Out": 10000, "Rent": 15000},
	}

	tests := []struct {
		name        string
		txns        []domain.Transaction
		wantSavings float64
	}{
		{
			name: "fixed income branch",
			txns: []domain.Transaction{
				incomeTxn("i1", date(2023, 9, 1), 25000),
				incomeTxn("i2", date(2023, 10, 1), 25000),
			},
			wantSavings: (0.20 - 0.10) * 50000,
		},
		{
			name: "variable income branch",
			txns: []domain.Transaction{
				incomeTxn("i1", date(2023, 10, 2), 5000),
				incomeTxn("i2", date(2023, 10, 9), 12000),
				incomeTxn("i3", date(2023, 10, 16), 8000),
				incomeTxn("i4", date(2023, 10, 23), 25000),
			},
			wantSavings: (0.35 - 0.10) * 50000,
		},
		{
			name:        "unknown income branch",
			txns:        nil,
			wantSavings: (0.20 - 0.10) * 50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := New().Generate(analysis, tt.txns)
			if len(recs) != 1 {
				t.Fatalf("expected one recommendation, got %d", len(recs))
			}
			if math.Abs(recs[0].EstimatedSavings-tt.wantSavings) > 1e-9 {
				t.Errorf("EstimatedSavings = %v, want %v", recs[0].EstimatedSavings, tt.wantSavings)
			}
			if recs[0].Priority != domain.PriorityNormal {
				t.Errorf("Priority = %s, want normal", recs[0].Priority)
			}
		})
	}
}

func TestGenerate_NoSavingsGapWhenOnTarget(t *testing.T) {
	analysis := domain.AnalysisResult{
		TotalIncome:        100000,
		TotalExpense:       70000,
		SpendingByCategory: map[string]float64{},
	}

	recs := New().Generate(analysis, nil)
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations at 30%% savings rate, got %d", len(recs))
	}
}

func TestGenerate_EmptyInputs(t *testing.T) {
	recs := New().Generate(domain.AnalysisResult{SpendingByCategory: map[string]float64{}}, nil)
	if len(recs) != 0 {
		t.Errorf("expected empty recommendation list, got %d", len(recs))
	}
}

func TestGenerate_PerInsightEstimates(t *testing.T) {
	// Savings rate above target so only insight-driven recommendations appear.
	analysis := domain.AnalysisResult{
		TotalIncome:        100000,
		TotalExpense:       70000,
		SpendingByCategory: map[string]float64{},
	}

	tests := []struct {
		name        string
		insight     domain.Insight
		wantSavings float64
	}{
		{
			name: "spend leak halves the merchant total",
			insight: domain.Insight{
				Type:     domain.InsightSpendLeak,
				Severity: domain.SeverityMedium,
				Evidence: domain.SpendLeakEvidence{Merchant: "CafeX", Total: 1250, Count: 5},
			},
			wantSavings: 625,
		},
		{
			name: "weekend recovers half the excess over eight weekend days",
			insight: domain.Insight{
				Type:     domain.InsightWeekendOverspending,
				Severity: domain.SeverityMedium,
				Evidence: domain.WeekendEvidence{WeekendAvg: 2100, WeekdayAvg: 300},
			},
			wantSavings: 0.5 * (2100 - 300) * 8,
		},
		{
			name: "subscription estimates the per-cycle charge",
			insight: domain.Insight{
				Type:     domain.InsightSubscription,
				Severity: domain.SeverityLow,
				Evidence: domain.SubscriptionEvidence{Merchant: "Netflix", Amount: 199, Count: 3, Total: 597},
			},
			wantSavings: 199,
		},
		{
			name: "category spike cuts twenty percent",
			insight: domain.Insight{
				Type:     domain.InsightCategorySpike,
				Severity: domain.SeverityMedium,
				Evidence: domain.CategorySpikeEvidence{Category: "Shopping", Total: 6000, Count: 4},
			},
			wantSavings: 1200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analysis
			analysis.Insights = []domain.Insight{tt.insight}

			recs := New().Generate(analysis, nil)
			if len(recs) != 1 {
				t.Fatalf("expected one recommendation, got %d", len(recs))
			}
			if math.Abs(recs[0].EstimatedSavings-tt.wantSavings) > 1e-9 {
				t.Errorf("EstimatedSavings = %v, want %v", recs[0].EstimatedSavings, tt.wantSavings)
			}
			if len(recs[0].ActionableSteps) == 0 {
				t.Error("expected actionable steps")
			}
		})
	}
}

func TestGenerate_InsightWithoutEvidenceSkipped(t *testing.T) {
	analysis := domain.AnalysisResult{
		TotalIncome:        100000,
		TotalExpense:       70000,
		SpendingByCategory: map[string]float64{},
		Insights: []domain.Insight{
			{Type: domain.InsightSpendLeak, Severity: domain.SeverityMedium}, // no evidence
			{
				Type:     domain.InsightSubscription,
				Severity: domain.SeverityLow,
				Evidence: domain.SubscriptionEvidence{Merchant: "Spotify", Amount: 119, Count: 2, Total: 238},
			},
		},
	}

	recs := New().Generate(analysis, nil)
	if len(recs) != 1 {
		t.Fatalf("one bad insight must not block the batch: got %d recommendations", len(recs))
	}
	if recs[0].EstimatedSavings != 119 {
		t.Errorf("EstimatedSavings = %v, want 119", recs[0].EstimatedSavings)
	}
}

func TestGenerate_UrgentAlert(t *testing.T) {
	// Two equal salary deposits -> fixed income. Last transaction date is
	// Oct 30; the three expenses on Oct 28-30 fall inside the window.
	txns := []domain.Transaction{
		incomeTxn("i1", date(2023, 9, 1), 100000),
		incomeTxn("i2", date(2023, 10, 1), 100000),
		expenseTxn("e1", date(2023, 10, 28), 12000, "Shopping"),
		expenseTxn("e2", date(2023, 10, 29), 10000, "Shopping"),
		expenseTxn("e3", date(2023, 10, 30), 8000, "Dining Out"),
	}
	analysis := domain.AnalysisResult{
		TotalIncome:           200000,
		TotalExpense:          190000,
		FixedExpensesTotal:    30000,
		VariableExpensesTotal: 160000,
		SpendingByCategory:    map[string]float64{"Shopping": 120000, "Dining Out": 70000},
	}

	recs := New().Generate(analysis, txns)
	if len(recs) < 2 {
		t.Fatalf("expected urgent alert plus savings gap, got %d recommendations", len(recs))
	}

	urgent := recs[0]
	if urgent.Priority != domain.PriorityUrgent {
		t.Fatalf("first recommendation priority = %s, want urgent", urgent.Priority)
	}

	// Urgent outranks the savings-gap recommendation even though the gap's
	// estimated savings (30000) exceeds the alert's.
	if recs[1].EstimatedSavings <= urgent.EstimatedSavings {
		t.Fatalf("test scenario broken: non-urgent savings %v should exceed urgent savings %v",
			recs[1].EstimatedSavings, urgent.EstimatedSavings)
	}

	// daily budget = (200000-30000)/30; excess = 30000 - 3*budget
	dailyBudget := 170000.0 / 30
	wantExcess := 30000 - dailyBudget*3
	if math.Abs(urgent.EstimatedSavings-wantExcess) > 1e-9 {
		t.Errorf("urgent EstimatedSavings = %v, want %v", urgent.EstimatedSavings, wantExcess)
	}
}

func TestGenerate_NoUrgentAlertWithinBudget(t *testing.T) {
	txns := []domain.Transaction{
		incomeTxn("i1", date(2023, 9, 1), 100000),
		incomeTxn("i2", date(2023, 10, 1), 100000),
		expenseTxn("e1", date(2023, 10, 30), 500, "Groceries"),
	}
	analysis := domain.AnalysisResult{
		TotalIncome:        200000,
		TotalExpense:       150000,
		FixedExpensesTotal: 30000,
		SpendingByCategory: map[string]float64{"Groceries": 500},
	}

	recs := New().Generate(analysis, txns)
	for _, rec := range recs {
		if rec.Priority == domain.PriorityUrgent {
			t.Fatal("did not expect an urgent alert for in-budget recent spending")
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	txns := []domain.Transaction{
		incomeTxn("i1", date(2023, 9, 1), 50000),
		incomeTxn("i2", date(2023, 10, 1), 50000),
	}
	analysis := domain.AnalysisResult{
		TotalIncome:           100000,
		TotalExpense:          95000,
		FixedExpensesTotal:    40000,
		VariableExpensesTotal: 55000,
		SpendingByCategory:    map[string]float64{"Shopping": 30000, "Dining Out": 25000, "Rent": 40000},
		Insights: []domain.Insight{
			{
				Type:     domain.InsightSpendLeak,
				Severity: domain.SeverityMedium,
				Evidence: domain.SpendLeakEvidence{Merchant: "CafeX", Total: 2000, Count: 6},
			},
			{
				Type:     domain.InsightCategorySpike,
				Severity: domain.SeverityMedium,
				Evidence: domain.CategorySpikeEvidence{Category: "Shopping", Total: 30000, Count: 12},
			},
		},
	}

	first := New().Generate(analysis, txns)
	second := New().Generate(analysis, txns)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Title != second[i].Title || first[i].EstimatedSavings != second[i].EstimatedSavings {
			t.Errorf("recommendation %d differs between runs", i)
		}
	}
}
