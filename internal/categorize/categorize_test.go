package categorize

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-coach/internal/domain"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name           string
		merchant       string
		description    string
		wantCategory   string
		wantFixed      bool
		wantConfidence float64
	}{
		{
			name:           "rent keyword is fixed",
			merchant:       "Mr Landlord",
			description:    "monthly rent",
			wantCategory:   "Rent",
			wantFixed:      true,
			wantConfidence: 0.9,
		},
		{
			name:           "cafe is dining out",
			merchant:       "CafeX",
			description:    "coffee",
			wantCategory:   "Dining Out",
			wantFixed:      false,
			wantConfidence: 0.9,
		},
		{
			name:           "uber is transport",
			merchant:       "Uber",
			description:    "ride home",
			wantCategory:   "Transport",
			wantFixed:      false,
			wantConfidence: 0.9,
		},
		{
			name:           "insurance premium is fixed",
			merchant:       "LIC",
			description:    "premium payment",
			wantCategory:   "Insurance",
			wantFixed:      true,
			wantConfidence: 0.9,
		},
		{
			name:           "no match stays uncategorized",
			merchant:       "XYZ Pvt Ltd",
			description:    "misc",
			wantCategory:   UncategorizedName,
			wantFixed:      false,
			wantConfidence: 0.0,
		},
		{
			name:           "longest keyword wins over shorter overlap",
			merchant:       "Airtel",
			description:    "mobile bill autopay",
			wantCategory:   "Utilities",
			wantFixed:      true,
			wantConfidence: 0.9,
		},
	}

	c := New(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns := []domain.Transaction{{
				Merchant:    tt.merchant,
				Description: tt.description,
				Type:        domain.TypeExpense,
			}}
			got := c.Categorize(txns)[0]
			if got.Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.IsFixed != tt.wantFixed {
				t.Errorf("isFixed = %v, want %v", got.IsFixed, tt.wantFixed)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestCategorize_SalaryFlipsType(t *testing.T) {
	c := New(zerolog.Nop())
	txns := []domain.Transaction{{
		Merchant:    "Acme Corp",
		Description: "salary credit",
		Type:        domain.TypeExpense,
	}}

	got := c.Categorize(txns)[0]
	if got.Category != "Salary" {
		t.Errorf("category = %q, want Salary", got.Category)
	}
	if got.Type != domain.TypeIncome {
		t.Errorf("type = %s, want income", got.Type)
	}
	if got.IsFixed {
		t.Error("income must not be marked as a fixed expense")
	}
}

func TestCategorize_MutatesInPlace(t *testing.T) {
	c := New(zerolog.Nop())
	txns := []domain.Transaction{{Merchant: "Netflix", Description: "subscription", Type: domain.TypeExpense}}
	c.Categorize(txns)
	if txns[0].Category != "Entertainment" {
		t.Errorf("category = %q, want Entertainment", txns[0].Category)
	}
}
