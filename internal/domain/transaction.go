package domain

import (
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction represents one normalized, categorized transaction.
// Ingestion produces it, categorization fills Category/IsFixed/Confidence,
// and the engines treat it as immutable from then on.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      float64         `json:"amount"` // non-negative; direction lives in Type
	Type        TransactionType `json:"type"`
	Merchant    string          `json:"merchant"`
	Description string          `json:"description"`

	Category   string  `json:"category,omitempty"` // "Uncategorized" when no rule matched
	IsFixed    bool    `json:"is_fixed"`
	Confidence float64 `json:"confidence_score"` // 0.0–1.0, set by categorization
}

// IsWeekend reports whether the transaction falls on a Saturday or Sunday.
func (t Transaction) IsWeekend() bool {
	wd := t.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Month returns the transaction's calendar month truncated to its first day,
// used for month-over-month grouping.
func (t Transaction) Month() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
