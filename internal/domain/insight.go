package domain

// InsightType tags the kind of behavioral pattern an insight describes.
type InsightType string

const (
	InsightSpendLeak           InsightType = "spend_leak"
	InsightWeekendOverspending InsightType = "weekend_overspending"
	InsightSubscription        InsightType = "subscription"
	InsightCategorySpike       InsightType = "category_spike"
	InsightTrendIncreasing     InsightType = "trend_increasing"
	InsightTrendDecreasing     InsightType = "trend_decreasing"
)

// Severity grades how much an insight should worry the user.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Evidence is the structured numeric payload behind an insight. Each insight
// type carries its own evidence struct so recommendation builders consume
// typed fields instead of re-parsing the rendered description.
type Evidence interface {
	insightEvidence()
}

// SpendLeakEvidence backs a spend_leak insight: repeated small charges at one
// merchant that add up.
type SpendLeakEvidence struct {
	Merchant string  `json:"merchant"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// WeekendEvidence backs a weekend_overspending insight with the per-day
// averages of both partitions.
type WeekendEvidence struct {
	WeekendAvg float64 `json:"weekend_avg"`
	WeekdayAvg float64 `json:"weekday_avg"`
}

// SubscriptionEvidence backs a subscription insight: a recurring charge of a
// (near-)constant amount.
type SubscriptionEvidence struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"` // per-cycle charge
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}

// CategorySpikeEvidence backs a category_spike insight.
type CategorySpikeEvidence struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// TrendEvidence backs a trend_increasing or trend_decreasing insight with the
// first and last chronological month totals.
type TrendEvidence struct {
	FirstMonthTotal float64 `json:"first_month_total"`
	LastMonthTotal  float64 `json:"last_month_total"`
}

func (SpendLeakEvidence) insightEvidence()     {}
func (WeekendEvidence) insightEvidence()       {}
func (SubscriptionEvidence) insightEvidence()  {}
func (CategorySpikeEvidence) insightEvidence() {}
func (TrendEvidence) insightEvidence()         {}

// Insight is a detected behavioral pattern in expense history. It is an
// ephemeral value object, rebuilt on every analysis call.
type Insight struct {
	Type                  InsightType `json:"type"`
	Description           string      `json:"description"`
	Severity              Severity    `json:"severity"`
	RelatedTransactionIDs []string    `json:"related_transaction_ids,omitempty"`
	Evidence              Evidence    `json:"evidence,omitempty"`
}
