// Package coach orchestrates the full analysis pipeline: ingest raw
// transaction data, categorize it, detect behavioral patterns and turn
// them into ranked recommendations.
package coach

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-coach/internal/analytics"
	"github.com/dvloznov/finance-coach/internal/categorize"
	"github.com/dvloznov/finance-coach/internal/domain"
	"github.com/dvloznov/finance-coach/internal/ingest"
	"github.com/dvloznov/finance-coach/internal/recommend"
)

// Report status values.
const (
	StatusSuccess = "success"
	StatusNoData  = "no_data"
)

// Confidence score weights: categorization rate, mean match confidence
// and field completeness.
const (
	weightCategorized  = 0.4
	weightConfidence   = 0.4
	weightCompleteness = 0.2
)

// StepLog records one pipeline stage for traceability in the final report.
type StepLog struct {
	Stage     string    `json:"stage"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// Totals is the aggregate financial picture included in a report.
type Totals struct {
	TransactionsCount  int                `json:"transactions_count"`
	TotalIncome        float64            `json:"total_income"`
	TotalExpense       float64            `json:"total_expense"`
	NetSavings         float64            `json:"net_savings"`
	SavingsRate        float64            `json:"savings_rate"`
	FixedExpenses      float64            `json:"fixed_expenses"`
	VariableExpenses   float64            `json:"variable_expenses"`
	SpendingByCategory map[string]float64 `json:"spending_by_category"`
}

// Report is the complete output of one analysis run.
type Report struct {
	Status          string                  `json:"status"`
	ConfidenceScore float64                 `json:"confidence_score"`
	Summary         string                  `json:"summary"`
	Totals          Totals                  `json:"data"`
	Insights        []domain.Insight        `json:"insights"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Logs            []StepLog               `json:"logs"`
}

// Coach wires the pipeline stages together. Safe for concurrent use: all
// per-run state lives on the stack.
type Coach struct {
	ingester    *ingest.Ingester
	categorizer *categorize.Categorizer
	analytics   *analytics.Engine
	recommender *recommend.Engine
	log         zerolog.Logger
	now         func() time.Time
}

// New builds a Coach with default pipeline stages.
func New(log zerolog.Logger) *Coach {
	return &Coach{
		ingester:    ingest.New(log),
		categorizer: categorize.New(log),
		analytics:   analytics.New(),
		recommender: recommend.New(),
		log:         log.With().Str("component", "coach").Logger(),
		now:         time.Now,
	}
}

// ProcessFile runs the full pipeline on a CSV or JSON transaction file.
func (c *Coach) ProcessFile(path string) (*Report, error) {
	c.log.Info().Str("path", path).Msg("starting analysis run")

	var logs []StepLog
	c.step(&logs, "ingest", "starting", "parsing and normalizing transaction data")
	txns, err := c.ingester.IngestFile(path)
	if err != nil {
		return nil, fmt.Errorf("ProcessFile: ingest %s: %w", path, err)
	}
	c.step(&logs, "ingest", "completed", fmt.Sprintf("processed %d transactions", len(txns)))

	return c.run(txns, logs), nil
}

// AnalyzeTransactions runs the pipeline on already-parsed transactions,
// skipping the ingestion stage. This is the entry point for API callers
// that submit transactions as JSON.
func (c *Coach) AnalyzeTransactions(txns []domain.Transaction) *Report {
	return c.run(txns, nil)
}

func (c *Coach) run(txns []domain.Transaction, logs []StepLog) *Report {
	if len(txns) == 0 {
		c.log.Warn().Msg("no transactions to analyze")
		return emptyReport()
	}

	c.step(&logs, "categorize", "starting", "categorizing transactions")
	txns = c.categorizer.Categorize(txns)
	c.step(&logs, "categorize", "completed", fmt.Sprintf("categorized %d transactions", len(txns)))

	c.step(&logs, "analytics", "starting", "analyzing patterns and behaviors")
	analysis := c.analytics.Analyze(txns)
	c.step(&logs, "analytics", "completed", fmt.Sprintf("generated %d insights", len(analysis.Insights)))

	c.step(&logs, "recommend", "starting", "generating personalized recommendations")
	recs := c.recommender.Generate(analysis, txns)
	c.step(&logs, "recommend", "completed", fmt.Sprintf("generated %d recommendations", len(recs)))

	c.log.Info().
		Int("insights", len(analysis.Insights)).
		Int("recommendations", len(recs)).
		Msg("analysis run completed")

	return &Report{
		Status:          StatusSuccess,
		ConfidenceScore: confidenceScore(txns),
		Summary:         buildSummary(analysis, recs),
		Totals:          buildTotals(txns, analysis),
		Insights:        analysis.Insights,
		Recommendations: recs,
		Logs:            logs,
	}
}

func (c *Coach) step(logs *[]StepLog, stage, action, details string) {
	*logs = append(*logs, StepLog{
		Stage:     stage,
		Action:    action,
		Details:   details,
		Timestamp: c.now(),
	})
	c.log.Info().Str("stage", stage).Str("action", action).Msg(details)
}

func buildTotals(txns []domain.Transaction, analysis domain.AnalysisResult) Totals {
	return Totals{
		TransactionsCount:  len(txns),
		TotalIncome:        analysis.TotalIncome,
		TotalExpense:       analysis.TotalExpense,
		NetSavings:         analysis.TotalIncome - analysis.TotalExpense,
		SavingsRate:        analysis.SavingsRate(),
		FixedExpenses:      analysis.FixedExpensesTotal,
		VariableExpenses:   analysis.VariableExpensesTotal,
		SpendingByCategory: analysis.SpendingByCategory,
	}
}

// confidenceScore grades data quality: the share of categorized
// transactions, the mean rule-match confidence and how many rows carried
// both merchant and description. Rounded to two decimals.
func confidenceScore(txns []domain.Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}

	var categorized, complete int
	var confidenceSum float64
	for _, t := range txns {
		if t.Category != "" && t.Category != categorize.UncategorizedName {
			categorized++
		}
		if t.Merchant != "" && t.Description != "" {
			complete++
		}
		confidenceSum += t.Confidence
	}

	n := float64(len(txns))
	score := float64(categorized)/n*weightCategorized +
		confidenceSum/n*weightConfidence +
		float64(complete)/n*weightCompleteness
	return float64(int(score*100+0.5)) / 100
}

func buildSummary(analysis domain.AnalysisResult, recs []domain.Recommendation) string {
	netSavings := analysis.TotalIncome - analysis.TotalExpense
	parts := []string{fmt.Sprintf(
		"You earned %s and spent %s, saving %s (%.1f%% savings rate).",
		domain.FormatAmount(analysis.TotalIncome),
		domain.FormatAmount(analysis.TotalExpense),
		domain.FormatAmount(netSavings),
		analysis.SavingsRate()*100,
	)}

	parts = append(parts, fmt.Sprintf(
		"Your expenses consist of %s in fixed costs and %s in variable spending.",
		domain.FormatAmount(analysis.FixedExpensesTotal),
		domain.FormatAmount(analysis.VariableExpensesTotal),
	))

	if top, total := analysis.TopCategory(); top != "" {
		parts = append(parts, fmt.Sprintf(
			"Your highest spending category is %s at %s.", top, domain.FormatAmount(total)))
	}

	for _, ins := range analysis.Insights {
		if ins.Severity == domain.SeverityHigh {
			parts = append(parts, fmt.Sprintf("[!] Important: %s", ins.Description))
			break
		}
	}

	if len(recs) > 0 {
		parts = append(parts, fmt.Sprintf(
			"We've identified %d opportunities to improve your financial health.", len(recs)))
	}

	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

func emptyReport() *Report {
	return &Report{
		Status:          StatusNoData,
		Summary:         "No transaction data found to analyze.",
		Insights:        []domain.Insight{},
		Recommendations: []domain.Recommendation{},
		Logs:            []StepLog{},
	}
}
