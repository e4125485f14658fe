// Package categorize assigns spending categories to transactions using
// keyword rules derived from merchant and description text.
package categorize

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-coach/internal/domain"
)

// UncategorizedName is assigned when no keyword rule matches.
const UncategorizedName = "Uncategorized"

// Confidence levels for rule-based matches.
const (
	matchConfidence   = 0.9
	noMatchConfidence = 0.0
)

type categoryKind string

const (
	kindFixed    categoryKind = "fixed"
	kindVariable categoryKind = "variable"
	kindIncome   categoryKind = "income"
)

type category struct {
	name     string
	kind     categoryKind
	keywords []string
}

type rule struct {
	keyword  string
	category *category
}

// Categorizer matches transactions against a fixed keyword rule set.
type Categorizer struct {
	rules []rule
	log   zerolog.Logger
}

// New builds a Categorizer with the standard category rule set.
func New(log zerolog.Logger) *Categorizer {
	cats := standardCategories()
	var rules []rule
	for i := range cats {
		for _, kw := range cats[i].keywords {
			rules = append(rules, rule{keyword: strings.ToLower(kw), category: &cats[i]})
		}
	}
	return &Categorizer{rules: rules, log: log.With().Str("component", "categorizer").Logger()}
}

func standardCategories() []category {
	return []category{
		{name: "Rent", kind: kindFixed, keywords: []string{"rent", "landlord", "housing"}},
		{name: "Groceries", kind: kindVariable, keywords: []string{"grocery", "supermarket", "mart", "food"}},
		{name: "Dining Out", kind: kindVariable, keywords: []string{"restaurant", "cafe", "starbucks", "mcdonalds", "burger", "pizza", "swiggy", "zomato"}},
		{name: "Transport", kind: kindVariable, keywords: []string{"uber", "ola", "taxi", "fuel", "petrol", "metro", "bus"}},
		{name: "Utilities", kind: kindFixed, keywords: []string{"electricity", "water", "gas", "internet", "wifi", "broadband", "mobile bill"}},
		{name: "Salary", kind: kindIncome, keywords: []string{"salary", "payroll", "employer"}},
		{name: "Shopping", kind: kindVariable, keywords: []string{"amazon", "flipkart", "myntra", "clothing", "shoes"}},
		{name: "Entertainment", kind: kindVariable, keywords: []string{"netflix", "spotify", "cinema", "movie", "bookmyshow"}},
		{name: "Health", kind: kindVariable, keywords: []string{"pharmacy", "doctor", "hospital", "medplus"}},
		{name: "Insurance", kind: kindFixed, keywords: []string{"insurance", "lic", "premium"}},
		{name: "Education", kind: kindFixed, keywords: []string{"school", "college", "tuition", "course", "udemy"}},
	}
}

// Categorize assigns a category to every transaction in place and returns
// the same slice for chaining.
func (c *Categorizer) Categorize(txns []domain.Transaction) []domain.Transaction {
	c.log.Info().Int("count", len(txns)).Msg("categorizing transactions")
	for i := range txns {
		c.categorizeOne(&txns[i])
	}
	return txns
}

// categorizeOne applies the longest matching keyword. Longer keywords are
// more specific, so "mobile bill" beats "bill"-adjacent noise and ties
// cannot flip between runs.
func (c *Categorizer) categorizeOne(txn *domain.Transaction) {
	text := strings.ToLower(txn.Merchant + " " + txn.Description)

	var best *category
	bestLen := 0
	for _, r := range c.rules {
		if len(r.keyword) > bestLen && strings.Contains(text, r.keyword) {
			best = r.category
			bestLen = len(r.keyword)
		}
	}

	if best == nil {
		txn.Category = UncategorizedName
		txn.IsFixed = false
		txn.Confidence = noMatchConfidence
		return
	}

	txn.Category = best.name
	txn.IsFixed = best.kind == kindFixed
	txn.Confidence = matchConfidence
	if best.kind == kindIncome {
		txn.Type = domain.TypeIncome
		txn.IsFixed = false
	}
}
