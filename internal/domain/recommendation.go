package domain

// IncomeType is the heuristic classification of how regular the user's income
// cadence and amounts are. It selects the narrative framing and savings
// targets used by the recommendation engine.
type IncomeType string

const (
	IncomeFixed    IncomeType = "fixed"
	IncomeVariable IncomeType = "variable"
	IncomeUnknown  IncomeType = "unknown"
)

// Priority ranks recommendations ahead of their estimated savings. It is set
// at construction time; ranking never inspects rendered titles.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityUrgent Priority = "urgent"
)

// Recommendation is one actionable piece of coaching advice. Recommendations
// are value objects reconstructed on every generate call; they carry no
// identity and are never mutated after construction.
type Recommendation struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ActionableSteps  []string `json:"actionable_steps"`
	EstimatedSavings float64  `json:"estimated_savings"` // per month; 0 when not quantifiable
	Rationale        string   `json:"rationale"`
	Priority         Priority `json:"priority"`
}

// Outranks reports whether r sorts ahead of other: urgent recommendations
// always outrank normal ones regardless of estimated savings, then higher
// savings wins. Ties keep insertion order (callers must sort stably).
func (r Recommendation) Outranks(other Recommendation) bool {
	if r.Priority != other.Priority {
		return r.Priority == PriorityUrgent
	}
	return r.EstimatedSavings > other.EstimatedSavings
}
