package recommend

import (
	"time"

	"github.com/dvloznov/finance-coach/internal/domain"
)

// incomeSpreadTolerance is the maximum relative spread (max−min)/mean for
// income amounts to still count as a fixed salary.
const incomeSpreadTolerance = 0.10

// ClassifyIncome infers how regular the user's income is:
//
//	fixed    — salaried cadence: (near-)identical amounts, or a steady 1–2
//	           income events per month
//	variable — irregular freelance/business income
//	unknown  — fewer than two income transactions to judge from
//
// The classification only changes narrative framing and savings targets, not
// the underlying arithmetic.
func (e *Engine) ClassifyIncome(transactions []domain.Transaction) domain.IncomeType {
	var incomes []domain.Transaction
	for _, txn := range transactions {
		if txn.Type == domain.TypeIncome {
			incomes = append(incomes, txn)
		}
	}

	if len(incomes) < 2 {
		return domain.IncomeUnknown
	}

	min, max, sum := incomes[0].Amount, incomes[0].Amount, 0.0
	distinct := map[float64]struct{}{}
	for _, txn := range incomes {
		if txn.Amount < min {
			min = txn.Amount
		}
		if txn.Amount > max {
			max = txn.Amount
		}
		sum += txn.Amount
		distinct[txn.Amount] = struct{}{}
	}

	if len(distinct) <= 2 {
		mean := sum / float64(len(incomes))
		if mean > 0 && (max-min)/mean < incomeSpreadTolerance {
			return domain.IncomeFixed
		}
	}

	// Amounts vary, but a steady 1–2 deposits per month still reads as a
	// salaried cadence.
	perMonth := map[time.Time]int{}
	for _, txn := range incomes {
		perMonth[txn.Month()]++
	}
	steady := true
	for _, count := range perMonth {
		if count < 1 || count > 2 {
			steady = false
			break
		}
	}
	if steady {
		return domain.IncomeFixed
	}

	return domain.IncomeVariable
}
