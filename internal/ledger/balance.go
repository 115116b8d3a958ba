// Package ledger implements the double-entry validation and balancing core:
// balance calculation, per-line and whole-transaction validation, and the
// auto-balance helper. Every function is pure and returns structured results
// rather than errors; callers decide whether a failure blocks a save or just
// renders a warning.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/bookline-dev/bookline/internal/model"
)

// balanceTolerance is the largest debit/credit difference that still counts
// as balanced.
var balanceTolerance = decimal.New(1, -2) // 0.01

// Balance holds the debit/credit totals for a set of line items.
type Balance struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Difference   decimal.Decimal // debits - credits
	Balanced     bool
}

// CalculateBalance sums the debit and credit columns of lines. Totals are
// rounded to 2 decimal places before comparison so repeated cents-level
// addition cannot drift. An empty input yields zero totals and Balanced.
func CalculateBalance(lines []model.LineItem) Balance {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	debits = debits.Round(2)
	credits = credits.Round(2)
	diff := debits.Sub(credits)

	return Balance{
		TotalDebits:  debits,
		TotalCredits: credits,
		Difference:   diff,
		Balanced:     diff.Abs().LessThan(balanceTolerance),
	}
}
