package ledger

import (
	"github.com/google/uuid"

	"github.com/bookline-dev/bookline/internal/model"
)

// AutoBalanceMemo marks line items synthesized by AutoBalance.
const AutoBalanceMemo = "Auto-balance adjustment"

// AutoBalance returns lines with one synthetic line appended that closes the
// debit/credit gap against balancingAccountID. Already-balanced input is
// returned unchanged. The input slice is never mutated.
func AutoBalance(lines []model.LineItem, balancingAccountID string) []model.LineItem {
	bal := CalculateBalance(lines)
	if bal.Balanced {
		return lines
	}

	out := make([]model.LineItem, len(lines), len(lines)+1)
	copy(out, lines)

	line := model.LineItem{
		ID:        uuid.NewString(),
		AccountID: balancingAccountID,
		Memo:      AutoBalanceMemo,
	}
	if bal.Difference.IsPositive() {
		// Debits exceed credits, so the gap closes on the credit side.
		line.Credit = bal.Difference
	} else {
		line.Debit = bal.Difference.Abs()
	}

	return append(out, line)
}
