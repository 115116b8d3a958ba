package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bookline-dev/bookline/internal/model"
)

// maxAmount is the ceiling for a single debit or credit amount.
var maxAmount = decimal.New(1, 12) // 1e12

// LineResult reports whether a single line item is structurally valid.
type LineResult struct {
	Valid  bool
	Errors []string
}

// ValidateLine checks one line item, accumulating every applicable error
// rather than stopping at the first. The zero decimal stands in for a
// missing amount, so an untouched form row fails with the zero-amount error.
func ValidateLine(line model.LineItem) LineResult {
	var errs []string

	if strings.TrimSpace(line.AccountID) == "" {
		errs = append(errs, "Account is required")
	}

	hasDebit := !line.Debit.IsZero()
	hasCredit := !line.Credit.IsZero()

	switch {
	case !hasDebit && !hasCredit:
		errs = append(errs, "Amount must be greater than zero")
	case hasDebit && hasCredit:
		errs = append(errs, "Cannot have both debit and credit on the same line")
	}

	if line.Debit.IsNegative() {
		errs = append(errs, "Debit amount cannot be negative")
	}
	if line.Credit.IsNegative() {
		errs = append(errs, "Credit amount cannot be negative")
	}
	if line.Debit.GreaterThan(maxAmount) {
		errs = append(errs, "Debit amount exceeds maximum allowed value")
	}
	if line.Credit.GreaterThan(maxAmount) {
		errs = append(errs, "Credit amount exceeds maximum allowed value")
	}

	return LineResult{Valid: len(errs) == 0, Errors: errs}
}
