package ledger

import (
	"fmt"

	"github.com/bookline-dev/bookline/internal/model"
)

// Options controls transaction-level validation.
type Options struct {
	// RequireMinimumLines enforces the two-line double-entry minimum.
	RequireMinimumLines bool
	// AllowUnbalanced skips the debits-equal-credits check. Used for
	// saving drafts; never for posting.
	AllowUnbalanced bool
}

// DefaultOptions are the full posting rules.
func DefaultOptions() Options {
	return Options{RequireMinimumLines: true}
}

// Result is the outcome of validating a whole transaction. Warnings do not
// affect Valid.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Balance
}

// ValidateTransaction checks an ordered set of line items against the
// double-entry rules. It runs on every edit in the form layer, so it stays
// a single pass over the lines plus one map for duplicate accounts.
func ValidateTransaction(lines []model.LineItem, opts Options) Result {
	var errs []string

	if opts.RequireMinimumLines && len(lines) < 2 {
		errs = append(errs, "Transaction must have at least 2 line items")
	}

	// An empty transaction would otherwise report zero totals as a
	// balanced success; bail out before the per-line checks.
	if len(lines) == 0 {
		return Result{Valid: false, Errors: errs, Balance: CalculateBalance(nil)}
	}

	for i, line := range lines {
		res := ValidateLine(line)
		for _, msg := range res.Errors {
			errs = append(errs, fmt.Sprintf("Line %d: %s", i+1, msg))
		}
	}

	bal := CalculateBalance(lines)
	if !opts.AllowUnbalanced && !bal.Balanced {
		errs = append(errs, fmt.Sprintf(
			"Transaction is not balanced: debits %s, credits %s (difference %s)",
			bal.TotalDebits.StringFixed(2),
			bal.TotalCredits.StringFixed(2),
			bal.Difference.Abs().StringFixed(2)))
	}

	if bal.TotalDebits.IsZero() && bal.TotalCredits.IsZero() {
		errs = append(errs, "Transaction has no amounts entered")
	}

	// Reusing an account across lines is legal but usually a data-entry
	// slip, so it warns without failing validation.
	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		if line.AccountID != "" {
			counts[line.AccountID]++
		}
	}
	var warnings []string
	warned := make(map[string]bool, len(counts))
	for _, line := range lines {
		if counts[line.AccountID] > 1 && !warned[line.AccountID] {
			warned[line.AccountID] = true
			warnings = append(warnings, fmt.Sprintf("Account %s appears on multiple lines", line.AccountID))
		}
	}

	return Result{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
		Balance:  bal,
	}
}
