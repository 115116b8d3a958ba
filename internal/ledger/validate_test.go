package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-dev/bookline/internal/model"
)

func TestValidateTransaction_BalancedPair(t *testing.T) {
	lines := []model.LineItem{line("a1", "100", "0"), line("a2", "0", "100")}
	res := ValidateTransaction(lines, DefaultOptions())

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.True(t, res.TotalDebits.Equal(dec("100")))
	assert.True(t, res.TotalCredits.Equal(dec("100")))
	assert.True(t, res.Difference.IsZero())
	assert.True(t, res.Balanced)
}

func TestValidateTransaction_Unbalanced(t *testing.T) {
	lines := []model.LineItem{line("a1", "100", "0"), line("a2", "0", "75")}
	res := ValidateTransaction(lines, DefaultOptions())

	require.False(t, res.Valid)
	assert.True(t, res.Difference.Equal(dec("25")))
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "not balanced")
	assert.Contains(t, res.Errors[0], "100.00")
	assert.Contains(t, res.Errors[0], "75.00")
	assert.Contains(t, res.Errors[0], "25.00")
}

func TestValidateTransaction_SingleLineMissingAccount(t *testing.T) {
	lines := []model.LineItem{line("", "100", "0")}
	res := ValidateTransaction(lines, DefaultOptions())

	require.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Transaction must have at least 2 line items")
	assert.Contains(t, res.Errors, "Line 1: Account is required")
}

func TestValidateTransaction_EmptyShortCircuits(t *testing.T) {
	res := ValidateTransaction(nil, DefaultOptions())

	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Transaction must have at least 2 line items"}, res.Errors)
	assert.True(t, res.TotalDebits.IsZero())
	assert.True(t, res.TotalCredits.IsZero())
}

func TestValidateTransaction_EmptyWithoutMinimumLines(t *testing.T) {
	res := ValidateTransaction(nil, Options{})

	assert.False(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateTransaction_LineErrorsArePrefixed(t *testing.T) {
	lines := []model.LineItem{
		line("a1", "100", "0"),
		line("a2", "50", "50"),
		line("", "0", "100"),
	}
	res := ValidateTransaction(lines, Options{RequireMinimumLines: true, AllowUnbalanced: true})

	require.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Line 2: Cannot have both debit and credit on the same line")
	assert.Contains(t, res.Errors, "Line 3: Account is required")
}

func TestValidateTransaction_NegativeAmount(t *testing.T) {
	lines := []model.LineItem{line("a1", "-100", "0"), line("a2", "0", "-100")}
	res := ValidateTransaction(lines, DefaultOptions())

	require.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Line 1: Debit amount cannot be negative")
	assert.Contains(t, res.Errors, "Line 2: Credit amount cannot be negative")
}

func TestValidateTransaction_AllowUnbalanced(t *testing.T) {
	lines := []model.LineItem{line("a1", "100", "0"), line("a2", "0", "75")}
	res := ValidateTransaction(lines, Options{RequireMinimumLines: true, AllowUnbalanced: true})

	assert.True(t, res.Valid)
	assert.False(t, res.Balanced)
}

func TestValidateTransaction_ZeroTotals(t *testing.T) {
	lines := []model.LineItem{line("a1", "0", "0"), line("a2", "0", "0")}
	res := ValidateTransaction(lines, DefaultOptions())

	require.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Transaction has no amounts entered")
}

func TestValidateTransaction_DuplicateAccountWarns(t *testing.T) {
	lines := []model.LineItem{
		line("a1", "60", "0"),
		line("a1", "40", "0"),
		line("a2", "0", "100"),
	}
	res := ValidateTransaction(lines, DefaultOptions())

	assert.True(t, res.Valid, "duplicate accounts must not fail validation")
	assert.Equal(t, []string{"Account a1 appears on multiple lines"}, res.Warnings)
}

func TestValidateTransaction_Idempotent(t *testing.T) {
	lines := []model.LineItem{
		line("a1", "60", "0"),
		line("a1", "40", "0"),
		line("", "0", "75"),
	}
	first := ValidateTransaction(lines, DefaultOptions())
	second := ValidateTransaction(lines, DefaultOptions())

	assert.Equal(t, first, second)
}
