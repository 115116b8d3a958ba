package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bookline-dev/bookline/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func line(accountID, debit, credit string) model.LineItem {
	return model.LineItem{AccountID: accountID, Debit: dec(debit), Credit: dec(credit)}
}

func TestCalculateBalance_Empty(t *testing.T) {
	bal := CalculateBalance(nil)
	assert.True(t, bal.Balanced)
	assert.True(t, bal.TotalDebits.IsZero())
	assert.True(t, bal.TotalCredits.IsZero())
	assert.True(t, bal.Difference.IsZero())
}

func TestCalculateBalance(t *testing.T) {
	tests := []struct {
		name     string
		lines    []model.LineItem
		debits   string
		credits  string
		diff     string
		balanced bool
	}{
		{
			name:     "balanced pair",
			lines:    []model.LineItem{line("a1", "100", "0"), line("a2", "0", "100")},
			debits:   "100",
			credits:  "100",
			diff:     "0",
			balanced: true,
		},
		{
			name:     "unbalanced",
			lines:    []model.LineItem{line("a1", "100", "0"), line("a2", "0", "75")},
			debits:   "100",
			credits:  "75",
			diff:     "25",
			balanced: false,
		},
		{
			name:     "within tolerance",
			lines:    []model.LineItem{line("a1", "100.004", "0"), line("a2", "0", "100")},
			debits:   "100.00",
			credits:  "100",
			diff:     "0",
			balanced: true,
		},
		{
			name: "cents accumulate without drift",
			lines: []model.LineItem{
				line("a1", "0.10", "0"), line("a1", "0.10", "0"), line("a1", "0.10", "0"),
				line("a2", "0", "0.30"),
			},
			debits:   "0.30",
			credits:  "0.30",
			diff:     "0",
			balanced: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bal := CalculateBalance(tt.lines)
			assert.True(t, bal.TotalDebits.Equal(dec(tt.debits)), "debits = %s", bal.TotalDebits)
			assert.True(t, bal.TotalCredits.Equal(dec(tt.credits)), "credits = %s", bal.TotalCredits)
			assert.True(t, bal.Difference.Equal(dec(tt.diff)), "difference = %s", bal.Difference)
			assert.Equal(t, tt.balanced, bal.Balanced)
		})
	}
}

func TestCalculateBalance_DifferenceIsDebitsMinusCredits(t *testing.T) {
	lines := []model.LineItem{line("a1", "10", "0"), line("a2", "0", "45.50")}
	bal := CalculateBalance(lines)
	assert.True(t, bal.TotalDebits.Sub(bal.TotalCredits).Equal(bal.Difference))
	assert.False(t, bal.Balanced)
	assert.True(t, bal.Difference.IsNegative())
}
