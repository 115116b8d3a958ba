package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	totalStyle  = lipgloss.NewStyle().Bold(true)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Render formats a trial balance for terminal output. Account names indent
// with their depth in the chart.
func Render(tb *TrialBalance) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(tb.Title))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-44s %14s %14s", "Account", "Debit", "Credit")))
	b.WriteString("\n")

	for _, row := range tb.Rows {
		name := strings.Repeat("  ", row.Level) + displayName(row)
		debit, credit := "", ""
		if !row.Debit.IsZero() {
			debit = row.Debit.StringFixed(2)
		}
		if !row.Credit.IsZero() {
			credit = row.Credit.StringFixed(2)
		}
		fmt.Fprintf(&b, "%-44s %14s %14s\n", name, debit, credit)
	}

	b.WriteString(totalStyle.Render(fmt.Sprintf("%-44s %14s %14s",
		"Total", tb.TotalDebits.StringFixed(2), tb.TotalCredits.StringFixed(2))))
	b.WriteString("\n")

	if !tb.Balanced {
		b.WriteString(alertStyle.Render("WARNING: trial balance does not balance"))
		b.WriteString("\n")
	}
	return b.String()
}

func displayName(row Row) string {
	if row.Account.Number != "" {
		return row.Account.Number + " " + row.Account.Name
	}
	return row.Account.Name
}
