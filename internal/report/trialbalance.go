// Package report computes financial summaries over posted transactions:
// a trial balance ordered by the account tree, and net-change rollups by
// account type for statement views.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/bookline-dev/bookline/internal/accounts"
	"github.com/bookline-dev/bookline/internal/model"
)

// Row is one account line of a trial balance. Level mirrors the account's
// depth in the chart so renderers can indent.
type Row struct {
	Account model.Account
	Level   int
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// TrialBalance lists net debit/credit balances per account with activity.
type TrialBalance struct {
	Title        string
	Rows         []Row
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Balanced     bool
}

// BuildTrialBalance aggregates posted transactions into per-account net
// balances, ordered depth-first by the account tree. Accounts without
// activity are omitted. Only posted transactions should be passed in;
// drafts and voids are the caller's concern.
func BuildTrialBalance(title string, accts *accounts.Service, txs []model.Transaction) (*TrialBalance, error) {
	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		for _, line := range tx.Lines {
			debits[line.AccountID] = debits[line.AccountID].Add(line.Debit)
			credits[line.AccountID] = credits[line.AccountID].Add(line.Credit)
		}
	}

	flat, err := accts.Flatten()
	if err != nil {
		return nil, err
	}

	tb := &TrialBalance{Title: title}
	for _, node := range flat {
		id := node.Entity.ID
		d := debits[id]
		c := credits[id]
		if d.IsZero() && c.IsZero() {
			continue
		}

		row := Row{Account: node.Entity, Level: node.Level}
		// Present the net on the account's heavier side.
		if d.GreaterThanOrEqual(c) {
			row.Debit = d.Sub(c)
		} else {
			row.Credit = c.Sub(d)
		}
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
	}

	tb.Balanced = tb.TotalDebits.Equal(tb.TotalCredits)
	return tb, nil
}

// NetByType sums net change (debits minus credits) per account type, for
// income-statement and balance-sheet style groupings.
func NetByType(accts *accounts.Service, txs []model.Transaction) map[model.AccountType]decimal.Decimal {
	net := make(map[model.AccountType]decimal.Decimal)
	for _, tx := range txs {
		for _, line := range tx.Lines {
			acct, ok := accts.Get(line.AccountID)
			if !ok {
				continue
			}
			net[acct.Type] = net[acct.Type].Add(line.Debit).Sub(line.Credit)
		}
	}
	return net
}
