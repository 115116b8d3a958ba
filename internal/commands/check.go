package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookline-dev/bookline/internal/accounts"
	"github.com/bookline-dev/bookline/internal/journal"
	"github.com/bookline-dev/bookline/internal/ledger"
)

func newCheckCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every entry in a month's journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd, dir, month)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "journal month as YYYY-MM (default current)")
	return cmd
}

func runCheck(cmd *cobra.Command, dir, month string) error {
	accts, err := accounts.Load(dir)
	if err != nil {
		return err
	}
	year, m, err := parseMonthFlag(month)
	if err != nil {
		return err
	}

	txs, err := journal.NewService(dir, accts).ReadMonth(year, m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	problems := 0
	for _, tx := range txs {
		opts := ledger.DefaultOptions()
		if tx.Mutable() {
			// Drafts are allowed to be incomplete.
			opts = ledger.Options{AllowUnbalanced: true}
		}
		res := ledger.ValidateTransaction(tx.Lines, opts)

		var missing []string
		for i, line := range tx.Lines {
			if !accts.Exists(line.AccountID) {
				missing = append(missing, fmt.Sprintf("Line %d: unknown account %s", i+1, line.AccountID))
			}
		}

		if res.Valid && len(missing) == 0 && len(res.Warnings) == 0 {
			continue
		}

		fmt.Fprintf(out, "%s (%s, %s):\n", tx.ID, tx.Date.Format("2006-01-02"), tx.Status)
		for _, e := range res.Errors {
			problems++
			fmt.Fprintf(out, "  error: %s\n", e)
		}
		for _, e := range missing {
			problems++
			fmt.Fprintf(out, "  error: %s\n", e)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) in %04d-%02d", problems, year, m)
	}
	fmt.Fprintf(out, "%d entries checked, no problems\n", len(txs))
	return nil
}
