package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookline-dev/bookline/internal/accounts"
	"github.com/bookline-dev/bookline/internal/journal"
	"github.com/bookline-dev/bookline/internal/report"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate reports from posted entries",
	}
	reportCmd.AddCommand(newTrialBalanceCommand())
	return reportCmd
}

func newTrialBalanceCommand() *cobra.Command {
	var month, pdfPath string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Trial balance over a month's posted entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runTrialBalance(cmd, dir, month, pdfPath)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "journal month as YYYY-MM (default current)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the report as a PDF to this path")
	return cmd
}

func runTrialBalance(cmd *cobra.Command, dir, month, pdfPath string) error {
	accts, err := accounts.Load(dir)
	if err != nil {
		return err
	}
	year, m, err := parseMonthFlag(month)
	if err != nil {
		return err
	}

	txs, err := journal.NewService(dir, accts).Posted(year, m)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Trial Balance %04d-%02d", year, m)
	tb, err := report.BuildTrialBalance(title, accts, txs)
	if err != nil {
		return err
	}

	if pdfPath != "" {
		f, err := os.Create(pdfPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", pdfPath, err)
		}
		defer f.Close()
		if err := report.WritePDF(tb, f); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", pdfPath)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Render(tb))
	return nil
}
