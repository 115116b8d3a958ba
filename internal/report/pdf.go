package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders a trial balance as a single-page A4 PDF.
func WritePDF(tb *TrialBalance, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, tb.Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 7, "Account", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Debit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Credit", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range tb.Rows {
		name := strings.Repeat("    ", row.Level) + displayName(row)
		debit, credit := "", ""
		if !row.Debit.IsZero() {
			debit = row.Debit.StringFixed(2)
		}
		if !row.Credit.IsZero() {
			credit = row.Credit.StringFixed(2)
		}
		pdf.CellFormat(110, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, debit, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, credit, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 7, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, tb.TotalDebits.StringFixed(2), "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, tb.TotalCredits.StringFixed(2), "T", 1, "R", false, 0, "")

	if !tb.Balanced {
		pdf.Ln(4)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(190, 7, "WARNING: trial balance does not balance", "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
