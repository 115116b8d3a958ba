package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookline-dev/bookline/internal/model"
)

// Each CSV row is one line item; transaction-level columns repeat on every
// row of the same transaction and rows of one transaction are contiguous.
const (
	numFields    = 13
	dateFormat   = "2006-01-02"
	timeFormat   = time.RFC3339
	colTxnID     = 0
	colLineID    = 1
	colDate      = 2
	colReference = 3
	colMemo      = 4
	colStatus    = 5
	colCreatedBy = 6
	colAccountID = 7
	colDebit     = 8
	colCredit    = 9
	colLineMemo  = 10
	colCreatedAt = 11
	colUpdatedAt = 12
)

var header = []string{
	"transaction_id", "line_id", "date", "reference", "memo", "status",
	"created_by", "account_id", "debit", "credit", "line_memo",
	"created_at", "updated_at",
}

// ReadTransactions reads a journal.csv reader, grouping contiguous rows by
// transaction ID. Row order within a transaction is line order.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var txs []model.Transaction
	byID := make(map[string]int)
	for i, rec := range records[1:] {
		tx, line, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		if idx, ok := byID[tx.ID]; ok {
			txs[idx].Lines = append(txs[idx].Lines, line)
			continue
		}
		tx.Lines = []model.LineItem{line}
		byID[tx.ID] = len(txs)
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions to a journal.csv writer, one row
// per line item, including the header.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		for _, line := range tx.Lines {
			if err := cw.Write(marshalRow(tx, line)); err != nil {
				return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
			}
		}
	}
	return cw.Error()
}

func marshalRow(tx model.Transaction, line model.LineItem) []string {
	row := make([]string, numFields)
	row[colTxnID] = tx.ID
	row[colLineID] = line.ID
	row[colDate] = tx.Date.Format(dateFormat)
	row[colReference] = tx.Reference
	row[colMemo] = tx.Memo
	row[colStatus] = string(tx.Status)
	row[colCreatedBy] = tx.CreatedBy
	row[colAccountID] = line.AccountID
	row[colDebit] = line.Debit.String()
	row[colCredit] = line.Credit.String()
	row[colLineMemo] = line.Memo
	row[colCreatedAt] = tx.CreatedAt.Format(timeFormat)
	row[colUpdatedAt] = tx.UpdatedAt.Format(timeFormat)
	return row
}

func unmarshalRow(record []string) (model.Transaction, model.LineItem, error) {
	if len(record) != numFields {
		return model.Transaction{}, model.LineItem{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, model.LineItem{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	debit, err := decimal.NewFromString(record[colDebit])
	if err != nil {
		return model.Transaction{}, model.LineItem{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
	}

	credit, err := decimal.NewFromString(record[colCredit])
	if err != nil {
		return model.Transaction{}, model.LineItem{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
	}

	createdAt, err := time.Parse(timeFormat, record[colCreatedAt])
	if err != nil {
		return model.Transaction{}, model.LineItem{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}

	updatedAt, err := time.Parse(timeFormat, record[colUpdatedAt])
	if err != nil {
		return model.Transaction{}, model.LineItem{}, fmt.Errorf("parsing updated_at %q: %w", record[colUpdatedAt], err)
	}

	tx := model.Transaction{
		ID:        record[colTxnID],
		Date:      date,
		Reference: record[colReference],
		Memo:      record[colMemo],
		Status:    model.TransactionStatus(record[colStatus]),
		CreatedBy: record[colCreatedBy],
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	line := model.LineItem{
		ID:        record[colLineID],
		AccountID: record[colAccountID],
		Debit:     debit,
		Credit:    credit,
		Memo:      record[colLineMemo],
	}
	return tx, line, nil
}
