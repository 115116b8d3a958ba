package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookline-dev/bookline/internal/model"
)

const (
	numFields    = 12
	timeFormat   = time.RFC3339
	colID        = 0
	colCompanyID = 1
	colNumber    = 2
	colName      = 3
	colType      = 4
	colSubtype   = 5
	colParentID  = 6
	colActive    = 7
	colBalance   = 8
	colCreatedAt = 9
	colUpdatedAt = 10
	colDeletedAt = 11
)

var header = []string{
	"account_id", "company_id", "number", "name", "type", "subtype",
	"parent_id", "active", "balance", "created_at", "updated_at", "deleted_at",
}

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv, including the header.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCompanyID] = acct.CompanyID
	row[colNumber] = acct.Number
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colSubtype] = acct.Subtype
	row[colParentID] = acct.ParentID
	row[colActive] = strconv.FormatBool(acct.Active)
	row[colBalance] = acct.Balance.String()
	row[colCreatedAt] = acct.CreatedAt.Format(timeFormat)
	row[colUpdatedAt] = acct.UpdatedAt.Format(timeFormat)
	if acct.DeletedAt != nil {
		row[colDeletedAt] = acct.DeletedAt.Format(timeFormat)
	}
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	active, err := strconv.ParseBool(record[colActive])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing active %q: %w", record[colActive], err)
	}

	balance, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	createdAt, err := time.Parse(timeFormat, record[colCreatedAt])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}

	updatedAt, err := time.Parse(timeFormat, record[colUpdatedAt])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing updated_at %q: %w", record[colUpdatedAt], err)
	}

	var deletedAt *time.Time
	if record[colDeletedAt] != "" {
		t, err := time.Parse(timeFormat, record[colDeletedAt])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing deleted_at %q: %w", record[colDeletedAt], err)
		}
		deletedAt = &t
	}

	return model.Account{
		ID:        record[colID],
		CompanyID: record[colCompanyID],
		Number:    record[colNumber],
		Name:      record[colName],
		Type:      model.AccountType(record[colType]),
		Subtype:   record[colSubtype],
		ParentID:  record[colParentID],
		Active:    active,
		Balance:   balance,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}, nil
}
