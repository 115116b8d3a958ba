package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a journal transaction.
// Only drafts are mutable; posting and voiding are one-way transitions.
type TransactionStatus string

const (
	StatusDraft  TransactionStatus = "draft"
	StatusPosted TransactionStatus = "posted"
	StatusVoid   TransactionStatus = "void"
)

// LineItem is one leg of a double-entry transaction. A valid line has
// exactly one of Debit/Credit non-zero.
type LineItem struct {
	ID        string
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Memo      string
}

// Transaction is a journal entry: an ordered set of line items that must
// balance (total debits == total credits) before it may leave draft.
type Transaction struct {
	ID        string
	CompanyID string
	Date      time.Time
	Reference string
	Memo      string
	Status    TransactionStatus
	Lines     []LineItem
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Mutable reports whether the transaction can still be edited.
func (t Transaction) Mutable() bool {
	return t.Status == StatusDraft
}
