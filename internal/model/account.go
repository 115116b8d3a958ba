package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts. ParentID links a subaccount to
// its parent; roots carry an empty ParentID.
type Account struct {
	ID        string
	CompanyID string
	Number    string // optional display number, e.g. "1010"
	Name      string
	Type      AccountType
	Subtype   string
	ParentID  string
	Active    bool
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft delete marker
}

// Deleted reports whether the account has been soft-deleted.
func (a Account) Deleted() bool {
	return a.DeletedAt != nil
}
