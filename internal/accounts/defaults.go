package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookline-dev/bookline/internal/model"
)

// DefaultChart returns the starter chart of accounts for a new company:
// top-level accounts per type with a few common parented subaccounts.
func DefaultChart(companyID string) []model.Account {
	now := time.Now().UTC()

	mk := func(number, name string, t model.AccountType, subtype, parentID string) model.Account {
		return model.Account{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			Number:    number,
			Name:      name,
			Type:      t,
			Subtype:   subtype,
			ParentID:  parentID,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	checking := mk("1010", "Business Checking", model.AccountTypeAsset, "bank", "")
	savings := mk("1020", "Business Savings", model.AccountTypeAsset, "bank", "")
	receivable := mk("1200", "Accounts Receivable", model.AccountTypeAsset, "receivable", "")

	creditCard := mk("2010", "Credit Card", model.AccountTypeLiability, "credit_card", "")
	payable := mk("2100", "Accounts Payable", model.AccountTypeLiability, "payable", "")

	equity := mk("3010", "Owner's Equity", model.AccountTypeEquity, "", "")
	draws := mk("3020", "Owner's Draws", model.AccountTypeEquity, "", equity.ID)

	serviceRev := mk("4010", "Service Revenue", model.AccountTypeIncome, "", "")
	productRev := mk("4020", "Product Revenue", model.AccountTypeIncome, "", "")

	expenses := mk("5000", "Operating Expenses", model.AccountTypeExpense, "", "")
	advertising := mk("5010", "Advertising & Marketing", model.AccountTypeExpense, "", expenses.ID)
	software := mk("5020", "Software & Subscriptions", model.AccountTypeExpense, "", expenses.ID)
	supplies := mk("5030", "Office Supplies", model.AccountTypeExpense, "", expenses.ID)
	professional := mk("5040", "Professional Services", model.AccountTypeExpense, "", expenses.ID)

	return []model.Account{
		checking, savings, receivable,
		creditCard, payable,
		equity, draws,
		serviceRev, productRev,
		expenses, advertising, software, supplies, professional,
	}
}
