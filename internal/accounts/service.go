package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bookline-dev/bookline/internal/hierarchy"
	"github.com/bookline-dev/bookline/internal/model"
)

// ChartFile is the chart of accounts path relative to the books root.
const ChartFile = "accounts/chart-of-accounts.csv"

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// Load reads the chart of accounts from a books root and returns a Service.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, ChartFile))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns every account, including inactive and soft-deleted ones.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Active returns accounts that are active and not soft-deleted.
func (s *Service) Active() []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Active && !a.Deleted() {
			result = append(result, a)
		}
	}
	return result
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID refers to a live account.
func (s *Service) Exists(id string) bool {
	a, ok := s.byID[id]
	return ok && !a.Deleted()
}

// FindByNumber returns the live account with the given account number.
func (s *Service) FindByNumber(number string) (model.Account, bool) {
	for _, a := range s.accounts {
		if a.Number == number && !a.Deleted() {
			return a, true
		}
	}
	return model.Account{}, false
}

// ByType returns all live accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType && !a.Deleted() {
			result = append(result, a)
		}
	}
	return result
}

// Add appends a new account. The parent, when given, must exist.
func (s *Service) Add(acct model.Account) (model.Account, error) {
	if !acct.Type.Valid() {
		return model.Account{}, fmt.Errorf("invalid account type %q", acct.Type)
	}
	if acct.ParentID != "" && !s.Exists(acct.ParentID) {
		return model.Account{}, fmt.Errorf("parent account %q not found", acct.ParentID)
	}

	now := time.Now().UTC()
	if acct.ID == "" {
		acct.ID = uuid.NewString()
	}
	acct.Active = true
	acct.CreatedAt = now
	acct.UpdatedAt = now

	s.accounts = append(s.accounts, acct)
	s.byID[acct.ID] = acct
	return acct, nil
}

// Deactivate soft-deletes an account: it stays in the file for history but
// stops resolving through Exists.
func (s *Service) Deactivate(id string) error {
	for i, a := range s.accounts {
		if a.ID != id {
			continue
		}
		now := time.Now().UTC()
		a.Active = false
		a.DeletedAt = &now
		a.UpdatedAt = now
		s.accounts[i] = a
		s.byID[id] = a
		return nil
	}
	return fmt.Errorf("account %q not found", id)
}

// Tree builds the display tree over live accounts, siblings ordered by
// account number then name.
func (s *Service) Tree() ([]*hierarchy.Node[model.Account], error) {
	return hierarchy.Build(s.Active(),
		func(a model.Account) string { return a.ID },
		func(a model.Account) string { return a.ParentID },
		lessAccounts)
}

// Flatten returns the account tree in depth-first order for indented views.
func (s *Service) Flatten() ([]*hierarchy.Node[model.Account], error) {
	roots, err := s.Tree()
	if err != nil {
		return nil, err
	}
	return hierarchy.Flatten(roots), nil
}

func lessAccounts(a, b model.Account) bool {
	if a.Number != b.Number {
		return a.Number < b.Number
	}
	return a.Name < b.Name
}

// Save writes the chart of accounts back to the books root.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, ChartFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
