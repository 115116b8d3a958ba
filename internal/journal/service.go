package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookline-dev/bookline/internal/ledger"
	"github.com/bookline-dev/bookline/internal/model"
)

// AccountChecker tests whether an account ID resolves to a live account.
type AccountChecker interface {
	Exists(id string) bool
}

// Service provides business logic for journal transactions. Transactions
// live in per-month CSV files under <root>/YYYY/MM/journal.csv.
type Service struct {
	root     string
	accounts AccountChecker
}

// NewService creates a journal Service over a books root.
func NewService(root string, accounts AccountChecker) *Service {
	return &Service{root: root, accounts: accounts}
}

// SaveDraft creates or replaces a draft transaction in its month's journal.
// Drafts may be unbalanced and single-line, but every present line must be
// structurally valid. Returns the saved transaction (with ID assigned).
func (s *Service) SaveDraft(tx model.Transaction) (model.Transaction, error) {
	if tx.Status == "" {
		tx.Status = model.StatusDraft
	}
	if tx.Status != model.StatusDraft {
		return model.Transaction{}, fmt.Errorf("only draft transactions can be saved; got status %q", tx.Status)
	}

	res := ledger.ValidateTransaction(tx.Lines, ledger.Options{AllowUnbalanced: true})
	if !res.Valid {
		return model.Transaction{}, validationError(res)
	}

	now := time.Now().UTC()
	if tx.ID == "" {
		tx.ID = uuid.NewString()
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now
	for i := range tx.Lines {
		if tx.Lines[i].ID == "" {
			tx.Lines[i].ID = uuid.NewString()
		}
	}

	return tx, s.upsert(tx)
}

// Post transitions a draft to posted. Posting runs the full double-entry
// rules plus account-reference checks; posted transactions are immutable.
func (s *Service) Post(year, month int, id string) (model.Transaction, error) {
	tx, err := s.Get(year, month, id)
	if err != nil {
		return model.Transaction{}, err
	}
	if tx.Status != model.StatusDraft {
		return model.Transaction{}, fmt.Errorf("transaction %s is %s; only drafts can be posted", id, tx.Status)
	}

	res := ledger.ValidateTransaction(tx.Lines, ledger.DefaultOptions())
	if !res.Valid {
		return model.Transaction{}, validationError(res)
	}
	for i, line := range tx.Lines {
		if !s.accounts.Exists(line.AccountID) {
			return model.Transaction{}, fmt.Errorf("validation failed: Line %d: unknown account %s", i+1, line.AccountID)
		}
	}

	tx.Status = model.StatusPosted
	tx.UpdatedAt = time.Now().UTC()
	return tx, s.upsert(tx)
}

// Void transitions a posted transaction to void. Voided transactions stay
// in the journal for the audit trail but drop out of reports.
func (s *Service) Void(year, month int, id string) (model.Transaction, error) {
	tx, err := s.Get(year, month, id)
	if err != nil {
		return model.Transaction{}, err
	}
	if tx.Status != model.StatusPosted {
		return model.Transaction{}, fmt.Errorf("transaction %s is %s; only posted transactions can be voided", id, tx.Status)
	}

	tx.Status = model.StatusVoid
	tx.UpdatedAt = time.Now().UTC()
	return tx, s.upsert(tx)
}

// Get returns one transaction from its month's journal.
func (s *Service) Get(year, month int, id string) (model.Transaction, error) {
	txs, err := s.ReadMonth(year, month)
	if err != nil {
		return model.Transaction{}, err
	}
	for _, tx := range txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("transaction %s not found in %04d-%02d", id, year, month)
}

// ReadMonth reads all transactions for a given year/month. A missing
// journal file is an empty month.
func (s *Service) ReadMonth(year, month int) ([]model.Transaction, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	txs, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return txs, nil
}

// Posted returns the posted transactions for a month.
func (s *Service) Posted(year, month int) ([]model.Transaction, error) {
	txs, err := s.ReadMonth(year, month)
	if err != nil {
		return nil, err
	}
	var posted []model.Transaction
	for _, tx := range txs {
		if tx.Status == model.StatusPosted {
			posted = append(posted, tx)
		}
	}
	return posted, nil
}

// upsert replaces the transaction in its month file, or appends it, then
// rewrites the file. Replacement of anything but a draft is refused.
func (s *Service) upsert(tx model.Transaction) error {
	year, month := tx.Date.Year(), int(tx.Date.Month())

	txs, err := s.ReadMonth(year, month)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range txs {
		if existing.ID != tx.ID {
			continue
		}
		if !existing.Mutable() && tx.Status == model.StatusDraft {
			return fmt.Errorf("transaction %s is %s and cannot be modified", tx.ID, existing.Status)
		}
		txs[i] = tx
		replaced = true
		break
	}
	if !replaced {
		txs = append(txs, tx)
	}

	return s.writeMonth(year, month, txs)
}

func (s *Service) writeMonth(year, month int, txs []model.Transaction) error {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txs); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

func validationError(res ledger.Result) error {
	return fmt.Errorf("validation failed: %s", strings.Join(res.Errors, "; "))
}
