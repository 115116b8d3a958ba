package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-dev/bookline/internal/model"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	ids map[string]bool
}

func (m *mockAccounts) Exists(id string) bool {
	return m.ids[id]
}

func newMockAccounts(ids ...string) *mockAccounts {
	m := &mockAccounts{ids: make(map[string]bool)}
	for _, id := range ids {
		m.ids[id] = true
	}
	return m
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func draft(debitAcct, creditAcct, amount string) model.Transaction {
	return model.Transaction{
		Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Memo: "office chair",
		Lines: []model.LineItem{
			{AccountID: debitAcct, Debit: dec(amount)},
			{AccountID: creditAcct, Credit: dec(amount)},
		},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(t.TempDir(), newMockAccounts("a-exp", "a-chk"))
}

func TestSaveDraft_AssignsIDs(t *testing.T) {
	svc := newTestService(t)

	tx, err := svc.SaveDraft(draft("a-exp", "a-chk", "120.00"))
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, model.StatusDraft, tx.Status)
	for _, line := range tx.Lines {
		assert.NotEmpty(t, line.ID)
	}

	got, err := svc.Get(2025, 3, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "office chair", got.Memo)
	require.Len(t, got.Lines, 2)
	assert.True(t, got.Lines[0].Debit.Equal(dec("120.00")))
}

func TestSaveDraft_UnbalancedAllowed(t *testing.T) {
	svc := newTestService(t)

	tx := draft("a-exp", "a-chk", "120.00")
	tx.Lines[1].Credit = dec("100.00")
	saved, err := svc.SaveDraft(tx)
	require.NoError(t, err)

	_, err = svc.Post(2025, 3, saved.ID)
	require.Error(t, err, "unbalanced drafts must not post")
	assert.Contains(t, err.Error(), "not balanced")
}

func TestSaveDraft_StructurallyInvalidRejected(t *testing.T) {
	svc := newTestService(t)

	tx := draft("a-exp", "a-chk", "120.00")
	tx.Lines[0].Credit = dec("120.00") // both sides set
	_, err := svc.SaveDraft(tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Line 1: Cannot have both debit and credit on the same line")
}

func TestSaveDraft_EmptyRejected(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SaveDraft(model.Transaction{Date: time.Now()})
	require.Error(t, err)
}

func TestPost_TransitionsAndFreezes(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.SaveDraft(draft("a-exp", "a-chk", "120.00"))
	require.NoError(t, err)

	posted, err := svc.Post(2025, 3, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPosted, posted.Status)

	// Posted transactions cannot be re-saved as drafts.
	_, err = svc.SaveDraft(posted)
	require.Error(t, err)

	posted.Status = model.StatusDraft
	_, err = svc.SaveDraft(posted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be modified")

	// Nor posted twice.
	_, err = svc.Post(2025, 3, saved.ID)
	require.Error(t, err)
}

func TestPost_UnknownAccount(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.SaveDraft(draft("a-exp", "a-missing", "50"))
	require.NoError(t, err)

	_, err = svc.Post(2025, 3, saved.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account a-missing")

	got, err := svc.Get(2025, 3, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, got.Status, "failed post must leave the draft untouched")
}

func TestVoid(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.SaveDraft(draft("a-exp", "a-chk", "75.25"))
	require.NoError(t, err)

	// Drafts cannot be voided.
	_, err = svc.Void(2025, 3, saved.ID)
	require.Error(t, err)

	_, err = svc.Post(2025, 3, saved.ID)
	require.NoError(t, err)

	voided, err := svc.Void(2025, 3, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusVoid, voided.Status)

	// Voided transactions drop out of Posted.
	posted, err := svc.Posted(2025, 3)
	require.NoError(t, err)
	assert.Empty(t, posted)
}

func TestReadMonth_MissingFileIsEmpty(t *testing.T) {
	svc := newTestService(t)
	txs, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestMonthPathLayout(t *testing.T) {
	root := t.TempDir()
	svc := NewService(root, newMockAccounts("a-exp", "a-chk"))

	_, err := svc.SaveDraft(draft("a-exp", "a-chk", "10"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "2025", "03", "journal.csv"))
	assert.NoError(t, err)
}

func TestMultipleTransactionsPerMonth(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.SaveDraft(draft("a-exp", "a-chk", "10"))
	require.NoError(t, err)
	second, err := svc.SaveDraft(draft("a-exp", "a-chk", "20"))
	require.NoError(t, err)

	txs, err := svc.ReadMonth(2025, 3)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, first.ID, txs[0].ID)
	assert.Equal(t, second.ID, txs[1].ID)
}
