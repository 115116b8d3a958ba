package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-dev/bookline/internal/accounts"
	"github.com/bookline-dev/bookline/internal/auditlog"
	"github.com/bookline-dev/bookline/internal/journal"
)

// run executes the CLI against a books directory and returns its output.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(args, "--dir", dir))
	err := root.Execute()
	return buf.String(), err
}

// initBooks creates a fresh books directory with git disabled.
func initBooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := run(t, dir, "init", dir, "--name", "Test Co", "--no-git")
	require.NoError(t, err)
	require.Contains(t, out, "Initialized books for Test Co")
	return dir
}

func TestInit(t *testing.T) {
	dir := initBooks(t)

	for _, f := range []string{
		"bookline.yaml",
		"accounts/chart-of-accounts.csv",
		"contacts/contacts.csv",
		".gitignore",
		"logs/audit-log.csv",
	} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "books.init", entries[0].Action)
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := initBooks(t)
	_, err := run(t, dir, "init", dir, "--name", "Again", "--no-git")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already contains")
}

func TestAccountAddAndTree(t *testing.T) {
	dir := initBooks(t)

	out, err := run(t, dir, "account", "add",
		"--number", "5050", "--name", "Travel", "--type", "expense", "--parent", "5000")
	require.NoError(t, err)
	assert.Contains(t, out, "Added account 5050 Travel")

	out, err = run(t, dir, "account", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  5050 Travel\n", "new account indents under its parent")
}

func TestAccountAdd_DuplicateNumber(t *testing.T) {
	dir := initBooks(t)
	_, err := run(t, dir, "account", "add",
		"--number", "1010", "--name", "Other Checking", "--type", "asset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAccountAdd_MissingParent(t *testing.T) {
	dir := initBooks(t)
	_, err := run(t, dir, "account", "add",
		"--number", "9999", "--name", "Orphan", "--type", "expense", "--parent", "8888")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent account 8888 not found")
}

func TestAccountList_FilterByType(t *testing.T) {
	dir := initBooks(t)

	out, err := run(t, dir, "account", "list", "--type", "income")
	require.NoError(t, err)
	assert.Contains(t, out, "Service Revenue")
	assert.NotContains(t, out, "Business Checking")
}

func TestContactAdd_DuplicateBlocksWithoutForce(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "contact", "add",
		"--name", "Acme Corporation", "--email", "billing@acme.com")
	require.NoError(t, err)

	out, err := run(t, dir, "contact", "add",
		"--name", "Acme Corporation", "--email", "billing@acme.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
	assert.Contains(t, out, "Likely duplicates")

	_, err = run(t, dir, "contact", "add",
		"--name", "Acme Corporation", "--email", "billing@acme.com", "--force")
	require.NoError(t, err)
}

func TestContactTree(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "contact", "add", "--name", "Acme Corporation", "--type", "customer")
	require.NoError(t, err)
	_, err = run(t, dir, "contact", "add",
		"--name", "Acme West", "--type", "customer", "--parent", "Acme Corporation")
	require.NoError(t, err)

	out, err := run(t, dir, "contact", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corporation (customer)\n  Acme West (customer)\n")
}

func TestEntryLifecycle(t *testing.T) {
	dir := initBooks(t)

	out, err := run(t, dir, "entry", "add",
		"--date", "2025-03-10", "--memo", "march invoice",
		"--line", "1010:500:0",
		"--line", "4010:0:500")
	require.NoError(t, err)
	require.Contains(t, out, "Saved draft entry ")
	id := strings.TrimSpace(strings.TrimPrefix(out, "Saved draft entry "))

	out, err = run(t, dir, "entry", "post", id, "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "now posted")

	out, err = run(t, dir, "entry", "list", "--month", "2025-03", "--status", "posted")
	require.NoError(t, err)
	assert.Contains(t, out, "march invoice")

	out, err = run(t, dir, "entry", "void", id, "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "now void")

	// Voiding twice fails.
	_, err = run(t, dir, "entry", "void", id, "--month", "2025-03")
	require.Error(t, err)
}

func TestEntryAdd_UnbalancedPostFails(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "entry", "add",
		"--date", "2025-03-10",
		"--line", "1010:500:0",
		"--line", "4010:0:300",
		"--post")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not balanced")
}

func TestEntryAdd_BalanceAccount(t *testing.T) {
	dir := initBooks(t)

	out, err := run(t, dir, "entry", "add",
		"--date", "2025-03-10",
		"--line", "1010:500:0",
		"--line", "4010:0:300",
		"--balance-account", "3010",
		"--post")
	require.NoError(t, err)
	assert.Contains(t, out, "Posted entry")

	accts := journalAccounts(t, dir)
	txs, err := journal.NewService(dir, accts).Posted(2025, 3)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Len(t, txs[0].Lines, 3)
	assert.True(t, txs[0].Lines[2].Credit.IntPart() == 200)
}

func TestEntryAdd_UnknownAccountNumber(t *testing.T) {
	dir := initBooks(t)
	_, err := run(t, dir, "entry", "add", "--line", "7777:10:0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account 7777 not found")
}

func TestCheck(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "entry", "add",
		"--date", "2025-03-10",
		"--line", "1010:500:0",
		"--line", "4010:0:500",
		"--post")
	require.NoError(t, err)

	out, err := run(t, dir, "check", "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "no problems")
}

func TestTrialBalanceReport(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, dir, "entry", "add",
		"--date", "2025-03-10",
		"--line", "1010:500:0",
		"--line", "4010:0:500",
		"--post")
	require.NoError(t, err)

	out, err := run(t, dir, "report", "trial-balance", "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Trial Balance 2025-03")
	assert.Contains(t, out, "1010 Business Checking")
	assert.Contains(t, out, "500.00")

	pdfPath := filepath.Join(dir, "tb.pdf")
	_, err = run(t, dir, "report", "trial-balance", "--month", "2025-03", "--pdf", pdfPath)
	require.NoError(t, err)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func journalAccounts(t *testing.T, dir string) journal.AccountChecker {
	t.Helper()
	accts, err := accounts.Load(dir)
	require.NoError(t, err)
	return accts
}
