package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bookline-dev/bookline/internal/accounts"
	"github.com/bookline-dev/bookline/internal/auditlog"
	"github.com/bookline-dev/bookline/internal/journal"
	"github.com/bookline-dev/bookline/internal/ledger"
	"github.com/bookline-dev/bookline/internal/model"
)

func newEntryCommand() *cobra.Command {
	entryCmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage journal entries",
	}
	entryCmd.AddCommand(newEntryAddCommand())
	entryCmd.AddCommand(newEntryPostCommand())
	entryCmd.AddCommand(newEntryVoidCommand())
	entryCmd.AddCommand(newEntryListCommand())
	return entryCmd
}

func newEntryAddCommand() *cobra.Command {
	var date, memo, reference, balanceAccount string
	var lines []string
	var post bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a journal entry as a draft",
		Long: `Add a journal entry. Each --line is NUMBER:DEBIT:CREDIT[:MEMO],
where NUMBER is an account number from the chart. Entries start as drafts;
pass --post to post immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runEntryAdd(cmd, dir, date, memo, reference, balanceAccount, lines, post)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&memo, "memo", "", "entry memo")
	cmd.Flags().StringVar(&reference, "ref", "", "external reference (invoice number, check number)")
	cmd.Flags().StringArrayVar(&lines, "line", nil, "line item as NUMBER:DEBIT:CREDIT[:MEMO] (repeatable)")
	cmd.Flags().StringVar(&balanceAccount, "balance-account", "", "account number to absorb any debit/credit gap")
	cmd.Flags().BoolVar(&post, "post", false, "post the entry immediately")

	return cmd
}

func runEntryAdd(cmd *cobra.Command, dir, date, memo, reference, balanceAccount string, rawLines []string, post bool) error {
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	accts, err := accounts.Load(dir)
	if err != nil {
		return err
	}

	when := time.Now().UTC()
	if date != "" {
		when, err = time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
	}

	items := make([]model.LineItem, 0, len(rawLines))
	for _, raw := range rawLines {
		item, err := parseLine(accts, raw)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	if balanceAccount != "" {
		acct, ok := accts.FindByNumber(balanceAccount)
		if !ok {
			return fmt.Errorf("balance account %s not found", balanceAccount)
		}
		items = ledger.AutoBalance(items, acct.ID)
	}

	svc := journal.NewService(dir, accts)
	tx, err := svc.SaveDraft(model.Transaction{
		CompanyID: cfg.Business.CompanyID,
		Date:      when,
		Reference: reference,
		Memo:      memo,
		Lines:     items,
	})
	if err != nil {
		return err
	}

	action, verb := "entry.create", "Saved draft"
	if post {
		tx, err = svc.Post(when.Year(), int(when.Month()), tx.ID)
		if err != nil {
			return err
		}
		action, verb = "entry.post", "Posted"
	}

	hash, err := autoCommit(dir, cfg, fmt.Sprintf("entry: %s %s", strings.ToLower(verb), tx.ID))
	if err != nil {
		return err
	}
	if err := auditlog.Record(dir, "cli", action, memo, tx.ID, hash); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s entry %s\n", verb, tx.ID)
	return nil
}

// parseLine turns NUMBER:DEBIT:CREDIT[:MEMO] into a line item, resolving the
// account number against the chart.
func parseLine(accts *accounts.Service, raw string) (model.LineItem, error) {
	parts := strings.SplitN(raw, ":", 4)
	if len(parts) < 3 {
		return model.LineItem{}, fmt.Errorf("invalid line %q, expected NUMBER:DEBIT:CREDIT[:MEMO]", raw)
	}

	acct, ok := accts.FindByNumber(parts[0])
	if !ok {
		return model.LineItem{}, fmt.Errorf("account %s not found", parts[0])
	}

	debit, err := decimal.NewFromString(parts[1])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("invalid debit %q: %w", parts[1], err)
	}
	credit, err := decimal.NewFromString(parts[2])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("invalid credit %q: %w", parts[2], err)
	}

	item := model.LineItem{AccountID: acct.ID, Debit: debit, Credit: credit}
	if len(parts) == 4 {
		item.Memo = parts[3]
	}
	return item, nil
}

func newEntryPostCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "post <id>",
		Short: "Post a draft entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runEntryTransition(cmd, dir, month, args[0], "post")
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "journal month as YYYY-MM (default current)")
	return cmd
}

func newEntryVoidCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "void <id>",
		Short: "Void a posted entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runEntryTransition(cmd, dir, month, args[0], "void")
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "journal month as YYYY-MM (default current)")
	return cmd
}

func runEntryTransition(cmd *cobra.Command, dir, month, id, action string) error {
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	accts, err := accounts.Load(dir)
	if err != nil {
		return err
	}
	year, m, err := parseMonthFlag(month)
	if err != nil {
		return err
	}

	svc := journal.NewService(dir, accts)
	var tx model.Transaction
	switch action {
	case "post":
		tx, err = svc.Post(year, m, id)
	case "void":
		tx, err = svc.Void(year, m, id)
	}
	if err != nil {
		return err
	}

	hash, err := autoCommit(dir, cfg, fmt.Sprintf("entry: %s %s", action, tx.ID))
	if err != nil {
		return err
	}
	if err := auditlog.Record(dir, "cli", "entry."+action, tx.Memo, tx.ID, hash); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Entry %s is now %s\n", tx.ID, tx.Status)
	return nil
}

func newEntryListCommand() *cobra.Command {
	var month, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runEntryList(cmd, dir, month, status)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "journal month as YYYY-MM (default current)")
	cmd.Flags().StringVar(&status, "status", "", "filter: draft, posted, or void")
	return cmd
}

func runEntryList(cmd *cobra.Command, dir, month, status string) error {
	accts, err := accounts.Load(dir)
	if err != nil {
		return err
	}
	year, m, err := parseMonthFlag(month)
	if err != nil {
		return err
	}

	txs, err := journal.NewService(dir, accts).ReadMonth(year, m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tx := range txs {
		if status != "" && string(tx.Status) != status {
			continue
		}
		bal := ledger.CalculateBalance(tx.Lines)
		fmt.Fprintf(out, "%s  %s  %-6s  %10s  %s\n",
			tx.ID, tx.Date.Format("2006-01-02"), tx.Status, bal.TotalDebits.StringFixed(2), tx.Memo)
	}
	return nil
}

func parseMonthFlag(s string) (year, month int, err error) {
	if s == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return t.Year(), int(t.Month()), nil
}
