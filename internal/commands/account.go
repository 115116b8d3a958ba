package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookline-dev/bookline/internal/accounts"
	"github.com/bookline-dev/bookline/internal/auditlog"
	"github.com/bookline-dev/bookline/internal/model"
)

func newAccountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	accountCmd.AddCommand(newAccountAddCommand())
	accountCmd.AddCommand(newAccountListCommand())
	accountCmd.AddCommand(newAccountTreeCommand())
	return accountCmd
}

func newAccountAddCommand() *cobra.Command {
	var number, name, accountType, subtype, parent string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account to the chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runAccountAdd(cmd, dir, number, name, accountType, subtype, parent)
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "account number (required)")
	_ = cmd.MarkFlagRequired("number")
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&accountType, "type", "", "asset, liability, equity, income, or expense (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&subtype, "subtype", "", "account subtype")
	cmd.Flags().StringVar(&parent, "parent", "", "parent account number")

	return cmd
}

func runAccountAdd(cmd *cobra.Command, dir, number, name, accountType, subtype, parent string) error {
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	svc, err := accounts.Load(dir)
	if err != nil {
		return err
	}

	if _, exists := svc.FindByNumber(number); exists {
		return fmt.Errorf("account number %s already exists", number)
	}

	parentID := ""
	if parent != "" {
		p, ok := svc.FindByNumber(parent)
		if !ok {
			return fmt.Errorf("parent account %s not found", parent)
		}
		parentID = p.ID
	}

	acct, err := svc.Add(model.Account{
		CompanyID: cfg.Business.CompanyID,
		Number:    number,
		Name:      name,
		Type:      model.AccountType(accountType),
		Subtype:   subtype,
		ParentID:  parentID,
	})
	if err != nil {
		return err
	}
	if err := svc.Save(dir); err != nil {
		return err
	}

	hash, err := autoCommit(dir, cfg, fmt.Sprintf("account: Add %s %s", number, name))
	if err != nil {
		return err
	}
	if err := auditlog.Record(dir, "cli", "account.create", fmt.Sprintf("%s %s", number, name), acct.ID, hash); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added account %s %s (%s)\n", number, name, acct.ID)
	return nil
}

func newAccountListCommand() *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runAccountList(cmd, dir, accountType)
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "filter by account type")
	return cmd
}

func runAccountList(cmd *cobra.Command, dir, accountType string) error {
	svc, err := accounts.Load(dir)
	if err != nil {
		return err
	}

	accts := svc.Active()
	if accountType != "" {
		t := model.AccountType(accountType)
		if !t.Valid() {
			return fmt.Errorf("invalid account type %q", accountType)
		}
		filtered := accts[:0]
		for _, a := range accts {
			if a.Type == t {
				filtered = append(filtered, a)
			}
		}
		accts = filtered
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-8s %-36s %-10s %s\n", "NUMBER", "NAME", "TYPE", "SUBTYPE")
	for _, a := range accts {
		fmt.Fprintf(out, "%-8s %-36s %-10s %s\n", a.Number, a.Name, a.Type, a.Subtype)
	}
	return nil
}

func newAccountTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the chart of accounts as a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runAccountTree(cmd, dir)
		},
	}
}

func runAccountTree(cmd *cobra.Command, dir string) error {
	svc, err := accounts.Load(dir)
	if err != nil {
		return err
	}
	flat, err := svc.Flatten()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, node := range flat {
		a := node.Entity
		fmt.Fprintf(out, "%s%s %s\n", strings.Repeat("  ", node.Level), a.Number, a.Name)
	}
	return nil
}
