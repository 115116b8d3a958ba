package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookline-dev/bookline/internal/auditlog"
	"github.com/bookline-dev/bookline/internal/contacts"
	"github.com/bookline-dev/bookline/internal/dedupe"
	"github.com/bookline-dev/bookline/internal/model"
)

func newContactCommand() *cobra.Command {
	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage vendors and customers",
	}
	contactCmd.AddCommand(newContactAddCommand())
	contactCmd.AddCommand(newContactListCommand())
	contactCmd.AddCommand(newContactTreeCommand())
	return contactCmd
}

func newContactAddCommand() *cobra.Command {
	var name, contactType, email, phone, address, taxID, notes, parent string
	var eligible1099, force bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a vendor or customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			c := model.Contact{
				Type:         model.ContactType(contactType),
				Name:         name,
				Email:        email,
				Phone:        phone,
				Address:      address,
				TaxID:        taxID,
				Eligible1099: eligible1099,
				Notes:        notes,
			}
			return runContactAdd(cmd, dir, c, parent, force)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "contact name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&contactType, "type", "vendor", "vendor, customer, or both")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "mailing address")
	cmd.Flags().StringVar(&taxID, "tax-id", "", "tax identifier")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&parent, "parent", "", "parent contact name")
	cmd.Flags().BoolVar(&eligible1099, "1099", false, "eligible for 1099 reporting")
	cmd.Flags().BoolVar(&force, "force", false, "add even when likely duplicates exist")

	return cmd
}

func runContactAdd(cmd *cobra.Command, dir string, c model.Contact, parent string, force bool) error {
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	svc, err := contacts.Load(dir)
	if err != nil {
		return err
	}

	res := svc.CheckDuplicate(dedupe.Candidate{Name: c.Name, Email: c.Email, Phone: c.Phone})
	if res.IsDuplicate && !force {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Likely duplicates of %q:\n", c.Name)
		for _, m := range res.Matches {
			fmt.Fprintf(out, "  %s (score %.2f, matched on %s)\n",
				m.Contact.Name, m.Score, strings.Join(m.MatchingFields, ", "))
		}
		return fmt.Errorf("refusing to add likely duplicate; re-run with --force to override")
	}

	if parent != "" {
		p, ok := findContactByName(svc, parent)
		if !ok {
			return fmt.Errorf("parent contact %q not found", parent)
		}
		c.ParentID = p.ID
	}
	c.CompanyID = cfg.Business.CompanyID

	added, err := svc.Add(c)
	if err != nil {
		return err
	}
	if err := svc.Save(dir); err != nil {
		return err
	}

	hash, err := autoCommit(dir, cfg, "contact: Add "+added.Name)
	if err != nil {
		return err
	}
	if err := auditlog.Record(dir, "cli", "contact.create", added.Name, added.ID, hash); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", added.Type, added.Name, added.ID)
	return nil
}

func findContactByName(svc *contacts.Service, name string) (model.Contact, bool) {
	for _, c := range svc.Active() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.Contact{}, false
}

func newContactListCommand() *cobra.Command {
	var contactType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runContactList(cmd, dir, contactType)
		},
	}

	cmd.Flags().StringVar(&contactType, "type", "", "filter: vendor or customer")
	return cmd
}

func runContactList(cmd *cobra.Command, dir, contactType string) error {
	svc, err := contacts.Load(dir)
	if err != nil {
		return err
	}

	cts := svc.Active()
	if contactType != "" {
		cts = svc.ByType(model.ContactType(contactType))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-36s %-10s %-28s %s\n", "NAME", "TYPE", "EMAIL", "PHONE")
	for _, c := range cts {
		fmt.Fprintf(out, "%-36s %-10s %-28s %s\n", c.Name, c.Type, c.Email, c.Phone)
	}
	return nil
}

func newContactTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show contacts with their sub-accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runContactTree(cmd, dir)
		},
	}
}

func runContactTree(cmd *cobra.Command, dir string) error {
	svc, err := contacts.Load(dir)
	if err != nil {
		return err
	}
	flat, err := svc.Flatten()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, node := range flat {
		c := node.Entity
		fmt.Fprintf(out, "%s%s (%s)\n", strings.Repeat("  ", node.Level), c.Name, c.Type)
	}
	return nil
}
