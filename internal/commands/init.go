package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bookline-dev/bookline/internal/accounts"
	"github.com/bookline-dev/bookline/internal/auditlog"
	"github.com/bookline-dev/bookline/internal/config"
	"github.com/bookline-dev/bookline/internal/contacts"
	"github.com/bookline-dev/bookline/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new books directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, entityType, noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "llc_single_member", "entity type")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git init and disable auto-commit")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, entityType string, noGit bool) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already contains a %s", dir, config.FileName)
	}

	for _, d := range []string{"accounts", "contacts", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	companyID := uuid.NewString()

	cfg := config.Default(name, entityType, companyID)
	if noGit {
		cfg.Git.AutoCommit = false
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	accts := accounts.NewService(accounts.DefaultChart(companyID))
	if err := accts.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	if err := contacts.NewService(nil).Save(dir); err != nil {
		return fmt.Errorf("writing contacts: %w", err)
	}

	gitignore := "exports/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	hash := ""
	if !noGit {
		repo := gitops.New(dir)
		if err := repo.Init(); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		h, err := repo.CommitAll("init: Initialize "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		hash = h
	}

	if err := auditlog.Record(dir, "cli", "books.init", "Initialized "+name, companyID, hash); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	if hash != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized books for %s at %s (%s)\n", name, dir, hash)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized books for %s at %s\n", name, dir)
	}
	return nil
}
