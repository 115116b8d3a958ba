// Package commands wires the bookline CLI. Every subcommand operates on a
// books directory selected with the persistent --dir flag.
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bookline-dev/bookline/internal/buildinfo"
	"github.com/bookline-dev/bookline/internal/config"
	"github.com/bookline-dev/bookline/internal/gitops"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "bookline",
		Short:   "Plain-text double-entry bookkeeping for small businesses",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "books directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand())
	rootCmd.AddCommand(newContactCommand())
	rootCmd.AddCommand(newEntryCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// booksDir resolves the --dir flag to an absolute path.
func booksDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absDir, nil
}

// loadConfig reads bookline.yaml from the books directory.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("not a bookline directory (run 'bookline init'?): %w", err)
	}
	return cfg, nil
}

// autoCommit commits the books directory when auto-commit is enabled.
// Returns the commit hash, or "" when auto-commit is off.
func autoCommit(dir string, cfg *config.Config, message string) (string, error) {
	if !cfg.Git.AutoCommit {
		return "", nil
	}
	repo := gitops.New(dir)
	if !repo.IsRepo() {
		return "", nil
	}
	hash, err := repo.CommitAll(message, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return "", fmt.Errorf("auto-commit: %w", err)
	}
	return hash, nil
}
