// Package httpapi serves the local dashboard API over the books directory.
// The CSV-backed stores reload automatically when their files change on
// disk, so dashboards see CLI edits without restarting the server.
package httpapi

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bookline-dev/bookline/internal/accounts"
	"github.com/bookline-dev/bookline/internal/contacts"
)

// Stores holds the in-memory account and contact services and can swap
// them atomically when the underlying files change.
type Stores struct {
	root string

	mu       sync.RWMutex
	accounts *accounts.Service
	contacts *contacts.Service
}

// NewStores loads the account and contact stores from a books root.
func NewStores(root string) (*Stores, error) {
	s := &Stores{root: root}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the books directory the stores read from.
func (s *Stores) Root() string {
	return s.root
}

// Reload re-reads both stores from disk.
func (s *Stores) Reload() error {
	accts, err := accounts.Load(s.root)
	if err != nil {
		return err
	}
	cts, err := contacts.Load(s.root)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.accounts = accts
	s.contacts = cts
	s.mu.Unlock()
	return nil
}

// Accounts returns the current account service.
func (s *Stores) Accounts() *accounts.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts
}

// Contacts returns the current contact service.
func (s *Stores) Contacts() *contacts.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contacts
}

// Watch reloads the stores whenever a CSV under the books root changes.
// Blocks until ctx is cancelled.
func (s *Stores) Watch(ctx context.Context, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range []string{
		filepath.Join(s.root, "accounts"),
		filepath.Join(s.root, "contacts"),
	} {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".csv") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := s.Reload(); err != nil {
				logger.Error("reload after file change failed", "file", event.Name, "error", err)
				continue
			}
			logger.Info("stores reloaded", "file", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
