package contacts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bookline-dev/bookline/internal/dedupe"
	"github.com/bookline-dev/bookline/internal/hierarchy"
	"github.com/bookline-dev/bookline/internal/model"
)

// File is the contacts path relative to the books root.
const File = "contacts/contacts.csv"

// Service provides in-memory lookup over vendors and customers.
type Service struct {
	contacts []model.Contact
	byID     map[string]model.Contact
}

// NewService creates a Service from a slice of contacts.
func NewService(contacts []model.Contact) *Service {
	byID := make(map[string]model.Contact, len(contacts))
	for _, c := range contacts {
		byID[c.ID] = c
	}
	return &Service{contacts: contacts, byID: byID}
}

// Load reads contacts.csv from a books root and returns a Service. A
// missing file is an empty contact list, not an error.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, File))
	if os.IsNotExist(err) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening contacts: %w", err)
	}
	defer f.Close()

	cs, err := ReadContacts(f)
	if err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}
	return NewService(cs), nil
}

// All returns every contact, including inactive and soft-deleted ones.
func (s *Service) All() []model.Contact {
	return s.contacts
}

// Active returns contacts that are active and not soft-deleted.
func (s *Service) Active() []model.Contact {
	var result []model.Contact
	for _, c := range s.contacts {
		if c.Active && !c.Deleted() {
			result = append(result, c)
		}
	}
	return result
}

// Get returns a contact by ID.
func (s *Service) Get(id string) (model.Contact, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// ByType returns live contacts matching the type; "both" contacts match
// vendor and customer queries.
func (s *Service) ByType(t model.ContactType) []model.Contact {
	var result []model.Contact
	for _, c := range s.contacts {
		if c.Deleted() {
			continue
		}
		if c.Type == t || c.Type == model.ContactTypeBoth || t == model.ContactTypeBoth {
			result = append(result, c)
		}
	}
	return result
}

// CheckDuplicate runs duplicate detection for a would-be contact against
// the live contact set.
func (s *Service) CheckDuplicate(candidate dedupe.Candidate) dedupe.Result {
	return dedupe.Detect(s.Active(), candidate)
}

// Add appends a new contact, maintaining hierarchy role and level for both
// the new contact and its parent.
func (s *Service) Add(c model.Contact) (model.Contact, error) {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Active = true
	c.CreatedAt = now
	c.UpdatedAt = now

	if c.ParentID == "" {
		c.Role = model.RoleStandalone
		c.Level = 0
	} else {
		parent, ok := s.byID[c.ParentID]
		if !ok || parent.Deleted() {
			return model.Contact{}, fmt.Errorf("parent contact %q not found", c.ParentID)
		}
		c.Role = model.RoleChild
		c.Level = parent.Level + 1

		if parent.Role != model.RoleParent {
			parent.Role = model.RoleParent
			parent.UpdatedAt = now
			s.update(parent)
		}
	}

	s.contacts = append(s.contacts, c)
	s.byID[c.ID] = c
	return c, nil
}

// Deactivate soft-deletes a contact.
func (s *Service) Deactivate(id string) error {
	c, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("contact %q not found", id)
	}
	now := time.Now().UTC()
	c.Active = false
	c.DeletedAt = &now
	c.UpdatedAt = now
	s.update(c)
	return nil
}

func (s *Service) update(c model.Contact) {
	for i, existing := range s.contacts {
		if existing.ID == c.ID {
			s.contacts[i] = c
			break
		}
	}
	s.byID[c.ID] = c
}

// Tree builds the display tree over live contacts, siblings ordered by name.
func (s *Service) Tree() ([]*hierarchy.Node[model.Contact], error) {
	return hierarchy.Build(s.Active(),
		func(c model.Contact) string { return c.ID },
		func(c model.Contact) string { return c.ParentID },
		func(a, b model.Contact) bool { return a.Name < b.Name })
}

// Flatten returns the contact tree in depth-first order for indented views.
func (s *Service) Flatten() ([]*hierarchy.Node[model.Contact], error) {
	roots, err := s.Tree()
	if err != nil {
		return nil, err
	}
	return hierarchy.Flatten(roots), nil
}

// Save writes contacts.csv back to the books root.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating contacts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating contacts file: %w", err)
	}
	defer f.Close()

	if err := WriteContacts(f, s.contacts); err != nil {
		return fmt.Errorf("writing contacts: %w", err)
	}
	return nil
}
