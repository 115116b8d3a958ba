package contacts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bookline-dev/bookline/internal/model"
)

const (
	numFields    = 17
	timeFormat   = time.RFC3339
	colID        = 0
	colCompanyID = 1
	colType      = 2
	colName      = 3
	colEmail     = 4
	colPhone     = 5
	colAddress   = 6
	colTaxID     = 7
	col1099      = 8
	colActive    = 9
	colNotes     = 10
	colParentID  = 11
	colRole      = 12
	colLevel     = 13
	colCreatedAt = 14
	colUpdatedAt = 15
	colDeletedAt = 16
)

var header = []string{
	"contact_id", "company_id", "type", "name", "email", "phone", "address",
	"tax_id", "eligible_1099", "active", "notes", "parent_id", "role",
	"level", "created_at", "updated_at", "deleted_at",
}

// ReadContacts reads contacts.csv.
func ReadContacts(r io.Reader) ([]model.Contact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading contacts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var contacts []model.Contact
	for i, rec := range records[1:] {
		c, err := UnmarshalContact(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// WriteContacts writes contacts.csv, including the header.
func WriteContacts(w io.Writer, contacts []model.Contact) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range contacts {
		if err := cw.Write(MarshalContact(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalContact converts a Contact to a CSV row.
func MarshalContact(c model.Contact) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colCompanyID] = c.CompanyID
	row[colType] = string(c.Type)
	row[colName] = c.Name
	row[colEmail] = c.Email
	row[colPhone] = c.Phone
	row[colAddress] = c.Address
	row[colTaxID] = c.TaxID
	row[col1099] = strconv.FormatBool(c.Eligible1099)
	row[colActive] = strconv.FormatBool(c.Active)
	row[colNotes] = c.Notes
	row[colParentID] = c.ParentID
	row[colRole] = string(c.Role)
	row[colLevel] = strconv.Itoa(c.Level)
	row[colCreatedAt] = c.CreatedAt.Format(timeFormat)
	row[colUpdatedAt] = c.UpdatedAt.Format(timeFormat)
	if c.DeletedAt != nil {
		row[colDeletedAt] = c.DeletedAt.Format(timeFormat)
	}
	return row
}

// UnmarshalContact converts a CSV row to a Contact.
func UnmarshalContact(record []string) (model.Contact, error) {
	if len(record) != numFields {
		return model.Contact{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	eligible, err := strconv.ParseBool(record[col1099])
	if err != nil {
		return model.Contact{}, fmt.Errorf("parsing eligible_1099 %q: %w", record[col1099], err)
	}

	active, err := strconv.ParseBool(record[colActive])
	if err != nil {
		return model.Contact{}, fmt.Errorf("parsing active %q: %w", record[colActive], err)
	}

	level, err := strconv.Atoi(record[colLevel])
	if err != nil {
		return model.Contact{}, fmt.Errorf("parsing level %q: %w", record[colLevel], err)
	}

	createdAt, err := time.Parse(timeFormat, record[colCreatedAt])
	if err != nil {
		return model.Contact{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}

	updatedAt, err := time.Parse(timeFormat, record[colUpdatedAt])
	if err != nil {
		return model.Contact{}, fmt.Errorf("parsing updated_at %q: %w", record[colUpdatedAt], err)
	}

	var deletedAt *time.Time
	if record[colDeletedAt] != "" {
		t, err := time.Parse(timeFormat, record[colDeletedAt])
		if err != nil {
			return model.Contact{}, fmt.Errorf("parsing deleted_at %q: %w", record[colDeletedAt], err)
		}
		deletedAt = &t
	}

	return model.Contact{
		ID:           record[colID],
		CompanyID:    record[colCompanyID],
		Type:         model.ContactType(record[colType]),
		Name:         record[colName],
		Email:        record[colEmail],
		Phone:        record[colPhone],
		Address:      record[colAddress],
		TaxID:        record[colTaxID],
		Eligible1099: eligible,
		Active:       active,
		Notes:        record[colNotes],
		ParentID:     record[colParentID],
		Role:         model.HierarchyRole(record[colRole]),
		Level:        level,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}, nil
}
