package model

import "time"

// ContactType discriminates vendors from customers.
type ContactType string

const (
	ContactTypeVendor   ContactType = "vendor"
	ContactTypeCustomer ContactType = "customer"
	ContactTypeBoth     ContactType = "both"
)

// HierarchyRole tags a contact's position in a sub-account tree.
type HierarchyRole string

const (
	RoleStandalone HierarchyRole = "standalone"
	RoleParent     HierarchyRole = "parent"
	RoleChild      HierarchyRole = "child"
)

// Contact is a vendor, customer, or both. ParentID links hierarchical
// sub-accounts (e.g. a franchise location under its parent company).
type Contact struct {
	ID           string
	CompanyID    string
	Type         ContactType
	Name         string
	Email        string
	Phone        string
	Address      string
	TaxID        string
	Eligible1099 bool
	Active       bool
	Notes        string
	ParentID     string
	Role         HierarchyRole
	Level        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Deleted reports whether the contact has been soft-deleted.
func (c Contact) Deleted() bool {
	return c.DeletedAt != nil
}
