package sync

import (
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
)

// Change classifies one comparison record of the reconciliation.
type Change int

const (
	// NoChange means the directory identity and the stored user match.
	NoChange Change = iota
	// Add means the directory identity has no matching stored user.
	Add
	// Update means both sides exist but email or username differ.
	Update
	// Remove means the stored user has no matching directory identity.
	Remove
)

// String returns the classification as display text.
func (c Change) String() string {
	switch c {
	case NoChange:
		return "no change"
	case Add:
		return "add"
	case Update:
		return "update"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// IdentityRecord is one active identity reported by the authentication
// directory.
type IdentityRecord struct {
	// UserID is the stable identifier issued by the directory.
	UserID string `json:"userId"`
	// Email is the identity's email address.
	Email string `json:"email"`
	// UserName is the identity's display name, may be empty.
	UserName string `json:"userName"`
}

// UserChange is one comparison record of the reconciliation, constructed
// transiently for operator review and consumed by ApplyChanges. Exactly one
// of External and Stored may be nil, never both.
type UserChange struct {
	// External is the directory side of the comparison, nil for Remove.
	External *IdentityRecord `json:"external"`
	// Stored is the authorization-store side of the comparison, nil for Add.
	Stored *models.AuthUser `json:"stored"`
	// ProviderChange is the classification computed from the two sides.
	ProviderChange Change `json:"providerChange"`
	// ConfirmChange is the operator-confirmed classification. It defaults to
	// ProviderChange and may be edited before applying.
	ConfirmChange Change `json:"confirmChange"`
	// RoleNames is the editable role-name list used for Add and Update,
	// pre-populated from the stored user where one exists.
	RoleNames []string `json:"roleNames"`
	// TenantName is the editable tenant name used for Add and Update,
	// pre-populated from the stored user where one exists.
	TenantName string `json:"tenantName"`
}

// NewUserChange builds a comparison record from the directory and stored
// sides and classifies it. It returns ErrBothSidesNil when neither side is
// present.
func NewUserChange(external *IdentityRecord, stored *models.AuthUser) (*UserChange, error) {
	if external == nil && stored == nil {
		return nil, ErrBothSidesNil
	}

	change := &UserChange{
		External: external,
		Stored:   stored,
	}

	switch {
	case stored == nil:
		change.ProviderChange = Add
	case external == nil:
		change.ProviderChange = Remove
	case external.Email != stored.Email || external.UserName != stored.UserName:
		change.ProviderChange = Update
	default:
		change.ProviderChange = NoChange
	}

	change.ConfirmChange = change.ProviderChange

	if stored != nil {
		change.RoleNames = stored.RoleNames()
		change.TenantName = stored.TenantName()
	}

	return change, nil
}

// UserID returns the stable id of whichever side is present.
func (c *UserChange) UserID() string {
	if c.External != nil {
		return c.External.UserID
	}

	return c.Stored.UserID
}

// Email returns the directory email when present, the stored one otherwise.
func (c *UserChange) Email() string {
	if c.External != nil {
		return c.External.Email
	}

	return c.Stored.Email
}

// UserName returns the directory username when present, the stored one otherwise.
func (c *UserChange) UserName() string {
	if c.External != nil {
		return c.External.UserName
	}

	return c.Stored.UserName
}
