// Package useradmin implements the invariant-preserving mutation operations
// on a single authorization user: rename, re-email, add/remove role and
// tenant change. Every operation validates its input, applies an idempotent
// change and persists with a single save.
package useradmin

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/authuser"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/role"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/tenant"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/status"
)

var (
	// ErrUserNil is returned when an operation is called without a loaded user.
	// Callers must load the user with its role set before mutating it.
	ErrUserNil = errors.New("user must be loaded before mutating it")
)

// Service provides the mutation operations on authorization users.
type Service struct {
	db            *gorm.DB
	validate      *validator.Validate
	tenantEnabled bool
}

// NewService creates a new user mutation service.
func NewService(db *gorm.DB, tenantEnabled bool) *Service {
	return &Service{
		db:            db,
		validate:      validator.New(),
		tenantEnabled: tenantEnabled,
	}
}

// Rename changes the user's display name. Renaming to the current name is a
// no-op that still reports success.
func (s *Service) Rename(user *models.AuthUser, newName string) *status.Status {
	st := status.New()

	if user == nil {
		return st.AddError(ErrUserNil)
	}

	if err := s.validate.Var(newName, "required,max=128"); err != nil {
		return st.AddErrorf("the new name %q is not valid", newName)
	}

	if user.UserName == newName {
		return st.SetMessage("user %s is already named %s", user.UserID, newName)
	}

	user.UserName = newName

	if err := authuser.Save(s.db, user); err != nil {
		return st.AddErrorf("failed to rename user %s: %v", user.UserID, err)
	}

	return st.SetMessage("renamed user %s to %s", user.UserID, newName)
}

// ChangeEmail changes the user's email address after validating its syntax.
// Changing to the current email is a no-op that still reports success.
func (s *Service) ChangeEmail(user *models.AuthUser, newEmail string) *status.Status {
	st := status.New()

	if user == nil {
		return st.AddError(ErrUserNil)
	}

	if err := s.validate.Var(newEmail, "required,email,max=256"); err != nil {
		return st.AddErrorf("the email %q is not a valid email address", newEmail)
	}

	if user.Email == newEmail {
		return st.SetMessage("user %s already has the email %s", user.UserID, newEmail)
	}

	user.Email = newEmail

	if err := authuser.Save(s.db, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return st.AddErrorf("the email %s is already taken by another user", newEmail)
		}

		return st.AddErrorf("failed to change the email of user %s: %v", user.UserID, err)
	}

	return st.SetMessage("changed the email of user %s to %s", user.UserID, newEmail)
}

// AddRole assigns the named role to the user. Adding a role the user already
// has is a no-op that still reports success with a distinguishing message.
func (s *Service) AddRole(user *models.AuthUser, roleName string) *status.Status {
	st := status.New()

	if user == nil {
		return st.AddError(ErrUserNil)
	}

	r, err := role.GetByName(s.db, roleName)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) || errors.Is(err, role.ErrRoleNameEmpty) {
			return st.AddErrorf("could not find the role %q", roleName)
		}

		return st.AddError(err)
	}

	if user.HasRole(r.Name) {
		return st.SetMessage("user %s already had the role %s", user.UserID, r.Name)
	}

	if err := authuser.ReplaceRoles(s.db, user, append(user.Roles, *r)); err != nil {
		return st.AddErrorf("failed to add role %s to user %s: %v", r.Name, user.UserID, err)
	}

	return st.SetMessage("added role %s to user %s", r.Name, user.UserID)
}

// RemoveRole removes the named role from the user. Removing a role the user
// does not have is a no-op that still reports success with a distinguishing
// message.
func (s *Service) RemoveRole(user *models.AuthUser, roleName string) *status.Status {
	st := status.New()

	if user == nil {
		return st.AddError(ErrUserNil)
	}

	r, err := role.GetByName(s.db, roleName)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) || errors.Is(err, role.ErrRoleNameEmpty) {
			return st.AddErrorf("could not find the role %q", roleName)
		}

		return st.AddError(err)
	}

	if !user.HasRole(r.Name) {
		return st.SetMessage("user %s did not have the role %s", user.UserID, r.Name)
	}

	remaining := make([]models.Role, 0, len(user.Roles)-1)
	for _, assigned := range user.Roles {
		if assigned.Name != r.Name {
			remaining = append(remaining, assigned)
		}
	}

	if err := authuser.ReplaceRoles(s.db, user, remaining); err != nil {
		return st.AddErrorf("failed to remove role %s from user %s: %v", r.Name, user.UserID, err)
	}

	return st.SetMessage("removed role %s from user %s", r.Name, user.UserID)
}

// ChangeTenant moves the user to the named tenant. It requires tenant support
// to be enabled and the tenant to exist. Moving to the current tenant is a
// no-op that still reports success.
func (s *Service) ChangeTenant(user *models.AuthUser, tenantName string) *status.Status {
	st := status.New()

	if user == nil {
		return st.AddError(ErrUserNil)
	}

	if !s.tenantEnabled {
		return st.AddErrorf("tenant support is disabled, cannot move user %s", user.UserID)
	}

	if err := s.validate.Var(tenantName, "required,max=100"); err != nil {
		return st.AddErrorf("the tenant name %q is not valid", tenantName)
	}

	if user.TenantName() == tenantName {
		return st.SetMessage("user %s already belongs to tenant %s", user.UserID, tenantName)
	}

	t, err := tenant.GetByName(s.db, tenantName)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return st.AddErrorf("could not find the tenant %q", tenantName)
		}

		return st.AddError(err)
	}

	user.TenantID = &t.ID
	user.Tenant = t

	if err := authuser.Save(s.db, user); err != nil {
		return st.AddErrorf("failed to move user %s to tenant %s: %v", user.UserID, tenantName, err)
	}

	return st.SetMessage("moved user %s to tenant %s", user.UserID, tenantName)
}
