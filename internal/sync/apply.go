package sync

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/authuser"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/role"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/tenant"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/status"
)

// errAbortApply rolls the apply transaction back while the accumulated
// status is returned to the caller.
var errAbortApply = errors.New("apply aborted")

// ApplyChanges applies an operator-confirmed change-set against the store.
// Records whose role or tenant names cannot be resolved are excluded and
// reported in the status; the remaining staged mutations commit in a single
// transaction. A uniqueness violation rolls the whole transaction back and
// surfaces as a status error, so the commit is all-or-nothing. The returned
// error is reserved for unrecoverable failures: a change record whose stored
// user can no longer be loaded means the snapshot and the store diverged.
func (s *Service) ApplyChanges(changes []*UserChange) (*status.Status, error) {
	st := status.New()
	counts := make(map[Change]int, 4)

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			var (
				applied bool
				err     error
			)

			switch change.ConfirmChange {
			case NoChange:
				applied = true
			case Add:
				applied, err = s.applyAdd(tx, change, st)
			case Update:
				applied, err = s.applyUpdate(tx, change, st)
			case Remove:
				applied, err = s.applyRemove(tx, change)
			default:
				st.AddErrorf("user %s: unknown change classification %d", change.UserID(), change.ConfirmChange)
			}

			if err != nil {
				return err
			}

			if applied {
				counts[change.ConfirmChange]++
			}
		}

		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, errAbortApply) {
			return st, nil
		}

		return nil, txErr
	}

	st.SetMessage("sync applied: %d no change, %d added, %d updated, %d removed",
		counts[NoChange], counts[Add], counts[Update], counts[Remove])

	return st, nil
}

// applyAdd creates a new user from the directory side of the record. Role and
// tenant resolution failures exclude the record and accumulate into st.
func (s *Service) applyAdd(tx *gorm.DB, change *UserChange, st *status.Status) (bool, error) {
	roles, missing, err := role.FindByNames(tx, change.RoleNames)
	if err != nil {
		return false, err
	}

	if len(missing) > 0 {
		st.AddErrorf("cannot add user %s: unknown roles: %s", change.UserID(), strings.Join(missing, ", "))
		return false, nil
	}

	tenantID, ok, err := s.resolveTenant(tx, change, st)
	if err != nil || !ok {
		return false, err
	}

	user := models.AuthUser{
		UserID:   change.External.UserID,
		Email:    change.External.Email,
		UserName: change.External.UserName,
		Roles:    roles,
		TenantID: tenantID,
	}

	if err := authuser.Create(tx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			st.AddErrorf("cannot add user %s: a user with this id or email already exists", user.UserID)
			return false, errAbortApply
		}

		return false, err
	}

	return true, nil
}

// applyUpdate applies the directory values and the edited role/tenant data to
// the stored user. Setters are idempotent: nothing is written when the values
// already match.
func (s *Service) applyUpdate(tx *gorm.DB, change *UserChange, st *status.Status) (bool, error) {
	user, err := authuser.GetByUserID(tx, change.UserID())
	if err != nil {
		if errors.Is(err, authuser.ErrUserNotFound) {
			return false, fmt.Errorf("%w: %s", ErrStoredUserVanished, change.UserID())
		}

		return false, err
	}

	// Resolve everything before mutating, so a resolution failure excludes
	// the whole record.
	var newRoles []models.Role

	replaceRoles := !sameNameSet(user.RoleNames(), change.RoleNames)
	if replaceRoles {
		var missing []string

		newRoles, missing, err = role.FindByNames(tx, change.RoleNames)
		if err != nil {
			return false, err
		}

		if len(missing) > 0 {
			st.AddErrorf("cannot update user %s: unknown roles: %s", user.UserID, strings.Join(missing, ", "))
			return false, nil
		}
	}

	dirty := false

	if change.TenantName != user.TenantName() {
		tenantID, ok, err := s.resolveTenant(tx, change, st)
		if err != nil || !ok {
			return false, err
		}

		user.TenantID = tenantID
		user.Tenant = nil
		dirty = true
	}

	if change.External != nil {
		if user.Email != change.External.Email {
			user.Email = change.External.Email
			dirty = true
		}

		if user.UserName != change.External.UserName {
			user.UserName = change.External.UserName
			dirty = true
		}
	}

	if dirty {
		if err := authuser.Save(tx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				st.AddErrorf("cannot update user %s: a user with this email already exists", user.UserID)
				return false, errAbortApply
			}

			return false, err
		}
	}

	if replaceRoles {
		if err := authuser.ReplaceRoles(tx, user, newRoles); err != nil {
			return false, err
		}
	}

	return true, nil
}

// applyRemove deletes the stored user the record points at.
func (s *Service) applyRemove(tx *gorm.DB, change *UserChange) (bool, error) {
	user, err := authuser.GetByUserID(tx, change.UserID())
	if err != nil {
		if errors.Is(err, authuser.ErrUserNotFound) {
			return false, fmt.Errorf("%w: %s", ErrStoredUserVanished, change.UserID())
		}

		return false, err
	}

	if err := authuser.Delete(tx, user.UserID); err != nil {
		return false, err
	}

	return true, nil
}

// resolveTenant resolves the record's tenant name. It returns ok=false with a
// status entry when the tenant does not exist or tenant support is disabled.
func (s *Service) resolveTenant(tx *gorm.DB, change *UserChange, st *status.Status) (*uint, bool, error) {
	if change.TenantName == "" {
		return nil, true, nil
	}

	if !s.tenantEnabled {
		st.AddErrorf("cannot assign tenant %q to user %s: tenant support is disabled", change.TenantName, change.UserID())
		return nil, false, nil
	}

	t, err := tenant.GetByName(tx, change.TenantName)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			st.AddErrorf("cannot resolve tenant %q for user %s", change.TenantName, change.UserID())
			return nil, false, nil
		}

		return nil, false, err
	}

	return &t.ID, true, nil
}

// sameNameSet reports whether the two name lists contain the same names,
// ignoring order.
func sameNameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)

	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}

	return true
}
