// Package role provides read operations for roles in the authorization store.
// Roles are referenced, never created, by the synchronization and mutation
// operations.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when looking up a role with an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByName retrieves a role by its unique name.
func GetByName(db *gorm.DB, name string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var role models.Role
	result := db.Where(nameQueryPattern, name).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// GetAll retrieves all roles ordered by name.
func GetAll(db *gorm.DB) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.Order("name ASC").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// FindByNames resolves a list of role names against the store. It returns the
// resolved roles in input order plus the names that could not be resolved, so
// callers can report every unresolved role at once.
func FindByNames(db *gorm.DB, names []string) ([]models.Role, []string, error) {
	if db == nil {
		return nil, nil, ErrDBNil
	}

	var (
		roles   = make([]models.Role, 0, len(names))
		missing []string
	)

	for _, name := range names {
		role, err := GetByName(db, name)
		if errors.Is(err, ErrRoleNotFound) || errors.Is(err, ErrRoleNameEmpty) {
			missing = append(missing, name)
			continue
		}

		if err != nil {
			return nil, nil, err
		}

		roles = append(roles, *role)
	}

	return roles, missing, nil
}
