// Package tenant provides read operations for tenants in the authorization
// store. Tenants are referenced, never created, by the synchronization and
// mutation operations.
package tenant

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrTenantNotFound is returned when a tenant is not found.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrTenantNameEmpty is returned when looking up a tenant with an empty name.
	ErrTenantNameEmpty = errors.New("tenant name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByName retrieves a tenant by its unique name.
func GetByName(db *gorm.DB, name string) (*models.Tenant, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrTenantNameEmpty
	}

	var t models.Tenant
	result := db.Where(nameQueryPattern, name).First(&t)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, result.Error
	}

	return &t, nil
}

// GetAll retrieves all tenants ordered by data key, so parents come before
// their descendants.
func GetAll(db *gorm.DB) ([]models.Tenant, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var tenants []models.Tenant
	result := db.Order("data_key ASC").Find(&tenants)
	if result.Error != nil {
		return nil, result.Error
	}

	return tenants, nil
}
