// Package authuser provides CRUD operations for authorization users,
// loaded eagerly with their role set and tenant.
package authuser

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
)

const (
	userIDQueryPattern = "user_id = ?"
	emailQueryPattern  = "email = ?"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("auth user not found")
	// ErrUserIDEmpty is returned when looking up a user with an empty user id.
	ErrUserIDEmpty = errors.New("user id cannot be empty")
	// ErrEmailEmpty is returned when looking up a user with an empty email.
	ErrEmailEmpty = errors.New("email cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// likeEscaper neutralizes SQL LIKE wildcards, so a data-key prefix only ever
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// withRelations eager-loads the role set and tenant of a user query.
// Mutation operations require both associations to be populated.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Roles").Preload("Tenant")
}

// GetByUserID retrieves a user by its stable id, with roles and tenant loaded.
func GetByUserID(db *gorm.DB, userID string) (*models.AuthUser, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == "" {
		return nil, ErrUserIDEmpty
	}

	var user models.AuthUser
	result := withRelations(db).Where(userIDQueryPattern, userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetByEmail retrieves a user by its unique email, with roles and tenant loaded.
func GetByEmail(db *gorm.DB, email string) (*models.AuthUser, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if email == "" {
		return nil, ErrEmailEmpty
	}

	var user models.AuthUser
	result := withRelations(db).Where(emailQueryPattern, email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetAll retrieves all users with roles and tenant loaded, ordered by user id.
func GetAll(db *gorm.DB) ([]models.AuthUser, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.AuthUser
	result := withRelations(db).Order("user_id ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// GetAllByTenantDataKey retrieves the users whose tenant's data key starts
// with the given prefix, scoping the query to that tenant and its
// descendants. An empty prefix behaves like GetAll.
func GetAllByTenantDataKey(db *gorm.DB, dataKeyPrefix string) ([]models.AuthUser, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if dataKeyPrefix == "" {
		return GetAll(db)
	}

	var users []models.AuthUser
	result := withRelations(db).
		Joins("JOIN tenants ON tenants.id = auth_users.tenant_id").
		Where("tenants.data_key LIKE ? ESCAPE '\\'", escapeLikePattern(dataKeyPrefix)+"%").
		Order("auth_users.user_id ASC").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// Create inserts a new user including its role associations.
func Create(db *gorm.DB, user *models.AuthUser) error {
	if db == nil {
		return ErrDBNil
	}
	if user == nil || user.UserID == "" {
		return ErrUserIDEmpty
	}

	return db.Create(user).Error
}

// Save persists changes to an already-loaded user. Role associations are not
// touched; use ReplaceRoles to change the role set.
func Save(db *gorm.DB, user *models.AuthUser) error {
	if db == nil {
		return ErrDBNil
	}
	if user == nil || user.UserID == "" {
		return ErrUserIDEmpty
	}

	return db.Omit("Roles", "Tenant").Save(user).Error
}

// ReplaceRoles replaces the user's role set with the given roles and updates
// the in-memory user to match.
func ReplaceRoles(db *gorm.DB, user *models.AuthUser, roles []models.Role) error {
	if db == nil {
		return ErrDBNil
	}
	if user == nil || user.UserID == "" {
		return ErrUserIDEmpty
	}

	if err := db.Model(user).Association("Roles").Replace(&roles); err != nil {
		return err
	}

	user.Roles = roles

	return nil
}

// Delete removes a user and its role associations by stable id.
func Delete(db *gorm.DB, userID string) error {
	if db == nil {
		return ErrDBNil
	}
	if userID == "" {
		return ErrUserIDEmpty
	}

	// Select(clause.Associations) removes the user_to_roles join rows together
	// with the user row.
	result := db.Select(clause.Associations).Delete(&models.AuthUser{UserID: userID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
