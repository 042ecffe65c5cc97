package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// AuthUser represents one application user known to the authorization store.
// The UserID is issued by the external authentication directory and is the
// stable key tying a directory identity to the local authorization data.
// Users carry a set of roles and, when multi-tenancy is enabled, a single
// tenant assignment.
type AuthUser struct {
	// UserID is the stable identifier issued by the authentication directory.
	UserID string `gorm:"primaryKey;size:256"`
	// Email is the user's email address, unique across all users.
	Email string `gorm:"uniqueIndex;size:256;not null"`
	// UserName is the optional display name of the user.
	UserName string `gorm:"size:128"`
	// PasswordHash is the Argon2id hash of a local operator password.
	// It is only set for accounts allowed to sign in to the admin API.
	PasswordHash string `gorm:"size:255"`
	// Roles are the roles assigned to this user. The set may be empty.
	Roles []Role `gorm:"many2many:user_to_roles;constraint:OnDelete:CASCADE"`
	// TenantID is the ID of the tenant the user belongs to.
	// It is nil unless the application is configured for tenant support.
	TenantID *uint
	// Tenant is the associated tenant (loaded via foreign key).
	Tenant *Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the AuthUser model.
// This overrides GORM's default pluralized table naming.
func (AuthUser) TableName() string {
	return "auth_users"
}

// RoleNames returns the names of the user's roles in assignment order.
func (u *AuthUser) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		names[i] = role.Name
	}

	return names
}

// HasRole reports whether the user has a role with the given name.
func (u *AuthUser) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}

	return false
}

// TenantName returns the name of the user's tenant, or the empty string when
// the user has no tenant assigned.
func (u *AuthUser) TenantName() string {
	if u.Tenant == nil {
		return ""
	}

	return u.Tenant.Name
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating local operator passwords.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hash.
// It uses constant-time comparison to prevent timing attacks.
// Returns false for accounts without a local operator password.
func (u *AuthUser) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.PasswordHash)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
