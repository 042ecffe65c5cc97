package models

import "time"

// Tenant represents a multi-tenancy partition. Tenants are created by
// administrative tooling and only referenced by the synchronization and
// mutation operations. The DataKey is a hierarchical string prefix: a child
// tenant's key extends its parent's key, so scoping a query to a key prefix
// covers the tenant and all its descendants.
type Tenant struct {
	// ID is the unique identifier for the tenant.
	ID uint `gorm:"primaryKey"`
	// Name is the unique name of the tenant.
	Name string `gorm:"unique;size:100;not null"`
	// DataKey is the hierarchical key used to scope queries to this tenant
	// and its descendants.
	DataKey string `gorm:"size:100;not null;index"`
	// ParentID is the ID of the parent tenant, nil for top-level tenants.
	ParentID *uint
	// Parent is the parent tenant (loaded via foreign key).
	Parent *Tenant `gorm:"foreignKey:ParentID;references:ID"`
	// CreatedAt is the timestamp when the tenant was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the tenant was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Tenant model.
// This overrides GORM's default pluralized table naming.
func (Tenant) TableName() string {
	return "tenants"
}
