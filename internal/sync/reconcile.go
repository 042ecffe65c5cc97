// Package sync implements the reconciliation of the authorization store
// against an external authentication directory: it diffs the directory's
// active identities against the locally stored users, produces a change-set
// for operator review and applies a confirmed change-set in one transaction.
package sync

import (
	"sort"

	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/authuser"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
)

// Service computes and applies reconciliation change-sets.
type Service struct {
	db            *gorm.DB
	reader        IdentityReader
	tenantEnabled bool
}

// NewService creates a new sync service. The reader may be nil when no
// directory is configured; ComputeChanges then fails with ErrNoIdentityReader.
func NewService(db *gorm.DB, reader IdentityReader, tenantEnabled bool) *Service {
	return &Service{
		db:            db,
		reader:        reader,
		tenantEnabled: tenantEnabled,
	}
}

// ComputeChanges diffs the directory's active identities against the stored
// users and returns the comparison records requiring operator attention.
// Records classifying as NoChange are dropped from the result. The order is
// deterministic: directory iteration order first, then leftover removals
// sorted by user id.
func (s *Service) ComputeChanges() ([]*UserChange, error) {
	if s.reader == nil {
		return nil, ErrNoIdentityReader
	}

	identities, err := s.reader.ListActiveIdentities()
	if err != nil {
		return nil, err
	}

	stored, err := authuser.GetAll(s.db)
	if err != nil {
		return nil, err
	}

	// Removable working set of stored users keyed by stable id.
	working := make(map[string]*models.AuthUser, len(stored))
	for i := range stored {
		working[stored[i].UserID] = &stored[i]
	}

	changes := make([]*UserChange, 0, len(identities))

	for i := range identities {
		identity := &identities[i]

		storedUser, found := working[identity.UserID]
		if found {
			// Matched either way: the id is handled, remove it from the set.
			delete(working, identity.UserID)
		}

		change, err := NewUserChange(identity, storedUser)
		if err != nil {
			return nil, err
		}

		if change.ProviderChange == NoChange {
			continue
		}

		changes = append(changes, change)
	}

	// Every stored user left over has no matching directory identity.
	leftover := make([]*models.AuthUser, 0, len(working))
	for _, user := range working {
		leftover = append(leftover, user)
	}

	sort.Slice(leftover, func(i, j int) bool {
		return leftover[i].UserID < leftover[j].UserID
	})

	for _, user := range leftover {
		change, err := NewUserChange(nil, user)
		if err != nil {
			return nil, err
		}

		changes = append(changes, change)
	}

	return changes, nil
}
