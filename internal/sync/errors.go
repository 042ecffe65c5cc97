package sync

import "errors"

var (
	// ErrNoIdentityReader is returned when no identity reader is registered.
	// This is a configuration error: synchronization cannot run without an
	// authentication directory to read from.
	ErrNoIdentityReader = errors.New("no identity reader is registered")

	// ErrBothSidesNil is returned when a comparison record would have neither
	// a directory identity nor a stored user.
	ErrBothSidesNil = errors.New("comparison record needs a directory identity or a stored user")

	// ErrStoredUserVanished is returned when a change record references a
	// stable id that can no longer be loaded from the store. The snapshot and
	// the store diverged during processing; this is not recoverable.
	ErrStoredUserVanished = errors.New("stored user no longer exists for change record")

	// ErrLDAPDisabled is returned when the LDAP directory is disabled via
	// configuration.
	ErrLDAPDisabled = errors.New("ldap directory is disabled")
)
