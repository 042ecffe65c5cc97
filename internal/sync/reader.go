package sync

// IdentityReader supplies the full current set of active identities from an
// external authentication directory. There is no paging or incremental
// contract: every call returns a complete snapshot.
type IdentityReader interface {
	ListActiveIdentities() ([]IdentityRecord, error)
}
