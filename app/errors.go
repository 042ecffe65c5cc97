package app

import "errors"

// ErrSyncApplyFailed is returned when applying a change-set reported one or more errors.
var ErrSyncApplyFailed = errors.New("sync apply finished with errors")
