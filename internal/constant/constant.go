package constant

import "time"

const (
	QUERY_TIMEOUT_DURATION           = 10 * time.Second
	// Budget for removing the storage objects of deleted rows.
	STORAGE_CLEANUP_TIMEOUT_DURATION = 2 * time.Minute

	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"

	DefaultPageSize = 12
	MaxPageSize     = 100

	// Upload limits, in bytes.
	MaxImageUploadSize = 20 << 20
	MaxVideoUploadSize = 500 << 20
)
