package filestorage

import (
	"context"
	"io"
)

// ObjectStorage is the contract the repositories and controllers need from an S3 compatible store.
type ObjectStorage interface {
	Upload(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (string, error)
	PublicURL(objectPath string) string
	Remove(ctx context.Context, objectPaths ...string) error
}
