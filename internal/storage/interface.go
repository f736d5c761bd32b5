// Package storage defines the interface for backup object storage.
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore is the narrow interface the workflow needs from object
// storage. Implementations exist for S3 and GCS.
type ObjectStore interface {
	// Upload stores an object under key with the given metadata and tags.
	Upload(ctx context.Context, key string, reader io.Reader, metadata, tags map[string]string) error

	// Download opens the object stored under key for reading.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is present under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error

	// List returns all objects under the given key prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// LastBackupTime retrieves the timestamp of the most recent object
	// under the given prefix, preferring the backup-timestamp metadata
	// over the object's modification time.
	LastBackupTime(ctx context.Context, prefix string) (time.Time, error)
}

// ObjectInfo contains information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	Metadata     map[string]string
}
