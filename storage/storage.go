// Package storage holds the blob-store abstraction behind asset uploads.
//
// Assets are record-owned: a stored object belongs to whichever client record
// references its URL, and nothing reference-counts shared paths. Removal is
// always best-effort from the caller's point of view.
package storage

import (
	"context"
	"time"
)

// UploadFolder is the fixed prefix every uploaded asset lives under.
const UploadFolder = "uploads"

// Object describes one stored blob, normalized across backends.
type Object struct {
	Name        string     `json:"name"`
	Path        string     `json:"path"`
	Size        int64      `json:"size"`
	ContentType string     `json:"contentType"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// BlobStore is the object-storage collaborator. Upload returns a publicly
// resolvable URL for the written object. Remove deletes the given
// bucket-relative paths and reports the first failure it hits; callers doing
// cascade cleanup log that error instead of propagating it. PathFromURL maps
// a public URL back to a bucket-relative path, returning "" when the URL does
// not reference this store (callers treat "" as nothing to delete).
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, paths []string) error
	List(ctx context.Context, prefix string, limit int) ([]Object, error)
	PathFromURL(rawURL string) string
}
