package blob

import (
	"context"
	"strings"
	"time"
)

// ObjectInfo describes a stored object as returned by List.
type ObjectInfo struct {
	Path       string    `json:"pathname"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ObjectRef is the durable identity of an object after a successful Put.
type ObjectRef struct {
	Path string `json:"pathname"`
	URL  string `json:"url"`
}

// UsageInfo aggregates bucket-wide storage consumption.
type UsageInfo struct {
	TotalSize int64 `json:"totalSize"`
	FileCount int   `json:"filesCount"`
}

// Store abstracts the object storage service. Every write is
// last-writer-wins on an individual path; there are no transactions.
type Store interface {
	// Put writes data at path unconditionally, overwriting any existing object.
	Put(ctx context.Context, path string, data []byte, contentType string) (*ObjectRef, error)

	// List returns all objects whose path starts with prefix, in path order.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Get reads the full body of the object at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Delete removes the object at path. Silently succeeds when absent.
	Delete(ctx context.Context, path string) error

	// Exists reports whether an object is stored at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Usage reports aggregate size and object count for the whole store.
	Usage(ctx context.Context) (*UsageInfo, error)
}

// PathFromURL derives the internal storage path from a public URL by
// stripping the configured base. Non-matching URLs fall back to stripping
// scheme and host, so deletes accept either form.
func PathFromURL(rawURL, publicBaseURL string) string {
	if publicBaseURL != "" && strings.HasPrefix(rawURL, publicBaseURL) {
		return strings.TrimPrefix(strings.TrimPrefix(rawURL, publicBaseURL), "/")
	}
	trimmed := rawURL
	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		trimmed = trimmed[idx+3:]
		if slash := strings.Index(trimmed, "/"); slash >= 0 {
			trimmed = trimmed[slash+1:]
		} else {
			trimmed = ""
		}
	}
	return strings.TrimPrefix(trimmed, "/")
}

// FilenameOf returns the last path segment.
func FilenameOf(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
