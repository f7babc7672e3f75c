// Package storage persists uploaded photo binaries in an S3-compatible object store.
// The MinIO implementation works with any S3-compatible provider (MinIO, AWS S3, Ceph RGW).
package storage

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/zeebo/errs"
)

var (
	// ErrUnavailable is returned when the bucket cannot be probed or provisioned.
	ErrUnavailable = errs.Class("storage unavailable")
	// ErrWriteFailed is returned when an object write fails after the bucket is ready.
	ErrWriteFailed = errs.Class("storage write failed")
)

// Storage is the interface the photo service uses for binary persistence.
// Uploads are append-only: every call to Store writes a new key.
type Storage interface {
	// EnsureBucket provisions the target bucket if needed. Safe to call repeatedly.
	EnsureBucket(ctx context.Context) error
	// Store writes data under a fresh collision-resistant key and returns its public URL.
	Store(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// SanitizeFilename replaces whitespace runs with underscores and strips every
// character outside [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	name = whitespaceRun.ReplaceAllString(name, "_")
	return unsafeChars.ReplaceAllString(name, "")
}

// ObjectKey joins a unique token and the sanitized original filename.
func ObjectKey(token, filename string) string {
	return token + "-" + SanitizeFilename(filename)
}

// ObjectURL builds "<base>/<bucket>/<percent-encoded key>".
func ObjectURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + url.PathEscape(key)
}
