package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// ObjectInfo describes a stored media object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service stores user-supplied media (avatars, product images) in remote
// object storage and hands out time-limited read URLs.
type Service interface {
	UploadObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}

// ParseLocation splits an "s3://bucket/key" location into its bucket and key.
// Locations in any other form (external URLs, plain paths) report ok=false.
func ParseLocation(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
