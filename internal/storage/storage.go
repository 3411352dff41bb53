package storage

import (
	"context"
	"io"
)

// Storage is the document/image store behind member photos and case
// attachments. Backed by Supabase Storage in production and a local
// directory in development and tests.
type Storage interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	// PublicURL returns the URL an already-stored object is served from.
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}
