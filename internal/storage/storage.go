// Package storage persists uploaded files and maps them to public URLs.
package storage

import (
	"context"
	"errors"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Storage is a blob store addressed by slash-separated keys of the form
// "{category}/{name}".
type Storage interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns the public address of key.
	URL(key string) string
	// KeyFromURL reverses URL. It reports false for addresses this backend
	// did not issue.
	KeyFromURL(url string) (string, bool)
}
