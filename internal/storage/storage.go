// Package storage provides the persisted key/value backends that hold the
// session user and the video collection.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound indicates no value is stored under the requested key.
	ErrNotFound = errors.New("storage: key not found")
	// ErrInvalidKey indicates the key contains characters a backend cannot address.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store is a minimal key/value persistence contract. Values are opaque bytes;
// deleting a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
