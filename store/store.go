package store

import (
	"context"
	"errors"
)

// Keys used by the credential session for each persisted credential kind.
const (
	KeyAccessToken = "access_token"
	KeyIDToken     = "id_token"
	KeyUser        = "user"
)

// ErrNotFound is returned by Store.Get when no value exists for a key.  A
// missing value is an expected outcome, not a storage failure.
var ErrNotFound = errors.New("not found")

// Store is the capability required to persist credentials between requests.
// Any conforming implementation can be substituted; the session only ever
// uses these three operations with the Key* constants above.
type Store interface {
	// Get returns the value for key, or ErrNotFound when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key.  Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
