package store

import "context"

// NullStore is a Store that never persists anything.  It's used when
// persistence has been explicitly disabled: every Get reports ErrNotFound and
// Set/Delete are no-ops.
type NullStore struct{}

// ensure that NullStore implements the Store interface
var _ Store = (*NullStore)(nil)

// NewNullStore creates a no-op Store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Get always returns ErrNotFound.
func (s *NullStore) Get(ctx context.Context, key string) (string, error) {
	return "", ErrNotFound
}

// Set is a no-op.
func (s *NullStore) Set(ctx context.Context, key string, value string) error {
	return nil
}

// Delete is a no-op.
func (s *NullStore) Delete(ctx context.Context, key string) error {
	return nil
}
