// Package store provides the key-value primitive under the onboarding flags.
//
// The contract mirrors an on-device async storage: individual key operations
// are serialized by the backend, there are no cross-key transactions, and a
// write acknowledgement does not guarantee immediate read visibility on every
// backend. The service layer compensates with verify-after-write.
package store

import "context"

// KV is a minimal asynchronous key-value store. Implementations must be safe
// for concurrent, uncoordinated access to the same keys.
type KV interface {
	// Get returns the value for key, or sentinel.ErrNotFound when absent.
	Get(ctx context.Context, key string) (string, error)
	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error
	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
