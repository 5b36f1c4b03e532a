// File: database/kv/interface.go
package kv

import "context"

// Store is a flat, persistent string key-value store. It stands in for the
// browser storage earlier clients kept their board in.
type Store interface {
	// Get returns the value of key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes keys; absent keys are ignored.
	Remove(ctx context.Context, keys ...string) error
}
