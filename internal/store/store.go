// Package store provides the durable key/value storage behind favorites,
// theme and recent searches.
package store

import "context"

// Store is a get/set contract over raw JSON values.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
