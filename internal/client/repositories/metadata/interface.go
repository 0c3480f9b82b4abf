// Package metadata is the local key-value store of the console. It keeps the
// session token, the authenticated flag and the cached user profile.
package metadata

import (
	"context"
)

// Repository is a flat key-value store. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
