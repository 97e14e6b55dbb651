// Package metadata persists small client-side values, such as the bearer
// token, in the local SQLite database.
package metadata

import (
	"context"
)

// Repository stores byte values by key. Get returns (nil, nil) for a missing
// key, and Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
