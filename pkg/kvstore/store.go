package kvstore

import (
	"context"
)

// Store is the opaque key-value API the engine persists through. Get returns
// (nil, nil) on a miss; errors are infrastructure failures only.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
