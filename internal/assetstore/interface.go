package assetstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a key with no stored payload.
var ErrNotFound = errors.New("asset not found")

// Store is a content-addressed store for binary logo payloads. Keys are
// derived from payload bytes, so identical payloads always map to the same
// key and Put is idempotent.
type Store interface {
	Put(ctx context.Context, payload []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}
