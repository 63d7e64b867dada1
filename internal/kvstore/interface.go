package kvstore

import "context"

// KV is the named-key persistence abstraction backing the record store: one
// opaque value per name, whole-value read and write. Read returns (nil, nil)
// for a name that was never written.
type KV interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, value []byte) error
	Delete(ctx context.Context, name string) error
	Close() error
}
