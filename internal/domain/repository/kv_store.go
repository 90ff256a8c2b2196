package repository

import "context"

// KeyValueStore is the durable string-keyed store every collection lives in.
// Values are opaque JSON documents. Get reports absence with ok=false rather
// than an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
