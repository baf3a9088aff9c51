// Package store abstracts blob persistence behind a key-value interface so
// backends can be swapped without touching business logic.
package store

import "context"

// KV stores named blobs. Put overwrites the whole value; there is no
// partial update and no cross-key transaction.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
