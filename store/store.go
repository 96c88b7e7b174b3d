package store

import "context"

// Store is the raw provider capability the storage core is built on.
// Keys and values reach it already serialized.
type Store interface {
	Set(ctx context.Context, k string, v []byte) error
	// Get returns the value associated with the key.
	// please note that Get returns (nil, nil) if the key does not exist.
	Get(ctx context.Context, k string) ([]byte, error)
	// Remove deletes the key, removing a missing key is not an error.
	Remove(ctx context.Context, k string) error
}

// Clearer is implemented by providers that can drop every key they hold.
type Clearer interface {
	Clear(ctx context.Context) error
}
