// Package storage wraps a raw key-value provider with key and value codecs,
// so callers read and write structured values instead of strings.
package storage

import (
	"context"

	"github.com/yuyang0/kvstorage/store"
)

// Core applies the configured codecs around a store.Store. Its options are
// fixed at construction; every call goes straight to the provider.
type Core struct {
	opts Options
}

// New builds a Core, any option left out keeps its default: identity key
// hooks, Stringify, Parse and an in-memory provider.
func New(opts ...Option) *Core {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Core{
		opts: o,
	}
}

// Options returns a copy of the resolved configuration.
func (c *Core) Options() Options {
	return c.opts
}

// SetItem stores value under key. Codec and provider errors are returned
// unchanged.
func (c *Core) SetItem(ctx context.Context, key string, value any) error {
	k, err := c.opts.SerializeKey(key)
	if err != nil {
		return err
	}
	v, err := c.opts.SerializeValue(value)
	if err != nil {
		return err
	}
	return c.opts.StorageProvider.Set(ctx, k, v)
}

// GetItem reads key and decodes it. Only the first defaultValue is used.
// With the default codec a missing, corrupt or null value returns the
// default (nil when none is given) and no error.
func (c *Core) GetItem(ctx context.Context, key string, defaultValue ...any) (any, error) {
	var def any
	if len(defaultValue) > 0 {
		def = defaultValue[0]
	}
	k, err := c.opts.SerializeKey(key)
	if err != nil {
		return nil, err
	}
	raw, err := c.opts.StorageProvider.Get(ctx, k)
	if err != nil {
		c.opts.logger.Debug("failed to get item", "key", k, "err", err)
		return nil, err
	}
	if raw == nil {
		c.opts.logger.Debug("item not found", "key", k)
	}
	return c.opts.DeserializeValue(raw, def)
}

// RemoveItem deletes key from the provider.
func (c *Core) RemoveItem(ctx context.Context, key string) error {
	k, err := c.opts.SerializeKey(key)
	if err != nil {
		return err
	}
	return c.opts.StorageProvider.Remove(ctx, k)
}

// Clear empties the provider when it implements store.Clearer and does
// nothing otherwise. args are accepted for signature compatibility and
// are not passed on.
func (c *Core) Clear(ctx context.Context, args ...any) error {
	clearer, ok := c.opts.StorageProvider.(store.Clearer)
	if !ok {
		return nil
	}
	return clearer.Clear(ctx)
}
