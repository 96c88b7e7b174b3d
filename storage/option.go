package storage

import (
	"log/slog"
	"os"

	"github.com/yuyang0/kvstorage/store"
	"github.com/yuyang0/kvstorage/store/memory"
)

// KeyFunc transforms a key on its way to or from the provider.
type KeyFunc func(key string) (string, error)

// SerializeFunc turns an application value into the raw form the provider keeps.
type SerializeFunc func(value any) ([]byte, error)

// DeserializeFunc turns raw provider output back into a value. raw is nil
// when the key is absent.
type DeserializeFunc func(raw []byte, defaultValue any) (any, error)

// Options is the resolved configuration of a Core.
type Options struct {
	SerializeKey KeyFunc
	// DeserializeKey is kept for symmetry with SerializeKey, no Core
	// operation reads keys back.
	DeserializeKey   KeyFunc
	SerializeValue   SerializeFunc
	DeserializeValue DeserializeFunc
	StorageProvider  store.Store

	logger *slog.Logger
}

type Option func(*Options)

func WithSerializeKey(fn KeyFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.SerializeKey = fn
		}
	}
}

func WithDeserializeKey(fn KeyFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.DeserializeKey = fn
		}
	}
}

func WithSerializeValue(fn SerializeFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.SerializeValue = fn
		}
	}
}

func WithDeserializeValue(fn DeserializeFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.DeserializeValue = fn
		}
	}
}

func WithStorageProvider(p store.Store) Option {
	return func(o *Options) {
		if p != nil {
			o.StorageProvider = p
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func defaultOptions() Options {
	return Options{
		SerializeKey:     noopKey,
		DeserializeKey:   noopKey,
		SerializeValue:   Stringify,
		DeserializeValue: parseValue,
		StorageProvider:  memory.New(),
		logger:           slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

func noopKey(key string) (string, error) {
	return Noop(key), nil
}

func parseValue(raw []byte, defaultValue any) (any, error) {
	return Parse(raw, defaultValue), nil
}
