package types

import "github.com/cockroachdb/errors"

var (
	ErrInvalidStoreType = errors.New("invalid store type")
	ErrInvalidKey       = errors.New("invalid key")
	ErrInvalidTable     = errors.New("invalid table name")
)
