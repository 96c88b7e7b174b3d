// Package keycodec provides a base58 key hook pair for providers that only
// accept a restricted key alphabet.
package keycodec

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/cockroachdb/errors"
	"github.com/yuyang0/kvstorage/types"
)

// Encode maps any key to its base58 form.
func Encode(key string) (string, error) {
	if key == "" {
		return "", errors.Wrapf(types.ErrInvalidKey, "empty key")
	}
	return base58.Encode([]byte(key)), nil
}

// Decode reverses Encode.
func Decode(key string) (string, error) {
	bs := base58.Decode(key)
	if len(bs) == 0 {
		return "", errors.Wrapf(types.ErrInvalidKey, "%q is not base58", key)
	}
	return string(bs), nil
}
