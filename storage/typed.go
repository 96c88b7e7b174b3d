package storage

import (
	"context"
	"math"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
)

// GetAs reads key through c and converts the decoded value into T.
// A value that can't be converted is treated like a missing one and
// defaultValue is returned.
func GetAs[T any](ctx context.Context, c *Core, key string, defaultValue T) (T, error) {
	v, err := c.GetItem(ctx, key)
	if err != nil {
		return defaultValue, err
	}
	if v == nil {
		return defaultValue, nil
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &out,
		TagName:    "json",
		DecodeHook: mapstructure.DecodeHookFuncType(exactNumberHook),
	})
	if err != nil {
		return defaultValue, err
	}
	if err := dec.Decode(v); err != nil {
		c.opts.logger.Debug("failed to convert item", "key", key, "err", err)
		return defaultValue, nil
	}
	return out, nil
}

// exactNumberHook refuses float to number conversions that would truncate
// or overflow, mapstructure alone converts them silently.
func exactNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 && from.Kind() != reflect.Float32 {
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	target := reflect.New(to).Elem()
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || target.OverflowInt(int64(f)) {
			return nil, errors.Newf("%v does not fit in %s", f, to)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || target.OverflowUint(uint64(f)) {
			return nil, errors.Newf("%v does not fit in %s", f, to)
		}
	case reflect.Float32:
		if target.OverflowFloat(f) {
			return nil, errors.Newf("%v does not fit in %s", f, to)
		}
	}
	return data, nil
}
