package storage

import (
	"bytes"
	"encoding/json"
)

// Noop returns its input unchanged.
func Noop[T any](v T) T {
	return v
}

// Stringify encodes v as compact JSON. HTML characters are kept as is and
// no trailing newline is written, so {"a":1} encodes to exactly `{"a":1}`.
func Stringify(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Parse decodes raw as JSON and returns the result. A missing value, a
// value that is not valid JSON and a stored JSON null all yield
// defaultValue; absent keys and null can't be told apart once they go
// through the provider.
func Parse(raw []byte, defaultValue any) any {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil && v != nil {
		return v
	}
	return defaultValue
}
