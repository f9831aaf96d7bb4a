package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field returns the member key of a JSON object, or false when raw is not an
// object or the member is absent or null.
func Field(raw json.RawMessage, key string) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, false
	}
	v, ok := members[key]
	if !ok || isNull(v) {
		return nil, false
	}
	return v, true
}

// Unwrap decodes a payload the catalog API may send either wrapped as
// {key: value} or as the bare value.
func Unwrap[T any](raw json.RawMessage, key string) (T, error) {
	var out T
	payload := raw
	if inner, ok := Field(raw, key); ok {
		payload = inner
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", key, err)
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
