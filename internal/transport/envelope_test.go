package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestUnwrap_Wrapped(t *testing.T) {
	got, err := Unwrap[item](json.RawMessage(`{"product":{"id":42,"name":"Lamp"}}`), "product")
	require.NoError(t, err)
	assert.Equal(t, item{ID: 42, Name: "Lamp"}, got)
}

func TestUnwrap_Bare(t *testing.T) {
	got, err := Unwrap[item](json.RawMessage(`{"id":42,"name":"Lamp"}`), "product")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
}

func TestUnwrap_BareArray(t *testing.T) {
	got, err := Unwrap[[]item](json.RawMessage(` [{"id":1},{"id":2}]`), "products")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUnwrap_WrappedArray(t *testing.T) {
	got, err := Unwrap[[]item](json.RawMessage(`{"products":[{"id":3}]}`), "products")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestUnwrap_Malformed(t *testing.T) {
	_, err := Unwrap[[]item](json.RawMessage(`{"products":"nope"}`), "products")
	assert.Error(t, err)
}

func TestField(t *testing.T) {
	v, ok := Field(json.RawMessage(`{"sentiments":{"positive":1}}`), "sentiments")
	require.True(t, ok)
	assert.JSONEq(t, `{"positive":1}`, string(v))

	_, ok = Field(json.RawMessage(`{"sentiments":null}`), "sentiments")
	assert.False(t, ok)

	_, ok = Field(json.RawMessage(`[1,2]`), "sentiments")
	assert.False(t, ok)

	_, ok = Field(json.RawMessage(`{"reviews":[]}`), "sentiments")
	assert.False(t, ok)
}
