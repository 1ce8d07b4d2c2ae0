package upstream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload([]byte(`{"a":{"b":"12.5","c":7},"list":[1,2]}`))
	require.NoError(t, err)

	f, ok := Float(p.Get("a", "b"))
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	i, ok := Int(p.Get("a", "c"))
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	assert.Nil(t, p.Get("a", "missing", "deeper"))
	assert.Nil(t, p.Get("list", "0"))
	assert.Len(t, List(p.Get("list")), 2)
}

func TestDecodePayload_Array(t *testing.T) {
	p, err := DecodePayload([]byte(`[1,2,3]`))
	require.NoError(t, err)
	assert.Len(t, List(p.Get("items")), 3)
}

func TestDecodePayload_Invalid(t *testing.T) {
	for _, body := range []string{"", "not json", `"str"`} {
		_, err := DecodePayload([]byte(body))
		assert.True(t, errors.Is(err, ErrInvalidJSON), "body %q", body)
	}
}

func TestConversions_Tolerant(t *testing.T) {
	_, ok := Float("abc")
	assert.False(t, ok)
	_, ok = Float(nil)
	assert.False(t, ok)
	_, ok = Int(map[string]any{})
	assert.False(t, ok)
	_, ok = Int("18446744073709551615")
	assert.False(t, ok, "out of range must not convert")
	_, ok = String("")
	assert.False(t, ok)
}
