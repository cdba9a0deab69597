package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	ID    uint64   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	payload := testPayload{ID: 42, Title: "hello", Tags: []string{"a", "b"}}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(payload)
			require.NoError(t, err)

			var got testPayload
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, payload, got)
		})
	}
}

func TestMustMarshal_DefaultsNil(t *testing.T) {
	b := MustMarshal(nil, 7)
	assert.Equal(t, []byte("7"), b)
}
