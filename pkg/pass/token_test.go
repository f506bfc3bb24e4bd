package pass

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/domain"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "42:1", Encode(42, 1))
	assert.Equal(t, Encode(42, 1), Encode(42, 1))
	assert.NotEqual(t, Encode(4, 21), Encode(42, 1))
}

func TestDecodeRoundTrip(t *testing.T) {
	pairs := [][2]int64{{42, 1}, {0, 0}, {1, 9223372036854775807}, {123456789012345678, 7}, {-3, 5}}
	for _, p := range pairs {
		u, e, err := Decode(Encode(p[0], p[1]))
		require.NoError(t, err)
		assert.Equal(t, p[0], u)
		assert.Equal(t, p[1], e)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, token := range []string{"", "42", "42:", ":1", "a:1", "42:b", "42:1:3", "+42:1", "042:1", " 42:1", "42:1.0"} {
		_, _, err := Decode(token)
		assert.ErrorIs(t, err, domain.ErrMalformedToken, "token %q", token)
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(Encode(42, 1), 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
