package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadkhan011/calcrew-frontend/pkg/view"
)

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec([]byte("0123456789abcdef0123456789abcdef"), "flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashError, Message: "Your session expired."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashError, f.Kind)
	assert.Equal(t, "Your session expired.", f.Message)
}

func TestCodecRejects(t *testing.T) {
	c := NewCodec([]byte("0123456789abcdef0123456789abcdef"), "flash", false)
	good, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "hi"})
	require.NoError(t, err)
	blank, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "  "})
	require.NoError(t, err)

	for name, v := range map[string]string{
		"no dot":         "abc",
		"bad signature":  good + "A",
		"blank message":  blank,
		"extra segment":  good + ".x",
		"payload edited": "e30" + good[3:],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(v)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
	assert.Equal(t, 120, c.CookieMaxAge())
}
