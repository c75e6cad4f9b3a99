package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePixelPNG is a minimal valid 1x1 transparent PNG, used wherever a test
// needs any decodable image without caring about its pixel content.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNk+A8AAQUBAScY42YAAAAASUVORK5CYII="

func TestDecodeFrame_BarePNGBase64(t *testing.T) {
	frame, err := DecodeFrame(onePixelPNG, 0)
	require.NoError(t, err)
	assert.NotNil(t, frame.Image)
}

func TestDecodeFrame_DataURLPrefix(t *testing.T) {
	frame, err := DecodeFrame("data:image/png;base64,"+onePixelPNG, 0)
	require.NoError(t, err)
	assert.NotNil(t, frame.Image)
}

func TestDecodeFrame_MalformedBase64(t *testing.T) {
	_, err := DecodeFrame("not-base64-at-all!!!", 0)
	assert.Error(t, err)
}

func TestDecodeFrame_ValidBase64ButNotAnImage(t *testing.T) {
	_, err := DecodeFrame("aGVsbG8gd29ybGQ=", 0) // base64("hello world")
	assert.Error(t, err)
}

func TestDecodeFrame_NarrowerThanTargetIsNotResized(t *testing.T) {
	// The fixture is 1x1, already narrower than any positive target width,
	// so downscale is a no-op; this exercises the pass-through branch.
	frame, err := DecodeFrame(onePixelPNG, 320)
	require.NoError(t, err)
	assert.Equal(t, 1, frame.Image.Bounds().Dx())
}
