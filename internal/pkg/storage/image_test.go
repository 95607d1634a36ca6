package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf
}

func decodeJPEG(t *testing.T, r io.Reader) image.Image {
	t.Helper()
	img, err := jpeg.Decode(r)
	require.NoError(t, err)
	return img
}

func TestResizeToFit(t *testing.T) {
	p := NewImageProcessor()

	t.Run("scales down preserving aspect ratio", func(t *testing.T) {
		out, err := p.ResizeToFit(pngImage(t, 40, 20), 10, 10)
		require.NoError(t, err)

		img := decodeJPEG(t, out)
		assert.Equal(t, 10, img.Bounds().Dx())
		assert.Equal(t, 5, img.Bounds().Dy())
	})

	t.Run("small images keep their dimensions", func(t *testing.T) {
		out, err := p.ResizeToFit(pngImage(t, 8, 4), 10, 10)
		require.NoError(t, err)

		img := decodeJPEG(t, out)
		assert.Equal(t, 8, img.Bounds().Dx())
		assert.Equal(t, 4, img.Bounds().Dy())
	})

	t.Run("rejects non-image input", func(t *testing.T) {
		_, err := p.ResizeToFit(strings.NewReader("definitely not an image"), 10, 10)
		assert.Error(t, err)
	})
}

func TestGenerateThumbnail(t *testing.T) {
	p := NewImageProcessor()

	out, err := p.GenerateThumbnail(pngImage(t, 400, 300), 200, 200)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}
