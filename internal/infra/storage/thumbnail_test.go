package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestWebpThumbnail_ScalesDownLargeImages(t *testing.T) {
	src := pngBytes(t, 1600, 800)

	out, err := WebpThumbnail(bytes.NewReader(src))
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, ThumbMaxDim, img.Bounds().Dx())
	assert.Equal(t, ThumbMaxDim/2, img.Bounds().Dy())
}

func TestWebpThumbnail_KeepsSmallImages(t *testing.T) {
	src := pngBytes(t, 120, 90)

	out, err := WebpThumbnail(bytes.NewReader(src))
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestWebpThumbnail_RejectsNonImages(t *testing.T) {
	_, err := WebpThumbnail(strings.NewReader("definitely not an image"))
	assert.Error(t, err)
}
