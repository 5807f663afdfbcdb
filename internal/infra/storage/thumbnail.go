package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

// ThumbMaxDim bounds the longest edge of gallery thumbnails.
const ThumbMaxDim = 400

// WebpThumbnail decodes an uploaded image, scales it down to fit
// ThumbMaxDim and re-encodes it as lossy webp for the gallery grid.
func WebpThumbnail(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > ThumbMaxDim || h > ThumbMaxDim {
		if w >= h {
			h = h * ThumbMaxDim / w
			w = ThumbMaxDim
		} else {
			w = w * ThumbMaxDim / h
			h = ThumbMaxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return buf.Bytes(), nil
}
