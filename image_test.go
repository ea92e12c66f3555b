package lsbmark

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gradient(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) * 255 / (w + h)),
				A: alpha,
			})
		}
	}
	return img
}

func TestEmbedImage(t *testing.T) {
	test := []struct {
		name  string
		alpha uint8
	}{
		{"opaque", 255},
		{"translucent", 128},
		{"transparent", 0},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			src := gradient(40, 30, tt.alpha)
			orig := append([]byte(nil), src.Pix...)

			marked, err := EmbedImage(src, "Test-Mark")
			assert.NoError(t, err)
			assert.Equal(t, orig, src.Pix, "source must not change")
			assert.Equal(t, src.Bounds(), marked.Bounds())

			// survive a lossless round trip
			var b bytes.Buffer
			assert.NoError(t, png.Encode(&b, marked))
			decoded, err := png.Decode(&b)
			assert.NoError(t, err)

			got, err := ExtractImage(decoded)
			assert.NoError(t, err)
			assert.Equal(t, "Test-Mark", got)
		})
	}
}

func TestEmbedImageTooSmall(t *testing.T) {
	_, err := EmbedImage(gradient(2, 2, 255), "Hi")
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestToNRGBA(t *testing.T) {
	t.Run("rgba source", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(10, 10, 14, 12))
		src.Set(10, 10, color.RGBA{1, 2, 3, 255})
		dst := ToNRGBA(src)
		assert.Equal(t, image.Rect(0, 0, 4, 2), dst.Bounds())
		assert.Equal(t, []byte{1, 2, 3, 255}, dst.Pix[:4])
		assert.Len(t, dst.Pix, 4*4*2)
	})
	t.Run("transparent colors kept", func(t *testing.T) {
		src := gradient(8, 8, 0)
		assert.Equal(t, src.Pix, ToNRGBA(src).Pix)
	})
	t.Run("sub image", func(t *testing.T) {
		src := gradient(20, 20, 255)
		sub := src.SubImage(image.Rect(5, 5, 15, 15)).(*image.NRGBA)
		marked, err := EmbedImage(sub, "sub")
		assert.NoError(t, err)
		got, err := ExtractImage(marked)
		assert.NoError(t, err)
		assert.Equal(t, "sub", got)
	})
}
