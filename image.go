package lsbmark

import (
	"image"

	"golang.org/x/image/draw"
)

// EmbedImage hides message in a copy of src with default options.
func EmbedImage(src image.Image, message string) (*image.NRGBA, error) {
	s, _ := New()
	return s.EmbedImage(src, message)
}

// ExtractImage recovers a message from src with default options.
func ExtractImage(src image.Image) (string, error) {
	s, _ := New()
	return s.ExtractImage(src)
}

// ToNRGBA copies src into a new non-premultiplied RGBA8 image anchored at
// the origin, whose Pix is a tightly packed pixel buffer.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		// draw premultiplies, which would lose the color of translucent pixels
		for y := range b.Dy() {
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], n.Pix[y*n.Stride:])
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// EmbedImage hides message in a copy of src. src is not modified.
// The result must be stored losslessly (PNG, BMP, TIFF) to keep the message.
func (s *Steg) EmbedImage(src image.Image, message string) (*image.NRGBA, error) {
	dst := ToNRGBA(src)
	if err := s.Embed(dst.Pix, message); err != nil {
		return nil, err
	}
	return dst, nil
}

// ExtractImage recovers a message hidden by EmbedImage.
func (s *Steg) ExtractImage(src image.Image) (string, error) {
	return s.Extract(pixels(src))
}

// pixels returns src's RGBA8 buffer, reusing Pix when src already has the
// expected layout.
func pixels(src image.Image) []byte {
	if n, ok := src.(*image.NRGBA); ok && n.Stride == 4*n.Rect.Dx() {
		return n.Pix[:4*n.Rect.Dx()*n.Rect.Dy()]
	}
	return ToNRGBA(src).Pix
}
