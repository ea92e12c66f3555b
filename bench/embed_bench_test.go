package bench_test

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/yyyoichi/lsbmark"
)

// BenchmarkEmbed_FHD runs embed benchmarks on an FHD image for several message sizes.
func BenchmarkEmbed_FHD(b *testing.B) {
	test := []struct {
		name    string
		message string
	}{
		{name: "16B", message: strings.Repeat("x", 16)},
		{name: "1KiB", message: strings.Repeat("x", 1<<10)},
		{name: "64KiB", message: strings.Repeat("x", 64<<10)},
		{name: "full", message: strings.Repeat("x", lsbmark.MaxMessageBytes(1920*1080*4))},
	}

	img := createImage(1920, 1080)
	s, err := lsbmark.New()
	if err != nil {
		b.Fatalf("Failed to create Steg instance: %v", err)
	}

	for _, tt := range test {
		b.Run(tt.name, func(b *testing.B) {
			buf := append([]byte(nil), img.Pix...)
			b.SetBytes(int64(len(tt.message)))
			for b.Loop() {
				if err := s.Embed(buf, tt.message); err != nil {
					b.Fatalf("Failed to embed message (%s): %v", tt.name, err)
				}
			}
		})
	}
}

// BenchmarkExtract_FHD mirrors BenchmarkEmbed_FHD for extraction.
func BenchmarkExtract_FHD(b *testing.B) {
	for _, size := range []int{16, 1 << 10, 64 << 10} {
		img := createImage(1920, 1080)
		if err := lsbmark.Embed(img.Pix, strings.Repeat("x", size)); err != nil {
			b.Fatalf("Failed to embed message: %v", err)
		}
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for b.Loop() {
				if _, err := lsbmark.Extract(img.Pix); err != nil {
					b.Fatalf("Failed to extract message: %v", err)
				}
			}
		})
	}
}

// BenchmarkAnalyze_FHD measures the chi-square scan over a whole FHD image.
func BenchmarkAnalyze_FHD(b *testing.B) {
	img := createImage(1920, 1080)
	for b.Loop() {
		_ = lsbmark.Analyze(img.Pix)
	}
}

// createImage creates a widthxheight test image with gradient pattern
func createImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			// Create gradient effect to simulate realistic image data
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(((x + y) * 255) / (width + height))
			img.SetNRGBA(x, y, color.NRGBA{r, g, b, 255})
		}
	}
	return img
}
