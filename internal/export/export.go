// Package export converts a baked lightmap into an image and writes it as
// PNG or WebP.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/Faultbox/tablecraft/internal/engine/lightmap"
)

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
)

// ParseFormat accepts "png" or "webp" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, WebP:
		return f, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Image converts the accumulation buffer to a black shadow image whose alpha
// is (1 - light) * opacity. Rows are flipped so the image top is v = 1.
func Image(acc *lightmap.Accumulator, opacity float32) *image.NRGBA {
	size := acc.Size
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		srcRow := (size - 1 - y) * size // Flip Y
		off := y * img.Stride
		for x := range size {
			light := min(max(acc.Data[srcRow+x], 0), 1)
			img.Pix[off+x*4+3] = uint8((1-light)*opacity*255 + 0.5)
		}
	}
	return img
}

// Resize scales img to size x size with Catmull-Rom filtering. It returns img
// itself when it already has that size.
func Resize(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if size <= 0 || (b.Dx() == size && b.Dy() == size) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	default:
		return fmt.Errorf("unknown image format %q", f)
	}
	return nil
}

// WriteFile encodes img to dir/name plus the format extension, creating dir
// if needed, and returns the written path.
func WriteFile(dir, name string, img image.Image, f Format) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := filepath.Join(dir, name+f.Ext())

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
