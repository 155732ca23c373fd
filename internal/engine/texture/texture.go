// Package texture provides texture descriptions and image decoding for surface materials.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// ErrNotFound is returned when a texture name is not in the catalog.
var ErrNotFound = errors.New("texture not found")

// Spec describes one catalog entry.
type Spec struct {
	Name       string  `yaml:"name"`
	Path       string  `yaml:"path"`
	Repeat     bool    `yaml:"repeat"`
	RepeatSet  float32 `yaml:"repeat_set"`
	Anisotropy bool    `yaml:"anisotropy"`
	NonSRGB    bool    `yaml:"non_srgb"` // data textures such as normal maps
}

// Texture is a decoded catalog entry.
type Texture struct {
	Spec
	Image image.Image
}

// Width returns the image width, or 0 if no image is attached.
func (t *Texture) Width() int {
	if t == nil || t.Image == nil {
		return 0
	}
	return t.Image.Bounds().Dx()
}

// Source opens texture files by catalog path.
type Source interface {
	Open(path string) (io.ReadCloser, error)
}

// DirSource reads textures relative to a directory.
type DirSource string

// Open opens path under the directory.
func (d DirSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), path))
}

// MapSource serves textures from memory, keyed by path.
type MapSource map[string][]byte

// Open returns a reader over the stored bytes.
func (s MapSource) Open(path string) (io.ReadCloser, error) {
	data, ok := s[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Decode decodes PNG, JPEG, WebP or TGA data, chosen by file extension.
// TGA has no magic number, so formats are never sniffed.
func Decode(r io.Reader, path string) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	case ".webp":
		img, err = webp.Decode(r)
	case ".tga":
		img, err = tga.Decode(r)
	default:
		return nil, fmt.Errorf("decoding %s: unsupported texture format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
