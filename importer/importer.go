// Package importer decodes image files and formats their description for
// the info label.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"unicode/utf8"

	_ "github.com/ftrvxmtrx/tga" // Register TGA decoder
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// MaxNameLength is the number of filename bytes kept in the description.
const MaxNameLength = 32

// ErrNotImage is returned for files that do not hold a decodable image.
var ErrNotImage = errors.New("not an image")

// Image is a decoded image file.
type Image struct {
	Path   string
	Format string // container format reported by the decoder, e.g. "png"
	Data   image.Image
}

// Extent returns the image size in pixels.
func (img *Image) Extent() image.Point {
	return img.Data.Bounds().Size()
}

// Describe returns the info label text for the image.
func (img *Image) Describe() string {
	return Describe(img.Path, img.Extent(), PixelFormat(img.Data))
}

// Sniff reports whether the header looks like an image and its extension.
// TGA has no magic number, so it is recognized by extension only.
func Sniff(path string, header []byte) (string, bool) {
	if kind, err := filetype.Match(header); err == nil && kind != filetype.Unknown {
		return kind.Extension, filetype.IsImage(header)
	}
	if ext := filepath.Ext(path); ext == ".tga" || ext == ".TGA" {
		return "tga", true
	}
	return "", false
}

// Open reads and decodes the image at path.
func Open(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if _, ok := Sniff(path, data); !ok {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotImage)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), errors.Join(ErrNotImage, err))
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: empty image: %w", filepath.Base(path), ErrNotImage)
	}
	return &Image{Path: path, Format: format, Data: img}, nil
}

// Describe formats "name: WxH, format", keeping at most MaxNameLength
// bytes of the file name without splitting a character.
func Describe(path string, extent image.Point, pixelFormat string) string {
	name := filepath.Base(path)
	if len(name) > MaxNameLength {
		n := MaxNameLength
		for n > 0 && !utf8.RuneStart(name[n]) {
			n--
		}
		name = name[:n]
	}
	return fmt.Sprintf("%s: %dx%d, %s", name, extent.X, extent.Y, pixelFormat)
}

// PixelFormat names the in-memory pixel layout of img.
func PixelFormat(img image.Image) string {
	switch img := img.(type) {
	case *image.Gray:
		return "R8Unorm"
	case *image.Gray16:
		return "R16Unorm"
	case *image.Alpha:
		return "A8Unorm"
	case *image.Alpha16:
		return "A16Unorm"
	case *image.RGBA:
		return "RGBA8Unorm"
	case *image.NRGBA:
		return "RGBA8Unorm (straight alpha)"
	case *image.RGBA64:
		return "RGBA16Unorm"
	case *image.NRGBA64:
		return "RGBA16Unorm (straight alpha)"
	case *image.CMYK:
		return "CMYK8Unorm"
	case *image.Paletted:
		return fmt.Sprintf("Paletted (%d colors)", len(img.Palette))
	case *image.YCbCr:
		return "YCbCr " + img.SubsampleRatio.String()
	case *image.NYCbCrA:
		return "YCbCrA " + img.SubsampleRatio.String()
	}
	return fmt.Sprintf("%T", img)
}
