package importer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestOpenPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	src := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	src.Set(1, 1, color.NRGBA{255, 0, 0, 128})
	writePNG(t, path, src)

	img, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, image.Pt(40, 30), img.Extent())
	assert.Equal(t, "photo.png: 40x30, RGBA8Unorm (straight alpha)", img.Describe())
}

func TestOpenRejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = Open(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotImage)
}

func TestOpenRejectsCorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	// Valid PNG signature, garbage after it.
	data := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage")...)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDescribeTruncatesName(t *testing.T) {
	long := strings.Repeat("a", 40) + ".png"
	got := Describe("/some/dir/"+long, image.Pt(400, 300), "RGBA8Unorm")
	assert.Equal(t, strings.Repeat("a", 32)+": 400x300, RGBA8Unorm", got)

	// "é" spans bytes 31 and 32, so it is dropped whole.
	got = Describe(strings.Repeat("a", 31)+"é.png", image.Pt(4, 4), "RGBA8Unorm")
	assert.Equal(t, strings.Repeat("a", 31)+": 4x4, RGBA8Unorm", got)
	assert.True(t, utf8.ValidString(got))

	got = Describe("short.jpg", image.Pt(1, 2), "YCbCr")
	assert.Equal(t, "short.jpg: 1x2, YCbCr", got)
}

func TestPixelFormat(t *testing.T) {
	r := image.Rect(0, 0, 2, 2)
	tests := []struct {
		img  image.Image
		want string
	}{
		{image.NewRGBA(r), "RGBA8Unorm"},
		{image.NewGray(r), "R8Unorm"},
		{image.NewGray16(r), "R16Unorm"},
		{image.NewRGBA64(r), "RGBA16Unorm"},
		{image.NewPaletted(r, color.Palette{color.Black, color.White}), "Paletted (2 colors)"},
		{image.NewYCbCr(r, image.YCbCrSubsampleRatio420), "YCbCr " + image.YCbCrSubsampleRatio420.String()},
		{image.NewUniform(color.Black), "*image.Uniform"},
	}
	for _, tt := range tests {
		if got := PixelFormat(tt.img); got != tt.want {
			t.Errorf("PixelFormat(%T) = %q, want %q", tt.img, got, tt.want)
		}
	}
}

func TestSniff(t *testing.T) {
	ext, ok := Sniff("x.png", []byte("\x89PNG\r\n\x1a\n0000"))
	assert.True(t, ok)
	assert.Equal(t, "png", ext)

	ext, ok = Sniff("x.tga", []byte{0, 0, 10, 0})
	assert.True(t, ok)
	assert.Equal(t, "tga", ext)

	_, ok = Sniff("x.bin", []byte{1, 2, 3})
	assert.False(t, ok)
}
