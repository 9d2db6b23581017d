package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "golang.org/x/image/webp"

	"image-player/config"
)

func TestFramebufferSize(t *testing.T) {
	assert.Equal(t, image.Pt(800, 600), framebufferSize(image.Pt(800, 600), 1))
	assert.Equal(t, image.Pt(1600, 1200), framebufferSize(image.Pt(800, 600), 2))
	assert.Equal(t, image.Pt(800, 600), framebufferSize(image.Pt(800, 600), 0))
	assert.Equal(t, image.Pt(1, 1), framebufferSize(image.Pt(0, 0), 2))
}

func TestInitialResize(t *testing.T) {
	ev := initialResize(config.WindowConfig{Width: 1024, Height: 768}, 2)
	assert.Equal(t, image.Pt(1024, 768), ev.WindowSize)
	assert.Equal(t, image.Pt(2048, 1536), ev.FramebufferSize)
	assert.Equal(t, 2.0, ev.DPIScale)
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, applyFlags(&cfg, "view.star", true, "reset"))
	assert.Equal(t, "view.star", cfg.Script)
	assert.True(t, cfg.Watch)
	assert.Equal(t, config.ReloadReset, cfg.View.Reload)

	cfg = config.Default()
	require.NoError(t, applyFlags(&cfg, "", false, ""))
	assert.Equal(t, config.Default(), cfg)

	assert.ErrorIs(t, applyFlags(&cfg, "", false, "never"), config.ErrInvalidPolicy)
}

func TestSaveScreenshot(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for x := 0; x < 16; x++ {
		img.Set(x, 4, color.RGBA{255, 0, 0, 255})
	}
	dir := t.TempDir()

	for _, format := range []string{"png", "webp"} {
		t.Run(format, func(t *testing.T) {
			path := screenshotPath(dir, format, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))
			assert.Equal(t, filepath.Join(dir, "screenshot-20240301-123000."+format), path)
			require.NoError(t, saveScreenshot(img, path, format))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			cfg, got, err := image.DecodeConfig(f)
			require.NoError(t, err)
			assert.Equal(t, format, got)
			assert.Equal(t, 16, cfg.Width)
			assert.Equal(t, 8, cfg.Height)
		})
	}

	path := filepath.Join(dir, "shot.gif")
	assert.Error(t, saveScreenshot(img, path, "gif"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.png"), []byte("x"), 0o644))
	select {
	case <-w.Changes():
		t.Fatal("change reported for a different file")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
