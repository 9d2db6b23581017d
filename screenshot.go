package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

func screenshotPath(dir, format string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("screenshot-%s.%s", now.Format("20060102-150405"), format))
}

// saveScreenshot encodes img as png or webp.
func saveScreenshot(img image.Image, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch format {
	case "webp":
		err = nativewebp.Encode(f, img, nil)
	case "png":
		err = png.Encode(f, img)
	default:
		err = fmt.Errorf("unknown screenshot format %q", format)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
