// Package player holds the media players the viewer can show. Only still
// images are supported; other media are recognized and rejected.
package player

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/h2non/filetype"
	"github.com/hajimehoshi/ebiten/v2"

	"image-player/canvas"
	"image-player/config"
	"image-player/importer"
	"image-player/input"
	"image-player/ui"
)

// ErrUnsupported is returned by ForFile for media no player can show.
var ErrUnsupported = errors.New("unsupported media")

// Player is the surface the host drives every frame.
type Player interface {
	Draw(screen *ebiten.Image)
	HandleInput(ev input.Event) bool
	Load(extent image.Point, metadata string)
	SetControlsVisible(visible bool)
	NeedsRedraw() bool
}

// FileLoader is implemented by players that decode their own files.
type FileLoader interface {
	LoadFile(path string) error
}

// Options configure a new player.
type Options struct {
	// Theme is borrowed for drawing the overlay; it may be nil.
	Theme           *ui.Theme
	ZoomStep        float32
	Reload          config.ReloadPolicy
	Filter          canvas.Filter
	PixelGrid       bool
	ControlsVisible bool
	// Size, when set, lays the player out at construction.
	Size input.ResizeEvent
}

// OptionsFromConfig builds player options from the loaded settings.
func OptionsFromConfig(cfg config.Config, theme *ui.Theme) (Options, error) {
	filter, err := canvas.ParseFilter(cfg.View.Filter)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Theme:           theme,
		ZoomStep:        float32(cfg.View.ZoomStep),
		Reload:          cfg.View.Reload,
		Filter:          filter,
		PixelGrid:       cfg.View.PixelGrid,
		ControlsVisible: cfg.Overlay.Visible,
	}, nil
}

// sniffLen covers every magic number filetype checks.
const sniffLen = 262

// ForFile returns a player for the media at path.
func ForFile(path string, opts Options) (Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return forHeader(path, header[:n], opts)
}

func forHeader(path string, header []byte, opts Options) (Player, error) {
	if _, ok := importer.Sniff(path, header); ok {
		return NewImagePlayer(opts), nil
	}
	kind, _ := filetype.Match(header)
	switch {
	case filetype.IsVideo(header), filetype.IsAudio(header):
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnsupported, kind.MIME.Value)
	case kind == filetype.Unknown:
		return nil, fmt.Errorf("%s: %w: unknown file type", path, ErrUnsupported)
	}
	return nil, fmt.Errorf("%s: %w: %s", path, ErrUnsupported, kind.MIME.Value)
}
