package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"image-player/config"
	"image-player/engine"
	"image-player/input"
	"image-player/player"
	"image-player/ui"
)

// Game is the ebiten host. It owns the window, turns polled input into
// events for the player and redraws only when something changed.
type Game struct {
	cfg    config.Config
	path   string
	theme  *ui.Theme
	player player.Player
	poller *input.Poller
	status ui.StatusPanel
	watch  *Watcher

	window      image.Point
	framebuffer image.Point
	resize      *input.ResizeEvent

	controlsVisible     bool
	showHUD             bool
	dirty               bool
	screenshotRequested bool
}

// NewGame opens path and runs the configured script against it.
func NewGame(cfg config.Config, path string) (*Game, error) {
	theme := ui.LoadTheme(cfg.Overlay.Font, cfg.Overlay.FontSize)
	opts, err := player.OptionsFromConfig(cfg, theme)
	if err != nil {
		return nil, err
	}
	opts.Size = initialResize(cfg.Window, deviceScale())
	p, err := player.ForFile(path, opts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:             cfg,
		path:            path,
		theme:           theme,
		player:          p,
		poller:          input.NewPoller(),
		window:          opts.Size.WindowSize,
		framebuffer:     opts.Size.FramebufferSize,
		controlsVisible: cfg.Overlay.Visible,
		dirty:           true,
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	if cfg.Watch {
		g.watch, err = NewWatcher(path)
		if err != nil {
			return nil, fmt.Errorf("watching %s: %w", path, err)
		}
	}
	g.runScript()
	return g, nil
}

// Close stops the file watcher.
func (g *Game) Close() error {
	if g.watch == nil {
		return nil
	}
	return g.watch.Close()
}

func (g *Game) load() error {
	loader, ok := g.player.(player.FileLoader)
	if !ok {
		return fmt.Errorf("%s: %w", g.path, player.ErrUnsupported)
	}
	if err := loader.LoadFile(g.path); err != nil {
		return err
	}
	slog.Info("loaded", "path", g.path)
	return nil
}

func (g *Game) reload() {
	if err := g.load(); err != nil {
		slog.Error("reload failed", "path", g.path, "err", err)
		g.status.SetError(err.Error())
		g.dirty = true
		return
	}
	g.status.Clear()
	g.dirty = true
	g.runScript()
}

func (g *Game) runScript() {
	if g.cfg.Script == "" {
		return
	}
	viewer, ok := g.player.(engine.Viewer)
	if !ok {
		return
	}
	src, err := os.ReadFile(g.cfg.Script)
	if err == nil {
		err = engine.Run(filepath.Base(g.cfg.Script), string(src), viewer, float32(g.cfg.View.ZoomStep))
	}
	if err != nil {
		slog.Error("script failed", "script", g.cfg.Script, "err", err)
		g.status.SetError(err.Error())
	} else {
		g.status.Clear()
	}
	g.dirty = true
}

func (g *Game) Update() error {
	if g.resize != nil {
		g.player.HandleInput(*g.resize)
		g.resize = nil
	}

	if g.watch != nil {
		select {
		case <-g.watch.Changes():
			g.reload()
		default:
		}
	}

	for _, ev := range g.poller.Poll(g.window, g.framebuffer) {
		g.player.HandleInput(ev)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.controlsVisible = !g.controlsVisible
		g.player.SetControlsVisible(g.controlsVisible)
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.showHUD = !g.showHUD
		g.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.runScript()
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		g.screenshotRequested = true
	}
	return nil
}

// Draw repaints only when the player or the host asked for it; the screen
// is not cleared between frames.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty || g.player.NeedsRedraw() {
		g.player.Draw(screen)
		g.status.Draw(screen, g.theme)
		if g.showHUD {
			g.drawHUD(screen)
		}
		g.dirty = false
	}

	if g.screenshotRequested {
		g.screenshotRequested = false
		name := screenshotPath(g.cfg.Screenshot.Dir, g.cfg.Screenshot.Format, time.Now())
		if err := saveScreenshot(screen, name, g.cfg.Screenshot.Format); err != nil {
			slog.Error("screenshot failed", "err", err)
		} else {
			slog.Info("screenshot saved", "path", name)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	viewer, ok := g.player.(engine.Viewer)
	if !ok {
		return
	}
	t := viewer.Transform()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"Scale: (%.2f, %.2f)\n"+
			"Translation: (%.1f, %.1f)\n"+
			"Window: %v Framebuffer: %v",
		t.Scale().X(), t.Scale().Y(),
		t.Translation().X(), t.Translation().Y(),
		g.window, g.framebuffer,
	), 10, screen.Bounds().Dy()-60)
}

// Layout renders at device resolution. A size change is queued and
// delivered to the player as one resize event at the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := deviceScale()
	window := image.Pt(outsideWidth, outsideHeight)
	fb := framebufferSize(window, scale)
	if window != g.window || fb != g.framebuffer {
		g.window, g.framebuffer = window, fb
		g.resize = &input.ResizeEvent{WindowSize: window, FramebufferSize: fb, DPIScale: scale}
	}
	return fb.X, fb.Y
}

func framebufferSize(window image.Point, scale float64) image.Point {
	if scale <= 0 {
		scale = 1
	}
	return image.Pt(max(1, int(float64(window.X)*scale)), max(1, int(float64(window.Y)*scale)))
}

// initialResize is the layout the player starts with, before the first
// Layout call reports the real window.
func initialResize(w config.WindowConfig, scale float64) input.ResizeEvent {
	window := image.Pt(w.Width, w.Height)
	return input.ResizeEvent{
		WindowSize:      window,
		FramebufferSize: framebufferSize(window, scale),
		DPIScale:        scale,
	}
}

func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}
