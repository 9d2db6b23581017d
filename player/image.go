package player

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"image-player/canvas"
	"image-player/config"
	"image-player/importer"
	"image-player/input"
	"image-player/ui"
	"image-player/view"
)

var (
	ColorBackground = color.RGBA{24, 24, 28, 255}
	ColorPixelGrid  = color.RGBA{128, 128, 128, 96}
)

// ImagePlayer shows a single still image with pan and zoom.
type ImagePlayer struct {
	opts       Options
	controller *input.Controller

	mapper     view.Mapper
	dpiScale   float64
	projection view.Projection
	transform  view.Transform

	texture *ebiten.Image
	retired []*ebiten.Image
	extent  image.Point
	loaded  bool
	info    string

	plane           *ui.Plane
	controlsVisible bool
}

var (
	_ Player        = (*ImagePlayer)(nil)
	_ FileLoader    = (*ImagePlayer)(nil)
	_ input.View    = (*ImagePlayer)(nil)
	_ input.Overlay = (*ui.Plane)(nil)
)

// NewImagePlayer returns an empty player. Until the first resize it has no
// overlay and draws nothing.
func NewImagePlayer(opts Options) *ImagePlayer {
	if opts.Reload == "" {
		opts.Reload = config.ReloadPreserve
	}
	p := &ImagePlayer{
		opts:            opts,
		transform:       view.NewTransform(),
		controlsVisible: opts.ControlsVisible,
	}
	p.controller = input.NewController(p, opts.ZoomStep)
	if opts.Size.WindowSize != (image.Point{}) {
		p.Relayout(opts.Size)
	}
	return p
}

// Load stores the extent and metadata of a new image. The view is reset
// when the reload policy asks for it, or when it was never set.
func (p *ImagePlayer) Load(extent image.Point, metadata string) {
	p.extent = extent
	p.info = metadata
	p.loaded = true
	if p.opts.Reload == config.ReloadReset || p.transform.IsIdentity() {
		p.transform.Reset(extent)
	}
	if p.plane != nil {
		p.plane.Info.Text = metadata
	}
	p.controller.RequestRedraw()
}

// LoadImage uploads img as the new texture and loads it. name is used for
// the metadata text.
func (p *ImagePlayer) LoadImage(name string, img image.Image) error {
	extent := img.Bounds().Size()
	if extent.X <= 0 || extent.Y <= 0 {
		return fmt.Errorf("%s: %w: empty image", name, importer.ErrNotImage)
	}
	if p.texture != nil {
		p.retired = append(p.retired, p.texture)
	}
	p.texture = ebiten.NewImageFromImage(img)
	p.Load(extent, importer.Describe(name, extent, importer.PixelFormat(img)))
	slog.Debug("image loaded", "name", name, "extent", extent)
	return nil
}

// LoadFile decodes the image at path and loads it.
func (p *ImagePlayer) LoadFile(path string) error {
	img, err := importer.Open(path)
	if err != nil {
		return err
	}
	return p.LoadImage(img.Path, img.Data)
}

// FrameMatrix returns projection * transform.
func (p *ImagePlayer) FrameMatrix() mgl32.Mat3 {
	return p.projection.Matrix().Mul3(p.transform.Matrix())
}

// MetadataText returns the info text of the loaded image, or "" if none.
func (p *ImagePlayer) MetadataText() string {
	return p.info
}

// Extent returns the loaded image size.
func (p *ImagePlayer) Extent() (image.Point, bool) {
	return p.extent, p.loaded
}

// Transform returns the current view transform.
func (p *ImagePlayer) Transform() view.Transform {
	return p.transform
}

// HandleInput feeds one host event to the controller.
func (p *ImagePlayer) HandleInput(ev input.Event) bool {
	return p.controller.Handle(ev)
}

func (p *ImagePlayer) NeedsRedraw() bool {
	return p.controller.NeedsRedraw()
}

// SetControlsVisible shows or hides the info label. The setting survives
// overlay rebuilds.
func (p *ImagePlayer) SetControlsVisible(visible bool) {
	p.controlsVisible = visible
	if p.plane != nil {
		p.plane.Info.Visible = visible
	}
	p.controller.RequestRedraw()
}

func (p *ImagePlayer) ControlsVisible() bool {
	return p.controlsVisible
}

// Draw clears the screen and draws the image quad and the overlay.
func (p *ImagePlayer) Draw(screen *ebiten.Image) {
	for _, tex := range p.retired {
		tex.Deallocate()
	}
	p.retired = p.retired[:0]

	screen.Fill(ColorBackground)
	if p.loaded && p.texture != nil {
		frame := p.FrameMatrix()
		canvas.DrawQuad(screen, p.texture, frame, p.opts.Filter)
		if p.opts.PixelGrid {
			canvas.DrawPixelGrid(screen, frame, p.texture.Bounds().Size(), ColorPixelGrid)
		}
	}
	if p.plane != nil {
		p.plane.Draw(screen)
	}
	p.controller.ClearRedraw()
}

// Mapper implements input.View.
func (p *ImagePlayer) Mapper() view.Mapper {
	return p.mapper
}

// Overlay implements input.View.
func (p *ImagePlayer) Overlay() input.Overlay {
	if p.plane == nil {
		return nil
	}
	return p.plane
}

// Relayout recomputes the projection and rebuilds the overlay for the new
// window size, carrying over the info text and its visibility.
func (p *ImagePlayer) Relayout(ev input.ResizeEvent) {
	p.mapper = view.Mapper{Window: ev.WindowSize, Framebuffer: ev.FramebufferSize}
	p.dpiScale = ev.DPIScale
	p.projection.Recompute(ev.FramebufferSize)

	scale := ev.DPIScale
	if ev.WindowSize.X > 0 {
		scale = float64(ev.FramebufferSize.X) / float64(ev.WindowSize.X)
	}
	p.plane = ui.NewPlane(p.opts.Theme, ev.WindowSize, scale, ui.Actions{
		ZoomIn:  func() { p.zoomStep(1) },
		ZoomOut: func() { p.zoomStep(-1) },
		Reset:   func() { p.ResetView() },
	})
	p.plane.Info.Text = p.info
	p.plane.Info.Visible = p.controlsVisible
}

// ResetView implements input.View. It reports false when no image is loaded.
func (p *ImagePlayer) ResetView() bool {
	if !p.loaded {
		return false
	}
	p.transform.Reset(p.extent)
	return true
}

// Pan implements input.View. Without an image it does nothing and reports
// false.
func (p *ImagePlayer) Pan(delta mgl32.Vec2) bool {
	if !p.loaded {
		return false
	}
	p.transform.Pan(delta)
	return true
}

// ZoomAt implements input.View. Without an image, or for a factor that is
// not positive, it does nothing and reports false.
func (p *ImagePlayer) ZoomAt(anchor mgl32.Vec2, factor float32) bool {
	if !p.loaded || factor <= 0 {
		return false
	}
	p.transform.ZoomAt(anchor, factor)
	return true
}

// zoomStep zooms one wheel tick around the framebuffer center.
func (p *ImagePlayer) zoomStep(dir float32) {
	step := p.opts.ZoomStep
	if step == 0 {
		step = view.DefaultZoomStep
	}
	p.ZoomAt(mgl32.Vec2{}, view.ZoomFactor(step, dir))
}
