// Package input turns host pointer, wheel and key events into view changes.
package input

import (
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"image-player/view"
)

// Overlay is the UI layer that gets the first look at pointer events.
// Each method returns true when the event hit a widget.
type Overlay interface {
	HandlePress(pos image.Point) bool
	HandleRelease(pos image.Point) bool
	HandleMove(pos image.Point) bool
}

// View defines the callbacks the controller needs from the player.
type View interface {
	// Mapper returns a mapper built from the current sizes.
	Mapper() view.Mapper
	// Overlay returns the current overlay. It may change after Relayout.
	Overlay() Overlay
	// Relayout recomputes the projection and rebuilds the overlay.
	Relayout(ev ResizeEvent)
	// ResetView, Pan and ZoomAt report false when nothing changed, for
	// example when no image is loaded.
	ResetView() bool
	Pan(delta mgl32.Vec2) bool
	ZoomAt(anchor mgl32.Vec2, factor float32) bool
}

// Controller applies events to a View. Dragging is not tracked as a mode:
// every move event checks the live button mask.
type Controller struct {
	view     View
	zoomStep float32
	redraw   bool
}

// NewController returns a controller driving v. A zoomStep of 0 selects
// view.DefaultZoomStep.
func NewController(v View, zoomStep float32) *Controller {
	if zoomStep == 0 {
		zoomStep = view.DefaultZoomStep
	}
	return &Controller{view: v, zoomStep: zoomStep, redraw: true}
}

// Handle processes one event synchronously and reports whether it was
// accepted.
func (c *Controller) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case ResizeEvent:
		c.view.Relayout(ev)
		c.redraw = true
		return true
	case KeyEvent:
		return c.handleKey(ev)
	case PressEvent:
		return c.handleOverlay(c.overlay().HandlePress(ev.Position))
	case ReleaseEvent:
		return c.handleOverlay(c.overlay().HandleRelease(ev.Position))
	case MoveEvent:
		return c.handleMove(ev)
	case ScrollEvent:
		return c.handleScroll(ev)
	}
	return false
}

// NeedsRedraw reports whether a change happened since the last ClearRedraw.
func (c *Controller) NeedsRedraw() bool {
	return c.redraw
}

// RequestRedraw marks the view dirty.
func (c *Controller) RequestRedraw() {
	c.redraw = true
}

// ClearRedraw is called by the renderer after drawing.
func (c *Controller) ClearRedraw() {
	c.redraw = false
}

func (c *Controller) overlay() Overlay {
	if o := c.view.Overlay(); o != nil {
		return o
	}
	return noOverlay{}
}

func (c *Controller) handleOverlay(consumed bool) bool {
	if consumed {
		c.redraw = true
	}
	return consumed
}

func (c *Controller) handleKey(ev KeyEvent) bool {
	if ev.Key != KeyResetView {
		return false
	}
	if !c.view.ResetView() {
		slog.Debug("reset view ignored, no image loaded")
		return false
	}
	c.redraw = true
	return true
}

func (c *Controller) handleMove(ev MoveEvent) bool {
	if c.overlay().HandleMove(ev.Position) {
		c.redraw = true
		return true
	}
	if !ev.Buttons.Has(ButtonLeft) {
		return false
	}
	if !c.view.Pan(c.view.Mapper().UnprojectRelative(ev.Relative)) {
		return false
	}
	c.redraw = true
	return true
}

func (c *Controller) handleScroll(ev ScrollEvent) bool {
	if ev.Offset.Y() == 0 {
		return false
	}
	factor := view.ZoomFactor(c.zoomStep, ev.Offset.Y())
	if factor <= 0 {
		slog.Debug("zoom factor out of range", "offset", ev.Offset.Y(), "factor", factor)
		return false
	}
	if !c.view.ZoomAt(c.view.Mapper().Unproject(ev.Position), factor) {
		return false
	}
	c.redraw = true
	return true
}

type noOverlay struct{}

func (noOverlay) HandlePress(image.Point) bool   { return false }
func (noOverlay) HandleRelease(image.Point) bool { return false }
func (noOverlay) HandleMove(image.Point) bool    { return false }
