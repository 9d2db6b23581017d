package input

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Buttons is a bit mask of held pointer buttons.
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonMiddle
	ButtonRight
)

// Has reports whether all buttons in b2 are held.
func (b Buttons) Has(b2 Buttons) bool {
	return b&b2 == b2
}

// Key is the small set of keys the viewer distinguishes.
type Key int

const (
	KeyOther Key = iota
	// KeyResetView restores the default view of the loaded image.
	KeyResetView
)

// Event is one input or lifecycle event delivered by the host.
type Event interface {
	isEvent()
}

// ResizeEvent reports new window and framebuffer sizes. All values are
// positive.
type ResizeEvent struct {
	WindowSize      image.Point
	FramebufferSize image.Point
	DPIScale        float64
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key Key
}

// PressEvent is a pointer button going down at a window position.
type PressEvent struct {
	Position image.Point
	Button   Buttons
}

// ReleaseEvent is a pointer button going up at a window position.
type ReleaseEvent struct {
	Position image.Point
	Button   Buttons
}

// MoveEvent is pointer motion. Relative is the delta since the previous
// move, in window space.
type MoveEvent struct {
	Position image.Point
	Relative image.Point
	Buttons  Buttons
}

// ScrollEvent is a wheel event at a window position.
type ScrollEvent struct {
	Position image.Point
	Offset   mgl32.Vec2
}

func (ResizeEvent) isEvent()  {}
func (KeyEvent) isEvent()     {}
func (PressEvent) isEvent()   {}
func (ReleaseEvent) isEvent() {}
func (MoveEvent) isEvent()    {}
func (ScrollEvent) isEvent()  {}
