// Package view holds the geometry of the image view: window to framebuffer
// mapping, the orthographic projection and the accumulated pan/zoom
// transform applied to the image quad.
package view

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Mapper converts window-space input (origin top-left, Y down) into
// framebuffer-centered coordinates with Y going up.
//
// Both sizes must be the current ones; a Mapper is meant to be built fresh
// for every event rather than cached.
type Mapper struct {
	Window      image.Point
	Framebuffer image.Point
}

// Unproject maps a window position to a framebuffer-relative position with
// the origin at the center.
func (m Mapper) Unproject(windowPos image.Point) mgl32.Vec2 {
	nx := float32(windowPos.X)/float32(m.Window.X) - 0.5
	ny := float32(windowPos.Y)/float32(m.Window.Y) - 0.5
	return mgl32.Vec2{
		nx * float32(m.Framebuffer.X),
		-ny * float32(m.Framebuffer.Y),
	}
}

// UnprojectRelative maps a window-space delta into framebuffer space. There
// is no origin shift, only scaling and the Y flip.
func (m Mapper) UnprojectRelative(delta image.Point) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(delta.X) * float32(m.Framebuffer.X) / float32(m.Window.X),
		-float32(delta.Y) * float32(m.Framebuffer.Y) / float32(m.Window.Y),
	}
}
