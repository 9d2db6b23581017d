package view

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection is the orthographic projection for the current framebuffer.
// It scales framebuffer-centered coordinates by 2/w and 2/h so that the
// framebuffer edges land on -1 and +1.
type Projection struct {
	size   image.Point
	matrix mgl32.Mat3
}

// NewProjection returns a projection sized to framebufferSize.
func NewProjection(framebufferSize image.Point) Projection {
	var p Projection
	p.Recompute(framebufferSize)
	return p
}

// Recompute replaces the projection with one sized to framebufferSize.
// The size must be positive.
func (p *Projection) Recompute(framebufferSize image.Point) {
	p.size = framebufferSize
	p.matrix = mgl32.Scale2D(2/float32(framebufferSize.X), 2/float32(framebufferSize.Y))
}

// Matrix returns the projection matrix.
func (p Projection) Matrix() mgl32.Mat3 {
	return p.matrix
}

// Size returns the framebuffer size the projection was computed for.
func (p Projection) Size() image.Point {
	return p.size
}
