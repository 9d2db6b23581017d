package view

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultZoomStep is the relative zoom per wheel tick.
const DefaultZoomStep = 0.1

// Transform is the pan/zoom state of the image quad. The quad spans
// [-1, 1] on both axes, so a scale of extent/2 shows the image at 1:1.
//
// The linear part only ever holds a positive diagonal scale; every update is
// composed on the left of the current matrix.
type Transform struct {
	matrix mgl32.Mat3
}

// NewTransform returns an identity transform, the state before any image
// was shown.
func NewTransform() Transform {
	return Transform{matrix: mgl32.Ident3()}
}

// Reset centers the quad and scales it to half the image extent.
func (t *Transform) Reset(extent image.Point) {
	t.matrix = mgl32.Scale2D(float32(extent.X)/2, float32(extent.Y)/2)
}

// Pan moves the quad by delta, given in framebuffer space.
func (t *Transform) Pan(delta mgl32.Vec2) {
	t.matrix = mgl32.Translate2D(delta.X(), delta.Y()).Mul3(t.Matrix())
}

// ZoomAt scales the view by factor while keeping the framebuffer point
// anchor fixed on screen. Factor must be positive.
func (t *Transform) ZoomAt(anchor mgl32.Vec2, factor float32) {
	t.matrix = mgl32.Translate2D(anchor.X(), anchor.Y()).
		Mul3(mgl32.Scale2D(factor, factor)).
		Mul3(mgl32.Translate2D(-anchor.X(), -anchor.Y())).
		Mul3(t.Matrix())
}

// Matrix returns the current transform.
func (t Transform) Matrix() mgl32.Mat3 {
	if t.matrix == (mgl32.Mat3{}) {
		return mgl32.Ident3()
	}
	return t.matrix
}

// IsIdentity reports whether the transform was never set.
func (t Transform) IsIdentity() bool {
	return t.Matrix() == mgl32.Ident3()
}

// Scale returns the diagonal of the linear part.
func (t Transform) Scale() mgl32.Vec2 {
	m := t.Matrix()
	return mgl32.Vec2{m.At(0, 0), m.At(1, 1)}
}

// Translation returns the translation part.
func (t Transform) Translation() mgl32.Vec2 {
	m := t.Matrix()
	return mgl32.Vec2{m.At(0, 2), m.At(1, 2)}
}

// ToLocal maps a framebuffer point into quad-local coordinates.
func (t Transform) ToLocal(p mgl32.Vec2) mgl32.Vec2 {
	return t.Matrix().Inv().Mul3x1(p.Vec3(1)).Vec2()
}

// ZoomFactor converts a vertical wheel offset into a zoom factor. Ticks
// compose by repeated ZoomAt calls, never by summing offsets.
func ZoomFactor(step, offsetY float32) float32 {
	return 1 + step*offsetY
}
