// Package canvas draws the image quad onto the ebiten screen.
package canvas

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Filter selects texture sampling.
type Filter int

const (
	// FilterAuto samples nearest when magnifying and linear when minifying.
	FilterAuto Filter = iota
	FilterNearest
	FilterLinear
)

// ParseFilter parses "auto", "nearest" or "linear". Empty means auto.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "auto":
		return FilterAuto, nil
	case "nearest":
		return FilterNearest, nil
	case "linear":
		return FilterLinear, nil
	}
	return FilterAuto, fmt.Errorf("unknown filter %q", s)
}

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	}
	return "auto"
}

// ScreenMatrix maps image pixels (origin top-left, Y down) to screen pixels.
// frame is projection*transform and acts on the unit quad spanning [-1, 1]
// with Y up; the result lands in normalized device coordinates, which are
// then stretched over a screen of the given size.
func ScreenMatrix(frame mgl32.Mat3, extent, screen image.Point) mgl32.Mat3 {
	fromImage := mgl32.Translate2D(-1, 1).
		Mul3(mgl32.Scale2D(2/float32(extent.X), -2/float32(extent.Y)))
	toScreen := mgl32.Translate2D(float32(screen.X)/2, float32(screen.Y)/2).
		Mul3(mgl32.Scale2D(float32(screen.X)/2, -float32(screen.Y)/2))
	return toScreen.Mul3(frame).Mul3(fromImage)
}

// GeoM converts the affine part of m into an ebiten.GeoM.
func GeoM(m mgl32.Mat3) ebiten.GeoM {
	var g ebiten.GeoM
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			g.SetElement(i, j, float64(m.At(i, j)))
		}
	}
	return g
}

// DrawQuad draws tex with the given frame matrix.
func DrawQuad(screen, tex *ebiten.Image, frame mgl32.Mat3, filter Filter) {
	if tex == nil {
		return
	}
	m := ScreenMatrix(frame, tex.Bounds().Size(), screen.Bounds().Size())
	op := &ebiten.DrawImageOptions{}
	op.GeoM = GeoM(m)
	op.Filter = samplerFor(filter, m.At(0, 0))
	screen.DrawImage(tex, op)
}

func samplerFor(f Filter, pixelScale float32) ebiten.Filter {
	switch f {
	case FilterNearest:
		return ebiten.FilterNearest
	case FilterLinear:
		return ebiten.FilterLinear
	}
	if pixelScale >= 1 {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}
