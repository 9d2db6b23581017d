package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PixelGridMinScale is the on-screen size of one image pixel from which the
// pixel grid is drawn.
const PixelGridMinScale = 12

// PixelGridLines returns the screen x and y positions of the image pixel
// boundaries visible on a screen of the given size. Nothing is returned
// while an image pixel is smaller than PixelGridMinScale screen pixels.
func PixelGridLines(screenM mgl32.Mat3, extent, screen image.Point) (xs, ys []float32) {
	sx, sy := screenM.At(0, 0), screenM.At(1, 1)
	if sx < PixelGridMinScale || sy < PixelGridMinScale {
		return nil, nil
	}
	tx, ty := screenM.At(0, 2), screenM.At(1, 2)

	// Image-space range of the visible screen, clamped to the image.
	first := func(t, s float32) int { return max(0, int(math.Ceil(float64(-t/s)))) }
	last := func(t, s float32, size, limit int) int {
		return min(limit, int(math.Floor(float64((float32(size)-t)/s))))
	}

	for u := first(tx, sx); u <= last(tx, sx, screen.X, extent.X); u++ {
		xs = append(xs, float32(u)*sx+tx)
	}
	for v := first(ty, sy); v <= last(ty, sy, screen.Y, extent.Y); v++ {
		ys = append(ys, float32(v)*sy+ty)
	}
	return xs, ys
}

// DrawPixelGrid strokes the image pixel boundaries over the quad when the
// view is zoomed in far enough.
func DrawPixelGrid(screen *ebiten.Image, frame mgl32.Mat3, extent image.Point, clr color.Color) {
	size := screen.Bounds().Size()
	m := ScreenMatrix(frame, extent, size)
	xs, ys := PixelGridLines(m, extent, size)
	if len(xs) == 0 || len(ys) == 0 {
		return
	}

	top := max(0, m.At(1, 2))
	bottom := min(float32(size.Y), float32(extent.Y)*m.At(1, 1)+m.At(1, 2))
	left := max(0, m.At(0, 2))
	right := min(float32(size.X), float32(extent.X)*m.At(0, 0)+m.At(0, 2))

	for _, x := range xs {
		vector.StrokeLine(screen, x, top, x, bottom, 1, clr, false)
	}
	for _, y := range ys {
		vector.StrokeLine(screen, left, y, right, y, 1, clr, false)
	}
}
