package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable square in window coordinates.
type Button struct {
	Label   string
	Rect    image.Rectangle
	OnClick func()

	hovered bool
	pressed bool
}

func (b *Button) IsMouseOver(pos image.Point) bool {
	return pos.In(b.Rect)
}

// Draw renders the button. scale converts window to framebuffer pixels.
func (b *Button) Draw(screen *ebiten.Image, theme *Theme, scale float64) {
	clr := ColorButtonBackground
	if b.hovered || b.pressed {
		clr = ColorButtonHover
	}
	r := scaleRect(b.Rect, scale)
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)

	tx := r.Min.X + (r.Dx()-theme.TextWidth(b.Label))/2
	ty := r.Min.Y + (r.Dy()-theme.LineHeight())/2
	theme.DrawText(screen, b.Label, tx, ty, ColorText)
}

func scaleRect(r image.Rectangle, scale float64) image.Rectangle {
	if scale == 1 {
		return r
	}
	return image.Rect(
		int(float64(r.Min.X)*scale), int(float64(r.Min.Y)*scale),
		int(float64(r.Max.X)*scale), int(float64(r.Max.Y)*scale),
	)
}
