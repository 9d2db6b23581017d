package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StatusPanel shows the last host-level error in the bottom-right corner.
type StatusPanel struct {
	Error string
}

func (d *StatusPanel) SetError(msg string) {
	d.Error = msg
}

func (d *StatusPanel) Clear() {
	d.Error = ""
}

func (d *StatusPanel) Draw(screen *ebiten.Image, theme *Theme) {
	if d == nil || d.Error == "" {
		return
	}
	b := screen.Bounds()
	pw := max(300, theme.TextWidth(d.Error)+16)
	ph := theme.LineHeight() + 16
	x := b.Dx() - pw - 10
	y := b.Dy() - ph - 10
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), ColorStatusBackground, false)
	theme.DrawText(screen, d.Error, x+8, y+8, ColorStatusText)
}
