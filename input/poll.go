package input

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var pointerButtons = []struct {
	ebiten ebiten.MouseButton
	mask   Buttons
}{
	{ebiten.MouseButtonLeft, ButtonLeft},
	{ebiten.MouseButtonMiddle, ButtonMiddle},
	{ebiten.MouseButtonRight, ButtonRight},
}

// Poller converts ebiten's polled input state into discrete events.
type Poller struct {
	lastPos   image.Point
	havePos   bool
	resetKeys []ebiten.Key
}

// NewPoller returns a poller that reports resetKeys as KeyResetView.
func NewPoller(resetKeys ...ebiten.Key) *Poller {
	if len(resetKeys) == 0 {
		resetKeys = []ebiten.Key{ebiten.KeyDigit0, ebiten.KeyNumpad0}
	}
	return &Poller{resetKeys: resetKeys}
}

// Poll gathers this frame's events. The cursor position reported by ebiten
// is in framebuffer pixels and is scaled back into window space.
func (p *Poller) Poll(window, framebuffer image.Point) []Event {
	var events []Event

	for _, k := range p.resetKeys {
		if inpututil.IsKeyJustPressed(k) {
			events = append(events, KeyEvent{Key: KeyResetView})
			break
		}
	}

	cx, cy := ebiten.CursorPosition()
	pos := toWindow(image.Pt(cx, cy), window, framebuffer)

	var held Buttons
	for _, b := range pointerButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			events = append(events, PressEvent{Position: pos, Button: b.mask})
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			events = append(events, ReleaseEvent{Position: pos, Button: b.mask})
		}
		if ebiten.IsMouseButtonPressed(b.ebiten) {
			held |= b.mask
		}
	}

	if p.havePos && pos != p.lastPos {
		events = append(events, MoveEvent{
			Position: pos,
			Relative: pos.Sub(p.lastPos),
			Buttons:  held,
		})
	}
	p.lastPos, p.havePos = pos, true

	// ebiten sums the wheel over a frame; split it back into ticks so each
	// one zooms on its own.
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		ticks := wheelTicks(wy)
		if len(ticks) == 0 {
			ticks = []float64{0}
		}
		for i, dy := range ticks {
			off := mgl32.Vec2{0, float32(dy)}
			if i == 0 {
				off[0] = float32(wx)
			}
			events = append(events, ScrollEvent{Position: pos, Offset: off})
		}
	}
	return events
}

// wheelTicks splits a summed wheel offset into whole ticks of magnitude 1
// followed by the fractional remainder, all with the sign of offset.
func wheelTicks(offset float64) []float64 {
	sign := 1.0
	if offset < 0 {
		sign = -1
	}
	rest := math.Abs(offset)
	var ticks []float64
	for ; rest >= 1; rest-- {
		ticks = append(ticks, sign)
	}
	if rest > 0 {
		ticks = append(ticks, sign*rest)
	}
	return ticks
}

func toWindow(p, window, framebuffer image.Point) image.Point {
	if framebuffer.X == 0 || framebuffer.Y == 0 || window == framebuffer {
		return p
	}
	return image.Pt(p.X*window.X/framebuffer.X, p.Y*window.Y/framebuffer.Y)
}
