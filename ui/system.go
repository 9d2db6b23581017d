package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	LabelWidth    = 72
	LabelHeight   = 36
	LabelPadding  = 8
	ButtonSize    = 30
	ButtonMargin  = 10
	ButtonSpacing = 10
)

// Label is a single line of text snapped to the top-left corner.
type Label struct {
	Text    string
	Visible bool
	Dim     bool
}

// Actions are the callbacks fired by the plane's buttons.
type Actions struct {
	ZoomIn  func()
	ZoomOut func()
	Reset   func()
}

// Plane is the overlay drawn above the image: the image info label and the
// zoom buttons. It is laid out once for a window size; on resize the owner
// drops it and builds a new one.
type Plane struct {
	theme  *Theme
	window image.Point
	scale  float64

	Info    Label
	buttons []*Button
	pressed *Button
}

// NewPlane lays out a plane for window. scale is framebuffer pixels per
// window pixel. theme is borrowed and must outlive the plane.
func NewPlane(theme *Theme, window image.Point, scale float64, actions Actions) *Plane {
	if scale <= 0 {
		scale = 1
	}
	p := &Plane{
		theme:  theme,
		window: window,
		scale:  scale,
		Info:   Label{Dim: true},
	}
	p.initButtons(actions)
	return p
}

func (p *Plane) initButtons(a Actions) {
	labels := []struct {
		label string
		fn    func()
	}{
		// Right to left.
		{"0", a.Reset},
		{"+", a.ZoomIn},
		{"-", a.ZoomOut},
	}
	x := p.window.X - ButtonMargin
	for _, l := range labels {
		r := image.Rect(x-ButtonSize, ButtonMargin, x, ButtonMargin+ButtonSize)
		p.buttons = append(p.buttons, &Button{Label: l.label, Rect: r, OnClick: l.fn})
		x -= ButtonSize + ButtonSpacing
	}
}

// Window returns the window size the plane was laid out for.
func (p *Plane) Window() image.Point {
	return p.window
}

// Buttons returns the plane's buttons, right to left.
func (p *Plane) Buttons() []*Button {
	return p.buttons
}

func (p *Plane) buttonAt(pos image.Point) *Button {
	for _, b := range p.buttons {
		if b.IsMouseOver(pos) {
			return b
		}
	}
	return nil
}

// HandlePress reports whether pos hit a button.
func (p *Plane) HandlePress(pos image.Point) bool {
	b := p.buttonAt(pos)
	if b == nil {
		return false
	}
	b.pressed = true
	p.pressed = b
	return true
}

// HandleRelease fires the pressed button when the pointer is still over it.
func (p *Plane) HandleRelease(pos image.Point) bool {
	b := p.pressed
	if b == nil {
		return false
	}
	b.pressed = false
	p.pressed = nil
	if b.IsMouseOver(pos) && b.OnClick != nil {
		b.OnClick()
	}
	return true
}

// HandleMove updates hover state and reports whether the pointer is over a
// button.
func (p *Plane) HandleMove(pos image.Point) bool {
	over := false
	for _, b := range p.buttons {
		b.hovered = b.IsMouseOver(pos)
		over = over || b.hovered
	}
	return over
}

// Draw renders the label and buttons.
func (p *Plane) Draw(screen *ebiten.Image) {
	if p.Info.Visible && p.Info.Text != "" {
		p.drawLabel(screen)
	}
	for _, b := range p.buttons {
		b.Draw(screen, p.theme, p.scale)
	}
}

func (p *Plane) drawLabel(screen *ebiten.Image) {
	w := max(LabelWidth, p.theme.TextWidth(p.Info.Text)+2*LabelPadding)
	h := max(LabelHeight, p.theme.LineHeight()+2*LabelPadding)
	r := scaleRect(image.Rect(0, 0, w, h), p.scale)
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), ColorLabelBackground, false)

	clr := ColorText
	if p.Info.Dim {
		clr = ColorTextDim
	}
	ty := r.Min.Y + (r.Dy()-p.theme.LineHeight())/2
	p.theme.DrawText(screen, p.Info.Text, r.Min.X+int(LabelPadding*p.scale), ty, clr)
}
