package ui

import (
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

var (
	ColorButtonBackground = color.RGBA{60, 60, 70, 200}
	ColorButtonHover      = color.RGBA{0, 120, 255, 220}
	ColorLabelBackground  = color.RGBA{20, 20, 25, 160}
	ColorText             = color.RGBA{230, 230, 230, 255}
	ColorTextDim          = color.RGBA{150, 150, 150, 255}
	ColorStatusBackground = color.RGBA{40, 40, 40, 220}
	ColorStatusText       = color.RGBA{255, 200, 50, 255}
)

// Theme is the font and glyph state shared by every overlay. The host owns
// it; planes only hold a read-only reference and must not outlive the host.
type Theme struct {
	Face font.Face
}

// LoadTheme loads the TTF at path. An empty or unreadable path falls back to
// basicfont.Face7x13.
func LoadTheme(path string, size float64) *Theme {
	if path == "" {
		return &Theme{Face: basicfont.Face7x13}
	}
	if size <= 0 {
		size = 16
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("font not found, using basic font", "path", path, "err", err)
		return &Theme{Face: basicfont.Face7x13}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		slog.Warn("font parse error, using basic font", "path", path, "err", err)
		return &Theme{Face: basicfont.Face7x13}
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		slog.Warn("font face error, using basic font", "path", path, "err", err)
		return &Theme{Face: basicfont.Face7x13}
	}
	return &Theme{Face: face}
}

func (t *Theme) face() font.Face {
	if t == nil || t.Face == nil {
		return basicfont.Face7x13
	}
	return t.Face
}

// LineHeight returns the height of one line of text.
func (t *Theme) LineHeight() int {
	m := t.face().Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	if h <= 0 {
		return 16
	}
	return h
}

// DrawText draws multiline text with its top-left corner at (x, y).
func (t *Theme) DrawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	face := t.face()
	ascent := face.Metrics().Ascent.Ceil()
	if ascent <= 0 {
		ascent = 12
	}
	lineHeight := t.LineHeight()
	// text.Draw expects the baseline, so shift by the ascent.
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+i*lineHeight, clr)
	}
}

// TextWidth returns the advance of the widest line of s in pixels.
func (t *Theme) TextWidth(s string) int {
	face := t.face()
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := font.MeasureString(face, line).Ceil(); w > widest {
			widest = w
		}
	}
	return widest
}
