package ui

import (
	"image"
	"testing"
)

func TestPlaneButtonLayout(t *testing.T) {
	p := NewPlane(&Theme{}, image.Pt(800, 600), 1, Actions{})
	buttons := p.Buttons()
	if len(buttons) != 3 {
		t.Fatalf("Expected 3 buttons, got %d", len(buttons))
	}
	want := image.Rect(760, 10, 790, 40)
	if buttons[0].Rect != want {
		t.Errorf("Expected reset button at %v, got %v", want, buttons[0].Rect)
	}
	for i := 1; i < len(buttons); i++ {
		if buttons[i].Rect.Max.X >= buttons[i-1].Rect.Min.X {
			t.Errorf("Button %q overlaps %q", buttons[i].Label, buttons[i-1].Label)
		}
	}
}

func TestPlaneClickFiresOnRelease(t *testing.T) {
	var zoomIn, reset int
	p := NewPlane(nil, image.Pt(800, 600), 1, Actions{
		ZoomIn: func() { zoomIn++ },
		Reset:  func() { reset++ },
	})

	plus := p.Buttons()[1].Rect.Min.Add(image.Pt(5, 5))
	if !p.HandlePress(plus) {
		t.Fatal("Expected press on + to be consumed")
	}
	if zoomIn != 0 {
		t.Errorf("Expected no click before release, got %d", zoomIn)
	}
	if !p.HandleRelease(plus) {
		t.Fatal("Expected release on + to be consumed")
	}
	if zoomIn != 1 || reset != 0 {
		t.Errorf("Expected zoomIn=1 reset=0, got %d %d", zoomIn, reset)
	}
}

func TestPlaneReleaseOutsideCancels(t *testing.T) {
	var clicks int
	p := NewPlane(nil, image.Pt(800, 600), 1, Actions{Reset: func() { clicks++ }})

	p.HandlePress(p.Buttons()[0].Rect.Min)
	if !p.HandleRelease(image.Pt(100, 300)) {
		t.Error("Expected release after a button press to be consumed")
	}
	if clicks != 0 {
		t.Errorf("Expected no click, got %d", clicks)
	}
	if p.HandleRelease(image.Pt(100, 300)) {
		t.Error("Expected stray release to fall through")
	}
}

func TestPlaneMissesFallThrough(t *testing.T) {
	p := NewPlane(nil, image.Pt(800, 600), 2, Actions{})
	if p.HandlePress(image.Pt(400, 300)) {
		t.Error("Expected press in the middle to fall through")
	}
	if p.HandleMove(image.Pt(400, 300)) {
		t.Error("Expected move in the middle to fall through")
	}
	if !p.HandleMove(p.Buttons()[2].Rect.Min) {
		t.Error("Expected move over a button to be consumed")
	}
}

func TestNilThemeMetrics(t *testing.T) {
	var theme *Theme
	if theme.LineHeight() <= 0 {
		t.Error("Expected positive line height from the fallback face")
	}
	if theme.TextWidth("abc") <= 0 {
		t.Error("Expected positive text width from the fallback face")
	}
}
