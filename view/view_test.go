package view

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-3

func assertVec(t *testing.T, want, got mgl32.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), eps, "x of %v", got)
	assert.InDelta(t, want.Y(), got.Y(), eps, "y of %v", got)
}

func TestUnprojectCorners(t *testing.T) {
	tests := []struct {
		name       string
		window, fb image.Point
		pos        image.Point
		want       mgl32.Vec2
	}{
		{"top-left", image.Pt(800, 600), image.Pt(800, 600), image.Pt(0, 0), mgl32.Vec2{-400, 300}},
		{"bottom-right", image.Pt(800, 600), image.Pt(800, 600), image.Pt(800, 600), mgl32.Vec2{400, -300}},
		{"center", image.Pt(800, 600), image.Pt(800, 600), image.Pt(400, 300), mgl32.Vec2{0, 0}},
		{"hidpi top-left", image.Pt(800, 600), image.Pt(1600, 1200), image.Pt(0, 0), mgl32.Vec2{-800, 600}},
		{"hidpi quarter", image.Pt(800, 600), image.Pt(1600, 1200), image.Pt(200, 150), mgl32.Vec2{-400, 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Mapper{Window: tt.window, Framebuffer: tt.fb}
			assertVec(t, tt.want, m.Unproject(tt.pos))
		})
	}
}

func TestUnprojectRelative(t *testing.T) {
	m := Mapper{Window: image.Pt(800, 600), Framebuffer: image.Pt(1600, 1200)}
	assertVec(t, mgl32.Vec2{20, -40}, m.UnprojectRelative(image.Pt(10, 20)))
	assertVec(t, mgl32.Vec2{0, 0}, m.UnprojectRelative(image.Point{}))

	// Relative deltas ignore the origin shift, so they match the
	// difference of two absolute unprojections.
	a, b := image.Pt(100, 50), image.Pt(130, 10)
	diff := m.Unproject(b).Sub(m.Unproject(a))
	assertVec(t, diff, m.UnprojectRelative(b.Sub(a)))
}

func TestProjection(t *testing.T) {
	p := NewProjection(image.Pt(800, 600))
	assert.Equal(t, image.Pt(800, 600), p.Size())

	corner := p.Matrix().Mul3x1(mgl32.Vec3{400, -300, 1})
	assert.InDelta(t, 1, corner.X(), eps)
	assert.InDelta(t, -1, corner.Y(), eps)

	p.Recompute(image.Pt(200, 100))
	corner = p.Matrix().Mul3x1(mgl32.Vec3{-100, 50, 1})
	assert.InDelta(t, -1, corner.X(), eps)
	assert.InDelta(t, 1, corner.Y(), eps)
}

func TestResetIsDeterministic(t *testing.T) {
	starts := []func(*Transform){
		func(*Transform) {},
		func(tr *Transform) { tr.Pan(mgl32.Vec2{13, -7}) },
		func(tr *Transform) { tr.Reset(image.Pt(10, 10)); tr.ZoomAt(mgl32.Vec2{30, 40}, 2.5) },
	}
	for i, start := range starts {
		tr := NewTransform()
		start(&tr)
		tr.Reset(image.Pt(400, 300))
		assert.Equal(t, mgl32.Scale2D(200, 150), tr.Matrix(), "start %d", i)
		assertVec(t, mgl32.Vec2{0, 0}, tr.Translation())
	}
}

func TestPanAdditive(t *testing.T) {
	d1, d2 := mgl32.Vec2{12.5, -3}, mgl32.Vec2{-40, 17.25}

	a := NewTransform()
	a.Reset(image.Pt(640, 480))
	a.ZoomAt(mgl32.Vec2{50, 60}, 1.3)
	b := a

	a.Pan(d1)
	a.Pan(d2)
	b.Pan(d1.Add(d2))

	assert.True(t, a.Matrix().ApproxEqualThreshold(b.Matrix(), eps), "%v != %v", a.Matrix(), b.Matrix())
}

func TestPanIgnoresScale(t *testing.T) {
	tr := NewTransform()
	tr.Reset(image.Pt(400, 300))
	tr.ZoomAt(mgl32.Vec2{}, 3)
	before := tr.Translation()
	tr.Pan(mgl32.Vec2{10, 20})
	assertVec(t, before.Add(mgl32.Vec2{10, 20}), tr.Translation())
	assertVec(t, mgl32.Vec2{600, 450}, tr.Scale())
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	setups := map[string]func(*Transform){
		"identity": func(*Transform) {},
		"reset":    func(tr *Transform) { tr.Reset(image.Pt(400, 300)) },
		"panned": func(tr *Transform) {
			tr.Reset(image.Pt(1024, 768))
			tr.Pan(mgl32.Vec2{-120, 35})
		},
		"zoomed": func(tr *Transform) {
			tr.Reset(image.Pt(64, 32))
			tr.ZoomAt(mgl32.Vec2{-10, 5}, 4)
			tr.Pan(mgl32.Vec2{7, 7})
		},
	}
	anchors := []mgl32.Vec2{{0, 0}, {-400, 300}, {123.5, -87}, {10, 10}}
	factors := []float32{0.5, 0.9, 1.1, 2, 7.5}

	for name, setup := range setups {
		for _, a := range anchors {
			for _, f := range factors {
				tr := NewTransform()
				setup(&tr)
				before := tr.ToLocal(a)
				tr.ZoomAt(a, f)
				after := tr.ToLocal(a)
				if !assert.InDelta(t, before.X(), after.X(), eps) ||
					!assert.InDelta(t, before.Y(), after.Y(), eps) {
					t.Logf("%s anchor=%v factor=%v", name, a, f)
				}
			}
		}
	}
}

func TestZoomStaysDiagonal(t *testing.T) {
	tr := NewTransform()
	tr.Reset(image.Pt(300, 200))
	for i := 0; i < 50; i++ {
		tr.ZoomAt(mgl32.Vec2{float32(i), float32(-i)}, ZoomFactor(DefaultZoomStep, 1))
		tr.Pan(mgl32.Vec2{1, 2})
	}
	m := tr.Matrix()
	assert.Zero(t, m.At(0, 1))
	assert.Zero(t, m.At(1, 0))
	require.NotZero(t, m.Det())
}

func TestWheelScenario(t *testing.T) {
	m := Mapper{Window: image.Pt(800, 600), Framebuffer: image.Pt(800, 600)}
	tr := NewTransform()
	require.True(t, tr.IsIdentity())

	tr.Reset(image.Pt(400, 300))
	assert.False(t, tr.IsIdentity())
	assertVec(t, mgl32.Vec2{200, 150}, tr.Scale())
	assertVec(t, mgl32.Vec2{-400, 300}, m.Unproject(image.Pt(0, 0)))

	anchor := m.Unproject(image.Pt(400, 300))
	tr.ZoomAt(anchor, ZoomFactor(DefaultZoomStep, 1))
	assertVec(t, mgl32.Vec2{220, 165}, tr.Scale())
	assertVec(t, mgl32.Vec2{0, 0}, tr.Translation())
}

func TestZeroValueTransform(t *testing.T) {
	var tr Transform
	assert.True(t, tr.IsIdentity())
	tr.Pan(mgl32.Vec2{5, 6})
	assertVec(t, mgl32.Vec2{5, 6}, tr.Translation())
	assertVec(t, mgl32.Vec2{1, 1}, tr.Scale())
}
