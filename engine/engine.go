// Package engine runs Starlark view scripts. A script drives the view
// through the same operations as the pointer and wheel:
//
//	reset()
//	zoom(2)                # two wheel ticks at the framebuffer center
//	zoom_at(-100, 50, 1.5) # factor 1.5 around a framebuffer point
//	pan(10, -20)
//	sx, sy = scale()
//	tx, ty = translation()
package engine

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"image-player/view"
)

// Viewer is the view state a script may read and change.
type Viewer interface {
	ResetView() bool
	Pan(delta mgl32.Vec2) bool
	ZoomAt(anchor mgl32.Vec2, factor float32) bool
	Transform() view.Transform
}

// MaxExecutionSteps bounds a script run so a runaway loop cannot stall the
// frame loop.
const MaxExecutionSteps = 10_000_000

// Run executes script against v. name is used in error positions.
func Run(name, script string, v Viewer, zoomStep float32) error {
	if zoomStep == 0 {
		zoomStep = view.DefaultZoomStep
	}
	thread := &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, msg string) { slog.Info(msg, "script", name) },
	}
	thread.SetMaxExecutionSteps(MaxExecutionSteps)
	opts := &syntax.FileOptions{TopLevelControl: true, GlobalReassign: true, While: true}
	if _, err := starlark.ExecFileOptions(opts, thread, name, script, builtins(v, zoomStep)); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

func builtins(v Viewer, zoomStep float32) starlark.StringDict {
	return starlark.StringDict{
		"reset": starlark.NewBuiltin("reset", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
				return nil, err
			}
			return starlark.Bool(v.ResetView()), nil
		}),
		"pan": starlark.NewBuiltin("pan", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			f, err := unpackFloats(b, args, kwargs, "dx", "dy")
			if err != nil {
				return nil, err
			}
			v.Pan(mgl32.Vec2{f[0], f[1]})
			return starlark.None, nil
		}),
		"zoom_at": starlark.NewBuiltin("zoom_at", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			f, err := unpackFloats(b, args, kwargs, "x", "y", "factor")
			if err != nil {
				return nil, err
			}
			if f[2] <= 0 {
				return nil, fmt.Errorf("%s: factor must be positive, got %g", b.Name(), f[2])
			}
			v.ZoomAt(mgl32.Vec2{f[0], f[1]}, f[2])
			return starlark.None, nil
		}),
		"zoom": starlark.NewBuiltin("zoom", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var ticks int
			var x, y starlark.Value = starlark.MakeInt(0), starlark.MakeInt(0)
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "ticks", &ticks, "x?", &x, "y?", &y); err != nil {
				return nil, err
			}
			anchor, err := toVec2(b, x, y)
			if err != nil {
				return nil, err
			}
			// One wheel tick per step, composed multiplicatively.
			dir := float32(1)
			if ticks < 0 {
				dir, ticks = -1, -ticks
			}
			factor := view.ZoomFactor(zoomStep, dir)
			if factor <= 0 {
				return nil, fmt.Errorf("%s: zoom step %g gives no valid factor", b.Name(), zoomStep)
			}
			for i := 0; i < ticks; i++ {
				v.ZoomAt(anchor, factor)
			}
			return starlark.None, nil
		}),
		"scale": starlark.NewBuiltin("scale", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
				return nil, err
			}
			return vec2(v.Transform().Scale()), nil
		}),
		"translation": starlark.NewBuiltin("translation", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
				return nil, err
			}
			return vec2(v.Transform().Translation()), nil
		}),
	}
}

// unpackFloats unpacks the named required arguments, accepting int or float.
func unpackFloats(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, names ...string) ([]float32, error) {
	vals := make([]starlark.Value, len(names))
	pairs := make([]any, 0, 2*len(names))
	for i, n := range names {
		pairs = append(pairs, n, &vals[i])
	}
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, pairs...); err != nil {
		return nil, err
	}
	out := make([]float32, len(vals))
	for i, v := range vals {
		f, ok := starlark.AsFloat(v)
		if !ok {
			return nil, fmt.Errorf("%s: for parameter %s: got %s, want float", b.Name(), names[i], v.Type())
		}
		out[i] = float32(f)
	}
	return out, nil
}

func toVec2(b *starlark.Builtin, x, y starlark.Value) (mgl32.Vec2, error) {
	fx, okx := starlark.AsFloat(x)
	fy, oky := starlark.AsFloat(y)
	if !okx || !oky {
		return mgl32.Vec2{}, fmt.Errorf("%s: anchor must be numeric, got %s, %s", b.Name(), x.Type(), y.Type())
	}
	return mgl32.Vec2{float32(fx), float32(fy)}, nil
}

func vec2(v mgl32.Vec2) starlark.Tuple {
	return starlark.Tuple{starlark.Float(v.X()), starlark.Float(v.Y())}
}
