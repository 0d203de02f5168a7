package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/galaxy/components"
)

func TestWrapScenario(t *testing.T) {
	// 2x2 grid with spacing 10: cell(0,0) base x is -10, but the scenario
	// adds an offset of 11 to x=0 on a 20-wide torus.
	got := Wrap(0+11, 20)
	if got != -9 {
		t.Errorf("expected -9, got %v", got)
	}
}

func TestWrapStaysInBounds(t *testing.T) {
	sizes := []float64{20, 120, 140, 0.5}
	values := []float64{0, 9.99, 10, 10.01, -10.01, 1e6, -1e6, 123456.789, -0.0001, 3e12}

	for _, size := range sizes {
		for _, v := range values {
			w := Wrap(v, size)
			if w < -size/2 || w > size/2 {
				t.Errorf("Wrap(%v, %v) = %v, outside [%v, %v]", v, size, w, -size/2, size/2)
			}
			// Wrapping preserves position on the ring.
			if d := math.Abs(math.Mod(w-v, size)); d > 1e-6 && math.Abs(d-size) > 1e-6 {
				t.Errorf("Wrap(%v, %v) = %v moved off the ring (residue %v)", v, size, w, d)
			}
		}
	}
}

func TestViewportAt(t *testing.T) {
	// 90 degree FOV: tan(45) = 1, so height = 2 * distance.
	vp := ViewportAt(10, math.Pi/2, 2)
	if math.Abs(vp.Y-20) > 1e-9 || math.Abs(vp.X-40) > 1e-9 {
		t.Errorf("expected 40x20, got %vx%v", vp.X, vp.Y)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, math.Pi/2, 10)

	sx, sy, _, ok := cam.WorldToScreen(components.Vec3{})
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestWorldToScreenDepth(t *testing.T) {
	cam := New(1280, 720, math.Pi/2, 10)

	_, _, farPPU, _ := cam.WorldToScreen(components.Vec3{Z: 0})
	_, _, nearPPU, _ := cam.WorldToScreen(components.Vec3{Z: 5})
	if nearPPU <= farPPU {
		t.Errorf("closer points should appear larger: near %v, far %v", nearPPU, farPPU)
	}

	if _, _, _, ok := cam.WorldToScreen(components.Vec3{Z: 10}); ok {
		t.Error("point at the camera plane should not project")
	}
}

func TestNDCRoundtrip(t *testing.T) {
	cam := New(1280, 720, math.Pi/2, 10)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		var cursor GravityCursor
		w := cursor.Update(cam.ScreenToNDC(tc.sx, tc.sy), cam.ViewportWorld())
		sx, sy, _, _ := cam.WorldToScreen(w)
		if math.Abs(sx-tc.sx) > 0.01 || math.Abs(sy-tc.sy) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f)", tc.sx, tc.sy, sx, sy)
		}
	}
}

func TestScreenToNDCCorners(t *testing.T) {
	cam := New(200, 100, math.Pi/2, 10)

	tl := cam.ScreenToNDC(0, 0)
	br := cam.ScreenToNDC(200, 100)
	if tl != (components.Vec2{X: -1, Y: 1}) {
		t.Errorf("top-left should be (-1, 1), got %+v", tl)
	}
	if br != (components.Vec2{X: 1, Y: -1}) {
		t.Errorf("bottom-right should be (1, -1), got %+v", br)
	}
}

func TestResizeIgnoresDegenerate(t *testing.T) {
	cam := New(1280, 720, math.Pi/2, 10)
	cam.Resize(0, 500)
	if cam.ViewportW != 1280 || cam.ViewportH != 720 {
		t.Errorf("degenerate resize should be ignored, got %vx%v", cam.ViewportW, cam.ViewportH)
	}
	cam.Resize(800, 600)
	if cam.ViewportW != 800 || cam.ViewportH != 600 {
		t.Errorf("expected 800x600, got %vx%v", cam.ViewportW, cam.ViewportH)
	}
}
