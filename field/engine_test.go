package field

import (
	"math"
	"testing"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/selection"
	"github.com/pthm-cable/galaxy/telemetry"
)

const dt = 1.0 / 60

// stillConfig returns a 2x2 grid whose cells sit exactly on their base
// positions: no conveyor, float or gravity.
func stillConfig() *config.Config {
	cfg := config.Default()
	cfg.Grid.Rows, cfg.Grid.Cols = 2, 2
	cfg.Grid.SpacingX, cfg.Grid.SpacingY = 10, 10
	cfg.Cell.ConveyorSpeed = 0
	cfg.Cell.FloatAmpY = 0
	cfg.Cell.FloatAmpZ = 0
	cfg.Gravity.Strength = 0
	cfg.Noise.Magnitude = 0
	return cfg
}

func newEngine(t *testing.T, cfg *config.Config, items []components.GalleryItem) *Engine {
	t.Helper()
	e, err := New(cfg, items, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestNewBuildsArena(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	if e.Len() != 4 {
		t.Fatalf("expected 4 cells, got %d", e.Len())
	}

	i := 0
	e.Cells(func(c CellView) {
		if c.Identity.Index != i {
			t.Errorf("cell %d visited with index %d", i, c.Identity.Index)
		}
		if c.Personality.ScaleJitter < 1 {
			t.Errorf("cell %d has no personality", i)
		}
		if !c.Item.Placeholder {
			t.Errorf("cell %d should show a placeholder with no items", i)
		}
		i++
	})
	if i != 4 {
		t.Errorf("visited %d cells", i)
	}
}

func TestNewRejectsEmptyGrid(t *testing.T) {
	cfg := stillConfig()
	cfg.Grid.Rows = 0
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("expected error for empty grid")
	}
}

func TestPersonalitiesReplay(t *testing.T) {
	a := newEngine(t, config.Default(), nil)
	b := newEngine(t, config.Default(), nil)
	for i := 0; i < 120; i++ {
		in := Input{Pointer: components.Vec2{X: math.Sin(float64(i) * 0.1), Y: 0.3}, HasPointer: true}
		a.Step(dt, in)
		b.Step(dt, in)
	}
	for i := 0; i < a.Len(); i++ {
		ca, _ := a.Cell(i)
		cb, _ := b.Cell(i)
		if ca.Transform != cb.Transform || ca.Personality != cb.Personality {
			t.Fatalf("cell %d diverged: %+v vs %+v", i, ca, cb)
		}
	}
}

func TestSetItems(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	e.SetItems([]components.GalleryItem{{ID: "a", Src: "/gallery/a.jpg", Description: "A"}})

	for i := 0; i < e.Len(); i++ {
		c, _ := e.Cell(i)
		if c.Item.ItemID != "a" || c.Item.Placeholder {
			t.Errorf("cell %d shows %+v", i, c.Item)
		}
	}
	if _, reloads := e.Counters(); reloads != 1 {
		t.Errorf("expected 1 reload, got %d", reloads)
	}
	if got := e.Snapshot().Items; got != 1 {
		t.Errorf("snapshot items = %d", got)
	}
}

func TestInputAppliesBeforeTick(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	e.Step(dt, Input{Drag: components.Vec2{X: 100}, Dragging: true})

	// Drag speed 0.02 at reference zoom: 100px adds 2 units this frame.
	if got := e.Navigation().Offset.X; math.Abs(got-2) > 1e-12 {
		t.Errorf("offset after one drag frame = %v, want 2", got)
	}

	c, _ := e.Cell(1) // base x 0
	if math.Abs(c.Transform.Position.X-2) > 1e-12 {
		t.Errorf("cells should see this frame's offset, got x=%v", c.Transform.Position.X)
	}
}

func TestClickSelectsAndToggles(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	center := Input{Pointer: components.Vec2{}, HasPointer: true}
	e.Step(dt, center)

	if idx, ok := e.Pick(components.Vec2{}); !ok || idx != 3 {
		t.Fatalf("Pick(center) = %d, %v; want cell 3", idx, ok)
	}

	click := center
	click.Click = true
	e.Step(dt, click)
	if e.Selection().State() != selection.Focused || e.Selection().SelectedID() != 3 {
		t.Fatalf("expected cell 3 focused, got %v %d", e.Selection().State(), e.Selection().SelectedID())
	}
	if c, _ := e.Cell(3); !c.Selected {
		t.Error("cell view should report selection")
	}

	// Grid clicks are covered by the detail view while focused.
	e.Step(dt, click)
	if e.Selection().State() != selection.Focused {
		t.Error("click while focused should not toggle")
	}

	e.Step(dt, Input{Escape: true})
	if e.Selection().State() != selection.Idle {
		t.Error("escape should close")
	}
	if sel, _ := e.Counters(); sel != 1 {
		t.Errorf("expected 1 selection, got %d", sel)
	}
}

func TestPickMiss(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	e.Step(dt, Input{})

	// Halfway between columns at x=-5 world units is empty.
	ndc := components.Vec2{X: -5 / (e.Camera().ViewportWorld().X / 2), Y: 0}
	if idx, ok := e.Pick(ndc); ok {
		t.Errorf("expected miss, got cell %d", idx)
	}
	if _, ok := e.Pick(components.Vec2{X: math.NaN()}); ok {
		t.Error("non-finite pointer should not pick")
	}
}

func TestFocusedRoutesInputToDetail(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	e.Step(dt, Input{HasPointer: true})
	e.Step(dt, Input{HasPointer: true, Click: true})
	if e.Selection().State() != selection.Focused {
		t.Fatal("setup: expected focus")
	}

	zoom := e.Navigation().TargetZoom
	offset := e.Navigation().Offset
	e.Step(dt, Input{WheelY: -500, ZoomModifier: true, Drag: components.Vec2{X: 30}, Dragging: true})

	if e.Navigation().TargetZoom != zoom {
		t.Error("navigation zoom should not change while focused")
	}
	if e.Navigation().Offset != offset {
		t.Error("navigation offset should not change while focused")
	}
	f, _ := e.Selection().Focus()
	if math.Abs(f.Scale-2) > 1e-9 {
		t.Errorf("wheel should zoom the detail view to 2, got %v", f.Scale)
	}

	e.Step(dt, Input{Rotate: true})
	if f, _ := e.Selection().Focus(); f.Rotation != 90 {
		t.Errorf("rotate should reach the detail view, got %d", f.Rotation)
	}

	e.Step(dt, Input{Close: true})
	if e.Selection().State() != selection.Idle {
		t.Error("close control should return to idle")
	}
}

func TestWrapInvariantUnderLongDrag(t *testing.T) {
	cfg := config.Default()
	e := newEngine(t, cfg, nil)
	halfW := float64(cfg.Grid.Cols) * cfg.Grid.SpacingX / 2
	halfH := float64(cfg.Grid.Rows) * cfg.Grid.SpacingY / 2
	// Gravity and float push cells past the wrapped position by at most
	// this much.
	slack := cfg.Gravity.Strength*cfg.Gravity.LateralGain + cfg.Cell.FloatAmpY

	for i := 0; i < 2000; i++ {
		e.Step(dt, Input{
			Drag:       components.Vec2{X: 4000, Y: -2500},
			Dragging:   true,
			Pointer:    components.Vec2{X: 0.2, Y: -0.1},
			HasPointer: true,
		})
		e.Cells(func(c CellView) {
			p := c.Transform.Position
			if math.Abs(p.X) > halfW+slack || math.Abs(p.Y) > halfH+slack {
				t.Fatalf("frame %d cell %d at %+v left the torus", i, c.Identity.Index, p)
			}
		})
	}
}

func TestZoomStaysClamped(t *testing.T) {
	cfg := config.Default()
	e := newEngine(t, cfg, nil)

	for i := 0; i < 500; i++ {
		e.Step(dt, Input{WheelY: 1e9, ZoomModifier: true})
	}
	if z := e.Navigation().Zoom; z > cfg.Navigation.MaxZoom {
		t.Errorf("zoom %v above max", z)
	}
	for i := 0; i < 500; i++ {
		e.Step(dt, Input{WheelY: -1e9, ZoomModifier: true, Pinch: 1e9})
	}
	if z := e.Navigation().Zoom; z < cfg.Navigation.MinZoom {
		t.Errorf("zoom %v below min", z)
	}
	if e.Camera().Distance != e.Navigation().Zoom {
		t.Error("camera distance should follow zoom")
	}
}

func TestNonFiniteDTDoesNotAdvance(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	e.Step(dt, Input{})
	before := e.Time()
	e.Step(math.NaN(), Input{})
	e.Step(math.Inf(1), Input{})
	e.Step(-1, Input{})
	if e.Time() != before {
		t.Errorf("time advanced on invalid dt: %v -> %v", before, e.Time())
	}
}

func TestCursorFollowsPointer(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	e.Step(dt, Input{Pointer: components.Vec2{X: 1, Y: -1}, HasPointer: true})
	vp := e.Camera().ViewportWorld()
	c := e.Cursor()
	if math.Abs(c.X-vp.X/2) > 1e-9 || math.Abs(c.Y+vp.Y/2) > 1e-9 {
		t.Errorf("cursor %+v should sit at the viewport corner %+v", c, vp)
	}

	// Without a new pointer the last one is reused.
	e.Step(dt, Input{})
	if e.Cursor().X != c.X {
		t.Error("cursor should keep the last pointer")
	}
}

func TestPerfPhasesRecorded(t *testing.T) {
	e := newEngine(t, stillConfig(), nil)
	pc := telemetry.NewPerfCollector(10)
	e.SetPerf(pc)
	for i := 0; i < 3; i++ {
		e.Step(dt, Input{})
	}
	stats := pc.Stats()
	for _, phase := range telemetry.Phases {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("phase %s not recorded", phase)
		}
	}
}

func TestSnapshotAndClose(t *testing.T) {
	e, err := New(stillConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		e.Step(dt, Input{})
	}
	s := e.Snapshot()
	if s.Frame != 5 || len(s.Depths) != 4 || s.Selected != -1 {
		t.Errorf("unexpected snapshot %+v", s)
	}
	if math.Abs(s.SimTime-5*dt) > 1e-12 {
		t.Errorf("sim time %v", s.SimTime)
	}

	if e.Selection().Listeners() != 1 {
		t.Fatalf("expected engine listener, got %d", e.Selection().Listeners())
	}
	e.Close()
	if e.Selection().Listeners() != 0 {
		t.Error("Close should deregister the engine listener")
	}
}
