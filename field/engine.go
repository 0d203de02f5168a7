// Package field runs the per-frame tick of the card field: navigation,
// ambient drift, the gravity cursor, every cell's transform and the detail
// selection, in that order.
package field

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/galaxy/camera"
	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/selection"
	"github.com/pthm-cable/galaxy/systems"
	"github.com/pthm-cable/galaxy/telemetry"
)

// Engine owns all field state. It is driven from a single goroutine.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	// ECS
	world       *ecs.World
	cells       []ecs.Entity // arena indexed by cell index
	identityMap *ecs.Map[components.CellIdentity]
	personMap   *ecs.Map[components.CellPersonality]
	transMap    *ecs.Map[components.CellTransform]

	// Systems
	layout      *systems.GridLayout
	noise       *systems.NoiseField
	transformer *systems.CellTransformer

	nav       *camera.Navigation
	cursor    camera.GravityCursor
	cam       *camera.Camera
	selection *selection.Controller
	selSub    *selection.Subscription

	items []components.GalleryItem
	views []components.ItemView

	pointer components.Vec2
	drift   components.Vec2
	time    float64
	frame   int64

	selections int
	reloads    int

	perf *telemetry.PerfCollector
}

// New builds the field with one entity per grid cell. Personalities are
// drawn from a generator seeded with the noise seed so runs replay.
func New(cfg *config.Config, items []components.GalleryItem, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	layout, err := systems.NewGridLayout(cfg.Grid, cfg.Gallery)
	if err != nil {
		return nil, fmt.Errorf("creating field: %w", err)
	}

	w := ecs.NewWorld()
	e := &Engine{
		cfg:         cfg,
		logger:      logger,
		world:       w,
		identityMap: ecs.NewMap[components.CellIdentity](w),
		personMap:   ecs.NewMap[components.CellPersonality](w),
		transMap:    ecs.NewMap[components.CellTransform](w),
		layout:      layout,
		noise:       systems.NewNoiseField(cfg.Noise),
		nav:         camera.NewNavigation(cfg.Navigation),
		selection:   selection.NewController(cfg.Detail, logger),
	}
	e.cam = camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Derived.FOVRad, e.nav.Zoom)

	mapper := ecs.NewMap4[
		components.CellIdentity,
		components.CellPersonality,
		components.CellTransform,
		components.CellMotion,
	](w)
	rng := rand.New(rand.NewSource(cfg.Noise.Seed))
	e.cells = make([]ecs.Entity, layout.Len())
	for i := range e.cells {
		id, _ := layout.CellAt(i)
		p := systems.NewPersonality(rng, cfg.Cell)
		tr := components.CellTransform{Position: id.Base}
		m := components.CellMotion{}
		e.cells[i] = mapper.NewEntity(&id, &p, &tr, &m)
	}
	e.transformer = systems.NewCellTransformer(w, layout, cfg.Cell, cfg.Gravity)

	e.selSub = e.selection.OnChange(func(ch selection.Change) {
		if ch.To == selection.Focused {
			e.selections++
		}
		e.logger.Info("selection changed", "from", ch.From.String(), "to", ch.To.String(), "prev_id", ch.PrevID, "id", ch.ID)
	})

	e.setItems(items)
	logger.Info("field created",
		"cells", layout.Len(),
		"world_w", layout.TotalWidth(),
		"world_h", layout.TotalHeight(),
		"items", len(items),
		"noise", cfg.Noise.Backend,
		"smoothing", cfg.Cell.Smoothing,
	)
	return e, nil
}

// SetPerf attaches a collector that times each phase of Step.
func (e *Engine) SetPerf(p *telemetry.PerfCollector) { e.perf = p }

// Close releases listeners registered by the engine.
func (e *Engine) Close() {
	e.selSub.Remove()
}

// SetItems replaces the gallery items. It is the only way the engine sees
// new data.
func (e *Engine) SetItems(items []components.GalleryItem) {
	e.setItems(items)
	e.reloads++
	e.logger.Info("field items reloaded", "items", len(items))
}

func (e *Engine) setItems(items []components.GalleryItem) {
	e.items = append(e.items[:0], items...)
	if e.views == nil {
		e.views = make([]components.ItemView, len(e.cells))
	}
	for i := range e.views {
		e.views[i] = e.layout.ItemFor(i, e.items)
	}
}

// Step advances one frame. dt is seconds since the previous frame; a
// non-finite or negative dt advances nothing but still applies input.
func (e *Engine) Step(dt float64, in Input) {
	if !components.Finite(dt) || dt < 0 {
		dt = 0
	}
	e.startTick()

	e.phase(telemetry.PhaseInput)
	e.applyInput(in)

	e.phase(telemetry.PhaseNoise)
	e.time += dt
	sp := e.nav.DriftSamplePoint()
	e.drift = e.noise.Sample(sp.X, sp.Y, e.time)

	e.phase(telemetry.PhaseNavigation)
	e.nav.Tick(dt, e.drift)
	e.cam.Distance = e.nav.Zoom

	e.phase(telemetry.PhaseCursor)
	viewport := e.cam.ViewportWorld()
	e.cursor.Update(e.pointer, viewport)

	e.phase(telemetry.PhaseCells)
	e.transformer.Update(systems.FrameContext{
		Time:     e.time,
		DT:       dt,
		Offset:   e.nav.Offset,
		Cursor:   e.cursor.Position(),
		Viewport: viewport,
		Selected: e.selection.SelectedID(),
	})

	e.phase(telemetry.PhaseSelection)
	e.selection.Update(dt)

	e.frame++
	e.endTick()
}

// applyInput routes input to navigation or, while an item is focused, to
// the detail view.
func (e *Engine) applyInput(in Input) {
	if in.ScreenW > 0 && in.ScreenH > 0 {
		e.cam.Resize(in.ScreenW, in.ScreenH)
	}
	if in.HasPointer && in.Pointer.IsFinite() {
		e.pointer = in.Pointer
	}

	if in.Escape || in.Close {
		e.selection.Close()
	}

	if e.selection.State() == selection.Focused {
		e.nav.ApplyDrag(components.Vec2{}, false)
		if in.Dragging {
			e.selection.Pan(in.Drag)
		}
		if in.WheelY != 0 {
			e.selection.ZoomBy(in.WheelY)
		}
		if in.Pinch != 0 && components.Finite(in.Pinch) {
			if f, ok := e.selection.Focus(); ok {
				e.selection.SetZoom(f.Scale * (1 + in.Pinch*e.cfg.Navigation.PinchSensitivity))
			}
		}
		if in.Rotate {
			e.selection.Rotate()
		}
		return
	}

	e.nav.ApplyDrag(in.Drag, in.Dragging)
	if in.WheelX != 0 || in.WheelY != 0 {
		e.nav.ApplyWheel(in.WheelX, in.WheelY, in.ZoomModifier)
	}
	e.nav.ApplyPinch(in.Pinch)

	if in.Click {
		if idx, ok := e.Pick(e.pointer); ok {
			e.selection.Activate(idx, e.views[idx])
		}
	}
}

// CellView is one cell as seen by the renderer.
type CellView struct {
	Identity    components.CellIdentity
	Personality components.CellPersonality
	Transform   components.CellTransform
	Item        components.ItemView
	Selected    bool
}

// Cells visits every cell in index order.
func (e *Engine) Cells(fn func(CellView)) {
	sel := e.selection.SelectedID()
	for i, ent := range e.cells {
		fn(CellView{
			Identity:    *e.identityMap.Get(ent),
			Personality: *e.personMap.Get(ent),
			Transform:   *e.transMap.Get(ent),
			Item:        e.views[i],
			Selected:    i == sel,
		})
	}
}

// Cell returns the view of the cell at index.
func (e *Engine) Cell(index int) (CellView, bool) {
	if index < 0 || index >= len(e.cells) {
		return CellView{}, false
	}
	ent := e.cells[index]
	return CellView{
		Identity:    *e.identityMap.Get(ent),
		Personality: *e.personMap.Get(ent),
		Transform:   *e.transMap.Get(ent),
		Item:        e.views[index],
		Selected:    index == e.selection.SelectedID(),
	}, true
}

// CardHalfExtents returns the half width and height of a card with the
// given personality, in world units.
func (e *Engine) CardHalfExtents(p components.CellPersonality) (hw, hh float64) {
	return e.cfg.Grid.CardW / 2 * p.ScaleJitter, e.cfg.Grid.CardH / 2 * p.ScaleJitter
}

// Pick returns the card under a pointer in normalized device coordinates.
// Tilt is ignored; when cards overlap the one nearest the viewer wins.
func (e *Engine) Pick(ndc components.Vec2) (int, bool) {
	if !ndc.IsFinite() {
		return -1, false
	}
	px := (ndc.X + 1) / 2 * e.cam.ViewportW
	py := (1 - ndc.Y) / 2 * e.cam.ViewportH

	best, bestZ := -1, math.Inf(-1)
	for i, ent := range e.cells {
		tr := e.transMap.Get(ent)
		sx, sy, ppu, ok := e.cam.WorldToScreen(tr.Position)
		if !ok {
			continue
		}
		hw, hh := e.CardHalfExtents(*e.personMap.Get(ent))
		if math.Abs(px-sx) > hw*ppu || math.Abs(py-sy) > hh*ppu {
			continue
		}
		if tr.Position.Z > bestZ {
			best, bestZ = i, tr.Position.Z
		}
	}
	return best, best >= 0
}

// Snapshot returns the field state for telemetry.
func (e *Engine) Snapshot() telemetry.FieldState {
	depths := make([]float64, len(e.cells))
	for i, ent := range e.cells {
		depths[i] = e.transMap.Get(ent).Depth
	}
	return telemetry.FieldState{
		Frame:    e.frame,
		SimTime:  e.time,
		Zoom:     e.nav.Zoom,
		Offset:   e.nav.Offset,
		Velocity: e.nav.Velocity,
		Depths:   depths,
		Items:    len(e.items),
		Selected: e.selection.SelectedID(),
	}
}

// Frame returns the number of completed steps.
func (e *Engine) Frame() int64 { return e.frame }

// Counters returns the totals of items focused and gallery reloads since
// the engine was created.
func (e *Engine) Counters() (selections, reloads int) { return e.selections, e.reloads }

// Selection returns the detail view controller.
func (e *Engine) Selection() *selection.Controller { return e.selection }

// Navigation returns the pan/zoom state.
func (e *Engine) Navigation() *camera.Navigation { return e.nav }

// Camera returns the view camera. Distance follows the navigation zoom.
func (e *Engine) Camera() *camera.Camera { return e.cam }

// Cursor returns the gravity cursor position for this frame.
func (e *Engine) Cursor() components.Vec3 { return e.cursor.Position() }

// Time returns seconds of simulated time.
func (e *Engine) Time() float64 { return e.time }

// Len returns the number of cells.
func (e *Engine) Len() int { return len(e.cells) }

func (e *Engine) startTick() {
	if e.perf != nil {
		e.perf.StartTick()
	}
}

func (e *Engine) phase(name string) {
	if e.perf != nil {
		e.perf.StartPhase(name)
	}
}

func (e *Engine) endTick() {
	if e.perf != nil {
		e.perf.EndTick()
	}
}
