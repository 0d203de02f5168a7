package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/galaxy/camera"
	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
)

// NoSelection marks a frame with no focused cell.
const NoSelection = -1

// FrameContext is the shared, read-only input every cell sees in a frame.
// Navigation writes Offset before the transformer runs.
type FrameContext struct {
	Time     float64         // seconds since start
	DT       float64         // seconds since last frame
	Offset   components.Vec2 // global navigation offset
	Cursor   components.Vec3 // gravity cursor on the z=0 plane
	Viewport components.Vec2 // visible world size at depth zero
	Selected int             // focused cell index, or NoSelection
}

// CellTransformer computes every cell's transform once per frame.
type CellTransformer struct {
	filter *ecs.Filter4[components.CellIdentity, components.CellPersonality, components.CellTransform, components.CellMotion]

	cell    config.CellConfig
	gravity config.GravityConfig
	worldW  float64
	worldH  float64
}

// NewCellTransformer creates the system for the cells in w.
func NewCellTransformer(w *ecs.World, layout *GridLayout, cell config.CellConfig, gravity config.GravityConfig) *CellTransformer {
	return &CellTransformer{
		filter:  ecs.NewFilter4[components.CellIdentity, components.CellPersonality, components.CellTransform, components.CellMotion](w),
		cell:    cell,
		gravity: gravity,
		worldW:  layout.TotalWidth(),
		worldH:  layout.TotalHeight(),
	}
}

// Update advances all cells. Cells are independent, so order does not
// matter.
func (s *CellTransformer) Update(ctx FrameContext) {
	sm := newSmoother(s.cell, ctx.DT)
	query := s.filter.Query()
	for query.Next() {
		id, p, tr, m := query.Get()
		s.step(id, p, tr, m, ctx, sm)
	}
}

// Conveyor returns the per-cell drift accumulated after t seconds. Rows
// alternate horizontal direction and columns alternate vertical direction.
// Even rows move right and even columns move down.
func Conveyor(row, col int, t, speed float64) components.Vec2 {
	return components.Vec2{
		X: t * speed * parity(row),
		Y: -t * speed * parity(col),
	}
}

// WrapPosition places a cell on the torus. The vertical offset is
// subtracted so scrolling down moves content up.
func WrapPosition(base components.Vec3, offset, conveyor components.Vec2, worldW, worldH float64) components.Vec2 {
	return components.Vec2{
		X: camera.Wrap(base.X+offset.X+conveyor.X, worldW),
		Y: camera.Wrap(base.Y-offset.Y+conveyor.Y, worldH),
	}
}

// Float returns the idle bob on Y and Z for a cell.
func Float(t float64, p components.CellPersonality, cfg config.CellConfig) (y, z float64) {
	y = math.Sin(t*p.FloatSpeed+p.PhaseOffset) * cfg.FloatAmpY
	z = math.Cos(t*cfg.FloatFreqZ+p.PhaseOffset) * cfg.FloatAmpZ
	return y, z
}

// Target computes the unsmoothed transform for a cell.
func (s *CellTransformer) Target(id *components.CellIdentity, p *components.CellPersonality, ctx FrameContext) components.CellTransform {
	conv := Conveyor(id.Row, id.Col, ctx.Time, s.cell.ConveyorSpeed)
	pos := WrapPosition(id.Base, ctx.Offset, conv, s.worldW, s.worldH)
	floatY, floatZ := Float(ctx.Time, *p, s.cell)
	force := GravityForce(pos, ctx.Cursor, s.gravity)

	selected := id.Index == ctx.Selected
	lift := 0.0
	if selected {
		lift = s.cell.SelectedLift
	}

	target := components.CellTransform{
		Position: components.Vec3{
			X: pos.X + force.X,
			Y: pos.Y + force.Y + floatY,
			Z: lift + force.Z + floatZ,
		},
	}
	if !selected {
		target.RotX = ratio(pos.Y, ctx.Viewport.Y)*s.cell.TiltFactor - force.Y*s.cell.TiltForce
		target.RotY = -ratio(pos.X, ctx.Viewport.X)*s.cell.TiltFactor + force.X*s.cell.TiltForce
	}
	target.Depth = target.Position.Z
	return target
}

// step writes X/Y directly so a wrap is instantaneous, and smooths depth
// and tilt.
func (s *CellTransformer) step(id *components.CellIdentity, p *components.CellPersonality, tr *components.CellTransform, m *components.CellMotion, ctx FrameContext, sm smoother) {
	target := s.Target(id, p, ctx)
	if !target.Position.IsFinite() || !components.Finite(target.RotX, target.RotY) {
		return
	}

	tr.Position.X = target.Position.X
	tr.Position.Y = target.Position.Y
	sm.step(&tr.Position.Z, &m.VelZ, target.Position.Z, s.cell.DepthRate)
	sm.step(&tr.RotX, &m.VelRotX, target.RotX, s.cell.TiltRate)
	sm.step(&tr.RotY, &m.VelRotY, target.RotY, s.cell.TiltRate)
	tr.Depth = tr.Position.Z
}

// ratio divides guarding against an empty viewport.
func ratio(v, extent float64) float64 {
	if extent == 0 {
		return 0
	}
	return v / extent
}
