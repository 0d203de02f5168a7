// Package components defines the ECS components and value types shared by
// the field engine.
package components

// CellIdentity fixes a cell's place in the grid. It is derived solely from
// the cell index and never changes.
type CellIdentity struct {
	Index int
	Row   int
	Col   int
	Base  Vec3 // grid position centered on the origin
}

// CellPersonality holds the per-cell random constants drawn once when the
// cell is created.
type CellPersonality struct {
	PhaseOffset float64 // radians, [0, 2π)
	FloatSpeed  float64 // bob frequency multiplier
	ScaleJitter float64 // card size multiplier
}

// CellTransform is the per-frame output for one cell.
type CellTransform struct {
	Position Vec3
	RotX     float64 // tilt around the X axis, radians
	RotY     float64 // tilt around the Y axis, radians
	Depth    float64 // same as Position.Z; kept separate for render sorting
}

// CellMotion carries smoothing velocities between frames. Only the spring
// smoother uses it.
type CellMotion struct {
	VelZ    float64
	VelRotX float64
	VelRotY float64
}
