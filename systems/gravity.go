package systems

import (
	"math"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
)

// GravityForce returns the attraction a card at (x, y) feels toward the
// cursor. Inside the radius the force falls off linearly with distance;
// at or beyond the radius it is exactly zero. On top of the cursor the
// direction is undefined, so only the depth pull remains.
func GravityForce(cell components.Vec2, cursor components.Vec3, cfg config.GravityConfig) components.Vec3 {
	dx := cursor.X - cell.X
	dy := cursor.Y - cell.Y
	dist := math.Hypot(dx, dy)

	if !(dist < cfg.Radius) {
		return components.Vec3{}
	}

	force := (1 - dist/cfg.Radius) * cfg.Strength
	f := components.Vec3{Z: force * cfg.DepthGain}
	if dist > 0 {
		f.X = dx / dist * force * cfg.LateralGain
		f.Y = dy / dist * force * cfg.LateralGain
	}
	return f
}
