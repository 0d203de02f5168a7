package camera

import "github.com/pthm-cable/galaxy/components"

// GravityCursor maps the pointer onto the z=0 plane once per frame. It
// remembers only the last sampled point, so every reader in the same frame
// sees the same value.
type GravityCursor struct {
	pos components.Vec3
}

// Update converts a pointer in normalized device coordinates to world
// space using the visible viewport size at depth zero. Non-finite input
// keeps the previous position.
func (c *GravityCursor) Update(ndc, viewport components.Vec2) components.Vec3 {
	if !ndc.IsFinite() || !viewport.IsFinite() {
		return c.pos
	}
	c.pos = components.Vec3{
		X: ndc.X * viewport.X / 2,
		Y: ndc.Y * viewport.Y / 2,
	}
	return c.pos
}

// Position returns the last sampled world position.
func (c *GravityCursor) Position() components.Vec3 {
	return c.pos
}
