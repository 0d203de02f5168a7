// Package camera provides the perspective view, pan/zoom navigation and
// pointer mapping for the toroidal card field.
package camera

import (
	"math"

	"github.com/pthm-cable/galaxy/components"
)

// nearPlane is the minimum camera-to-point distance that still projects.
const nearPlane = 0.1

// Camera is a perspective camera on the Z axis looking at the origin.
// Distance is the camera's Z position; the navigation zoom drives it.
type Camera struct {
	// Viewport dimensions (screen size in pixels)
	ViewportW, ViewportH float64

	// FOV is the vertical field of view in radians.
	FOV float64

	// Distance from the camera to the z=0 plane.
	Distance float64
}

// New creates a camera for the given viewport.
func New(viewportW, viewportH, fov, distance float64) *Camera {
	return &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		FOV:       fov,
		Distance:  distance,
	}
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Aspect returns width / height of the viewport.
func (c *Camera) Aspect() float64 {
	if c.ViewportH <= 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// ViewportWorld returns the size in world units of the visible area at
// depth zero.
func (c *Camera) ViewportWorld() components.Vec2 {
	return ViewportAt(c.Distance, c.FOV, c.Aspect())
}

// ViewportAt returns the visible world-space width and height at depth
// zero for a camera at the given distance.
func ViewportAt(distance, fov, aspect float64) components.Vec2 {
	h := 2 * distance * math.Tan(fov/2)
	return components.Vec2{X: h * aspect, Y: h}
}

// WorldToScreen projects a world point. ppu is pixels per world unit at
// the point's depth and ok is false when the point is behind the near plane.
func (c *Camera) WorldToScreen(p components.Vec3) (sx, sy, ppu float64, ok bool) {
	d := c.Distance - p.Z
	if d < nearPlane {
		return 0, 0, 0, false
	}
	ppu = (c.ViewportH / 2) / (d * math.Tan(c.FOV/2))
	sx = c.ViewportW/2 + p.X*ppu
	sy = c.ViewportH/2 - p.Y*ppu
	return sx, sy, ppu, true
}

// ScreenToNDC converts pixel coordinates to normalized device coordinates:
// [-1, 1] on both axes, Y up.
func (c *Camera) ScreenToNDC(sx, sy float64) components.Vec2 {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return components.Vec2{}
	}
	return components.Vec2{
		X: sx/c.ViewportW*2 - 1,
		Y: 1 - sy/c.ViewportH*2,
	}
}

// Wrap maps v into [-size/2, size/2] on a ring of the given size. The
// remainder keeps the sign of v, so a single add or subtract re-centers it.
func Wrap(v, size float64) float64 {
	r := math.Mod(v, size)
	if r < -size/2 {
		r += size
	}
	if r > size/2 {
		r -= size
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
