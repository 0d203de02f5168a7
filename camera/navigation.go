package camera

import (
	"math"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
)

// Navigation integrates pan and zoom input into a world offset and a zoom
// scalar. Input handlers only write velocity and TargetZoom; Tick is the
// single consumer that advances Offset and Zoom.
type Navigation struct {
	Offset   components.Vec2
	Velocity components.Vec2

	// Zoom is the applied camera distance, smoothed toward TargetZoom.
	Zoom float64
	// TargetZoom is set immediately by input and always clamped.
	TargetZoom float64

	// Dragging suppresses drift and friction while a drag is held.
	Dragging bool

	cfg config.NavigationConfig
}

// NewNavigation creates a navigation state at the configured initial zoom.
func NewNavigation(cfg config.NavigationConfig) *Navigation {
	z := clamp(cfg.InitialZoom, cfg.MinZoom, cfg.MaxZoom)
	return &Navigation{
		Zoom:       z,
		TargetZoom: z,
		cfg:        cfg,
	}
}

// zoomFactor keeps the on-screen pan speed constant across zoom levels.
func (n *Navigation) zoomFactor() float64 {
	return n.TargetZoom / n.cfg.ReferenceZoom
}

// ApplyPan adds a velocity increment proportional to delta and zoom.
func (n *Navigation) ApplyPan(delta components.Vec2) {
	if !delta.IsFinite() {
		return
	}
	n.Velocity = n.Velocity.Add(delta.Scale(n.zoomFactor()))
}

// ApplyDrag handles a pointer drag in screen pixels. Screen Y grows
// downward, so it is inverted before reaching the world.
// A non-finite delta is dropped along with its drag state.
func (n *Navigation) ApplyDrag(delta components.Vec2, active bool) {
	if !delta.IsFinite() {
		return
	}
	n.Dragging = active
	s := n.cfg.DragSpeed
	n.ApplyPan(components.Vec2{X: delta.X * s, Y: -delta.Y * s})
}

// ApplyWheel routes a wheel event: with the zoom modifier it zooms,
// otherwise it pans like a trackpad scroll.
func (n *Navigation) ApplyWheel(dx, dy float64, zoomModifier bool) {
	if !components.Finite(dx, dy) {
		return
	}
	if zoomModifier {
		n.ApplyZoomDelta(dy)
		return
	}
	s := n.cfg.WheelSpeed
	n.ApplyPan(components.Vec2{X: -dx * s, Y: dy * s})
}

// ApplyZoomDelta scales the target zoom by a fixed factor chosen from the
// sign of delta: positive zooms out, negative zooms in.
func (n *Navigation) ApplyZoomDelta(delta float64) {
	if !components.Finite(delta) || delta == 0 {
		return
	}
	factor := n.cfg.ZoomInFactor
	if delta > 0 {
		factor = n.cfg.ZoomOutFactor
	}
	n.setTargetZoom(n.TargetZoom * factor)
}

// ApplyPinch applies a pinch movement. Spreading the fingers (positive
// movement) moves the camera closer.
func (n *Navigation) ApplyPinch(movement float64) {
	if !components.Finite(movement) || movement == 0 {
		return
	}
	n.setTargetZoom(n.TargetZoom * (1 - movement*n.cfg.PinchSensitivity))
}

func (n *Navigation) setTargetZoom(z float64) {
	if math.IsNaN(z) {
		return
	}
	n.TargetZoom = clamp(z, n.cfg.MinZoom, n.cfg.MaxZoom)
}

// Tick advances one frame. drift is the noise field sample for this frame.
// A non-finite dt or drift skips the frame and keeps the prior state.
func (n *Navigation) Tick(dt float64, drift components.Vec2) {
	if !components.Finite(dt) || !drift.IsFinite() {
		return
	}
	if dt < 0 {
		dt = 0
	}

	if !n.Dragging {
		n.Velocity = n.Velocity.Add(drift.Scale(n.cfg.DriftGain))
		n.Velocity = n.Velocity.Scale(n.cfg.Friction)
	}
	n.Offset = n.Offset.Add(n.Velocity)

	diff := n.TargetZoom - n.Zoom
	if math.Abs(diff) <= n.cfg.ZoomEpsilon {
		n.Zoom = n.TargetZoom
	} else {
		n.Zoom += diff * (1 - math.Exp(-n.cfg.ZoomRate*dt))
	}
	n.Zoom = clamp(n.Zoom, n.cfg.MinZoom, n.cfg.MaxZoom)
}

// DriftSamplePoint returns where the noise field is sampled this frame.
func (n *Navigation) DriftSamplePoint() components.Vec2 {
	return n.Offset.Scale(n.cfg.DriftSampleScale)
}

// Reset returns to the origin at the initial zoom.
func (n *Navigation) Reset() {
	*n = *NewNavigation(n.cfg)
}
