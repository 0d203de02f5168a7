package field

import (
	"math"

	"github.com/pthm-cable/galaxy/components"
)

// Autopilot scripts input for headless runs. The pointer orbits the
// viewport centre, a slow drag sweeps the field, and every Period seconds
// a card is clicked, rotated, zoomed and closed again.
type Autopilot struct {
	Radius   float64 // pointer orbit radius in NDC
	OrbitSec float64 // seconds per orbit
	Period   float64 // seconds between clicks
	Hold     float64 // seconds an item stays focused
	DragPx   float64 // drag pixels per second while idle
	ScreenW  float64
	ScreenH  float64

	t       float64
	clicked bool
	rotated bool
	zoomed  bool
}

// NewAutopilot returns a script with defaults suited to the default grid.
func NewAutopilot(screenW, screenH float64) *Autopilot {
	return &Autopilot{
		Radius:   0.5,
		OrbitSec: 8,
		Period:   5,
		Hold:     2,
		DragPx:   120,
		ScreenW:  screenW,
		ScreenH:  screenH,
	}
}

// Next returns the input for a frame lasting dt seconds.
func (a *Autopilot) Next(dt float64) Input {
	if !components.Finite(dt) || dt < 0 {
		dt = 0
	}
	a.t += dt

	angle := 2 * math.Pi * a.t / a.OrbitSec
	in := Input{
		ScreenW:    a.ScreenW,
		ScreenH:    a.ScreenH,
		Pointer:    components.Vec2{X: a.Radius * math.Cos(angle), Y: a.Radius * math.Sin(angle)},
		HasPointer: true,
	}

	phase := math.Mod(a.t, a.Period)
	switch {
	case phase < dt && a.t > dt:
		in.Click = true
		a.clicked = true
		a.rotated, a.zoomed = false, false
	case a.clicked && phase >= a.Hold:
		in.Close = true
		a.clicked = false
	case a.clicked && !a.zoomed && phase >= a.Hold/3:
		in.WheelY = -250
		a.zoomed = true
	case a.clicked && !a.rotated && phase >= a.Hold/2:
		in.Rotate = true
		a.rotated = true
	case !a.clicked:
		in.Drag = components.Vec2{X: a.DragPx * dt, Y: a.DragPx * dt * 0.4}
		in.Dragging = true
	}
	return in
}

// Time returns seconds scripted so far.
func (a *Autopilot) Time() float64 { return a.t }
