// Package selection tracks which gallery item is focused and the focused
// item's zoom, pan and rotation.
package selection

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
)

// State is the controller's mode.
type State int

const (
	Idle State = iota
	Focused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Focused:
		return "focused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Focus is the authoritative selection. Rotation is one of 0, 90, 180 or
// 270.
type Focus struct {
	ID        int
	ImageRef  string
	Caption   string
	LeftText  string
	RightText string

	Scale    float64
	Pan      components.Vec2
	Rotation int
}

// Display is the eased transform the detail view should draw this frame.
// It trails Focus by the configured tween durations.
type Display struct {
	Scale    float64
	Pan      components.Vec2
	Rotation float64
}

// Change describes one state transition. PrevID and ID are -1 when the
// respective side is Idle.
type Change struct {
	From, To   State
	PrevID, ID int
}

// Controller is the detail view state machine. It is not safe for
// concurrent use; the frame loop owns it.
type Controller struct {
	cfg    config.DetailConfig
	logger *slog.Logger

	state State
	focus Focus

	display   Display
	rotTarget float64 // unwrapped display rotation target
	scaleTw   *gween.Tween
	rotTw     *gween.Tween
	panTw     [2]*gween.Tween

	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(Change)
}

// NewController creates an idle controller.
func NewController(cfg config.DetailConfig, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{cfg: cfg, logger: logger}
	c.resetTransform()
	return c
}

// State returns the current mode.
func (c *Controller) State() State { return c.state }

// Focus returns the focused item. ok is false while Idle.
func (c *Controller) Focus() (Focus, bool) {
	if c.state != Focused {
		return Focus{}, false
	}
	return c.focus, true
}

// SelectedID returns the focused id, or -1 while Idle.
func (c *Controller) SelectedID() int {
	if c.state != Focused {
		return -1
	}
	return c.focus.ID
}

// Display returns the eased transform for drawing.
func (c *Controller) Display() Display { return c.display }

// Activate handles a click on an item. Activating the focused id closes
// the view; any other id focuses it with a fresh transform.
func (c *Controller) Activate(id int, view components.ItemView) {
	if c.state == Focused && c.focus.ID == id {
		c.Close()
		return
	}
	c.Open(id, view)
}

// Open focuses id without the toggle rule. Used for deep links, where the
// same id may be opened again and still expects a reset view.
func (c *Controller) Open(id int, view components.ItemView) {
	prev := c.transition()
	c.state = Focused
	c.focus = Focus{
		ID:        id,
		ImageRef:  view.ImageRef,
		Caption:   view.Caption,
		LeftText:  view.LeftText,
		RightText: view.RightText,
	}
	if c.focus.ImageRef == "" {
		c.focus.ImageRef = fmt.Sprintf(c.cfg.PlaceholderURL, id+100)
	}
	if c.focus.Caption == "" {
		c.focus.Caption = c.cfg.FallbackCaption
	}
	c.resetTransform()
	c.logger.Debug("selection focused", "id", id, "image", c.focus.ImageRef)
	c.emit(prev)
}

// Close returns to Idle. Closing while Idle does nothing.
func (c *Controller) Close() {
	if c.state == Idle {
		return
	}
	prev := c.transition()
	c.state = Idle
	c.focus = Focus{}
	c.resetTransform()
	c.logger.Debug("selection closed", "id", prev.PrevID)
	c.emit(prev)
}

// SetZoom sets the focused scale, clamped to the configured range. Pan is
// recentered when the scale returns to rest.
func (c *Controller) SetZoom(scale float64) {
	if c.state != Focused || !components.Finite(scale) {
		return
	}
	scale = math.Max(c.cfg.MinScale, math.Min(c.cfg.MaxScale, scale))
	if scale == c.focus.Scale {
		return
	}
	c.focus.Scale = scale
	c.scaleTw = c.tween(c.display.Scale, scale, c.cfg.ScaleDuration)

	if scale <= 1 && c.focus.Pan != (components.Vec2{}) {
		c.focus.Pan = components.Vec2{}
		c.panTw[0] = c.tween(c.display.Pan.X, 0, c.cfg.ScaleDuration)
		c.panTw[1] = c.tween(c.display.Pan.Y, 0, c.cfg.ScaleDuration)
	}
}

// ZoomBy applies a wheel delta. Scrolling up (negative delta) zooms in.
func (c *Controller) ZoomBy(wheelDelta float64) {
	if !components.Finite(wheelDelta) {
		return
	}
	c.SetZoom(c.focus.Scale - wheelDelta*c.cfg.WheelSpeed)
}

// Pan moves the focused image by delta screen units. Ignored at rest
// scale. Pan comes from an active drag, so the display follows without
// easing.
func (c *Controller) Pan(delta components.Vec2) {
	if c.state != Focused || !(c.focus.Scale > 1) || !delta.IsFinite() {
		return
	}
	c.focus.Pan = c.focus.Pan.Add(delta)
	c.display.Pan = c.focus.Pan
	c.panTw = [2]*gween.Tween{}
}

// Rotate advances the rotation by a quarter turn.
func (c *Controller) Rotate() {
	if c.state != Focused {
		return
	}
	c.focus.Rotation = (c.focus.Rotation + 90) % 360
	c.rotTarget += 90
	c.rotTw = c.tween(c.display.Rotation, c.rotTarget, c.cfg.RotateDuration)
}

// Update advances the display tweens by dt seconds.
func (c *Controller) Update(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	step := float32(dt)

	if c.scaleTw != nil {
		v, done := c.scaleTw.Update(step)
		c.display.Scale = float64(v)
		if done {
			c.scaleTw = nil
		}
	}
	for i, tw := range c.panTw {
		if tw == nil {
			continue
		}
		v, done := tw.Update(step)
		if i == 0 {
			c.display.Pan.X = float64(v)
		} else {
			c.display.Pan.Y = float64(v)
		}
		if done {
			c.panTw[i] = nil
		}
	}
	if c.rotTw != nil {
		v, done := c.rotTw.Update(step)
		c.display.Rotation = float64(v)
		if done {
			c.rotTw = nil
			c.rotTarget = float64(c.focus.Rotation)
			c.display.Rotation = c.rotTarget
		}
	}
}

// OnChange registers fn for every transition. Call Remove on the returned
// handle when the owner is torn down.
func (c *Controller) OnChange(fn func(Change)) *Subscription {
	c.nextID++
	c.listeners = append(c.listeners, listener{id: c.nextID, fn: fn})
	return &Subscription{c: c, id: c.nextID}
}

// Listeners returns the number of registered change listeners.
func (c *Controller) Listeners() int { return len(c.listeners) }

// Subscription is a handle to a registered listener.
type Subscription struct {
	c  *Controller
	id int
}

// Remove deregisters the listener. Safe to call more than once and from
// inside the listener itself.
func (s *Subscription) Remove() {
	if s == nil || s.c == nil {
		return
	}
	ls := s.c.listeners
	for i, l := range ls {
		if l.id == s.id {
			s.c.listeners = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	s.c = nil
}

// transition captures the pre-change side of a Change.
func (c *Controller) transition() Change {
	return Change{From: c.state, PrevID: c.SelectedID()}
}

func (c *Controller) emit(ch Change) {
	ch.To = c.state
	ch.ID = c.SelectedID()
	// Copy so listeners may remove themselves.
	ls := append([]listener(nil), c.listeners...)
	for _, l := range ls {
		l.fn(ch)
	}
}

// resetTransform snaps both the focus transform and its display to rest.
func (c *Controller) resetTransform() {
	c.focus.Scale = 1
	c.focus.Pan = components.Vec2{}
	c.focus.Rotation = 0
	c.display = Display{Scale: 1}
	c.rotTarget = 0
	c.scaleTw = nil
	c.rotTw = nil
	c.panTw = [2]*gween.Tween{}
}

// tween eases from -> to. A non-positive duration finishes on the next
// Update.
func (c *Controller) tween(from, to, duration float64) *gween.Tween {
	if !(duration > 0) {
		duration = 1e-6
	}
	return gween.New(float32(from), float32(to), float32(duration), ease.OutCubic)
}
