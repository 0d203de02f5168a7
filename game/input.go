package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/field"
	"github.com/pthm-cable/galaxy/selection"
)

// wheelScale converts raylib wheel steps to the pixel-like deltas the
// navigation expects. raylib reports scrolling up as positive; the field
// treats positive Y as scrolling down.
const wheelScale = -100

// gatherInput reads this frame's raylib input into a field.Input.
func (g *Game) gatherInput() field.Input {
	g.handleResize()
	g.handleKeys()

	in := field.Input{
		ScreenW: float64(g.screenW),
		ScreenH: float64(g.screenH),
	}

	mouse := rl.GetMousePosition()
	if rl.IsCursorOnScreen() {
		in.Pointer = g.toNDC(mouse)
		in.HasPointer = true
	}

	g.handlePointer(&in, mouse)

	wheel := rl.GetMouseWheelMoveV()
	in.WheelX = float64(wheel.X) * wheelScale
	in.WheelY = float64(wheel.Y) * wheelScale
	in.ZoomModifier = rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)

	switch rl.GetGestureDetected() {
	case rl.GesturePinchOut:
		in.Pinch = vecLen(rl.GetGesturePinchVector())
	case rl.GesturePinchIn:
		in.Pinch = -vecLen(rl.GetGesturePinchVector())
	}

	in.Escape = rl.IsKeyPressed(rl.KeyEscape)
	in.Rotate = g.pendingRotate || rl.IsKeyPressed(rl.KeyR)
	in.Close = in.Close || g.pendingClose
	g.pendingRotate, g.pendingClose = false, false
	return in
}

// handlePointer turns button state into drags and clicks. A press only
// becomes a drag once it leaves the dead zone, so a slightly shaky click
// still selects.
func (g *Game) handlePointer(in *field.Input, mouse rl.Vector2) {
	deadZone := float32(g.cfg.Navigation.DragDeadZone)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.pressPos = mouse
		g.pressed = true
		g.dragging = false
	}

	if g.pressed && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if !g.dragging {
			dx, dy := mouse.X-g.pressPos.X, mouse.Y-g.pressPos.Y
			if dx*dx+dy*dy > deadZone*deadZone {
				g.dragging = true
				in.Drag = components.Vec2{X: float64(dx), Y: float64(dy)}
			}
		} else {
			d := rl.GetMouseDelta()
			in.Drag = components.Vec2{X: float64(d.X), Y: float64(d.Y)}
		}
		in.Dragging = g.dragging
	}

	if g.pressed && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if !g.dragging {
			g.routeClick(in, mouse)
		}
		g.pressed = false
		g.dragging = false
	}
}

// routeClick sends a click to the grid, or while focused closes the detail
// view when it lands on the backdrop.
func (g *Game) routeClick(in *field.Input, mouse rl.Vector2) {
	if g.engine.Selection().State() != selection.Focused {
		in.Click = true
		return
	}
	if g.detailLayout().onBackdrop(mouse) {
		in.Close = true
	}
}

// handleKeys processes viewer-only keys.
func (g *Game) handleKeys() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.Reload()
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, enabled, ok := g.overlays.HandleKeyPress(key); ok {
			g.logger.Debug("overlay toggled", "overlay", string(id), "enabled", enabled)
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w <= 0 || h <= 0 || (w == g.screenW && h == g.screenH) {
		return
	}
	g.screenW = w
	g.screenH = h
	g.engine.Camera().Resize(float64(w), float64(h))
}

// toNDC maps a window position to normalized device coordinates, Y up.
func (g *Game) toNDC(p rl.Vector2) components.Vec2 {
	return g.engine.Camera().ScreenToNDC(float64(p.X), float64(p.Y))
}

func vecLen(v rl.Vector2) float64 {
	return math.Hypot(float64(v.X), float64(v.Y))
}
