package field

import "github.com/pthm-cable/galaxy/components"

// Input is everything the viewer gathered since the previous frame. The
// engine consumes it at the start of Step; nothing else writes engine
// state.
type Input struct {
	// Screen size in pixels. Zero keeps the previous size.
	ScreenW, ScreenH float64

	// Pointer in normalized device coordinates, Y up. HasPointer is false
	// when the pointer has not moved or left the window; the last known
	// position is reused.
	Pointer    components.Vec2
	HasPointer bool

	// Drag is the pointer movement in pixels while a drag is held.
	Drag     components.Vec2
	Dragging bool

	// Wheel deltas. ZoomModifier routes WheelY to zoom instead of pan.
	WheelX, WheelY float64
	ZoomModifier   bool

	// Pinch is the signed pinch movement this frame; positive spreads.
	Pinch float64

	// Click is a press and release without a drag, at Pointer.
	Click bool

	Escape bool // keyboard escape
	Close  bool // close control or backdrop click
	Rotate bool // rotate control
}
