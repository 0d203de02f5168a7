package telemetry

import "github.com/pthm-cable/galaxy/components"

// FieldState is the field as sampled at the end of a window.
type FieldState struct {
	Frame    int64
	SimTime  float64
	Zoom     float64
	Offset   components.Vec2
	Velocity components.Vec2
	Depths   []float64
	Items    int
	Selected int
}

// Collector accumulates frame times and interaction events over windows
// of simulated time.
type Collector struct {
	windowSec float64

	windowStartFrame int64
	elapsed          float64
	frameTimes       []float64

	selections int
	closes     int
	reloads    int
}

// NewCollector creates a collector flushing every windowSec seconds of
// simulated time.
func NewCollector(windowSec float64) *Collector {
	if !(windowSec > 0) {
		windowSec = 10
	}
	return &Collector{windowSec: windowSec}
}

// RecordFrame adds one frame of dt seconds.
func (c *Collector) RecordFrame(dt float64) {
	if !components.Finite(dt) || dt < 0 {
		return
	}
	c.elapsed += dt
	c.frameTimes = append(c.frameTimes, dt)
}

// RecordSelection records an item being focused.
func (c *Collector) RecordSelection() { c.selections++ }

// RecordClose records the detail view closing.
func (c *Collector) RecordClose() { c.closes++ }

// RecordReload records a gallery reload.
func (c *Collector) RecordReload() { c.reloads++ }

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return c.elapsed >= c.windowSec
}

// Flush produces the window's stats and starts the next window.
func (c *Collector) Flush(st FieldState) WindowStats {
	fs := ComputeFrameStats(c.frameTimes)
	meanDepth, maxDepth := DepthStats(st.Depths)

	ws := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   st.Frame,
		SimTimeSec:       st.SimTime,

		Frames:      fs.Count,
		FrameMeanMS: fs.MeanMS,
		FrameStdMS:  fs.StdMS,
		FrameP50MS:  fs.P50MS,
		FrameP95MS:  fs.P95MS,
		FrameMaxMS:  fs.MaxMS,

		Zoom:    st.Zoom,
		OffsetX: st.Offset.X,
		OffsetY: st.Offset.Y,
		Speed:   st.Velocity.Len(),

		MeanDepth: meanDepth,
		MaxDepth:  maxDepth,

		Selections: c.selections,
		Closes:     c.closes,
		Reloads:    c.reloads,

		Items:    st.Items,
		Selected: st.Selected,
	}

	c.windowStartFrame = st.Frame
	c.elapsed = 0
	c.frameTimes = c.frameTimes[:0]
	c.selections = 0
	c.closes = 0
	c.reloads = 0
	return ws
}
