// Package telemetry records frame timings and field activity and writes
// them as CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameStats summarizes a set of frame durations in milliseconds.
type FrameStats struct {
	Count  int
	MeanMS float64
	StdMS  float64
	P50MS  float64
	P95MS  float64
	MaxMS  float64
}

// ComputeFrameStats summarizes frame durations given in seconds.
// Percentiles use the empirical quantile.
func ComputeFrameStats(seconds []float64) FrameStats {
	n := len(seconds)
	if n == 0 {
		return FrameStats{}
	}
	ms := make([]float64, n)
	for i, s := range seconds {
		ms[i] = s * 1000
	}
	sort.Float64s(ms)

	fs := FrameStats{Count: n, MaxMS: ms[n-1]}
	if n == 1 {
		fs.MeanMS = ms[0]
	} else {
		fs.MeanMS, fs.StdMS = stat.MeanStdDev(ms, nil)
	}
	fs.P50MS = stat.Quantile(0.5, stat.Empirical, ms, nil)
	fs.P95MS = stat.Quantile(0.95, stat.Empirical, ms, nil)
	return fs
}

// DepthStats returns the mean and maximum of cell depths.
func DepthStats(depths []float64) (mean, max float64) {
	if len(depths) == 0 {
		return 0, 0
	}
	return stat.Mean(depths, nil), floats.Max(depths)
}

// WindowStats is one frames.csv row: activity over a window of simulated
// time.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	Frames      int     `csv:"frames"`
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP95MS  float64 `csv:"frame_p95_ms"`
	FrameMaxMS  float64 `csv:"frame_max_ms"`

	// Navigation at window end
	Zoom    float64 `csv:"zoom"`
	OffsetX float64 `csv:"offset_x"`
	OffsetY float64 `csv:"offset_y"`
	Speed   float64 `csv:"speed"`

	// Cells at window end
	MeanDepth float64 `csv:"mean_depth"`
	MaxDepth  float64 `csv:"max_depth"`

	// Interaction during window
	Selections int `csv:"selections"`
	Closes     int `csv:"closes"`
	Reloads    int `csv:"reloads"`

	Items    int `csv:"items"`
	Selected int `csv:"selected"` // -1 when idle
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_p95_ms", s.FrameP95MS),
		slog.Float64("zoom", s.Zoom),
		slog.Float64("offset_x", s.OffsetX),
		slog.Float64("offset_y", s.OffsetY),
		slog.Float64("speed", s.Speed),
		slog.Float64("mean_depth", s.MeanDepth),
		slog.Int("selections", s.Selections),
		slog.Int("closes", s.Closes),
		slog.Int("reloads", s.Reloads),
		slog.Int("selected", s.Selected),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats", "window", s)
}
