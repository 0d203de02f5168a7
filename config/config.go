// Package config provides configuration loading and access for the field
// engine and viewer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Noise backends.
const (
	NoiseSimplex = "simplex"
	NoisePerlin  = "perlin"
)

// Smoothing modes for cell depth and tilt.
const (
	SmoothExp    = "exp"
	SmoothSpring = "spring"
)

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Grid       GridConfig       `yaml:"grid"`
	Navigation NavigationConfig `yaml:"navigation"`
	Noise      NoiseConfig      `yaml:"noise"`
	Cell       CellConfig       `yaml:"cell"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Detail     DetailConfig     `yaml:"detail"`
	Gallery    GalleryConfig    `yaml:"gallery"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	FOV       float64 `yaml:"fov"` // vertical field of view, degrees
}

// GridConfig holds the fixed grid shape. The grid is a torus of
// Cols*SpacingX by Rows*SpacingY world units.
type GridConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	SpacingX float64 `yaml:"spacing_x"`
	SpacingY float64 `yaml:"spacing_y"`
	CardW    float64 `yaml:"card_w"` // card size before ScaleJitter
	CardH    float64 `yaml:"card_h"`
}

// NavigationConfig holds pan/zoom integration parameters.
type NavigationConfig struct {
	InitialZoom      float64 `yaml:"initial_zoom"`
	ReferenceZoom    float64 `yaml:"reference_zoom"`     // zoom at which pan speed is nominal
	MinZoom          float64 `yaml:"min_zoom"`
	MaxZoom          float64 `yaml:"max_zoom"`
	ZoomInFactor     float64 `yaml:"zoom_in_factor"`     // applied for negative wheel deltas
	ZoomOutFactor    float64 `yaml:"zoom_out_factor"`    // applied for positive wheel deltas
	ZoomRate         float64 `yaml:"zoom_rate"`          // exponential approach rate, 1/s
	ZoomEpsilon      float64 `yaml:"zoom_epsilon"`       // snap distance
	PinchSensitivity float64 `yaml:"pinch_sensitivity"`
	Friction         float64 `yaml:"friction"`           // velocity multiplier per frame, (0, 1]
	DragSpeed        float64 `yaml:"drag_speed"`         // world units per pixel at reference zoom
	WheelSpeed       float64 `yaml:"wheel_speed"`
	DriftGain        float64 `yaml:"drift_gain"`         // noise drift added to velocity per frame
	DriftSampleScale float64 `yaml:"drift_sample_scale"` // offset scale for noise sampling
	DragDeadZone     float64 `yaml:"drag_dead_zone"`     // pixels before a press becomes a drag
}

// NoiseConfig holds the ambient drift field parameters.
type NoiseConfig struct {
	Backend   string  `yaml:"backend"` // simplex | perlin
	Seed      int64   `yaml:"seed"`
	Scale     float64 `yaml:"scale"`
	TimeScale float64 `yaml:"time_scale"`
	Magnitude float64 `yaml:"magnitude"`
}

// CellConfig holds per-cell animation parameters.
type CellConfig struct {
	ConveyorSpeed float64 `yaml:"conveyor_speed"`
	FloatAmpY     float64 `yaml:"float_amp_y"`
	FloatAmpZ     float64 `yaml:"float_amp_z"`
	FloatFreqZ    float64 `yaml:"float_freq_z"`
	SelectedLift  float64 `yaml:"selected_lift"`
	TiltFactor    float64 `yaml:"tilt_factor"`
	TiltForce     float64 `yaml:"tilt_force"`
	Smoothing     string  `yaml:"smoothing"` // exp | spring
	DepthRate     float64 `yaml:"depth_rate"`
	TiltRate      float64 `yaml:"tilt_rate"`
	SpringFreq    float64 `yaml:"spring_freq"`
	SpringDamping float64 `yaml:"spring_damping"`

	// Personality ranges
	FloatSpeedMin float64 `yaml:"float_speed_min"`
	FloatSpeedMax float64 `yaml:"float_speed_max"`
	ScaleJitter   float64 `yaml:"scale_jitter"` // ScaleJitter drawn from [1, 1+this)
}

// GravityConfig holds cursor attraction parameters.
type GravityConfig struct {
	Radius      float64 `yaml:"radius"`
	Strength    float64 `yaml:"strength"`
	LateralGain float64 `yaml:"lateral_gain"`
	DepthGain   float64 `yaml:"depth_gain"`
}

// DetailConfig holds the focused detail view parameters.
type DetailConfig struct {
	MinScale        float64 `yaml:"min_scale"`
	MaxScale        float64 `yaml:"max_scale"`
	WheelSpeed      float64 `yaml:"wheel_speed"`
	RotateDuration  float64 `yaml:"rotate_duration"` // seconds
	ScaleDuration   float64 `yaml:"scale_duration"`  // seconds
	PlaceholderURL  string  `yaml:"placeholder_url"` // %d receives id+100
	FallbackCaption string  `yaml:"fallback_caption"`
}

// GalleryConfig holds item source parameters.
type GalleryConfig struct {
	Manifest       string `yaml:"manifest"`
	PublicRoot     string `yaml:"public_root"`
	PlaceholderURL string `yaml:"placeholder_url"` // %d receives index+100
	PlaceholderCap string `yaml:"placeholder_caption"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow   int     `yaml:"perf_window"`   // frames per rolling window
	StatsWindow  float64 `yaml:"stats_window"`  // seconds between stats writes
	HeadlessStep float64 `yaml:"headless_step"` // simulated frame time in headless mode
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW   float64 // Cols * SpacingX
	WorldH   float64 // Rows * SpacingY
	Cells    int     // Rows * Cols
	FOVRad   float64
	AspectXY float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the engine cannot run with. The toroidal
// wrap needs positive grid extents; everything else is tunable.
func (c *Config) Validate() error {
	var errs []error
	g := c.Grid
	if g.Rows <= 0 || g.Cols <= 0 {
		errs = append(errs, fmt.Errorf("grid: rows and cols must be positive (got %dx%d)", g.Rows, g.Cols))
	}
	if !(g.SpacingX > 0) || !(g.SpacingY > 0) {
		errs = append(errs, fmt.Errorf("grid: spacing must be positive (got %v, %v)", g.SpacingX, g.SpacingY))
	}

	n := c.Navigation
	if !(n.MinZoom > 0) || n.MinZoom > n.MaxZoom {
		errs = append(errs, fmt.Errorf("navigation: invalid zoom range [%v, %v]", n.MinZoom, n.MaxZoom))
	}
	if !(n.Friction > 0) || n.Friction > 1 {
		errs = append(errs, fmt.Errorf("navigation: friction must be in (0, 1] (got %v)", n.Friction))
	}
	if !(n.ReferenceZoom > 0) {
		errs = append(errs, errors.New("navigation: reference_zoom must be positive"))
	}

	switch c.Noise.Backend {
	case NoiseSimplex, NoisePerlin:
	default:
		errs = append(errs, fmt.Errorf("noise: unknown backend %q", c.Noise.Backend))
	}
	switch c.Cell.Smoothing {
	case SmoothExp, SmoothSpring:
	default:
		errs = append(errs, fmt.Errorf("cell: unknown smoothing %q", c.Cell.Smoothing))
	}

	if !(c.Gravity.Radius > 0) {
		errs = append(errs, errors.New("gravity: radius must be positive"))
	}
	if !(c.Detail.MinScale > 0) || c.Detail.MinScale > c.Detail.MaxScale {
		errs = append(errs, fmt.Errorf("detail: invalid scale range [%v, %v]", c.Detail.MinScale, c.Detail.MaxScale))
	}
	if c.Screen.FOV <= 0 || c.Screen.FOV >= 180 {
		errs = append(errs, fmt.Errorf("screen: fov must be in (0, 180) (got %v)", c.Screen.FOV))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW = float64(c.Grid.Cols) * c.Grid.SpacingX
	c.Derived.WorldH = float64(c.Grid.Rows) * c.Grid.SpacingY
	c.Derived.Cells = c.Grid.Rows * c.Grid.Cols
	c.Derived.FOVRad = c.Screen.FOV * math.Pi / 180
	c.Derived.AspectXY = 1
	if c.Screen.Height > 0 {
		c.Derived.AspectXY = float64(c.Screen.Width) / float64(c.Screen.Height)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
