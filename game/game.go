// Package game hosts the raylib viewer and the headless driver around the
// field engine.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/field"
	"github.com/pthm-cable/galaxy/gallery"
	"github.com/pthm-cable/galaxy/selection"
	"github.com/pthm-cable/galaxy/telemetry"
	"github.com/pthm-cable/galaxy/ui"
)

// Title is the window title.
const Title = "Galaxy"

// Options configures a game instance.
type Options struct {
	Seed           int64   // noise and personality seed; 0 keeps the config value
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // seconds per stats window; 0 uses the config value
	OutputDir      string  // directory for CSV logs and config snapshot
	Headless       bool    // no window; input comes from the autopilot
	GalleryPath    string  // manifest path; empty uses the config value
	PublicRoot     string  // root for local image references; empty uses the config value
	Logger         *slog.Logger
}

// Game holds the viewer state around one field engine.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	engine *field.Engine
	source *gallery.Source

	// Headless input
	autopilot *field.Autopilot

	// Rendering
	textures    *TextureCache
	renderer    *ui.Renderer
	hud         *ui.HUD
	perfPanel   *ui.PerfPanel
	overlays    *ui.OverlayRegistry
	statusPanel ui.PanelDescriptor
	cells       []field.CellView // depth-sorted scratch

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
	selSub    *selection.Subscription

	// Pointer state
	pressPos      rl.Vector2
	pressed       bool
	dragging      bool
	pendingClose  bool
	pendingRotate bool

	screenW, screenH float32
}

// NewGame loads the gallery and builds the field. In graphical mode the
// raylib window must already be open.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Seed != 0 {
		cfg.Noise.Seed = opts.Seed
	}
	galleryPath := opts.GalleryPath
	if galleryPath == "" {
		galleryPath = cfg.Gallery.Manifest
	}
	publicRoot := opts.PublicRoot
	if publicRoot == "" {
		publicRoot = cfg.Gallery.PublicRoot
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	source := gallery.NewSource(galleryPath, logger)
	engine, err := field.New(cfg, source.Items(), logger)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		engine.Close()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config snapshot", "error", err)
	}

	g := &Game{
		cfg:       cfg,
		logger:    logger,
		engine:    engine,
		source:    source,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(statsWindow),
		output:    output,
		logStats:  opts.LogStats,
		screenW:   float32(cfg.Screen.Width),
		screenH:   float32(cfg.Screen.Height),
		cells:     make([]field.CellView, 0, engine.Len()),
	}
	engine.SetPerf(g.perf)

	g.selSub = engine.Selection().OnChange(func(ch selection.Change) {
		switch ch.To {
		case selection.Focused:
			g.collector.RecordSelection()
		case selection.Idle:
			g.collector.RecordClose()
		}
	})

	if opts.Headless {
		g.autopilot = field.NewAutopilot(float64(g.screenW), float64(g.screenH))
	} else {
		g.textures = NewTextureCache(gallery.NewFetcher(publicRoot), logger)
		g.renderer = ui.NewRenderer()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, 100)
		g.overlays = ui.NewOverlayRegistry()
		g.statusPanel = g.newStatusPanel()
		// Escape closes the detail view instead of the window.
		rl.SetExitKey(0)
	}

	logger.Info("game created",
		"gallery", galleryPath,
		"items", source.Len(),
		"public_root", publicRoot,
		"headless", opts.Headless,
		"seed", cfg.Noise.Seed,
		"output_dir", output.Dir(),
	)
	return g, nil
}

// Update gathers input and advances one frame of wall-clock time.
func (g *Game) Update() {
	dt := float64(rl.GetFrameTime())
	in := g.gatherInput()
	g.engine.Step(dt, in)
	g.textures.Poll()
	g.perf.RecordFrame()
	g.recordFrame(dt)
}

// UpdateHeadless advances one fixed step driven by the autopilot.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Telemetry.HeadlessStep
	g.engine.Step(dt, g.autopilot.Next(dt))
	g.perf.RecordFrame()
	g.recordFrame(dt)
}

// Reload re-reads the gallery manifest and hands the items to the field.
// On a read error the previous items stay.
func (g *Game) Reload() {
	if err := g.source.Reload(); err != nil {
		return
	}
	g.engine.SetItems(g.source.Items())
	g.collector.RecordReload()
}

// Draw renders the frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 8, B: 12, A: 255})

	g.drawField()
	if g.overlays.IsEnabled(ui.OverlayBounds) {
		g.drawBounds()
	}
	if g.overlays.IsEnabled(ui.OverlayGravity) {
		g.drawGravity()
	}

	if g.engine.Selection().State() == selection.Focused {
		g.drawDetail()
	} else {
		g.drawHUD()
	}

	rl.EndDrawing()
}

// drawHUD renders the HUD and perf panel when enabled.
func (g *Game) drawHUD() {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		nav := g.engine.Navigation()
		g.hud.Draw(ui.HUDData{
			Title:    Title,
			FPS:      rl.GetFPS(),
			Frame:    g.engine.Frame(),
			Cells:    g.engine.Len(),
			Items:    g.source.Len(),
			Zoom:     nav.Zoom,
			OffsetX:  nav.Offset.X,
			OffsetY:  nav.Offset.Y,
			Selected: g.engine.Selection().SelectedID(),
			Loading:  g.textures.Loading(),
		})
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perf.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.renderer.DrawPanelDescriptor(g.statusPanel, g, int32(g.screenW), int32(g.screenH))
	}
	g.hud.DrawControls(int32(g.screenH), "Drag: pan  Wheel: pan  Ctrl+Wheel: zoom  Click: open  F5: reload  "+g.overlays.Legend())
}

// Frame returns the number of completed field steps.
func (g *Game) Frame() int64 { return g.engine.Frame() }

// Engine returns the field engine.
func (g *Game) Engine() *field.Engine { return g.engine }

// Unload releases listeners, textures and output files.
func (g *Game) Unload() {
	g.selSub.Remove()
	g.engine.Close()
	if g.textures != nil {
		g.textures.Unload()
	}
	if err := g.output.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}
