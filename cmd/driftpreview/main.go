// Drift field preview tool - interactive visualization of the ambient noise
// drift with sliders.
//
// Usage: go run ./cmd/driftpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 512
	gridSize     = 128
	arrowStep    = 16 // grid cells between arrows
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	span := flag.Float64("span", 40, "World units covered by the preview")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	initial := cfg.Noise
	params := initial

	rl.InitWindow(windowWidth, windowHeight, "Drift Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	angles := make([]float64, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var t float64
	animating := true
	nf := systems.NewNoiseField(params)

	for !rl.WindowShouldClose() {
		if animating {
			t += float64(rl.GetFrameTime())
		}

		sampleField(nf, angles, *span, t)
		updateTexture(texture, angles)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		drawArrows(angles)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		drift := nf.Sample(0, 0, t)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Time: %.1f  Backend: %s", t, params.Backend), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Drift at origin: (%.5f, %.5f)", drift.X, drift.Y), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		slider := func(label string, value *float64, min, max float64, format string) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*value), float32(min), float32(max),
			)
			rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(v) != float64(float32(*value)) {
				*value = float64(v)
				changed = true
			}
			panelY += 35
		}

		slider("Scale (spatial frequency)", &params.Scale, 0.01, 2, "%.2f")
		slider("Time scale (evolution speed)", &params.TimeScale, 0, 2, "%.2f")
		slider("Magnitude (drift per frame)", &params.Magnitude, 0, 0.01, "%.4f")
		seed := float64(params.Seed)
		slider("Seed", &seed, 0, 99999, "%.0f")
		params.Seed = int64(seed)

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
		}
		panelY += 45

		other := config.NoisePerlin
		if params.Backend == config.NoisePerlin {
			other = config.NoiseSimplex
		}
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Use "+other) {
			params.Backend = other
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = initial
			t = 0
			changed = true
		}
		panelY += 55

		if changed {
			nf = systems.NewNoiseField(params)
		}

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := noiseYAML(params)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func noiseYAML(p config.NoiseConfig) string {
	return fmt.Sprintf(`noise:
  backend: %s
  seed: %d
  scale: %.2f
  time_scale: %.2f
  magnitude: %.4f`,
		p.Backend, p.Seed, p.Scale, p.TimeScale, p.Magnitude)
}

// sampleField fills angles with drift directions over span world units
// centered on the origin.
func sampleField(nf *systems.NoiseField, angles []float64, span, t float64) {
	for y := 0; y < gridSize; y++ {
		wy := ((float64(y)+0.5)/gridSize - 0.5) * span
		for x := 0; x < gridSize; x++ {
			wx := ((float64(x)+0.5)/gridSize - 0.5) * span
			angles[y*gridSize+x] = nf.Angle(wx, -wy, t)
		}
	}
}

// drawArrows overlays direction arrows on the preview.
func drawArrows(angles []float64) {
	const cell = float32(previewSize) / gridSize
	const length = cell * arrowStep * 0.4
	for y := arrowStep / 2; y < gridSize; y += arrowStep {
		for x := arrowStep / 2; x < gridSize; x += arrowStep {
			a := angles[y*gridSize+x]
			cx := 10 + (float32(x)+0.5)*cell
			cy := 10 + (float32(y)+0.5)*cell
			// World Y is up, screen Y is down.
			ex := cx + float32(math.Cos(a))*length
			ey := cy - float32(math.Sin(a))*length
			rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: ex, Y: ey}, 2, rl.Black)
			rl.DrawCircle(int32(ex), int32(ey), 2.5, rl.Black)
		}
	}
}

// updateTexture colors each cell by drift direction.
func updateTexture(texture rl.Texture2D, angles []float64) {
	pixels := make([]color.RGBA, len(angles))
	for i, a := range angles {
		h := float32(a / (2 * math.Pi) * 360)
		c := rl.ColorFromHSV(h, 0.45, 0.95)
		pixels[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
