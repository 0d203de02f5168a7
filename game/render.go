package game

import (
	"math"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/field"
	"github.com/pthm-cable/galaxy/ui"
)

// minCaptionPPU is the scale below which card captions are skipped.
const minCaptionPPU = 18

// drawField renders all cards back to front.
func (g *Game) drawField() {
	g.cells = g.cells[:0]
	g.engine.Cells(func(c field.CellView) {
		g.cells = append(g.cells, c)
	})
	sort.Slice(g.cells, func(i, j int) bool {
		return g.cells[i].Transform.Depth < g.cells[j].Transform.Depth
	})

	cam := g.engine.Camera()
	captions := g.overlays.IsEnabled(ui.OverlayCaptions)
	for i := range g.cells {
		c := &g.cells[i]
		sx, sy, ppu, ok := cam.WorldToScreen(c.Transform.Position)
		if !ok {
			continue
		}
		hw, hh := g.engine.CardHalfExtents(c.Personality)
		// Tilt foreshortens the card along the tilted axis.
		w := float32(2 * hw * ppu * math.Cos(c.Transform.RotY))
		h := float32(2 * hh * ppu * math.Cos(c.Transform.RotX))
		dst := rl.Rectangle{X: float32(sx) - w/2, Y: float32(sy) - h/2, Width: w, Height: h}
		if dst.X > g.screenW || dst.Y > g.screenH || dst.X+w < 0 || dst.Y+h < 0 {
			continue
		}

		g.drawCard(c, dst)
		if captions && ppu >= minCaptionPPU {
			rl.DrawText(c.Item.Caption, int32(dst.X), int32(dst.Y+dst.Height+4), 10, g.renderer.Theme.CaptionColor)
		}
	}
}

// drawCard draws a card's image cropped to fill dst, or a fallback card
// while the image loads or when it failed.
func (g *Game) drawCard(c *field.CellView, dst rl.Rectangle) {
	tint := rl.White
	if c.Selected {
		tint = rl.Color{R: 255, G: 244, B: 214, A: 255}
	}
	if tex, ok := g.textures.Get(c.Item.ImageRef); ok {
		rl.DrawTexturePro(tex, coverSource(tex, dst.Width/dst.Height), dst, rl.Vector2{}, 0, tint)
	} else {
		g.drawFallbackCard(c.Item, dst)
	}
	if c.Selected {
		rl.DrawRectangleLinesEx(dst, 2, g.renderer.Theme.SectionHeader)
	}
}

// drawFallbackCard draws a plain card with the caption wrapped inside.
func (g *Game) drawFallbackCard(item components.ItemView, dst rl.Rectangle) {
	th := g.renderer.Theme
	rl.DrawRectangleRec(dst, th.CardFallback)
	rl.DrawRectangleLinesEx(dst, 1, th.PanelBorder)
	if dst.Width < 40 {
		return
	}
	pad := int32(6)
	g.renderer.DrawWrapped(item.Caption, int32(dst.X)+pad, int32(dst.Y)+pad, int32(dst.Width)-2*pad, 10, th.CaptionColor)
}

// coverSource returns the texture region that fills a destination of the
// given aspect ratio without stretching.
func coverSource(tex rl.Texture2D, aspect float32) rl.Rectangle {
	tw, th := float32(tex.Width), float32(tex.Height)
	if tw <= 0 || th <= 0 || !(aspect > 0) {
		return rl.Rectangle{Width: tw, Height: th}
	}
	if tw/th > aspect {
		w := th * aspect
		return rl.Rectangle{X: (tw - w) / 2, Width: w, Height: th}
	}
	h := tw / aspect
	return rl.Rectangle{Y: (th - h) / 2, Width: tw, Height: h}
}

// drawGravity draws the cursor's attraction radius on the z=0 plane.
func (g *Game) drawGravity() {
	cur := g.engine.Cursor()
	sx, sy, ppu, ok := g.engine.Camera().WorldToScreen(cur)
	if !ok {
		return
	}
	r := float32(g.cfg.Gravity.Radius * ppu)
	rl.DrawCircleLines(int32(sx), int32(sy), r, rl.Fade(rl.SkyBlue, 0.6))
	rl.DrawCircle(int32(sx), int32(sy), 3, rl.SkyBlue)
}

// drawBounds outlines one torus period around the origin.
func (g *Game) drawBounds() {
	cam := g.engine.Camera()
	hw, hh := g.cfg.Derived.WorldW/2, g.cfg.Derived.WorldH/2
	x0, y0, _, ok0 := cam.WorldToScreen(components.Vec3{X: -hw, Y: hh})
	x1, y1, _, ok1 := cam.WorldToScreen(components.Vec3{X: hw, Y: -hh})
	if !ok0 || !ok1 {
		return
	}
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X: float32(x0), Y: float32(y0),
		Width: float32(x1 - x0), Height: float32(y1 - y0),
	}, 1, rl.Fade(rl.Orange, 0.5))
}
