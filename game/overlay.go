package game

import (
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// detailRects is the screen layout of the focused view.
type detailRects struct {
	Image  rl.Rectangle
	Left   rl.Rectangle
	Right  rl.Rectangle
	Close  rl.Rectangle
	Rotate rl.Rectangle
}

// onBackdrop reports whether p misses the image, the text panels and the
// controls.
func (d detailRects) onBackdrop(p rl.Vector2) bool {
	for _, r := range []rl.Rectangle{d.Image, d.Left, d.Right, d.Close, d.Rotate} {
		if rl.CheckCollisionPointRec(p, r) {
			return false
		}
	}
	return true
}

// detailLayout places the image in the middle with a text column either
// side and the controls in the top right corner.
func (g *Game) detailLayout() detailRects {
	const margin, btnW, btnH, top = 24, 100, 32, 72
	w, h := g.screenW, g.screenH

	side := float32(math.Max(140, math.Min(320, float64(w)*0.18)))
	imgX := 2*margin + side
	imgW := w - 2*imgX
	if imgW < 0 {
		imgW = 0
	}
	colH := h - top - margin - 40

	return detailRects{
		Image:  rl.Rectangle{X: imgX, Y: top, Width: imgW, Height: colH},
		Left:   rl.Rectangle{X: margin, Y: top, Width: side, Height: colH},
		Right:  rl.Rectangle{X: w - margin - side, Y: top, Width: side, Height: colH},
		Close:  rl.Rectangle{X: w - margin - btnW, Y: margin, Width: btnW, Height: btnH},
		Rotate: rl.Rectangle{X: w - 2*margin - 2*btnW + margin/2, Y: margin, Width: btnW, Height: btnH},
	}
}

// drawDetail renders the focused item over a dimmed backdrop. Button
// presses are queued and reach the engine with the next frame's input.
func (g *Game) drawDetail() {
	focus, ok := g.engine.Selection().Focus()
	if !ok {
		return
	}
	disp := g.engine.Selection().Display()
	th := g.renderer.Theme
	lay := g.detailLayout()

	rl.DrawRectangle(0, 0, int32(g.screenW), int32(g.screenH), th.Backdrop)

	// Image, clipped to its frame so zoom and pan stay inside.
	rl.BeginScissorMode(int32(lay.Image.X), int32(lay.Image.Y), int32(lay.Image.Width), int32(lay.Image.Height))
	cx := lay.Image.X + lay.Image.Width/2 + float32(disp.Pan.X)
	cy := lay.Image.Y + lay.Image.Height/2 + float32(disp.Pan.Y)
	if tex, ok := g.textures.Get(focus.ImageRef); ok {
		tw, thgt := float32(tex.Width), float32(tex.Height)
		fitW, fitH := tw, thgt
		if focus.Rotation%180 == 90 {
			fitW, fitH = thgt, tw
		}
		fit := float32(math.Min(float64(lay.Image.Width/fitW), float64(lay.Image.Height/fitH)))
		s := fit * float32(disp.Scale)
		dw, dh := tw*s, thgt*s
		rl.DrawTexturePro(tex,
			rl.Rectangle{Width: tw, Height: thgt},
			rl.Rectangle{X: cx, Y: cy, Width: dw, Height: dh},
			rl.Vector2{X: dw / 2, Y: dh / 2},
			float32(disp.Rotation), rl.White)
	} else {
		s := float32(disp.Scale)
		dw, dh := lay.Image.Height*0.75*s, lay.Image.Height*s
		rl.DrawRectanglePro(rl.Rectangle{X: cx, Y: cy, Width: dw, Height: dh},
			rl.Vector2{X: dw / 2, Y: dh / 2}, float32(disp.Rotation), th.CardFallback)
		msg := "Loading..."
		rl.DrawText(msg, int32(cx)-rl.MeasureText(msg, 20)/2, int32(cy)-10, 20, th.LabelColor)
	}
	rl.EndScissorMode()

	// Side panels
	pad := th.Padding
	if focus.LeftText != "" {
		g.renderer.DrawPanel(int32(lay.Left.X), int32(lay.Left.Y), int32(lay.Left.Width), int32(lay.Left.Height))
		g.renderer.DrawWrapped(focus.LeftText, int32(lay.Left.X)+pad, int32(lay.Left.Y)+pad, int32(lay.Left.Width)-2*pad, th.FontSize, th.ValueColor)
	}
	if focus.RightText != "" {
		g.renderer.DrawPanel(int32(lay.Right.X), int32(lay.Right.Y), int32(lay.Right.Width), int32(lay.Right.Height))
		g.renderer.DrawWrapped(focus.RightText, int32(lay.Right.X)+pad, int32(lay.Right.Y)+pad, int32(lay.Right.Width)-2*pad, th.FontSize, th.ValueColor)
	}

	// Caption under the image
	capW := rl.MeasureText(focus.Caption, th.CaptionSize)
	capX := int32(lay.Image.X+lay.Image.Width/2) - capW/2
	rl.DrawText(focus.Caption, capX, int32(lay.Image.Y+lay.Image.Height)+12, th.CaptionSize, th.CaptionColor)

	// Controls
	if gui.Button(lay.Rotate, "Rotate") {
		g.pendingRotate = true
	}
	if gui.Button(lay.Close, "Close") {
		g.pendingClose = true
	}
}
