package game

import (
	"fmt"

	"github.com/pthm-cable/galaxy/ui"
)

// newStatusPanel describes the top-right navigation and loading panel. The
// getters receive the *Game.
func (g *Game) newStatusPanel() ui.PanelDescriptor {
	nav := g.cfg.Navigation
	return ui.PanelDescriptor{
		ID:     "status",
		Title:  "Field",
		Width:  250,
		Anchor: ui.AnchorTopRight,
		Sections: []ui.SectionDescriptor{
			{
				ID:    "navigation",
				Title: "Navigation",
				Fields: []ui.FieldDescriptor{
					{
						ID: "zoom", Label: "Zoom", Widget: ui.WidgetBar,
						Range:  ui.FieldRange{Min: float32(nav.MinZoom), Max: float32(nav.MaxZoom)},
						Getter: func(d any) float32 { return float32(d.(*Game).engine.Navigation().Zoom) },
					},
					{
						ID: "speed", Label: "Speed", Widget: ui.WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return float32(d.(*Game).engine.Navigation().Velocity.Len()) },
					},
					{
						ID: "drag", Label: "Drag", Widget: ui.WidgetText,
						TextGetter: func(d any) string {
							if d.(*Game).engine.Navigation().Dragging {
								return "held"
							}
							return "-"
						},
					},
				},
			},
			{
				ID:    "textures",
				Title: "Images",
				Visible: func(d any) bool {
					t := d.(*Game).textures
					return t.Loading() > 0 || t.Failed() > 0
				},
				Fields: []ui.FieldDescriptor{
					{
						ID: "loading", Label: "Loading", Widget: ui.WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(d.(*Game).textures.Loading()) },
					},
					{
						ID: "failed", Label: "Fallback", Widget: ui.WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(d.(*Game).textures.Failed()) },
					},
				},
			},
			{
				ID:    "gallery",
				Title: "Gallery",
				Fields: []ui.FieldDescriptor{
					{
						ID: "items", Label: "Items", Widget: ui.WidgetText,
						TextGetter: func(d any) string { return fmt.Sprintf("%d", d.(*Game).source.Len()) },
					},
					{
						ID: "opened", Label: "Opened", Widget: ui.WidgetText,
						TextGetter: func(d any) string {
							sel, _ := d.(*Game).engine.Counters()
							return fmt.Sprintf("%d", sel)
						},
					},
					{
						ID: "reloads", Label: "Reloads", Widget: ui.WidgetText,
						TextGetter: func(d any) string {
							_, reloads := d.(*Game).engine.Counters()
							return fmt.Sprintf("%d", reloads)
						},
					},
				},
			},
		},
	}
}
