// Package ui provides descriptor-driven panels and overlays for the
// viewer. Panels are described by metadata so the fields shown can change
// alongside the engine without touching layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field is rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // label and formatted value
	WidgetBar                       // progress bar over Range
	WidgetSection                   // section header
	WidgetSpacer                    // vertical gap
)

// FieldRange is the value range of a bar widget.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor defines how to display one value.
type FieldDescriptor struct {
	ID         string
	Label      string
	Widget     WidgetType
	Format     string     // printf format for Getter values
	Range      FieldRange // bar range
	Visible    func(any) bool
	Getter     func(any) float32
	TextGetter func(any) string
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor defines a complete panel.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32
	Anchor   PanelAnchor
}

// PanelAnchor is the screen corner a panel is placed against.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	Backdrop      rl.Color
	CardFallback  rl.Color
	CaptionColor  rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	CaptionSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 12, G: 12, B: 16, A: 220},
		PanelBorder:   rl.Color{R: 60, G: 62, B: 70, A: 255},
		SectionHeader: rl.Color{R: 235, G: 225, B: 200, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		BarBg:         rl.Color{R: 40, G: 40, B: 44, A: 255},
		BarFill:       rl.Color{R: 170, G: 160, B: 140, A: 255},
		Backdrop:      rl.Color{R: 0, G: 0, B: 0, A: 215},
		CardFallback:  rl.Color{R: 34, G: 34, B: 40, A: 255},
		CaptionColor:  rl.Color{R: 220, G: 215, B: 205, A: 255},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
		CaptionSize:    18,
	}
}
