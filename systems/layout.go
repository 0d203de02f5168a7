package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
)

// GridLayout maps a linear cell index onto a rows x cols grid centered on
// the origin and resolves which gallery item each cell shows.
type GridLayout struct {
	Rows, Cols         int
	SpacingX, SpacingY float64

	placeholderURL     string
	placeholderCaption string
}

// NewGridLayout validates the grid shape. The toroidal wrap is undefined
// for empty extents, so they are rejected here rather than per frame.
func NewGridLayout(grid config.GridConfig, gallery config.GalleryConfig) (*GridLayout, error) {
	if grid.Rows <= 0 || grid.Cols <= 0 {
		return nil, fmt.Errorf("grid layout: rows and cols must be positive (got %dx%d)", grid.Rows, grid.Cols)
	}
	if !(grid.SpacingX > 0) || !(grid.SpacingY > 0) {
		return nil, fmt.Errorf("grid layout: spacing must be positive (got %v, %v)", grid.SpacingX, grid.SpacingY)
	}
	return &GridLayout{
		Rows:               grid.Rows,
		Cols:               grid.Cols,
		SpacingX:           grid.SpacingX,
		SpacingY:           grid.SpacingY,
		placeholderURL:     gallery.PlaceholderURL,
		placeholderCaption: gallery.PlaceholderCap,
	}, nil
}

// Len returns the number of cells.
func (l *GridLayout) Len() int { return l.Rows * l.Cols }

// TotalWidth is the torus extent on X.
func (l *GridLayout) TotalWidth() float64 { return float64(l.Cols) * l.SpacingX }

// TotalHeight is the torus extent on Y.
func (l *GridLayout) TotalHeight() float64 { return float64(l.Rows) * l.SpacingY }

// CellAt returns the identity of the cell at index. ok is false when index
// is outside [0, Len()).
func (l *GridLayout) CellAt(index int) (id components.CellIdentity, ok bool) {
	if index < 0 || index >= l.Len() {
		return components.CellIdentity{}, false
	}
	row := index / l.Cols
	col := index % l.Cols
	return components.CellIdentity{
		Index: index,
		Row:   row,
		Col:   col,
		Base: components.Vec3{
			X: (float64(col) - float64(l.Cols)/2) * l.SpacingX,
			Y: (float64(row) - float64(l.Rows)/2) * l.SpacingY,
		},
	}, true
}

// ItemFor resolves what cell index shows. Items cycle by index mod len;
// with no items, or an item without an image, a placeholder derived from
// the index is substituted so the grid is populated before data loads.
func (l *GridLayout) ItemFor(index int, items []components.GalleryItem) components.ItemView {
	if len(items) == 0 {
		return components.ItemView{
			ImageRef:    l.PlaceholderImage(index),
			Caption:     fmt.Sprintf(l.placeholderCaption, index),
			Placeholder: true,
		}
	}

	n := len(items)
	it := items[((index%n)+n)%n]
	view := components.ItemView{
		ItemID:    it.ID,
		ImageRef:  it.Src,
		Caption:   it.Description,
		LeftText:  it.LeftText,
		RightText: it.RightText,
	}
	if view.ImageRef == "" {
		view.ImageRef = l.PlaceholderImage(index)
		view.Placeholder = true
	}
	return view
}

// PlaceholderImage returns the synthetic image reference for index.
func (l *GridLayout) PlaceholderImage(index int) string {
	return fmt.Sprintf(l.placeholderURL, index+100)
}

// NewPersonality draws the per-cell constants. Called once per cell when
// the arena is built.
func NewPersonality(rng *rand.Rand, cfg config.CellConfig) components.CellPersonality {
	return components.CellPersonality{
		FloatSpeed:  cfg.FloatSpeedMin + rng.Float64()*(cfg.FloatSpeedMax-cfg.FloatSpeedMin),
		PhaseOffset: rng.Float64() * 2 * math.Pi,
		ScaleJitter: 1 + rng.Float64()*cfg.ScaleJitter,
	}
}
