package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/galaxy/components"
	"github.com/pthm-cable/galaxy/config"
)

func newTestLayout(t *testing.T, rows, cols int, sx, sy float64) *GridLayout {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.Rows, cfg.Grid.Cols = rows, cols
	cfg.Grid.SpacingX, cfg.Grid.SpacingY = sx, sy
	l, err := NewGridLayout(cfg.Grid, cfg.Gallery)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return l
}

func TestNewGridLayoutRejectsEmptyExtents(t *testing.T) {
	cfg := config.Default()
	bad := []config.GridConfig{
		{Rows: 0, Cols: 2, SpacingX: 1, SpacingY: 1},
		{Rows: 2, Cols: 2, SpacingX: 0, SpacingY: 1},
		{Rows: 2, Cols: 2, SpacingX: 1, SpacingY: math.NaN()},
	}
	for _, g := range bad {
		if _, err := NewGridLayout(g, cfg.Gallery); err == nil {
			t.Errorf("expected error for %+v", g)
		}
	}
}

func TestCellAt(t *testing.T) {
	l := newTestLayout(t, 2, 2, 10, 10)

	tests := []struct {
		index    int
		row, col int
		base     components.Vec3
	}{
		{0, 0, 0, components.Vec3{X: -10, Y: -10}},
		{1, 0, 1, components.Vec3{X: 0, Y: -10}},
		{2, 1, 0, components.Vec3{X: -10, Y: 0}},
		{3, 1, 1, components.Vec3{X: 0, Y: 0}},
	}
	for _, tc := range tests {
		id, ok := l.CellAt(tc.index)
		if !ok {
			t.Fatalf("index %d should be valid", tc.index)
		}
		if id.Index != tc.index || id.Row != tc.row || id.Col != tc.col || id.Base != tc.base {
			t.Errorf("CellAt(%d) = %+v, want row %d col %d base %+v", tc.index, id, tc.row, tc.col, tc.base)
		}
	}

	for _, idx := range []int{-1, 4, 100} {
		if _, ok := l.CellAt(idx); ok {
			t.Errorf("index %d should be out of range", idx)
		}
	}
}

func TestCellAtOddGridOffset(t *testing.T) {
	l := newTestLayout(t, 3, 3, 2, 2)
	// Half-cell shift: (1 - 1.5) * 2.
	id, _ := l.CellAt(4)
	if id.Base.X != -1 || id.Base.Y != -1 {
		t.Errorf("expected base (-1, -1) for the middle of a 3x3 grid, got %+v", id.Base)
	}
}

func TestItemForCycles(t *testing.T) {
	l := newTestLayout(t, 2, 2, 10, 10)
	items := []components.GalleryItem{
		{ID: "a", Src: "/gallery/a.jpg", Description: "first"},
		{ID: "b", Src: "/gallery/b.jpg", Description: "second", LeftText: "L", RightText: "R"},
	}

	for i := 0; i < 6; i++ {
		v := l.ItemFor(i, items)
		want := items[i%2]
		if v.ItemID != want.ID || v.ImageRef != want.Src || v.Caption != want.Description {
			t.Errorf("ItemFor(%d) = %+v, want item %q", i, v, want.ID)
		}
		if v.Placeholder {
			t.Errorf("ItemFor(%d) should not be a placeholder", i)
		}
	}

	if v := l.ItemFor(1, items); v.LeftText != "L" || v.RightText != "R" {
		t.Errorf("side texts not carried: %+v", v)
	}
}

func TestItemForPlaceholder(t *testing.T) {
	l := newTestLayout(t, 2, 2, 10, 10)

	v := l.ItemFor(3, nil)
	if !v.Placeholder {
		t.Error("expected placeholder for empty item list")
	}
	if v.ImageRef != "https://picsum.photos/seed/103/600/800" {
		t.Errorf("unexpected placeholder image %q", v.ImageRef)
	}
	if v.Caption != "Memory Fragment #3" {
		t.Errorf("unexpected placeholder caption %q", v.Caption)
	}
	if l.ItemFor(3, nil) != v {
		t.Error("placeholder should be deterministic")
	}

	// An item with no image still shows something.
	v = l.ItemFor(0, []components.GalleryItem{{ID: "x", Description: "no image"}})
	if !v.Placeholder || v.ImageRef == "" || v.Caption != "no image" {
		t.Errorf("expected image placeholder with caption kept, got %+v", v)
	}
}

func TestNewPersonalityRanges(t *testing.T) {
	cfg := config.Default().Cell
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		p := NewPersonality(rng, cfg)
		if p.FloatSpeed < cfg.FloatSpeedMin || p.FloatSpeed >= cfg.FloatSpeedMax {
			t.Fatalf("float speed %v outside [%v, %v)", p.FloatSpeed, cfg.FloatSpeedMin, cfg.FloatSpeedMax)
		}
		if p.PhaseOffset < 0 || p.PhaseOffset >= 2*math.Pi {
			t.Fatalf("phase %v outside [0, 2π)", p.PhaseOffset)
		}
		if p.ScaleJitter < 1 || p.ScaleJitter >= 1+cfg.ScaleJitter {
			t.Fatalf("scale jitter %v outside [1, %v)", p.ScaleJitter, 1+cfg.ScaleJitter)
		}
	}
}
