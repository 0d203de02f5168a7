package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHUD      OverlayID = "hud"
	OverlayPerf     OverlayID = "perf"
	OverlayGravity  OverlayID = "gravity"
	OverlayBounds   OverlayID = "bounds"
	OverlayCaptions OverlayID = "captions"
)

// OverlayDescriptor defines a toggleable overlay.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // keyboard key to toggle (0 = none)
	KeyLabel    string // e.g. "H"
	Default     bool   // enabled at start
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	byID    map[OverlayID]OverlayDescriptor
	enabled map[OverlayID]bool
	order   []OverlayID
}

// NewOverlayRegistry creates a registry with the default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{
		ID: OverlayHUD, Name: "HUD", Description: "Frame rate, zoom and offset",
		Key: rl.KeyH, KeyLabel: "H", Default: true,
	})
	reg.Register(OverlayDescriptor{
		ID: OverlayPerf, Name: "Perf", Description: "Per-phase step timings",
		Key: rl.KeyP, KeyLabel: "P",
	})
	reg.Register(OverlayDescriptor{
		ID: OverlayGravity, Name: "Gravity", Description: "Cursor attraction radius",
		Key: rl.KeyG, KeyLabel: "G",
	})
	reg.Register(OverlayDescriptor{
		ID: OverlayBounds, Name: "Bounds", Description: "Torus extent around the origin",
		Key: rl.KeyB, KeyLabel: "B",
	})
	reg.Register(OverlayDescriptor{
		ID: OverlayCaptions, Name: "Captions", Description: "Caption under each card",
		Key: rl.KeyC, KeyLabel: "C", Default: true,
	})
	return reg
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, exists := r.byID[desc.ID]; !exists {
		r.order = append(r.order, desc.ID)
	}
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	out := make([]OverlayDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, enabled, ok bool) {
	for _, oid := range r.order {
		if r.byID[oid].Key == key {
			return oid, r.Toggle(oid), true
		}
	}
	return "", false, false
}

// Legend returns a one-line summary of overlay keys.
func (r *OverlayRegistry) Legend() string {
	s := ""
	for _, d := range r.All() {
		if d.KeyLabel == "" {
			continue
		}
		if s != "" {
			s += "  "
		}
		s += "[" + d.KeyLabel + "] " + d.Name
	}
	return s
}
