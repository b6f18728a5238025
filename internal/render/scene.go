package render

// MaxOverlays is the number of named overlay slots.
const MaxOverlays = 4

// Overlay is a sprite drawn at pixel coordinates on top of the tile grid.
type Overlay struct {
	Sprite uint8
	X, Y   int // pixels
}

// Scene is the per-frame state the renderer composites over the visible grid.
type Scene struct {
	slots      [MaxOverlays]*Overlay
	suppressed bool
	repaint    bool
}

// Set places an overlay in slot.
func (s *Scene) Set(slot int, o Overlay) {
	s.slots[slot] = &o
}

// Clear empties slot.
func (s *Scene) Clear(slot int) {
	s.slots[slot] = nil
}

// ClearAll empties every slot.
func (s *Scene) ClearAll() {
	for i := range s.slots {
		s.slots[i] = nil
	}
}

// Overlay returns the overlay in slot, if any.
func (s *Scene) Overlay(slot int) (Overlay, bool) {
	if o := s.slots[slot]; o != nil {
		return *o, true
	}
	return Overlay{}, false
}

// Suppress switches merge-suppressed mode. While suppressed the saved
// background under last frame's overlays is not restored; entering the mode
// repaints the whole grid flat.
func (s *Scene) Suppress(on bool) {
	if on && !s.suppressed {
		s.repaint = true
	}
	s.suppressed = on
}

// Suppressed reports whether overlay restore is suppressed.
func (s *Scene) Suppressed() bool {
	return s.suppressed
}

// Repaint requests that every cell is blitted on the next frame.
func (s *Scene) Repaint() {
	s.repaint = true
}

func (s *Scene) takeRepaint() bool {
	r := s.repaint
	s.repaint = false
	return r
}
