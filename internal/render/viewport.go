package render

// Viewport places a picture of picW x picH terminal cells inside a terminal.
type Viewport struct {
	OffsetX, OffsetY int // terminal cell of the picture's top-left corner, may be negative
	ViewW, ViewH     int // terminal size in cells
}

// NewViewport centers the picture in the terminal. When the picture is larger
// than the terminal it is anchored at the top-left and clipped.
func NewViewport(picW, picH, termW, termH int) Viewport {
	offX := (termW - picW) / 2
	offY := (termH - picH) / 2
	if offX < 0 {
		offX = 0
	}
	if offY < 0 {
		offY = 0
	}
	return Viewport{
		OffsetX: offX,
		OffsetY: offY,
		ViewW:   termW,
		ViewH:   termH,
	}
}

// ScreenToPicture converts a terminal cell (0-based) to picture cell coordinates.
// ok is false when the cell lies outside the picture area.
func (v Viewport) ScreenToPicture(sx, sy, picW, picH int) (px, py int, ok bool) {
	px = sx - v.OffsetX
	py = sy - v.OffsetY
	if px < 0 || px >= picW || py < 0 || py >= picH {
		return px, py, false
	}
	return px, py, true
}
