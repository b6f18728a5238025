package render

import "strings"

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// Backdrop is the color shown where the surface is transparent or absent.
var Backdrop = P(10, 10, 15)

// Terminal is a double-buffer diff presenter that shows a pixel surface with
// half-block characters, two pixel rows per terminal row.
type Terminal struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
	vp            Viewport
	scale         int
}

// NewTerminal creates a presenter for the given terminal dimensions.
func NewTerminal(width, height int) *Terminal {
	t := &Terminal{}
	t.Resize(width, height)
	return t
}

// Resize adjusts the presenter for a new terminal size.
func (t *Terminal) Resize(width, height int) {
	t.width = width
	t.height = height
	t.current = t.makeBuffer(sentinel)
	t.next = t.makeBuffer(Cell{})
	t.firstFrame = true
}

// Size returns the terminal dimensions.
func (t *Terminal) Size() (int, int) {
	return t.width, t.height
}

func (t *Terminal) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, t.height)
	for y := 0; y < t.height; y++ {
		buf[y] = make([]Cell, t.width)
		for x := 0; x < t.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// FitScale returns the smallest downsampling factor at which a picW x picH
// pixel picture fits in termW x termH half-block cells.
func FitScale(picW, picH, termW, termH int) int {
	s := 1
	for s < 16 {
		if (picW+s-1)/s <= termW && (picH+2*s-1)/(2*s) <= termH {
			break
		}
		s++
	}
	return s
}

// Viewport returns where the last composed picture sits in the terminal.
func (t *Terminal) Viewport() Viewport {
	return t.vp
}

// Scale returns the downsampling factor of the last composed picture.
func (t *Terminal) Scale() int {
	return t.scale
}

// ScreenToPixel maps a terminal cell back to surface pixel coordinates.
func (t *Terminal) ScreenToPixel(sx, sy int) (px, py int) {
	s := t.scale
	if s == 0 {
		s = 1
	}
	return (sx-t.vp.OffsetX)*s + s/2, (sy-t.vp.OffsetY)*2*s + s
}

// Compose draws the surface, centered and downsampled to fit, into the next buffer.
func (t *Terminal) Compose(s *Surface) {
	bg := Cell{Ch: ' ', BgR: Backdrop.R, BgG: Backdrop.G, BgB: Backdrop.B}
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			t.next[y][x] = bg
		}
	}
	if s == nil {
		return
	}

	t.scale = FitScale(s.W, s.H, t.width, t.height)
	picW := (s.W + t.scale - 1) / t.scale
	picH := (s.H + 2*t.scale - 1) / (2 * t.scale)
	t.vp = NewViewport(picW, picH, t.width, t.height)

	for cy := 0; cy < picH; cy++ {
		ty := t.vp.OffsetY + cy
		if ty >= t.height {
			break
		}
		for cx := 0; cx < picW; cx++ {
			tx := t.vp.OffsetX + cx
			if tx >= t.width {
				break
			}
			top := opaque(s.At(cx*t.scale, cy*2*t.scale))
			bot := opaque(s.At(cx*t.scale, cy*2*t.scale+t.scale))
			t.next[ty][tx] = Cell{
				Ch:  HalfBlock,
				FgR: top.R, FgG: top.G, FgB: top.B,
				BgR: bot.R, BgG: bot.G, BgB: bot.B,
			}
		}
	}
}

func opaque(p Pixel) Pixel {
	if p.Transparent {
		return Backdrop
	}
	return p
}

// Render produces the ANSI byte output for cells changed since the last frame.
func (t *Terminal) Render() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	t.diff(func(x, y int, c Cell) {
		// Only emit cursor position if not consecutive
		if y != lastRow || x != lastCol {
			sb.WriteString(MoveTo(y+1, x+1))
		}
		WriteCellSGR(&sb, c)
		lastRow = y
		lastCol = x + 1
	})

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}
	return sb.String()
}

// Flush hands every changed cell to set, for front ends that own their own screen.
func (t *Terminal) Flush(set func(x, y int, c Cell)) {
	t.diff(set)
}

func (t *Terminal) diff(emit func(x, y int, c Cell)) {
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			nc := t.next[y][x]
			if t.firstFrame || nc != t.current[y][x] {
				emit(x, y, nc)
			}
		}
	}
	t.current, t.next = t.next, t.current
	t.firstFrame = false
}
