package game

import (
	"python-arcade/internal/grid"
	"python-arcade/internal/maps"
	"python-arcade/internal/render"
)

// Direction is a grid heading. The order matches the atlas layout.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// NoDirection means no move is requested.
const NoDirection Direction = -1

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the cell offset of one step.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "none"
}

// Segment is one body cell. Tail points at the next cell toward the tail end,
// Facing at the previous cell toward the head. A tail end has Tail == Facing.
type Segment struct {
	Tail, Facing Direction
}

// segmentSprites maps (Tail, Facing) to the still sprite of that piece.
// Straight pieces have Tail == Facing.Opposite, the eight other mixed pairs
// are corners, and the diagonal holds the four tail ends.
var segmentSprites = func() (t [4][4]uint8) {
	for tail := Up; tail <= Left; tail++ {
		for facing := Up; facing <= Left; facing++ {
			t[tail][facing] = maps.TileCrawler + uint8(tail)*4 + uint8(facing)
		}
	}
	return t
}()

// Sprite returns the atlas index for the piece at animation frame 0..3.
func (s Segment) Sprite(frame int) uint8 {
	return segmentSprites[s.Tail][s.Facing] + uint8(frame*16)
}

// SegmentOf decodes a still sprite index back into a segment.
func SegmentOf(sprite uint8) (Segment, bool) {
	for tail := Up; tail <= Left; tail++ {
		for facing := Up; facing <= Left; facing++ {
			if segmentSprites[tail][facing] == sprite {
				return Segment{Tail: tail, Facing: facing}, true
			}
		}
	}
	return Segment{}, false
}

// Crawler is the player's body. X, Y is the head cell; the body chain is
// drawn from the anchor, which trails the head while a move is in progress.
type Crawler struct {
	Segments         []Segment
	X, Y             int
	AnchorX, AnchorY int
	Progress         int // ticks left in the current slide, 0 when idle
	Growing          bool
	Eating           bool
	Poisoned         bool

	next Segment
}

// Start position and length.
const (
	crawlerStartX   = 27
	crawlerStartY   = 21
	crawlerStartLen = 22
)

// NewCrawler returns a crawler lying straight along its start row, facing right.
func NewCrawler() *Crawler {
	c := &Crawler{X: crawlerStartX, Y: crawlerStartY, AnchorX: crawlerStartX, AnchorY: crawlerStartY}
	for i := 0; i < crawlerStartLen-1; i++ {
		c.Segments = append(c.Segments, Segment{Tail: Left, Facing: Right})
	}
	c.Segments = append(c.Segments, Segment{Tail: Right, Facing: Right})
	return c
}

// Idle reports whether the crawler can accept a new move.
func (c *Crawler) Idle() bool {
	return c.Progress == 0
}

// Len returns the number of body segments.
func (c *Crawler) Len() int {
	return len(c.Segments)
}

// Commit starts a move one cell toward d. The caller checks that the target is free.
func (c *Crawler) Commit(d Direction) {
	c.Segments[0].Facing = d
	dx, dy := d.Delta()
	c.X += dx
	c.Y += dy
	c.next = Segment{Tail: d.Opposite(), Facing: d}
	c.Progress = MoveTicks
}

// Settle finishes a move on its last sliding tick: the new head segment is
// added, and unless the crawler is growing the tail end drops one segment.
func (c *Crawler) Settle() {
	if c.Progress != 1 {
		return
	}
	c.Segments = append([]Segment{c.next}, c.Segments...)
	c.AnchorX, c.AnchorY = c.X, c.Y

	if !c.Growing {
		c.Segments = c.Segments[:len(c.Segments)-1]
		last := &c.Segments[len(c.Segments)-1]
		last.Tail = last.Facing
	}
	c.Growing = c.Eating
	c.Eating = false
}

// Step counts down the slide.
func (c *Crawler) Step() {
	if c.Progress > 0 {
		c.Progress--
	}
}

// Frame returns the animation phase 0..3 of the current slide.
func (c *Crawler) Frame() int {
	if c.Progress > 1 {
		return 3 - (c.Progress-2)/3
	}
	return 0
}

// Cells returns the body cells in order from the anchor.
func (c *Crawler) Cells() [][2]int {
	cells := make([][2]int, 0, len(c.Segments))
	x, y := c.AnchorX, c.AnchorY
	for _, s := range c.Segments {
		cells = append(cells, [2]int{x, y})
		dx, dy := s.Tail.Delta()
		x += dx
		y += dy
	}
	return cells
}

// DrawBody clears layer and draws the body chain at the current frame.
func (c *Crawler) DrawBody(layer *grid.Grid) {
	layer.Fill(0)
	frame := c.Frame()
	if c.Growing {
		frame = 0
	}
	for i, cell := range c.Cells() {
		layer.Set(cell[0], cell[1], c.Segments[i].Sprite(frame))
	}
}

// HeadOverlay returns the head sprite, sliding from the anchor to the head cell.
func (c *Crawler) HeadOverlay() render.Overlay {
	mood := uint8(0)
	switch {
	case c.Eating:
		mood = 8
	case c.Poisoned:
		mood = 4
	}
	frame := c.Frame()
	return render.Overlay{
		Sprite: maps.TileCrawlerHead + uint8(c.Segments[0].Facing) + mood,
		X:      c.AnchorX*render.CellW - (c.AnchorX-c.X)*frame*render.CellW/4,
		Y:      c.AnchorY*render.CellH - (c.AnchorY-c.Y)*frame*render.CellH/4,
	}
}

// DrawBlink draws the still body straight onto screen from the head cell,
// in the bright palette when lit.
func (c *Crawler) DrawBlink(screen *grid.Grid, lit bool) {
	x, y := c.X, c.Y
	for _, s := range c.Segments {
		v := s.Sprite(0)
		if lit {
			v += maps.TileCrawlerBlink
		}
		screen.Set(x, y, v)
		dx, dy := s.Tail.Delta()
		x += dx
		y += dy
	}
}

// BlinkHead returns the dying head overlay.
func (c *Crawler) BlinkHead(lit bool) render.Overlay {
	v := maps.TileCrawlerHead + uint8(c.Segments[0].Facing)
	if c.Poisoned {
		v += 4
	}
	if lit {
		v += 16
	}
	return render.Overlay{Sprite: v, X: c.X * render.CellW, Y: c.Y * render.CellH}
}
