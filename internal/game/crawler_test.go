package game

import (
	"reflect"
	"testing"

	"python-arcade/internal/grid"
	"python-arcade/internal/maps"
)

// finish runs a committed move to completion the way the crawler task does.
func finish(c *Crawler) {
	for !c.Idle() {
		c.Settle()
		c.Step()
	}
}

func TestSegmentSprites(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want uint8
	}{
		{"straight facing right", Segment{Left, Right}, 141},
		{"straight facing up", Segment{Down, Up}, 136},
		{"straight facing down", Segment{Up, Down}, 130},
		{"straight facing left", Segment{Right, Left}, 135},
		{"corner left then up", Segment{Left, Up}, 140},
		{"tail end facing right", Segment{Right, Right}, 133},
		{"tail end facing up", Segment{Up, Up}, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.Sprite(0); got != tt.want {
				t.Errorf("Sprite(0) = %d, want %d", got, tt.want)
			}
			if got := tt.seg.Sprite(2); got != tt.want+32 {
				t.Errorf("Sprite(2) = %d, want %d", got, tt.want+32)
			}
			back, ok := SegmentOf(tt.want)
			if !ok || back != tt.seg {
				t.Errorf("SegmentOf(%d) = %+v, %v", tt.want, back, ok)
			}
		})
	}
	if _, ok := SegmentOf(maps.TileCrawler + 16); ok {
		t.Error("animated sprite decoded as a still segment")
	}
}

func TestNewCrawler(t *testing.T) {
	c := NewCrawler()
	if c.Len() != 22 {
		t.Fatalf("Len = %d, want 22", c.Len())
	}
	cells := c.Cells()
	if cells[0] != [2]int{27, 21} || cells[21] != [2]int{6, 21} {
		t.Errorf("body spans %v..%v", cells[0], cells[21])
	}
	if last := c.Segments[21]; last.Tail != last.Facing {
		t.Errorf("tail end = %+v", last)
	}
}

func TestCrawlerCommit(t *testing.T) {
	c := NewCrawler()
	c.Commit(Up)
	if c.X != 27 || c.Y != 20 || c.Progress != MoveTicks {
		t.Fatalf("after commit head=(%d,%d) progress=%d", c.X, c.Y, c.Progress)
	}
	if got := c.Segments[0]; got != (Segment{Left, Up}) {
		t.Errorf("old head segment = %+v, want corner {Left Up}", got)
	}
	if c.AnchorX != 27 || c.AnchorY != 21 {
		t.Error("anchor should stay behind until the move settles")
	}
	finish(c)
	if c.Segments[0] != (Segment{Down, Up}) {
		t.Errorf("new head segment = %+v", c.Segments[0])
	}
	if c.AnchorX != 27 || c.AnchorY != 20 {
		t.Errorf("anchor = (%d,%d), want head", c.AnchorX, c.AnchorY)
	}
	if c.Len() != 22 {
		t.Errorf("Len = %d, want 22", c.Len())
	}
	if last := c.Segments[c.Len()-1]; last.Tail != last.Facing {
		t.Errorf("new tail end = %+v", last)
	}
}

func TestCrawlerFrames(t *testing.T) {
	c := NewCrawler()
	c.Commit(Right)
	var frames []int
	for !c.Idle() {
		frames = append(frames, c.Frame())
		c.Step()
	}
	want := []int{0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 0}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("frames = %v, want %v", frames, want)
	}
}

func TestCrawlerHeadOverlaySlides(t *testing.T) {
	c := NewCrawler()
	c.Commit(Right)
	for c.Progress > 4 {
		c.Step()
	}
	// Frame 3 of 4: three quarters of the way to the next cell.
	o := c.HeadOverlay()
	if o.X != 27*8+6 || o.Y != 21*8 {
		t.Errorf("overlay at (%d,%d)", o.X, o.Y)
	}
	if o.Sprite != maps.TileCrawlerHead+uint8(Right) {
		t.Errorf("overlay sprite = %d", o.Sprite)
	}

	c.Eating = true
	if o := c.HeadOverlay(); o.Sprite != maps.TileCrawlerHead+uint8(Right)+8 {
		t.Errorf("eating sprite = %d", o.Sprite)
	}
	c.Eating, c.Poisoned = false, true
	if o := c.HeadOverlay(); o.Sprite != maps.TileCrawlerHead+uint8(Right)+4 {
		t.Errorf("poisoned sprite = %d", o.Sprite)
	}
}

// A sequence of moves decoded back through the segment chain gives the head path.
func TestCrawlerPathRoundTrip(t *testing.T) {
	c := NewCrawler()
	moves := []Direction{Up, Up, Left, Left, Up, Right, Right, Right, Down}
	path := [][2]int{{c.X, c.Y}}
	for _, d := range moves {
		c.Commit(d)
		finish(c)
		path = append(path, [2]int{c.X, c.Y})
	}

	cells := c.Cells()
	for i := 0; i < len(path); i++ {
		if want := path[len(path)-1-i]; cells[i] != want {
			t.Fatalf("cell %d = %v, want %v", i, cells[i], want)
		}
	}
	if c.Len() != 22 {
		t.Errorf("Len = %d, want 22", c.Len())
	}
}

func TestCrawlerGrowsOneMoveLater(t *testing.T) {
	c := NewCrawler()
	c.Commit(Up)
	c.Eating = true
	finish(c)
	if c.Len() != 22 || !c.Growing || c.Eating {
		t.Fatalf("after eating move: len=%d growing=%v eating=%v", c.Len(), c.Growing, c.Eating)
	}

	c.Commit(Up)
	if got := c.Frame(); got != 0 {
		t.Errorf("frame while growing = %d", got)
	}
	layer := grid.New(Cols, Rows)
	c.Progress = 5
	c.DrawBody(layer)
	if got := layer.At(c.AnchorX, c.AnchorY); got != c.Segments[0].Sprite(0) {
		t.Errorf("growing body drawn animated: %d", got)
	}
	finish(c)
	if c.Len() != 23 || c.Growing {
		t.Errorf("after growing move: len=%d growing=%v", c.Len(), c.Growing)
	}
}

func TestCrawlerBlink(t *testing.T) {
	c := NewCrawler()
	screen := grid.New(Cols, Rows)
	c.DrawBlink(screen, true)
	if got := screen.At(27, 21); got != 141+maps.TileCrawlerBlink {
		t.Errorf("lit head cell = %d", got)
	}
	c.DrawBlink(screen, false)
	if got := screen.At(6, 21); got != 133 {
		t.Errorf("unlit tail cell = %d", got)
	}
	c.Poisoned = true
	if o := c.BlinkHead(true); o.Sprite != maps.TileCrawlerHead+uint8(Right)+4+16 || o.X != 27*8 {
		t.Errorf("blink head = %+v", o)
	}
}
