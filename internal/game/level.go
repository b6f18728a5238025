package game

import (
	"python-arcade/internal/grid"
	"python-arcade/internal/maps"
	"python-arcade/internal/render"
)

// Fixed screen positions of the playfield HUD.
const (
	hudRow       = 25
	topScoreX    = 3
	scoreX       = 10
	livesX       = 17
	livesPad     = 3
	timerX       = 22
	timerSlots   = 9
	timerSlotLen = 8
	fishX        = 30
	fishY        = 6
	fishRows     = 8
	fishFrames   = 5
)

// Water cells that ripple.
var wavePoints = []int{714, 750, 751, 786, 787, 824, 860, 861, 897}

// Level is the state of one round: its layers, the crawler, the prey, the
// countdown timer and the decorations.
type Level struct {
	Number int

	Background *grid.Grid
	Food       *grid.Grid
	Prey       *grid.Grid
	Body       *grid.Grid

	Crawler *Crawler
	Roster  *Roster

	Time   int
	TimeUp bool

	fishFrame, fishRow int
	waveFrame          int

	rng    Rand
	events LevelEvents
}

// LevelEvents reports scoring and sounds to the owner.
type LevelEvents struct {
	Score func(n int)
	Sound func(s Sample)
}

// NewLevel builds level number from the assets. lives is printed in the HUD.
func NewLevel(number, lives int, assets *maps.Assets, rng Rand, events LevelEvents) *Level {
	l := &Level{
		Number:     number,
		Background: grid.New(Cols, Rows),
		Food:       grid.New(Cols, Rows),
		Prey:       grid.New(Cols, Rows),
		Body:       grid.New(Cols, Rows),
		Crawler:    NewCrawler(),
		Roster:     NewRoster(rng),
		Time:       StartTime,
		waveFrame:  2,
		rng:        rng,
		events:     events,
	}
	l.Background.Fill(maps.TileGround)
	if def, plane, ok := assets.Plane(maps.PlanePlayground); ok {
		grid.PrintPlane(l.Background, plane, def.X, def.Y)
	}
	grid.PrintNum(l.Background, lives, livesX, hudRow, livesPad)
	if def, plane, ok := assets.Plane(maps.CarrotPlane(number % maps.Levels)); ok {
		grid.PrintPlane(l.Food, plane, def.X, def.Y)
	}
	return l
}

func (l *Level) score(n int) {
	if l.events.Score != nil {
		l.events.Score(n)
	}
}

func (l *Level) sound(s Sample) {
	if l.events.Sound != nil {
		l.events.Sound(s)
	}
}

func (l *Level) field() *Field {
	return &Field{
		Background: l.Background,
		Food:       l.Food,
		Body:       l.Body,
		HeadX:      l.Crawler.X,
		HeadY:      l.Crawler.Y,
	}
}

// UpdatePrey runs the prey AI for one tick and redraws the prey layer.
func (l *Level) UpdatePrey() {
	l.Roster.Update(l.field(), l.rng, func() { l.sound(SampleJump) })
	l.Roster.Draw(l.Prey)
}

// CanMove reports whether the crawler's head may enter the cell toward d.
func (l *Level) CanMove(d Direction) bool {
	dx, dy := d.Delta()
	x, y := l.Crawler.X+dx, l.Crawler.Y+dy
	return l.Background.At(x, y) == maps.TileGround && l.Body.At(x, y) == 0
}

// Move commits a crawler move toward d if the cell is free, then resolves
// what the head landed on. It reports whether the move was made.
func (l *Level) Move(d Direction) bool {
	if !l.Crawler.Idle() || !l.CanMove(d) {
		return false
	}
	l.Crawler.Commit(d)
	l.checkEdible()
	return true
}

// checkEdible eats a prey under the head, then any food under it, which poisons.
func (l *Level) checkEdible() {
	c := l.Crawler
	for i := 0; i < l.Roster.Len(); i++ {
		p := l.Roster.At(i)
		if p.X == c.X && p.Y-c.Y >= 0 && p.Y-c.Y <= 1 {
			c.Eating = true
			l.Roster.Remove(i)
			l.Food.Set(c.X, c.Y, 0)
			l.score(ScorePrey)
			l.Time += PreyTime
			break
		}
	}
	if l.Food.At(c.X, c.Y) != 0 {
		c.Eating = true
		c.Poisoned = true
		l.Food.Set(c.X, c.Y, 0)
	}
	if c.Eating {
		l.sound(SampleEat)
	}
}

// AnimateCrawler finishes the tick for the crawler: settles a completed move,
// redraws the body and returns the head overlay.
func (l *Level) AnimateCrawler() render.Overlay {
	c := l.Crawler
	c.Settle()
	c.DrawBody(l.Body)
	head := c.HeadOverlay()
	c.Step()
	return head
}

// UpdateTimer counts the timer down and redraws the timer bar.
func (l *Level) UpdateTimer() {
	if l.Time > 0 {
		l.Time--
	} else {
		l.TimeUp = true
	}
	l.drawTimer()
}

func (l *Level) drawTimer() {
	for i := 0; i < timerSlots; i++ {
		fill := l.Time - i*timerSlotLen
		if fill < 0 {
			fill = 0
		}
		if fill > timerSlotLen {
			fill = timerSlotLen
		}
		l.Background.Set(timerX+i, hudRow, maps.TileTimerBar+uint8(fill))
	}
}

// UpdateFish animates a fish jumping out of the water now and then.
func (l *Level) UpdateFish() {
	if l.fishFrame > 0 {
		l.Background.Set(fishX, fishY+l.fishRow, maps.TileFish-uint8(l.fishFrame))
		l.fishFrame--
	} else if l.rng.Intn(FishChance) == 0 {
		l.fishFrame = fishFrames
		l.fishRow = l.rng.Intn(fishRows)
	}
}

// UpdateWaves cycles the ripples.
func (l *Level) UpdateWaves() {
	for _, p := range wavePoints {
		l.Background.Cells[p] = maps.TileWave - uint8(l.waveFrame)
	}
	if l.waveFrame == 0 {
		l.waveFrame = 2
	} else {
		l.waveFrame--
	}
}

// Merge prints the scores into the background and composes every layer into screen.
func (l *Level) Merge(screen *grid.Grid, top, score int) {
	printScores(l.Background, top, score)
	grid.Compose(screen, l.Body, l.Prey, l.Food, l.Background)
}

func printScores(g *grid.Grid, top, score int) {
	grid.PrintNum(g, top, topScoreX, hudRow, 6)
	grid.PrintNum(g, score, scoreX, hudRow, 6)
}

// FoodCells returns the indices of the remaining food, lowest first.
func (l *Level) FoodCells() []int {
	var cells []int
	for i, c := range l.Food.Cells {
		if c != 0 {
			cells = append(cells, i)
		}
	}
	return cells
}
