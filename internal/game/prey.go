package game

import (
	"python-arcade/internal/grid"
	"python-arcade/internal/maps"
)

// Rand is the source of randomness for AI and decorations; *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Prey is a rabbit. It occupies (X, Y) and, for drawing, the head cell above it.
type Prey struct {
	X, Y   int
	Facing int // 0 right, 1 left
	Idle   int // ticks left standing still
	Eating int // ticks left eating
}

type preySpawn struct {
	x, y, idle int
}

// Spawn positions with their base rest times.
var preySpawns = []preySpawn{
	{23, 12, 128},
	{8, 5, 125},
	{11, 17, 124},
	{18, 12, 123},
	{17, 5, 120},
	{8, 10, 119},
	{22, 6, 114},
	{17, 17, 113},
	{12, 12, 111},
	{12, 8, 108},
}

// Roster owns the prey of one level.
type Roster struct {
	prey []Prey
}

// NewRoster places the level's prey with random facing and staggered rest times.
func NewRoster(rng Rand) *Roster {
	r := &Roster{prey: make([]Prey, 0, len(preySpawns))}
	for _, s := range preySpawns {
		r.prey = append(r.prey, Prey{
			X:      s.x,
			Y:      s.y,
			Facing: rng.Intn(2),
			Idle:   s.idle + rng.Intn(3)*36,
		})
	}
	return r
}

// NewRosterOf builds a roster from explicit prey.
func NewRosterOf(prey ...Prey) *Roster {
	return &Roster{prey: append([]Prey(nil), prey...)}
}

// Len returns the number of prey left.
func (r *Roster) Len() int {
	return len(r.prey)
}

// At returns prey i for modification.
func (r *Roster) At(i int) *Prey {
	return &r.prey[i]
}

// All returns a copy of the roster.
func (r *Roster) All() []Prey {
	return append([]Prey(nil), r.prey...)
}

// Remove deletes prey i.
func (r *Roster) Remove(i int) {
	r.prey = append(r.prey[:i], r.prey[i+1:]...)
}

// Field is what prey can see of the level.
type Field struct {
	Background *grid.Grid
	Food       *grid.Grid
	Body       *grid.Grid
	HeadX      int
	HeadY      int
}

// Threatened reports whether a prey standing at (x, y) is within reach of
// the crawler's head.
func (f *Field) Threatened(x, y int) bool {
	dx := f.HeadX - x
	dy := f.HeadY - y
	return (dx == 0 && dy >= -2 && dy <= 1) || (dy >= -1 && dy <= 0 && dx >= -1 && dx <= 1)
}

// blocked reports whether prey i cannot stand at (x, y).
func (r *Roster) blocked(i, x, y int, f *Field) bool {
	for j, o := range r.prey {
		if j != i && o.X == x && y-o.Y >= -1 && y-o.Y <= 1 {
			return true
		}
	}
	return f.Background.At(x, y-1) != maps.TileGround ||
		f.Background.At(x, y) != maps.TileGround ||
		f.Body.At(x, y-1) != 0 ||
		f.Body.At(x, y) != 0 ||
		(x == f.HeadX && y-f.HeadY >= 0 && y-f.HeadY <= 1)
}

// Jump buckets, best first.
const (
	bucketFood = iota
	bucketFoodAbove
	bucketSafe
	bucketForced
	bucketCount
)

type jump struct{ dx, dy int }

// jumps sorts the free neighbour cells of prey i into buckets.
func (r *Roster) jumps(i int, f *Field) (b [bucketCount][]jump) {
	p := r.prey[i]
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			jx, jy := p.X+dx, p.Y+dy
			if (dx == 0 && dy == 0) || r.blocked(i, jx, jy, f) {
				continue
			}
			switch {
			case f.Threatened(jx, jy):
				b[bucketForced] = append(b[bucketForced], jump{dx, dy})
			case f.Food.At(jx, jy) != 0:
				b[bucketFood] = append(b[bucketFood], jump{dx, dy})
			case f.Food.At(jx, jy-1) != 0:
				b[bucketFoodAbove] = append(b[bucketFoodAbove], jump{dx, dy})
			default:
				b[bucketSafe] = append(b[bucketSafe], jump{dx, dy})
			}
		}
	}
	return b
}

// Update advances every prey by one tick. jumped is called for each jump.
func (r *Roster) Update(f *Field, rng Rand, jumped func()) {
	for i := range r.prey {
		p := &r.prey[i]

		if p.Eating > 0 {
			p.Eating--
			continue
		}

		if p.Idle < PreyStartleBelow && rng.Intn(PreyStartleOdds) == 0 && f.Threatened(p.X, p.Y) {
			p.Idle = 0
		}

		switch {
		case p.Idle > 0:
			p.Idle--
		case f.Food.At(p.X, p.Y) != 0 && !f.Threatened(p.X, p.Y):
			f.Food.Set(p.X, p.Y, 0)
			p.Eating = PreyEatTicks
			p.Idle = PreyRestAfterEat
			p.Facing = 1 - p.Facing
		default:
			r.jump(i, f, rng, jumped)
			p.Idle = PreyRestAfterJump
		}
	}
}

func (r *Roster) jump(i int, f *Field, rng Rand, jumped func()) {
	p := &r.prey[i]
	buckets := r.jumps(i, f)
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		j := b[rng.Intn(len(b))]
		p.X += j.dx
		p.Y += j.dy
		switch {
		case j.dx > 0:
			p.Facing = 0
		case j.dx < 0:
			p.Facing = 1
		case j.dy > 0:
			p.Facing = 1
		default:
			p.Facing = 0
		}
		if jumped != nil {
			jumped()
		}
		return
	}
	p.Facing = rng.Intn(2)
}

// Draw clears layer and draws every prey.
func (r *Roster) Draw(layer *grid.Grid) {
	layer.Fill(0)
	for _, p := range r.prey {
		layer.Set(p.X, p.Y-1, maps.TileRabbitHead+uint8(headVariant(p)))
		body := maps.TileRabbitBody + uint8(p.Facing)
		if p.Eating > 0 {
			body += 2
		}
		layer.Set(p.X, p.Y, body)
	}
}

func headVariant(p Prey) int {
	if p.Eating > 0 {
		v := 2 + p.Facing
		if (p.Eating/5)&1 == 1 {
			v += 2
		}
		return v
	}
	if p.Idle > PreyRestAfterEat-1 || (p.Idle/18)&1 == 1 {
		return p.Facing
	}
	return 1 - p.Facing
}
