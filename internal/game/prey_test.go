package game

import (
	"math/rand"
	"testing"

	"python-arcade/internal/grid"
	"python-arcade/internal/maps"
)

// zeroRand always picks the first option.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

// openField is an all-ground field with the head parked far away.
func openField() *Field {
	bg := grid.New(Cols, Rows)
	bg.Fill(maps.TileGround)
	return &Field{
		Background: bg,
		Food:       grid.New(Cols, Rows),
		Body:       grid.New(Cols, Rows),
		HeadX:      33,
		HeadY:      25,
	}
}

func TestThreatened(t *testing.T) {
	f := openField()
	f.HeadX, f.HeadY = 10, 10
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{10, 12, true},  // head two above
		{10, 9, true},   // head one below
		{10, 13, false}, // too far above
		{10, 8, false},
		{9, 10, true},
		{11, 11, true},
		{9, 9, false},
		{12, 10, false},
	}
	for _, tt := range tests {
		if got := f.Threatened(tt.x, tt.y); got != tt.want {
			t.Errorf("Threatened(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPreyPrefersFood(t *testing.T) {
	tests := []struct {
		name  string
		food  [][2]int
		wants [][2]int
	}{
		{"food next door", [][2]int{{11, 10}}, [][2]int{{11, 10}}},
		{"two food cells", [][2]int{{11, 10}, {9, 11}}, [][2]int{{11, 10}, {9, 11}}},
		{"food above a free cell", [][2]int{{11, 8}}, [][2]int{{11, 9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 50; seed++ {
				f := openField()
				for _, c := range tt.food {
					f.Food.Set(c[0], c[1], maps.TileCarrot)
				}
				r := NewRosterOf(Prey{X: 10, Y: 10})
				r.Update(f, rand.New(rand.NewSource(seed)), nil)

				p := r.At(0)
				ok := false
				for _, w := range tt.wants {
					ok = ok || (p.X == w[0] && p.Y == w[1])
				}
				if !ok {
					t.Fatalf("seed %d: jumped to (%d,%d), want one of %v", seed, p.X, p.Y, tt.wants)
				}
				if p.Idle != PreyRestAfterJump {
					t.Errorf("idle = %d", p.Idle)
				}
			}
		})
	}
}

func TestPreyEatsFoodUnderfoot(t *testing.T) {
	f := openField()
	f.Food.Set(10, 10, maps.TileCarrot)
	r := NewRosterOf(Prey{X: 10, Y: 10, Facing: 0})
	r.Update(f, zeroRand{}, nil)

	p := r.At(0)
	if p.Eating != PreyEatTicks || p.Idle != PreyRestAfterEat || p.Facing != 1 {
		t.Errorf("prey = %+v", *p)
	}
	if f.Food.At(10, 10) != 0 {
		t.Error("food not consumed")
	}

	// While eating nothing else happens.
	r.Update(f, zeroRand{}, nil)
	if p.Eating != PreyEatTicks-1 || p.Idle != PreyRestAfterEat {
		t.Errorf("eating prey = %+v", *p)
	}
}

func TestPreyFleesThreat(t *testing.T) {
	f := openField()
	f.HeadX, f.HeadY = 10, 11
	r := NewRosterOf(Prey{X: 10, Y: 10, Idle: 50})
	jumps := 0
	r.Update(f, zeroRand{}, func() { jumps++ })

	p := r.At(0)
	if jumps != 1 {
		t.Fatalf("jumps = %d, want 1", jumps)
	}
	if f.Threatened(p.X, p.Y) {
		t.Errorf("fled to threatened cell (%d,%d)", p.X, p.Y)
	}
}

func TestPreyRestsWhenIdle(t *testing.T) {
	f := openField()
	f.HeadX, f.HeadY = 10, 11
	// Idle at or above the startle limit is never interrupted.
	r := NewRosterOf(Prey{X: 10, Y: 10, Idle: PreyStartleBelow})
	r.Update(f, zeroRand{}, nil)
	if p := r.At(0); p.X != 10 || p.Y != 10 || p.Idle != PreyStartleBelow-1 {
		t.Errorf("prey = %+v", *p)
	}
}

func TestPreyBlocked(t *testing.T) {
	f := openField()
	f.Body.Set(12, 5, 141)
	f.Background.Set(14, 4, maps.TileWall)
	f.HeadX, f.HeadY = 16, 5
	r := NewRosterOf(Prey{X: 10, Y: 5}, Prey{X: 20, Y: 5})

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"free", 5, 5, false},
		{"own cell", 10, 5, false},
		{"other prey same column", 20, 6, true},
		{"other prey two rows away", 20, 7, false},
		{"body at cell", 12, 5, true},
		{"body above", 12, 6, true},
		{"wall above", 14, 5, true},
		{"under the head", 16, 6, true},
		{"at the head", 16, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.blocked(0, tt.x, tt.y, f); got != tt.want {
				t.Errorf("blocked(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPreyBoxedIn(t *testing.T) {
	f := openField()
	f.Background.Fill(maps.TileWall)
	f.Background.Set(10, 10, maps.TileGround)
	f.Background.Set(10, 9, maps.TileGround)
	r := NewRosterOf(Prey{X: 10, Y: 10})
	r.Update(f, zeroRand{}, func() { t.Error("boxed in prey jumped") })
	if p := r.At(0); p.X != 10 || p.Y != 10 || p.Idle != PreyRestAfterJump {
		t.Errorf("prey = %+v", *p)
	}
}

func TestPreyDraw(t *testing.T) {
	tests := []struct {
		name       string
		prey       Prey
		head, body uint8
	}{
		{"resting right", Prey{X: 5, Y: 5, Facing: 0, Idle: 120}, 96, 112},
		{"looking around", Prey{X: 5, Y: 5, Facing: 0, Idle: 10}, 97, 112},
		{"eating left", Prey{X: 5, Y: 5, Facing: 1, Eating: 10}, 99, 115},
		{"chewing right", Prey{X: 5, Y: 5, Facing: 0, Eating: 5}, 100, 114},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := grid.New(Cols, Rows)
			NewRosterOf(tt.prey).Draw(layer)
			if got := layer.At(5, 4); got != tt.head {
				t.Errorf("head = %d, want %d", got, tt.head)
			}
			if got := layer.At(5, 5); got != tt.body {
				t.Errorf("body = %d, want %d", got, tt.body)
			}
		})
	}
}

func TestNewRoster(t *testing.T) {
	r := NewRoster(rand.New(rand.NewSource(3)))
	if r.Len() != 10 {
		t.Fatalf("Len = %d", r.Len())
	}
	for i, p := range r.All() {
		base := preySpawns[i].idle
		if (p.Idle-base)%36 != 0 || p.Idle < base || p.Idle > base+72 {
			t.Errorf("prey %d idle = %d from base %d", i, p.Idle, base)
		}
	}
	r.Remove(0)
	if r.Len() != 9 || r.At(0).X != preySpawns[1].x {
		t.Error("Remove did not delete the first prey")
	}
}
