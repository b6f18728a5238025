package grid

import "testing"

func TestCompose(t *testing.T) {
	const w, h = 6, 4

	empty := New(w, h)
	full := New(w, h)
	full.Fill(7)
	sparse := New(w, h)
	sparse.Set(1, 1, 3)
	sparse.Set(5, 3, 9)

	tests := []struct {
		name   string
		layers []*Grid
		want   func(i int) uint8
	}{
		{"priority all zero", []*Grid{empty, full}, func(i int) uint8 { return full.Cells[i] }},
		{"priority full", []*Grid{full, sparse}, func(i int) uint8 { return 7 }},
		{"sparse over full", []*Grid{sparse, full}, func(i int) uint8 {
			if sparse.Cells[i] != 0 {
				return sparse.Cells[i]
			}
			return full.Cells[i]
		}},
		{"all empty", []*Grid{empty, empty}, func(i int) uint8 { return 0 }},
		{"no layers", nil, func(i int) uint8 { return 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := New(w, h)
			dst.Fill(42)
			Compose(dst, tt.layers...)
			for i := range dst.Cells {
				if got, want := dst.Cells[i], tt.want(i); got != want {
					t.Fatalf("cell %d: got %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestComposeSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched layer size")
		}
	}()
	Compose(New(4, 4), New(3, 4))
}

func TestPrintNum(t *testing.T) {
	tests := []struct {
		name string
		n    int
		pad  int
		want []uint8
	}{
		{"padded", 42, 6, []uint8{0, 0, 0, 0, '4', '2'}},
		{"exact", 123, 3, []uint8{'1', '2', '3'}},
		{"truncated keeps tail", 1234567, 6, []uint8{'2', '3', '4', '5', '6', '7'}},
		{"zero", 0, 3, []uint8{0, 0, '0'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(10, 1)
			g.Fill(99)
			PrintNum(g, tt.n, 2, 0, tt.pad)
			for i, want := range tt.want {
				if got := g.At(2+i, 0); got != want {
					t.Errorf("col %d: got %d, want %d", i, got, want)
				}
			}
			if g.At(1, 0) != 99 || g.At(2+tt.pad, 0) != 99 {
				t.Error("PrintNum wrote outside its field")
			}
		})
	}
}

func TestPrintPlane(t *testing.T) {
	g := New(5, 4)
	g.Fill(1)
	PrintPlane(g, Plane{W: 3, H: 2, Data: []uint8{2, 0, 3, 4, 5, 6}}, 3, 2)

	checks := []struct {
		x, y int
		want uint8
	}{
		{3, 2, 2},
		{4, 2, 0}, // zeros overwrite
		{3, 3, 4},
		{4, 3, 5},
		{2, 2, 1}, // untouched
		{0, 0, 1},
	}
	for _, c := range checks {
		if got := g.At(c.x, c.y); got != c.want {
			t.Errorf("(%d,%d): got %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	g := New(2, 2)
	g.Set(-1, 0, 5)
	g.Set(2, 1, 5)
	if g.At(-1, 0) != 0 || g.At(0, 2) != 0 {
		t.Error("out-of-bounds reads must return 0")
	}
	for i, c := range g.Cells {
		if c != 0 {
			t.Errorf("cell %d modified by out-of-bounds write", i)
		}
	}
}
