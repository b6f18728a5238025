package maps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"python-arcade/internal/grid"
)

// ErrLayout reports an asset layout that does not describe the blob.
var ErrLayout = errors.New("asset layout")

// Plane names every layout must provide.
const (
	PlaneRecord      = "record"
	PlaneScore       = "score"
	PlaneTitle       = "title"
	PlaneAnnotation1 = "annotation1"
	PlaneAnnotation2 = "annotation2"
	PlanePlayground  = "playground"
	PlaneGameOver    = "gameover"
)

// Levels is the number of food planes, one per level.
const Levels = 4

// CarrotPlane returns the name of the food plane for level.
func CarrotPlane(level int) string {
	return fmt.Sprintf("carrots%d", level)
}

// RequiredPlanes lists every plane name a layout has to define.
func RequiredPlanes() []string {
	names := []string{PlaneRecord, PlaneScore, PlaneTitle, PlaneAnnotation1, PlaneAnnotation2, PlanePlayground, PlaneGameOver}
	for l := 0; l < Levels; l++ {
		names = append(names, CarrotPlane(l))
	}
	return names
}

// PlaneDef places a w x h byte plane of the blob at grid position (x, y).
type PlaneDef struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      int    `json:"w"`
	H      int    `json:"h"`
}

// End returns the first byte after the plane.
func (p PlaneDef) End() int {
	return p.Offset + p.W*p.H
}

// Region is a byte range of the blob.
type Region struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Layout is the packer's description of the asset blob:
// [map planes][atlas image][audio samples], back to back.
type Layout struct {
	Planes      []PlaneDef `json:"planes"`
	Atlas       Region     `json:"atlas"`
	SampleStart int        `json:"sample_start"`
	SampleEnds  []int      `json:"sample_ends"`
}

// DefaultLayout describes the shipped python.bin blob.
func DefaultLayout() Layout {
	l := Layout{
		Planes: []PlaneDef{
			{Name: PlaneRecord, Offset: 0, X: 9, Y: 4, W: 6, H: 1},
			{Name: PlaneScore, Offset: 6, X: 21, Y: 4, W: 4, H: 1},
			{Name: PlaneTitle, Offset: 10, X: 8, Y: 10, W: 20, H: 5},
			{Name: PlaneAnnotation1, Offset: 110, X: 10, Y: 20, W: 15, H: 1},
			{Name: PlaneAnnotation2, Offset: 125, X: 10, Y: 22, W: 15, H: 1},
			{Name: PlanePlayground, Offset: 140, X: 2, Y: 2, W: 32, H: 24},
			{Name: PlaneGameOver, Offset: 908, X: 12, Y: 12, W: 13, H: 1},
		},
		Atlas:       Region{Offset: 1945, Length: 2956},
		SampleStart: 4901,
		SampleEnds:  []int{34480, 65420, 117242, 203649, 205945, 208919, 256509, 292880, 400963},
	}
	for lv := 0; lv < Levels; lv++ {
		l.Planes = append(l.Planes, PlaneDef{Name: CarrotPlane(lv), Offset: 921 + 256*lv, X: 9, Y: 5, W: 16, H: 16})
	}
	return l
}

// LoadLayout reads a JSON layout file from disk.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout file: %w", err)
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout JSON: %w", err)
	}
	return l, nil
}

// Validate checks the layout against a blob of size n: planes, atlas and
// samples must be contiguous from offset 0 and inside the blob.
func (l Layout) Validate(n int) error {
	planes := append([]PlaneDef(nil), l.Planes...)
	sort.Slice(planes, func(i, j int) bool { return planes[i].Offset < planes[j].Offset })

	seen := make(map[string]bool, len(planes))
	end := 0
	for _, p := range planes {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("%w: plane %q has size %dx%d", ErrLayout, p.Name, p.W, p.H)
		}
		if p.Offset != end {
			return fmt.Errorf("%w: plane %q at %d, expected %d", ErrLayout, p.Name, p.Offset, end)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate plane %q", ErrLayout, p.Name)
		}
		seen[p.Name] = true
		end = p.End()
	}
	for _, name := range RequiredPlanes() {
		if !seen[name] {
			return fmt.Errorf("%w: missing plane %q", ErrLayout, name)
		}
	}

	if l.Atlas.Offset != end || l.Atlas.Length < 0 {
		return fmt.Errorf("%w: atlas at %d+%d, expected offset %d", ErrLayout, l.Atlas.Offset, l.Atlas.Length, end)
	}
	end += l.Atlas.Length
	if l.SampleStart != end {
		return fmt.Errorf("%w: samples start at %d, expected %d", ErrLayout, l.SampleStart, end)
	}
	for i, e := range l.SampleEnds {
		if e <= end {
			return fmt.Errorf("%w: sample %d ends at %d, before %d", ErrLayout, i, e, end)
		}
		end = e
	}
	if end > n {
		return fmt.Errorf("%w: needs %d bytes, blob has %d", ErrLayout, end, n)
	}
	return nil
}

// Assets is an opened blob.
type Assets struct {
	Layout Layout
	blob   []byte
	planes map[string]PlaneDef
}

// Open validates layout against blob.
func Open(blob []byte, layout Layout) (*Assets, error) {
	if err := layout.Validate(len(blob)); err != nil {
		return nil, err
	}
	return &Assets{Layout: layout, blob: blob, planes: planeIndex(layout)}, nil
}

// Load reads and opens a blob file.
func Load(path string, layout Layout) (*Assets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset blob: %w", err)
	}
	a, err := Open(data, layout)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return a, nil
}

// Plane returns a named plane and where it is printed.
func (a *Assets) Plane(name string) (PlaneDef, grid.Plane, bool) {
	p, ok := a.planes[name]
	if !ok {
		return PlaneDef{}, grid.Plane{}, false
	}
	return p, grid.Plane{W: p.W, H: p.H, Data: a.blob[p.Offset:p.End()]}, true
}

// Atlas returns the sprite sheet bytes, empty when the blob carries none.
func (a *Assets) Atlas() []byte {
	r := a.Layout.Atlas
	return a.blob[r.Offset : r.Offset+r.Length]
}

// SampleCount returns the number of audio samples.
func (a *Assets) SampleCount() int {
	return len(a.Layout.SampleEnds)
}

// Sample returns the encoded bytes of sample i, or nil when there is no such sample.
func (a *Assets) Sample(i int) []byte {
	if i < 0 || i >= len(a.Layout.SampleEnds) {
		return nil
	}
	start := a.Layout.SampleStart
	if i > 0 {
		start = a.Layout.SampleEnds[i-1]
	}
	return a.blob[start:a.Layout.SampleEnds[i]]
}

// Size returns the blob size in bytes.
func (a *Assets) Size() int {
	return len(a.blob)
}

// DefaultAssets returns a playable procedural asset set with no sprite sheet
// and no audio, used when no blob file is available.
func DefaultAssets() *Assets {
	l := DefaultLayout()
	end := l.Planes[len(l.Planes)-1].End()
	l.Atlas = Region{Offset: end, Length: 0}
	l.SampleStart = end
	l.SampleEnds = nil

	blob := make([]byte, end)
	put := func(name string, data []uint8) {
		for _, p := range l.Planes {
			if p.Name == name {
				copy(blob[p.Offset:p.End()], data)
			}
		}
	}

	put(PlaneRecord, textRow(6, "RECORD"))
	put(PlaneScore, textRow(4, "LAST"))
	put(PlaneAnnotation1, textRow(15, "SPACE TO START"))
	put(PlaneAnnotation2, textRow(15, "ARROWS TO MOVE"))
	put(PlaneGameOver, textRow(13, "GAME OVER"))

	title := make([]uint8, 0, 100)
	for y := 0; y < 5; y++ {
		switch y {
		case 0, 4:
			title = append(title, bytes.Repeat([]uint8{TileStone}, 20)...)
		case 2:
			title = append(title, textRow(20, "PYTHON")...)
		default:
			title = append(title, make([]uint8, 20)...)
		}
	}
	put(PlaneTitle, title)

	put(PlanePlayground, defaultPlayground())
	for lv := 0; lv < Levels; lv++ {
		put(CarrotPlane(lv), defaultCarrots(lv))
	}

	return &Assets{Layout: l, blob: blob, planes: planeIndex(l)}
}

func planeIndex(l Layout) map[string]PlaneDef {
	m := make(map[string]PlaneDef, len(l.Planes))
	for _, p := range l.Planes {
		m[p.Name] = p
	}
	return m
}

// textRow centers s in a row of w cells.
func textRow(w int, s string) []uint8 {
	row := make([]uint8, w)
	start := (w - len(s)) / 2
	for i, r := range s {
		if start+i >= 0 && start+i < w {
			row[start+i] = LetterTile(r)
		}
	}
	return row
}

// defaultPlayground is 32x24 printed at (2,2): walls on the top, bottom and
// left, open water along the right side.
func defaultPlayground() []uint8 {
	const w, h = 32, 24
	data := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := TileGround
			switch {
			case y == 0 || y == h-1 || x == 0:
				v = TileWall
			case x >= 28:
				v = TileWater
			}
			data[y*w+x] = v
		}
	}
	return data
}

// defaultCarrots scatters food on a 16x16 plane, shifted per level.
func defaultCarrots(level int) []uint8 {
	const w, h = 16, 16
	data := make([]uint8, w*h)
	for y := 1; y < h; y += 4 {
		for x := (level + y/4) % 3; x < w; x += 3 {
			data[y*w+x] = TileCarrot
		}
	}
	return data
}
