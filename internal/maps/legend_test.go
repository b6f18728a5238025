package maps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLegendDescribe(t *testing.T) {
	l := DefaultLegend()
	tests := []struct {
		v        uint8
		ch       rune
		name     string
		walkable bool
	}{
		{TileGround, '.', "ground", true},
		{TileWall, '#', "wall", false},
		{LetterTile('P'), 'P', "letter", false},
		{LetterTile('7'), '7', "digit", false},
		{TileWave - 1, '~', "wave", false},
		{200, '?', "sprite 200", false},
	}
	for _, tt := range tests {
		d := l.Describe(tt.v)
		if d.Char != tt.ch || d.Name != tt.name || d.Walkable != tt.walkable {
			t.Errorf("Describe(%d) = %+v", tt.v, d)
		}
	}
}

func TestLoadLegend(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "legend.json")
	os.WriteFile(good, []byte(`{"2": {"char": "▓", "fg": "bright_red", "name": "brick"}, "90": {"char": "r", "fg": "nope", "name": "rock"}}`), 0644)
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"300": {"char": "x"}}`), 0644)

	l, err := LoadLegend(good)
	if err != nil {
		t.Fatalf("LoadLegend: %v", err)
	}
	if d := l.Describe(TileWall); d.Char != '▓' || d.Fg != 91 || d.Name != "brick" {
		t.Errorf("wall = %+v", d)
	}
	if d := l.Describe(90); d.Fg != 37 {
		t.Errorf("unknown color = %d, want white", d.Fg)
	}
	if d := l.Describe(TileGround); d.Name != "ground" {
		t.Error("defaults lost in merge")
	}

	if _, err := LoadLegend(bad); err == nil {
		t.Error("out of range key accepted")
	}
	if _, err := LoadLegend(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}
