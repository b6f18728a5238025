package maps

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// colorNames maps color names from JSON to ANSI codes.
var colorNames = map[string]int{
	"black":          30,
	"red":            31,
	"green":          32,
	"yellow":         33,
	"blue":           34,
	"magenta":        35,
	"cyan":           36,
	"white":          37,
	"gray":           90,
	"grey":           90,
	"bright_red":     91,
	"bright_green":   92,
	"bright_yellow":  93,
	"bright_blue":    94,
	"bright_magenta": 95,
	"bright_cyan":    96,
	"bright_white":   97,
}

func resolveColor(name string) int {
	if code, ok := colorNames[name]; ok {
		return code
	}
	return 37
}

// TileDef describes how a cell value is shown by the asset tools.
type TileDef struct {
	Char     rune
	Fg       int
	Walkable bool
	Name     string
}

// Legend maps cell values to their descriptions.
type Legend map[uint8]TileDef

// DefaultLegend describes the cell values the game itself uses.
func DefaultLegend() Legend {
	return Legend{
		TileEmpty:  {Char: ' ', Fg: 37, Name: "empty"},
		TileGround: {Char: '.', Fg: 32, Walkable: true, Name: "ground"},
		TileWall:   {Char: '#', Fg: 90, Name: "wall"},
		TileStone:  {Char: '=', Fg: 37, Name: "stone"},
		TileCarrot: {Char: 'v', Fg: 91, Name: "carrot"},
		TileWater:  {Char: '~', Fg: 34, Name: "water"},
	}
}

// Describe returns the description of v. Letters and digits describe
// themselves; other values not in the legend are named by their index.
func (l Legend) Describe(v uint8) TileDef {
	if d, ok := l[v]; ok {
		return d
	}
	switch {
	case v >= TileLetterA && v < TileLetterA+26:
		return TileDef{Char: rune('A' + v - TileLetterA), Fg: 97, Name: "letter"}
	case v >= '0' && v <= '9':
		return TileDef{Char: rune(v), Fg: 97, Name: "digit"}
	case v >= TileWave-2 && v <= TileWave:
		return TileDef{Char: '~', Fg: 36, Name: "wave"}
	}
	return TileDef{Char: '?', Fg: 33, Name: "sprite " + strconv.Itoa(int(v))}
}

type jsonTile struct {
	Char     string `json:"char"`
	Fg       string `json:"fg"`
	Walkable bool   `json:"walkable"`
	Name     string `json:"name"`
}

// LoadLegend reads a JSON legend keyed by cell value and merges it over
// DefaultLegend.
func LoadLegend(path string) (Legend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read legend file: %w", err)
	}

	var jl map[string]jsonTile
	if err := json.Unmarshal(data, &jl); err != nil {
		return nil, fmt.Errorf("parse legend JSON: %w", err)
	}

	legend := DefaultLegend()
	for k, jt := range jl {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 || idx > 255 {
			return nil, fmt.Errorf("legend key %q is not a cell value", k)
		}
		ch := '?'
		if len(jt.Char) > 0 {
			ch = []rune(jt.Char)[0]
		}
		legend[uint8(idx)] = TileDef{
			Char:     ch,
			Fg:       resolveColor(jt.Fg),
			Walkable: jt.Walkable,
			Name:     jt.Name,
		}
	}
	return legend, nil
}
