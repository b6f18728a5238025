package server

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"python-arcade/internal/game"
)

// parseInput converts raw bytes into game events. Keys arrive as repeats,
// since terminals never report releases. Mouse reports (SGR mode) become
// touch events carrying 0-based terminal cell coordinates.
// quit is set by Q or Ctrl-C.
func parseInput(data []byte) (events []game.InputEvent, quit bool) {
	key := func(k game.Key) {
		events = append(events, game.InputEvent{Kind: game.KeyRepeat, Key: k})
	}
	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			// SGR mouse: ESC [ < b ; x ; y (M|m)
			if i+2 < len(data) && data[i+1] == '[' && data[i+2] == '<' {
				ev, n, ok := parseMouse(data[i+3:])
				if ok {
					events = append(events, ev)
				}
				i += 3 + n
				continue
			}
			// Arrow keys, in normal and application cursor mode
			if i+2 < len(data) && (data[i+1] == '[' || data[i+1] == 'O') {
				switch data[i+2] {
				case 'A':
					key(game.KeyUp)
				case 'B':
					key(game.KeyDown)
				case 'C':
					key(game.KeyRight)
				case 'D':
					key(game.KeyLeft)
				}
				i += 3
				continue
			}
			key(game.KeyAbort)
			i++
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			key(game.KeyUp)
		case 's', 'S':
			key(game.KeyDown)
		case 'a', 'A':
			key(game.KeyLeft)
		case 'd', 'D':
			key(game.KeyRight)
		case ' ', '\r', '\n':
			key(game.KeyStart)
		case 'q', 'Q':
			return events, true
		case 3: // Ctrl-C
			return events, true
		}
		i += size
	}
	return events, false
}

// parseMouse decodes "b;x;y" followed by M (press or motion) or m (release).
// n is the number of bytes consumed.
func parseMouse(data []byte) (ev game.InputEvent, n int, ok bool) {
	end := bytes.IndexAny(data, "Mm")
	if end < 0 {
		return ev, len(data), false
	}
	n = end + 1
	fields := bytes.Split(data[:end], []byte{';'})
	if len(fields) != 3 {
		return ev, n, false
	}
	var v [3]int
	for j, f := range fields {
		x, err := strconv.Atoi(string(f))
		if err != nil {
			return ev, n, false
		}
		v[j] = x
	}
	button, x, y := v[0], v[1]-1, v[2]-1

	switch {
	case button&64 != 0:
		// Wheel
		return ev, n, false
	case data[end] == 'm':
		ev.Kind = game.TouchEnd
	case button&32 != 0:
		ev.Kind = game.TouchMove
	case button&3 == 0:
		ev.Kind = game.TouchStart
	default:
		return ev, n, false
	}
	ev.X, ev.Y = float64(x), float64(y)
	return ev, n, true
}
