package render

import "python-arcade/internal/maps"

// FallbackAtlas draws a complete atlas procedurally. It is used when the asset
// blob (and with it the sprite sheet) is not available.
func FallbackAtlas() *Atlas {
	a := &Atlas{}
	for i := 0; i < AtlasSize; i++ {
		a.sprites[i] = FillPixelSprite(10, 10, 15)
	}

	a.sprites[maps.TileGround] = grassPixels(0)
	a.sprites[maps.TileWall] = wallPixels()
	a.sprites[maps.TileStone] = stonePixels()

	for r, g := range glyphs {
		a.sprites[maps.LetterTile(r)] = glyphPixels(g)
	}

	a.sprites[maps.TileCarrot] = carrotPixels()
	for n := 0; n <= 8; n++ {
		a.sprites[maps.TileTimerBar+uint8(n)] = timerPixels(n)
	}

	for facing := 0; facing < 2; facing++ {
		a.sprites[maps.TileRabbitHead+uint8(facing)] = rabbitHeadPixels(facing, false, false)
		a.sprites[maps.TileRabbitHead+2+uint8(facing)] = rabbitHeadPixels(facing, true, false)
		a.sprites[maps.TileRabbitHead+4+uint8(facing)] = rabbitHeadPixels(facing, true, true)
		a.sprites[maps.TileRabbitBody+uint8(facing)] = rabbitBodyPixels(facing, false)
		a.sprites[maps.TileRabbitBody+2+uint8(facing)] = rabbitBodyPixels(facing, true)
	}

	for frame := 1; frame <= 5; frame++ {
		a.sprites[maps.TileFish-uint8(frame)] = fishPixels(frame)
	}
	for frame := 0; frame < 3; frame++ {
		a.sprites[maps.TileWave-uint8(frame)] = wavePixels(frame)
	}

	for tail := 0; tail < 4; tail++ {
		for facing := 0; facing < 4; facing++ {
			token := maps.TileCrawler + uint8(tail*4+facing)
			for frame := 0; frame < 4; frame++ {
				a.sprites[token+uint8(frame*16)] = segmentPixels(tail, facing, frame, false)
			}
			a.sprites[token+maps.TileCrawlerBlink] = segmentPixels(tail, facing, 0, true)
		}
	}

	for facing := 0; facing < 4; facing++ {
		for mood := 0; mood < 4; mood++ {
			idx := maps.TileCrawlerHead + uint8(facing+mood*4)
			a.sprites[idx] = headPixels(facing, mood, false)
			a.sprites[idx+16] = headPixels(facing, mood, true)
		}
	}
	return a
}

// --- Helpers ---

func rect(s *PixelSprite, x0, y0, x1, y1 int, p Pixel) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x >= 0 && x < CellW && y >= 0 && y < CellH {
				s[y][x] = p
			}
		}
	}
}

// rotate turns s clockwise by quarter * 90 degrees.
func rotate(s PixelSprite, quarter int) PixelSprite {
	for ; quarter > 0; quarter-- {
		var r PixelSprite
		for y := 0; y < CellH; y++ {
			for x := 0; x < CellW; x++ {
				r[y][x] = s[CellH-1-x][y]
			}
		}
		s = r
	}
	return s
}

func mirror(s PixelSprite) PixelSprite {
	var m PixelSprite
	for y := 0; y < CellH; y++ {
		for x := 0; x < CellW; x++ {
			m[y][x] = s[y][CellW-1-x]
		}
	}
	return m
}

// over draws the opaque pixels of src onto dst.
func over(dst *PixelSprite, src PixelSprite) {
	for y := 0; y < CellH; y++ {
		for x := 0; x < CellW; x++ {
			if !src[y][x].Transparent {
				dst[y][x] = src[y][x]
			}
		}
	}
}

// --- Ground ---

func grassPixels(v int) PixelSprite {
	s := FillPixelSprite(28, 65+uint8(v*3), 28)
	blade := P(60, 135, 50)
	for _, p := range [][2]int{{1, 1}, {5, 2}, {3, 5}, {6, 6}, {0, 4}} {
		s[(p[1]+v)%CellH][p[0]] = blade
	}
	return s
}

func wallPixels() PixelSprite {
	stone, mortar := P(100, 100, 110), P(60, 60, 70)
	s := FillPixelSprite(100, 100, 110)
	for _, row := range []int{0, 4} {
		rect(&s, 0, row, CellW-1, row, mortar)
	}
	rect(&s, 3, 1, 3, 3, mortar)
	rect(&s, 7, 5, 7, 7, mortar)
	s[2][6] = P(stone.R-15, stone.G-15, stone.B-10)
	return s
}

func stonePixels() PixelSprite {
	s := FillPixelSprite(130, 120, 95)
	rect(&s, 0, 7, CellW-1, 7, P(90, 82, 60))
	rect(&s, 7, 0, 7, 7, P(90, 82, 60))
	return s
}

// --- Text ---

// 3x5 glyphs, '#' is ink.
var glyphs = map[rune][5]string{
	'0': {"###", "#.#", "#.#", "#.#", "###"},
	'1': {".#.", "##.", ".#.", ".#.", "###"},
	'2': {"###", "..#", "###", "#..", "###"},
	'3': {"###", "..#", ".##", "..#", "###"},
	'4': {"#.#", "#.#", "###", "..#", "..#"},
	'5': {"###", "#..", "###", "..#", "###"},
	'6': {"###", "#..", "###", "#.#", "###"},
	'7': {"###", "..#", ".#.", ".#.", ".#."},
	'8': {"###", "#.#", "###", "#.#", "###"},
	'9': {"###", "#.#", "###", "..#", "###"},
	'A': {".#.", "#.#", "###", "#.#", "#.#"},
	'B': {"##.", "#.#", "##.", "#.#", "##."},
	'C': {".##", "#..", "#..", "#..", ".##"},
	'D': {"##.", "#.#", "#.#", "#.#", "##."},
	'E': {"###", "#..", "##.", "#..", "###"},
	'F': {"###", "#..", "##.", "#..", "#.."},
	'G': {".##", "#..", "#.#", "#.#", ".##"},
	'H': {"#.#", "#.#", "###", "#.#", "#.#"},
	'I': {"###", ".#.", ".#.", ".#.", "###"},
	'J': {"..#", "..#", "..#", "#.#", ".#."},
	'K': {"#.#", "#.#", "##.", "#.#", "#.#"},
	'L': {"#..", "#..", "#..", "#..", "###"},
	'M': {"#.#", "###", "###", "#.#", "#.#"},
	'N': {"##.", "#.#", "#.#", "#.#", "#.#"},
	'O': {".#.", "#.#", "#.#", "#.#", ".#."},
	'P': {"##.", "#.#", "##.", "#..", "#.."},
	'Q': {".#.", "#.#", "#.#", "##.", ".##"},
	'R': {"##.", "#.#", "##.", "#.#", "#.#"},
	'S': {".##", "#..", ".#.", "..#", "##."},
	'T': {"###", ".#.", ".#.", ".#.", ".#."},
	'U': {"#.#", "#.#", "#.#", "#.#", "###"},
	'V': {"#.#", "#.#", "#.#", "#.#", ".#."},
	'W': {"#.#", "#.#", "###", "###", "#.#"},
	'X': {"#.#", "#.#", ".#.", "#.#", "#.#"},
	'Y': {"#.#", "#.#", ".#.", ".#.", ".#."},
	'Z': {"###", "..#", ".#.", "#..", "###"},
}

func glyphPixels(g [5]string) PixelSprite {
	s := FillPixelSprite(10, 10, 15)
	ink := P(240, 230, 200)
	for y, row := range g {
		for x, c := range row {
			if c == '#' {
				rect(&s, 1+x*2, 1+y, 2+x*2, 1+y, ink)
			}
		}
	}
	return s
}

// --- Food and timer ---

func carrotPixels() PixelSprite {
	s := grassPixels(1)
	orange, leaf := P(235, 120, 30), P(70, 190, 60)
	rect(&s, 2, 3, 5, 3, orange)
	rect(&s, 2, 4, 4, 4, orange)
	rect(&s, 3, 5, 4, 5, orange)
	s[6][3] = orange
	rect(&s, 5, 1, 5, 2, leaf)
	s[1][6] = leaf
	s[2][4] = leaf
	return s
}

func timerPixels(n int) PixelSprite {
	s := FillPixelSprite(15, 18, 30)
	rect(&s, 0, 2, CellW-1, 5, P(45, 45, 55))
	if n > 0 {
		rect(&s, 0, 2, n-1, 5, P(240, 190, 60))
	}
	return s
}

// --- Rabbits ---

// rabbitHeadPixels draws the head facing right; facing 1 is the mirror image.
func rabbitHeadPixels(facing int, eating, chewing bool) PixelSprite {
	s := grassPixels(0)
	fur, inner, eye := P(235, 235, 240), P(230, 160, 170), P(20, 20, 30)
	rect(&s, 2, 0, 2, 3, fur)
	rect(&s, 4, 0, 4, 3, fur)
	s[1][4] = inner
	rect(&s, 2, 4, 6, 7, fur)
	s[5][5] = eye
	if eating {
		s[7][6] = P(235, 120, 30)
		if chewing {
			s[6][6] = P(235, 120, 30)
		}
	}
	if facing == 1 {
		s = mirror(s)
	}
	return s
}

func rabbitBodyPixels(facing int, eating bool) PixelSprite {
	s := grassPixels(0)
	fur := P(235, 235, 240)
	if eating {
		rect(&s, 1, 2, 6, 7, fur)
	} else {
		rect(&s, 2, 0, 6, 5, fur)
		rect(&s, 1, 6, 3, 7, fur)
		rect(&s, 5, 6, 6, 7, fur)
	}
	s[3][0] = P(250, 250, 250)
	if facing == 1 {
		s = mirror(s)
	}
	return s
}

// --- Water ---

func waterPixels() PixelSprite {
	s := FillPixelSprite(15, 38, 95)
	for y := 4; y < CellH; y++ {
		rect(&s, 0, y, CellW-1, y, P(15, 38, 95+uint8(y*4)))
	}
	return s
}

// fishPixels draws frame 5 (leaving the water) down to frame 1, which is calm water.
func fishPixels(frame int) PixelSprite {
	s := waterPixels()
	scale := P(200, 210, 220)
	switch frame {
	case 5, 2:
		rect(&s, 2, 6, 5, 6, P(150, 200, 250))
	case 4:
		rect(&s, 2, 3, 5, 4, scale)
		s[2][6] = scale
	case 3:
		rect(&s, 2, 1, 5, 2, scale)
		s[1][1] = scale
	}
	return s
}

func wavePixels(frame int) PixelSprite {
	s := waterPixels()
	crest := P(110, 170, 240)
	for x := frame * 2; x < CellW; x += 6 {
		s[2+frame][x] = crest
		if x+1 < CellW {
			s[2+frame][x+1] = crest
		}
	}
	return s
}

// --- Crawler ---

// stub draws a tube from the cell center toward the top edge; rotate it to point elsewhere.
func stub(frame int, blink bool) PixelSprite {
	s := TransparentPixelSprite()
	skin, band := P(90, 170, 60), P(200, 190, 60)
	if blink {
		skin, band = P(250, 250, 200), P(250, 250, 250)
	}
	for y := 0; y <= 5; y++ {
		p := skin
		if (y+frame*2)/2%2 == 0 {
			p = band
		}
		rect(&s, 2, y, 5, y, p)
	}
	return s
}

// segmentPixels draws a body piece joining the tail side to the facing side.
// A tail end (tail == facing) only reaches toward the facing side and tapers.
func segmentPixels(tail, facing, frame int, blink bool) PixelSprite {
	s := grassPixels(0)
	over(&s, rotate(stub(frame, blink), facing))
	if tail != facing {
		over(&s, rotate(stub(frame, blink), tail))
		return s
	}
	tip := TransparentPixelSprite()
	rect(&tip, 2, 4, 5, 7, P(28, 65, 28))
	rect(&tip, 3, 4, 4, 5, P(90, 170, 60))
	over(&s, rotate(tip, facing))
	return s
}

// headPixels draws the head overlay. Mood is 0 plain, 1 poisoned, 2 eating.
func headPixels(facing, mood int, blink bool) PixelSprite {
	s := TransparentPixelSprite()
	skin := P(90, 170, 60)
	switch {
	case blink:
		skin = P(250, 250, 200)
	case mood == 1:
		skin = P(150, 90, 170)
	}
	rect(&s, 1, 1, 6, 6, skin)
	rect(&s, 2, 0, 5, 7, skin)
	s[2][2] = P(20, 20, 30)
	s[2][5] = P(20, 20, 30)
	if mood == 2 {
		rect(&s, 3, 0, 4, 1, P(150, 30, 40))
	} else {
		s[0][3] = P(200, 40, 50)
	}
	return rotate(s, facing)
}
