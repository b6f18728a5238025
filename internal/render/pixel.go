package render

const (
	// CellW is the width of a sprite cell in pixels.
	CellW = 8
	// CellH is the height of a sprite cell in pixels.
	CellH = 8

	// AtlasCols and AtlasRows describe the sprite sheet layout (16x16 sprites).
	AtlasCols = 16
	AtlasRows = 16
	// AtlasSize is the number of sprites in an atlas.
	AtlasSize = AtlasCols * AtlasRows
)

// Pixel represents a single pixel with RGB color and transparency.
type Pixel struct {
	R, G, B     uint8
	Transparent bool
}

// PixelSprite is a CellH x CellW grid of pixels.
type PixelSprite [CellH][CellW]Pixel

// TransparentPixel returns a transparent pixel.
func TransparentPixel() Pixel {
	return Pixel{Transparent: true}
}

// P is a shorthand to create an opaque pixel.
func P(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b}
}

// FillPixelSprite creates a pixel sprite filled with a single color.
func FillPixelSprite(r, g, b uint8) PixelSprite {
	var s PixelSprite
	p := P(r, g, b)
	for y := 0; y < CellH; y++ {
		for x := 0; x < CellW; x++ {
			s[y][x] = p
		}
	}
	return s
}

// TransparentPixelSprite creates a fully transparent pixel sprite.
func TransparentPixelSprite() PixelSprite {
	var s PixelSprite
	for y := 0; y < CellH; y++ {
		for x := 0; x < CellW; x++ {
			s[y][x] = TransparentPixel()
		}
	}
	return s
}
