package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
)

// Atlas holds the 256 sprites sliced from the sprite sheet.
type Atlas struct {
	sprites [AtlasSize]PixelSprite
}

// Sprite returns sprite i. A nil atlas yields nil, which turns blits into no-ops.
func (a *Atlas) Sprite(i uint8) *PixelSprite {
	if a == nil {
		return nil
	}
	return &a.sprites[i]
}

// LoadAtlas decodes a GIF or PNG sprite sheet and slices it.
func LoadAtlas(data []byte) (*Atlas, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode atlas: %w", err)
	}
	a, err := NewAtlas(img)
	if err != nil {
		return nil, fmt.Errorf("%s atlas: %w", format, err)
	}
	return a, nil
}

// NewAtlas slices img into AtlasCols x AtlasRows sprites of CellW x CellH,
// starting at the top-left corner. Pixels with zero alpha are transparent.
func NewAtlas(img image.Image) (*Atlas, error) {
	bounds := img.Bounds()
	needW, needH := AtlasCols*CellW, AtlasRows*CellH
	if bounds.Dx() < needW || bounds.Dy() < needH {
		return nil, fmt.Errorf("expected at least %dx%d, got %dx%d", needW, needH, bounds.Dx(), bounds.Dy())
	}

	a := &Atlas{}
	for i := 0; i < AtlasSize; i++ {
		ox := bounds.Min.X + (i%AtlasCols)*CellW
		oy := bounds.Min.Y + (i/AtlasCols)*CellH
		for y := 0; y < CellH; y++ {
			for x := 0; x < CellW; x++ {
				r, g, b, al := img.At(ox+x, oy+y).RGBA()
				if al == 0 {
					a.sprites[i][y][x] = TransparentPixel()
					continue
				}
				// Un-premultiply so partially transparent edges keep their hue.
				a.sprites[i][y][x] = P(uint8(r*0xffff/al>>8), uint8(g*0xffff/al>>8), uint8(b*0xffff/al>>8))
			}
		}
	}
	return a, nil
}

// SetSprite replaces sprite i.
func (a *Atlas) SetSprite(i uint8, s PixelSprite) {
	a.sprites[i] = s
}
