package render

// Surface is the pixel target the renderer paints into.
type Surface struct {
	W, H int
	Pix  []Pixel // row-major, W*H
}

// NewSurface allocates a fully transparent surface.
func NewSurface(w, h int) *Surface {
	s := &Surface{W: w, H: h, Pix: make([]Pixel, w*h)}
	for i := range s.Pix {
		s.Pix[i] = TransparentPixel()
	}
	return s
}

// At returns the pixel at (x, y). Pixels outside the surface are transparent.
func (s *Surface) At(x, y int) Pixel {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return TransparentPixel()
	}
	return s.Pix[y*s.W+x]
}

// Set writes the pixel at (x, y), clipped to the surface.
func (s *Surface) Set(x, y int, p Pixel) {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return
	}
	s.Pix[y*s.W+x] = p
}

// Blit replaces the rectangle at (x, y) with the sprite, transparency included.
// A nil sprite leaves the surface untouched.
func (s *Surface) Blit(x, y int, sprite *PixelSprite) {
	if sprite == nil {
		return
	}
	for row := 0; row < CellH; row++ {
		for col := 0; col < CellW; col++ {
			s.Set(x+col, y+row, sprite[row][col])
		}
	}
}

// Capture copies the sprite-sized rectangle at (x, y).
func (s *Surface) Capture(x, y int) PixelSprite {
	var out PixelSprite
	for row := 0; row < CellH; row++ {
		for col := 0; col < CellW; col++ {
			out[row][col] = s.At(x+col, y+row)
		}
	}
	return out
}

// Composite draws sprite over the background captured at (x, y):
// opaque sprite pixels replace, transparent ones let the background through.
func (s *Surface) Composite(x, y int, sprite, background *PixelSprite) {
	if sprite == nil {
		return
	}
	for row := 0; row < CellH; row++ {
		for col := 0; col < CellW; col++ {
			p := sprite[row][col]
			if p.Transparent {
				p = background[row][col]
			}
			s.Set(x+col, y+row, p)
		}
	}
}

// RGBA writes the surface as 8-bit premultiplied RGBA into dst, which must hold W*H*4 bytes.
// Transparent pixels become fully transparent black.
func (s *Surface) RGBA(dst []byte) {
	for i, p := range s.Pix {
		o := i * 4
		if p.Transparent {
			dst[o], dst[o+1], dst[o+2], dst[o+3] = 0, 0, 0, 0
			continue
		}
		dst[o], dst[o+1], dst[o+2], dst[o+3] = p.R, p.G, p.B, 0xff
	}
}
