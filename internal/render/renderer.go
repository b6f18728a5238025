package render

import (
	"errors"
	"fmt"

	"python-arcade/internal/grid"
)

// ErrNoSurface is returned when the renderer has nothing to paint into.
var ErrNoSurface = errors.New("render: no surface")

type savedRect struct {
	x, y int
	pix  PixelSprite
}

// Renderer paints a sprite-index grid into a surface, blitting only the cells
// that changed since the previous frame, then composites the scene overlays.
type Renderer struct {
	surface    *Surface
	atlas      *Atlas
	cols, rows int
	painted    []uint8
	firstFrame bool
	under      []savedRect
}

// NewRenderer creates a renderer for a cols x rows grid. The atlas may be nil
// (sprites are then skipped); the surface may not.
func NewRenderer(surface *Surface, atlas *Atlas, cols, rows int) (*Renderer, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if surface.W < cols*CellW || surface.H < rows*CellH {
		return nil, fmt.Errorf("%w: %dx%d cannot hold %dx%d cells", ErrNoSurface, surface.W, surface.H, cols, rows)
	}
	return &Renderer{
		surface:    surface,
		atlas:      atlas,
		cols:       cols,
		rows:       rows,
		painted:    make([]uint8, cols*rows),
		firstFrame: true,
	}, nil
}

// Surface returns the paint target.
func (r *Renderer) Surface() *Surface {
	return r.surface
}

// Render paints one frame.
func (r *Renderer) Render(visible *grid.Grid, scene *Scene) {
	if !scene.Suppressed() {
		for i := len(r.under) - 1; i >= 0; i-- {
			u := r.under[i]
			r.surface.Blit(u.x, u.y, &u.pix)
		}
	}

	full := scene.takeRepaint() || r.firstFrame
	i := 0
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			c := visible.Cells[i]
			if full || r.painted[i] != c {
				r.surface.Blit(x*CellW, y*CellH, r.atlas.Sprite(c))
				r.painted[i] = c
			}
			i++
		}
	}
	r.firstFrame = false

	r.under = r.under[:0]
	for slot := 0; slot < MaxOverlays; slot++ {
		o, ok := scene.Overlay(slot)
		if !ok {
			continue
		}
		saved := savedRect{x: o.X, y: o.Y, pix: r.surface.Capture(o.X, o.Y)}
		r.under = append(r.under, saved)
		r.surface.Composite(o.X, o.Y, r.atlas.Sprite(o.Sprite), &saved.pix)
	}
}
