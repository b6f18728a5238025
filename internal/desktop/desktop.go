// Package desktop plays the game in a window through ebiten.
package desktop

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"python-arcade/internal/game"
	"python-arcade/internal/render"
)

// WindowScale is the initial window size in screen pixels per game pixel.
const WindowScale = 3

// bindings maps keyboard keys to game keys. Desktop keys report real
// releases, so held keys follow the newest press.
var bindings = map[ebiten.Key]game.Key{
	ebiten.KeyArrowUp:    game.KeyUp,
	ebiten.KeyW:          game.KeyUp,
	ebiten.KeyArrowRight: game.KeyRight,
	ebiten.KeyD:          game.KeyRight,
	ebiten.KeyArrowDown:  game.KeyDown,
	ebiten.KeyS:          game.KeyDown,
	ebiten.KeyArrowLeft:  game.KeyLeft,
	ebiten.KeyA:          game.KeyLeft,
	ebiten.KeyEscape:     game.KeyAbort,
	ebiten.KeySpace:      game.KeyStart,
	ebiten.KeyEnter:      game.KeyStart,
}

// App implements ebiten.Game around one game loop. Ebiten calls Update and
// Draw on the same goroutine, which is the loop's goroutine.
type App struct {
	loop  *game.GameLoop
	start time.Time

	surface *render.Surface
	pixels  []byte
	image   *ebiten.Image
	dirty   bool

	pointer game.Pointer
	touchID ebiten.TouchID
	touched bool
}

// New creates the app for machine.
func New(machine *game.Machine, atlas *render.Atlas) (*App, error) {
	renderer, err := game.NewRendererFor(atlas)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	a := &App{}
	a.loop = game.NewGameLoop(game.LoopConfig{
		Machine:  machine,
		Renderer: renderer,
		Present:  a.present,
	})
	return a, nil
}

// Run opens the window and plays until it is closed or Q is pressed.
func (a *App) Run(title string) error {
	w, h := a.Layout(0, 0)
	ebiten.SetWindowSize(w*WindowScale, h*WindowScale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	a.start = time.Now()
	return ebiten.RunGame(a)
}

func (a *App) present(s *render.Surface) {
	a.surface = s
	a.dirty = true
}

// Update forwards input and advances the game.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for k, gk := range bindings {
		if inpututil.IsKeyJustPressed(k) {
			a.loop.Send(game.InputEvent{Kind: game.KeyPress, Key: gk})
		}
		if inpututil.IsKeyJustReleased(k) {
			a.loop.Send(game.InputEvent{Kind: game.KeyRelease, Key: gk})
		}
	}
	a.touches()

	x, y := ebiten.CursorPosition()
	if ev, ok := a.pointer.Update(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), float64(x), float64(y)); ok {
		a.loop.Send(ev)
	}

	a.loop.Frame(time.Since(a.start))
	return nil
}

// touches follows the first finger down until it lifts.
func (a *App) touches() {
	if !a.touched {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return
		}
		a.touchID, a.touched = ids[0], true
		x, y := ebiten.TouchPosition(a.touchID)
		a.loop.Send(game.InputEvent{Kind: game.TouchStart, X: float64(x), Y: float64(y)})
		return
	}
	if inpututil.IsTouchJustReleased(a.touchID) {
		x, y := inpututil.TouchPositionInPreviousTick(a.touchID)
		a.loop.Send(game.InputEvent{Kind: game.TouchEnd, X: float64(x), Y: float64(y)})
		a.touched = false
		return
	}
	x, y := ebiten.TouchPosition(a.touchID)
	a.loop.Send(game.InputEvent{Kind: game.TouchMove, X: float64(x), Y: float64(y)})
}

// Draw shows the last rendered frame.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{render.Backdrop.R, render.Backdrop.G, render.Backdrop.B, 0xff})
	if a.surface == nil {
		return
	}
	if a.image == nil {
		a.image = ebiten.NewImage(a.surface.W, a.surface.H)
		a.pixels = make([]byte, 4*a.surface.W*a.surface.H)
	}
	if a.dirty {
		a.surface.RGBA(a.pixels)
		a.image.WritePixels(a.pixels)
		a.dirty = false
	}
	screen.DrawImage(a.image, nil)
}

// Layout keeps the game at its native resolution; ebiten scales it to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return game.Cols * render.CellW, game.Rows * render.CellH
}
