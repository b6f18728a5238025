// Package terminal plays the game in the local terminal through tcell.
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"python-arcade/internal/game"
	"python-arcade/internal/render"
)

// Frontend owns the tcell screen and one game loop.
type Frontend struct {
	screen tcell.Screen
	loop   *game.GameLoop

	mu   sync.Mutex // guards term
	term *render.Terminal

	pointer game.Pointer
}

// New sets up screen, which must already be initialised, to show machine.
func New(screen tcell.Screen, machine *game.Machine, atlas *render.Atlas) (*Frontend, error) {
	renderer, err := game.NewRendererFor(atlas)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	w, h := screen.Size()
	f := &Frontend{
		screen: screen,
		term:   render.NewTerminal(w, h),
	}
	f.loop = game.NewGameLoop(game.LoopConfig{
		Machine:  machine,
		Renderer: renderer,
		Present:  f.present,
		Holds:    game.NewHoldTracker(game.DefaultHoldTimeout),
	})
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()
	return f, nil
}

// present runs on the loop goroutine.
func (f *Frontend) present(s *render.Surface) {
	f.mu.Lock()
	f.term.Compose(s)
	f.term.Flush(func(x, y int, c render.Cell) {
		f.screen.SetContent(x, y, c.Ch, nil, styleOf(c))
	})
	f.mu.Unlock()
	f.screen.Show()
}

func styleOf(c render.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.FgR), int32(c.FgG), int32(c.FgB))).
		Background(tcell.NewRGBColor(int32(c.BgR), int32(c.BgG), int32(c.BgB)))
}

// Run plays until the player quits.
func (f *Frontend) Run() {
	go f.loop.Run()
	defer f.loop.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for ev := range eventChan {
		if !f.handle(ev) {
			return
		}
	}
}

// handle forwards one event and reports whether to keep running.
func (f *Frontend) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok, quit := keyOf(ev)
		if quit {
			return false
		}
		if ok {
			f.loop.Send(game.InputEvent{Kind: game.KeyRepeat, Key: k})
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		f.mu.Lock()
		px, py := f.term.ScreenToPixel(x, y)
		f.mu.Unlock()
		if gev, ok := f.pointer.Update(ev.Buttons()&tcell.Button1 != 0, float64(px), float64(py)); ok {
			f.loop.Send(gev)
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		f.mu.Lock()
		f.term.Resize(w, h)
		f.mu.Unlock()
		f.screen.Sync()
	}
	return true
}

// keyOf maps a key event to a game key. Terminals send no releases, so
// every key reaches the game as a repeat.
func keyOf(ev *tcell.EventKey) (k game.Key, ok, quit bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.KeyUp, true, false
	case tcell.KeyDown:
		return game.KeyDown, true, false
	case tcell.KeyLeft:
		return game.KeyLeft, true, false
	case tcell.KeyRight:
		return game.KeyRight, true, false
	case tcell.KeyEscape:
		return game.KeyAbort, true, false
	case tcell.KeyEnter:
		return game.KeyStart, true, false
	case tcell.KeyCtrlC:
		return game.NoKey, false, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.KeyUp, true, false
		case 's', 'S':
			return game.KeyDown, true, false
		case 'a', 'A':
			return game.KeyLeft, true, false
		case 'd', 'D':
			return game.KeyRight, true, false
		case ' ':
			return game.KeyStart, true, false
		case 'q', 'Q':
			return game.NoKey, false, true
		}
	}
	return game.NoKey, false, false
}
