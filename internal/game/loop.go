package game

import (
	"time"

	"python-arcade/internal/render"
)

const InputChanSize = 256

// Presenter receives every rendered frame.
type Presenter func(s *render.Surface)

// GameLoop drives one game: it drains input, fires due waits, runs the
// scheduled ticks and renders.
type GameLoop struct {
	machine  *Machine
	sched    *Scheduler
	renderer *render.Renderer
	present  Presenter
	holds    *HoldTracker

	inputCh chan InputEvent
	stopCh  chan struct{}
	start   time.Time
}

// LoopConfig configures a GameLoop. Renderer and Present may be nil for a
// headless loop; Holds is needed when the device reports presses only.
type LoopConfig struct {
	Machine  *Machine
	Renderer *render.Renderer
	Present  Presenter
	Holds    *HoldTracker
}

// NewGameLoop creates and returns a new game loop.
func NewGameLoop(cfg LoopConfig) *GameLoop {
	return &GameLoop{
		machine:  cfg.Machine,
		sched:    NewScheduler(FPS, MaxDroppedFrames),
		renderer: cfg.Renderer,
		present:  cfg.Present,
		holds:    cfg.Holds,
		inputCh:  make(chan InputEvent, InputChanSize),
		stopCh:   make(chan struct{}),
	}
}

// NewRendererFor builds a renderer sized for the game grid onto a fresh surface.
func NewRendererFor(atlas *render.Atlas) (*render.Renderer, error) {
	return render.NewRenderer(render.NewSurface(Cols*render.CellW, Rows*render.CellH), atlas, Cols, Rows)
}

// InputChan returns the channel frontends send events on.
func (gl *GameLoop) InputChan() chan<- InputEvent {
	return gl.inputCh
}

// Send queues an event without blocking; it reports false when the queue is full.
func (gl *GameLoop) Send(ev InputEvent) bool {
	select {
	case gl.inputCh <- ev:
		return true
	default:
		return false
	}
}

// Machine returns the state machine the loop drives.
func (gl *GameLoop) Machine() *Machine {
	return gl.machine
}

// Frame advances the game to now, measured from an arbitrary fixed origin,
// and reports whether a frame was rendered.
func (gl *GameLoop) Frame(now time.Duration) bool {
	// Drain all pending input events
	for {
		select {
		case ev := <-gl.inputCh:
			gl.handle(ev, now)
		default:
			goto drained
		}
	}
drained:
	if gl.holds != nil {
		for _, ev := range gl.holds.Expire(now) {
			gl.machine.HandleInput(ev)
		}
	}

	gl.machine.Poll(now)

	ticks, draw := gl.sched.Advance(now)
	for i := ticks - 1; i >= 0; i-- {
		gl.machine.Tick(i)
	}
	if !draw {
		return false
	}
	if gl.renderer != nil {
		gl.renderer.Render(gl.machine.Screen, gl.machine.Scene)
		if gl.present != nil {
			gl.present(gl.renderer.Surface())
		}
	}
	return true
}

func (gl *GameLoop) handle(ev InputEvent, now time.Duration) {
	if ev.Kind == KeyRepeat && gl.holds != nil {
		ev = gl.holds.Press(ev.Key, now)
	}
	gl.machine.HandleInput(ev)
}

// Run drives frames at the display rate. Blocks until Stop is called.
func (gl *GameLoop) Run() {
	ticker := time.NewTicker(gl.sched.Period())
	defer ticker.Stop()

	gl.start = time.Now()
	for {
		select {
		case <-gl.stopCh:
			return
		case <-ticker.C:
			gl.Frame(time.Since(gl.start))
		}
	}
}

// Stop shuts down the game loop.
func (gl *GameLoop) Stop() {
	close(gl.stopCh)
}
