package game

import (
	"log"
	"math/rand"
	"time"

	"python-arcade/internal/grid"
	"python-arcade/internal/maps"
	"python-arcade/internal/render"
)

// Phase is the state of the game state machine.
type Phase int

const (
	PhaseTitle Phase = iota
	PhasePlaying
	PhaseDying
	PhaseLevelComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseDying:
		return "dying"
	case PhaseLevelComplete:
		return "level complete"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// HeadSlot is the overlay slot of the crawler's head.
const HeadSlot = 0

// Context is the state carried across phases of one game.
type Context struct {
	Level  int
	Lives  int
	Scores *Scoreboard
}

type binding int

const (
	bindNone binding = iota
	bindTitle
	bindMove
)

// wait runs fn once a deadline passes or a completion channel closes,
// unless a transition happened in between.
type wait struct {
	epoch uint64
	at    time.Duration
	done  <-chan struct{}
	fn    func()
}

func (w wait) ready(now time.Duration) bool {
	if w.done == nil {
		return now >= w.at
	}
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// Config wires a Machine to its collaborators.
type Config struct {
	Assets *maps.Assets
	Audio  Audio
	Scores *Scoreboard
	Rand   Rand
}

// Machine is the game state machine. It owns the screen grid and overlay
// scene the renderer reads, and only the game loop goroutine may call it.
type Machine struct {
	Screen *grid.Grid
	Scene  *render.Scene

	assets *maps.Assets
	audio  Audio
	rng    Rand

	ctx   Context
	phase Phase
	level *Level

	registry Registry
	epoch    uint64
	waits    []wait
	now      time.Duration

	binding   binding
	keys      heldKeys
	swipe     Swipe
	stopMusic func()
}

// NewMachine creates a machine showing the title screen.
func NewMachine(cfg Config) *Machine {
	if cfg.Assets == nil {
		cfg.Assets = maps.DefaultAssets()
	}
	if cfg.Audio == nil {
		cfg.Audio = Silent{}
	}
	if cfg.Scores == nil {
		cfg.Scores = NewScoreboard(nil)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Machine{
		Screen: grid.New(Cols, Rows),
		Scene:  &render.Scene{},
		assets: cfg.Assets,
		audio:  cfg.Audio,
		rng:    cfg.Rand,
		ctx:    Context{Scores: cfg.Scores},
		keys:   newHeldKeys(),
		swipe:  NewSwipe(),
	}
	m.title()
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Context returns the game context.
func (m *Machine) Context() Context {
	return m.ctx
}

// Level returns the level being played, or nil before the first one is built.
func (m *Machine) Level() *Level {
	return m.level
}

// Poll fires the waits that are due at now.
func (m *Machine) Poll(now time.Duration) {
	m.now = now
	pending := m.waits
	m.waits = nil
	for _, w := range pending {
		if w.epoch != m.epoch {
			continue
		}
		if !w.ready(now) {
			m.waits = append(m.waits, w)
			continue
		}
		w.fn()
	}
}

// Tick runs one simulation tick.
func (m *Machine) Tick(i int) {
	m.registry.Run(i)
}

// HandleInput applies one input event to the active binding.
func (m *Machine) HandleInput(ev InputEvent) {
	switch ev.Kind {
	case KeyPress, KeyRepeat:
		switch m.binding {
		case bindTitle:
			if ev.Key == KeyStart {
				m.start()
			}
		case bindMove:
			if ev.Key <= KeyAbort {
				m.keys.press(ev.Key)
			}
		}
	case KeyRelease:
		if m.binding == bindMove {
			m.keys.release(ev.Key)
		}
	case TouchStart, TouchMove, TouchEnd:
		m.swipe.Handle(ev)
		if ev.Kind == TouchEnd && m.binding == bindTitle {
			m.start()
		}
	}
}

func (m *Machine) after(d time.Duration, fn func()) {
	m.waits = append(m.waits, wait{epoch: m.epoch, at: m.now + d, fn: fn})
}

func (m *Machine) await(done <-chan struct{}, fn func()) {
	if done == nil {
		done = Done()
	}
	m.waits = append(m.waits, wait{epoch: m.epoch, done: done, fn: fn})
}

// reset leaves the current phase: tasks, bindings, the head overlay and
// pending waits are dropped.
func (m *Machine) reset() {
	m.registry.Clear()
	m.binding = bindNone
	m.Scene.Clear(HeadSlot)
	m.Scene.Suppress(false)
	m.epoch++
}

func (m *Machine) musicOff() {
	if m.stopMusic != nil {
		m.stopMusic()
		m.stopMusic = nil
	}
}

func (m *Machine) printPlane(name string) {
	if def, plane, ok := m.assets.Plane(name); ok {
		grid.PrintPlane(m.Screen, plane, def.X, def.Y)
	}
}

// --- Title ---

func (m *Machine) title() {
	m.reset()
	m.phase = PhaseTitle
	m.Screen.Fill(0)
	m.after(TitleDelay, func() {
		for _, name := range []string{maps.PlaneRecord, maps.PlaneScore, maps.PlaneTitle, maps.PlaneAnnotation1, maps.PlaneAnnotation2} {
			m.printPlane(name)
		}
		grid.PrintNum(m.Screen, m.ctx.Scores.Top, 8, 6, 6)
		grid.PrintNum(m.Screen, m.ctx.Scores.Score, 19, 6, 6)
		m.binding = bindTitle
	})
}

func (m *Machine) start() {
	m.reset()
	if err := m.audio.Start(); err != nil {
		log.Printf("audio start: %v", err)
	}
	m.ctx.Level = 0
	m.ctx.Lives = StartLives
	m.ctx.Scores.Reset()
	m.play()
}

// --- Playing ---

func (m *Machine) play() {
	m.reset()
	m.phase = PhasePlaying
	m.Screen.Fill(0)
	m.after(PlayDelay, func() {
		m.stopMusic = m.audio.PlayMusic()
		m.level = NewLevel(m.ctx.Level, m.ctx.Lives, m.assets, m.rng, LevelEvents{
			Score: m.ctx.Scores.Add,
			Sound: func(s Sample) { m.audio.Play(s) },
		})
		m.keys = newHeldKeys()
		m.binding = bindMove

		l := m.level
		m.registry.Replace(
			Task{Name: "prey", Throttle: 1, Action: func(int) { l.UpdatePrey() }},
			Task{Name: "crawler", Throttle: 1, Action: m.crawlerTask},
			Task{Name: "timer", Throttle: TimerThrottle(l.Number), Action: func(int) { l.UpdateTimer() }},
			Task{Name: "fish", Throttle: FishThrottle, Action: func(int) { l.UpdateFish() }},
			Task{Name: "waves", Throttle: WaveThrottle, Action: func(int) { l.UpdateWaves() }},
			Task{Name: "merge", Throttle: 1, Action: func(int) {
				l.Merge(m.Screen, m.ctx.Scores.Top, m.ctx.Scores.Score)
			}},
		)
	})
}

// requested returns the movement request, keys before swipes.
func (m *Machine) requested() (Direction, bool) {
	if d, ok := m.keys.current.Direction(); ok {
		return d, true
	}
	return m.swipe.Direction()
}

func (m *Machine) crawlerTask(int) {
	l := m.level
	c := l.Crawler
	if c.Idle() {
		if c.Poisoned || l.TimeUp || m.keys.current == KeyAbort {
			m.die()
			return
		}
		if l.Roster.Len() == 0 {
			m.levelComplete()
			return
		}
		if d, ok := m.requested(); ok {
			l.Move(d)
		}
	}
	m.Scene.Set(HeadSlot, l.AnimateCrawler())
}

// --- Dying ---

func (m *Machine) die() {
	m.musicOff()
	m.registry.Clear()
	m.binding = bindNone
	m.epoch++
	m.phase = PhaseDying

	c := m.level.Crawler
	lit, finished := false, false
	m.registry.Add(Task{
		Name:      "blink",
		Throttle:  BlinkThrottle,
		Countdown: 1,
		Action: func(int) {
			if lit && finished {
				if m.ctx.Lives > 0 {
					m.ctx.Lives--
					m.play()
				} else {
					m.gameOver()
				}
				return
			}
			c.DrawBlink(m.Screen, lit)
			m.Scene.Set(HeadSlot, c.BlinkHead(lit))
			lit = !lit
		},
	})
	m.await(m.audio.Play(SampleDie), func() { finished = true })
}

// --- Level complete ---

func (m *Machine) levelComplete() {
	m.musicOff()
	m.reset()
	m.phase = PhaseLevelComplete
	m.Scene.Suppress(true)

	food := m.level.FoodCells()
	m.registry.Add(Task{
		Name:     "bonus",
		Throttle: LevelCompleteThrottle,
		Action: func(int) {
			if len(food) > 0 {
				m.Screen.Cells[food[0]] = maps.TileGround
				food = food[1:]
				m.ctx.Scores.Add(ScoreFoodBonus)
				printScores(m.Screen, m.ctx.Scores.Top, m.ctx.Scores.Score)
				m.audio.Play(SampleJump)
				return
			}
			m.reset()
			m.await(m.audio.Play(SampleComplete), func() {
				m.ctx.Level++
				if m.ctx.Level > LastLevel {
					m.gameOver()
				} else {
					m.play()
				}
			})
		},
	})
}

// --- Game over ---

func (m *Machine) gameOver() {
	m.reset()
	m.phase = PhaseGameOver
	m.Scene.Suppress(true)
	m.printPlane(maps.PlaneGameOver)
	m.await(m.audio.Play(SampleGameOver), m.title)
}
