package game

import (
	"math/rand"
	"testing"
	"time"

	"python-arcade/internal/maps"
)

// recordingAudio completes every sample immediately and remembers what played.
type recordingAudio struct {
	played []Sample
	music  int
	starts int
}

func (a *recordingAudio) Start() error { a.starts++; return nil }

func (a *recordingAudio) Play(s Sample) <-chan struct{} {
	a.played = append(a.played, s)
	return Done()
}

func (a *recordingAudio) PlayMusic() func() {
	a.music++
	return func() { a.music-- }
}

func (a *recordingAudio) count(s Sample) int {
	n := 0
	for _, p := range a.played {
		if p == s {
			n++
		}
	}
	return n
}

type harness struct {
	t     *testing.T
	m     *Machine
	audio *recordingAudio
	now   time.Duration
}

func newHarness(t *testing.T) *harness {
	a := &recordingAudio{}
	m := NewMachine(Config{Audio: a, Rand: rand.New(rand.NewSource(1))})
	return &harness{t: t, m: m, audio: a}
}

func (h *harness) wait(d time.Duration) {
	h.now += d
	h.m.Poll(h.now)
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.m.Poll(h.now)
		h.m.Tick(0)
	}
}

func (h *harness) press(k Key) {
	h.m.HandleInput(InputEvent{Kind: KeyPress, Key: k})
}

// startGame goes from the title screen to a running first level.
func (h *harness) startGame() *Level {
	h.wait(TitleDelay)
	h.press(KeyStart)
	h.wait(PlayDelay)
	if h.m.Phase() != PhasePlaying || h.m.Level() == nil {
		h.t.Fatalf("phase %v after start", h.m.Phase())
	}
	return h.m.Level()
}

// isolate leaves one prey far from the crawler so the level cannot end early.
func isolate(l *Level) {
	l.Roster = NewRosterOf(Prey{X: 5, Y: 5, Idle: 1000})
}

func TestTitleWaitsForStart(t *testing.T) {
	h := newHarness(t)
	if h.m.Phase() != PhaseTitle {
		t.Fatalf("phase = %v", h.m.Phase())
	}
	h.press(KeyStart)
	if h.m.Phase() != PhaseTitle {
		t.Fatal("start accepted before the title was drawn")
	}
	h.wait(TitleDelay)
	// "PYTHON" centred in the title plane at (8, 10).
	if got := h.m.Screen.At(15, 12); got != maps.LetterTile('P') {
		t.Errorf("title cell = %d", got)
	}
	h.m.HandleInput(InputEvent{Kind: TouchStart, X: 10, Y: 10})
	h.m.HandleInput(InputEvent{Kind: TouchEnd, X: 10, Y: 10})
	if h.m.Phase() != PhasePlaying {
		t.Errorf("tap on title: phase = %v", h.m.Phase())
	}
	if h.audio.starts != 1 {
		t.Errorf("audio started %d times", h.audio.starts)
	}
	if h.m.Level() != nil {
		t.Error("level built before the play delay")
	}
}

func TestMoveRight(t *testing.T) {
	h := newHarness(t)
	l := h.startGame()
	isolate(l)
	if h.audio.music != 1 {
		t.Errorf("music playing = %d", h.audio.music)
	}

	h.press(KeyRight)
	h.tick(1)
	c := l.Crawler
	if c.X != 28 || c.Y != 21 || c.Progress != MoveTicks-1 {
		t.Fatalf("head (%d,%d) progress %d", c.X, c.Y, c.Progress)
	}
	if got := h.m.Screen.At(27, 21); got != 141 {
		t.Errorf("screen under anchor = %d, want 141", got)
	}
	if o, ok := h.m.Scene.Overlay(HeadSlot); !ok || o.Sprite != maps.TileCrawlerHead+uint8(Right) {
		t.Errorf("head overlay = %+v, %v", o, ok)
	}
	if h.m.Context().Scores.Score != 0 {
		t.Errorf("score = %d", h.m.Context().Scores.Score)
	}

	h.tick(MoveTicks - 1)
	if !c.Idle() || c.AnchorX != 28 {
		t.Errorf("move not settled: progress %d anchor %d", c.Progress, c.AnchorX)
	}
	// Holding the key keeps the crawler going, until the water stops it.
	h.tick(1)
	if c.X != 29 {
		t.Errorf("held key: head x = %d", c.X)
	}
	h.tick(MoveTicks)
	if c.X != 29 || !c.Idle() {
		t.Errorf("crawler entered water: x = %d", c.X)
	}
}

func TestMoveIntoBodyRefused(t *testing.T) {
	h := newHarness(t)
	l := h.startGame()
	isolate(l)
	h.tick(1)
	if l.Move(Left) {
		t.Error("crawler turned back into its own body")
	}
	if !l.Crawler.Idle() {
		t.Error("refused move started a slide")
	}
}

func TestEatingFoodPoisons(t *testing.T) {
	h := newHarness(t)
	l := h.startGame()
	isolate(l)
	l.Food.Set(28, 21, maps.TileCarrot)

	h.press(KeyRight)
	h.tick(1)
	c := l.Crawler
	if !c.Poisoned || !c.Eating {
		t.Fatalf("poisoned=%v eating=%v", c.Poisoned, c.Eating)
	}
	if h.m.Context().Scores.Score != 0 {
		t.Errorf("food scored %d", h.m.Context().Scores.Score)
	}
	if l.Food.At(28, 21) != 0 {
		t.Error("food left under the head")
	}
	if h.audio.count(SampleEat) != 1 {
		t.Errorf("eat played %d times", h.audio.count(SampleEat))
	}

	h.tick(MoveTicks - 1)
	if h.m.Phase() != PhasePlaying {
		t.Fatalf("died before the move finished")
	}
	h.tick(1)
	if h.m.Phase() != PhaseDying {
		t.Fatalf("phase = %v, want dying", h.m.Phase())
	}
	if h.audio.music != 0 {
		t.Error("music still playing while dying")
	}
}

func TestEatingPreyScores(t *testing.T) {
	h := newHarness(t)
	l := h.startGame()
	l.Roster = NewRosterOf(Prey{X: 28, Y: 21, Idle: 1000}, Prey{X: 5, Y: 5, Idle: 1000})

	h.press(KeyRight)
	h.tick(1)
	c := l.Crawler
	if got := h.m.Context().Scores.Score; got != ScorePrey {
		t.Errorf("score = %d, want %d", got, ScorePrey)
	}
	// The timer also ran once on this tick.
	if l.Time != StartTime+PreyTime-1 {
		t.Errorf("time = %d", l.Time)
	}
	if c.Poisoned || !c.Eating || l.Roster.Len() != 1 {
		t.Errorf("poisoned=%v eating=%v prey=%d", c.Poisoned, c.Eating, l.Roster.Len())
	}

	h.tick(MoveTicks - 1)
	if c.Len() != 22 || !c.Growing {
		t.Fatalf("after eating move len=%d growing=%v", c.Len(), c.Growing)
	}
	h.tick(MoveTicks)
	if c.Len() != 23 {
		t.Errorf("len = %d after growing move, want 23", c.Len())
	}
}

func TestLastPreyCompletesLevel(t *testing.T) {
	h := newHarness(t)
	l := h.startGame()
	l.Roster = NewRosterOf(Prey{X: 28, Y: 21, Idle: 1000})
	food := len(l.FoodCells())
	if food == 0 {
		t.Fatal("level has no food")
	}

	h.press(KeyRight)
	h.tick(MoveTicks)
	if h.m.Phase() != PhasePlaying {
		t.Fatalf("level ended mid move: %v", h.m.Phase())
	}
	h.tick(1)
	if h.m.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %v, want level complete", h.m.Phase())
	}
	if !h.m.Scene.Suppressed() {
		t.Error("overlays not suppressed")
	}
	if _, ok := h.m.Scene.Overlay(HeadSlot); ok {
		t.Error("head overlay left in place")
	}

	// One food cell cleared every third tick, then the tally ends.
	h.tick(3*food + 1)
	want := ScorePrey + food*ScoreFoodBonus
	if got := h.m.Context().Scores.Score; got != want {
		t.Errorf("score = %d, want %d", got, want)
	}
	if got := h.audio.count(SampleComplete); got != 1 {
		t.Fatalf("complete played %d times", got)
	}
	h.tick(1)
	if h.m.Phase() != PhasePlaying || h.m.Context().Level != 1 {
		t.Fatalf("phase %v level %d", h.m.Phase(), h.m.Context().Level)
	}
	h.wait(PlayDelay)
	if next := h.m.Level(); next == l || next.Number != 1 {
		t.Error("next level not built")
	}
	if got := h.m.Context().Scores.Top; got != TopScoreFloor {
		t.Errorf("top = %d, want the floor %d", got, TopScoreFloor)
	}
}

func TestFinalLevelEndsGame(t *testing.T) {
	h := newHarness(t)
	l := h.startGame()
	h.m.ctx.Level = LastLevel
	l.Roster = NewRosterOf()
	l.Food.Fill(0)

	h.tick(1)
	if h.m.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %v", h.m.Phase())
	}
	h.tick(2)
	if h.m.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", h.m.Phase())
	}
	h.tick(1)
	if h.m.Phase() != PhaseTitle {
		t.Errorf("phase = %v, want title", h.m.Phase())
	}
}

func TestTimeUpKills(t *testing.T) {
	h := newHarness(t)
	l := h.startGame()
	isolate(l)
	l.Time = 0

	h.press(KeyRight)
	h.tick(1)
	if !l.TimeUp {
		t.Fatal("timer did not run out")
	}
	h.tick(MoveTicks - 1)
	if h.m.Phase() != PhasePlaying {
		t.Fatal("died mid move")
	}
	h.tick(1)
	if h.m.Phase() != PhaseDying {
		t.Fatalf("phase = %v, want dying", h.m.Phase())
	}

	// Blink once, then the next life starts.
	h.tick(2)
	if got := h.m.Screen.At(27, 21); got != 141 {
		t.Errorf("blink body cell = %d, want 141", got)
	}
	h.tick(3)
	if h.m.Phase() != PhasePlaying || h.m.Context().Lives != StartLives-1 {
		t.Fatalf("phase %v lives %d", h.m.Phase(), h.m.Context().Lives)
	}
	h.wait(PlayDelay)
	if h.m.Level() == l {
		t.Error("level not rebuilt for the next life")
	}
}

func TestAbortOnLastLife(t *testing.T) {
	h := newHarness(t)
	h.startGame()
	h.m.ctx.Lives = 0

	h.press(KeyAbort)
	h.tick(1)
	if h.m.Phase() != PhaseDying {
		t.Fatalf("phase = %v, want dying", h.m.Phase())
	}
	h.tick(5)
	if h.m.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", h.m.Phase())
	}
	if !h.m.Scene.Suppressed() {
		t.Error("game over screen not suppressed")
	}
	h.tick(1)
	if h.m.Phase() != PhaseTitle {
		t.Fatalf("phase = %v, want title", h.m.Phase())
	}
	if h.audio.count(SampleDie) != 1 || h.audio.count(SampleGameOver) != 1 {
		t.Errorf("played %v", h.audio.played)
	}
}

func TestStaleWaitIgnored(t *testing.T) {
	h := newHarness(t)
	h.wait(TitleDelay)
	h.press(KeyStart)
	// Abandon the pending play delay by returning to the title.
	h.m.title()
	h.wait(PlayDelay)
	if h.m.Level() != nil || h.m.Phase() != PhaseTitle {
		t.Errorf("stale wait fired: phase %v", h.m.Phase())
	}
}

func TestKeysBeatSwipe(t *testing.T) {
	h := newHarness(t)
	l := h.startGame()
	isolate(l)

	h.m.HandleInput(InputEvent{Kind: TouchStart, X: 100, Y: 100})
	h.m.HandleInput(InputEvent{Kind: TouchMove, X: 100, Y: 80})
	h.press(KeyRight)
	h.tick(1)
	if l.Crawler.X != 28 || l.Crawler.Y != 21 {
		t.Errorf("head = (%d,%d), want the key direction", l.Crawler.X, l.Crawler.Y)
	}

	h.m.HandleInput(InputEvent{Kind: KeyRelease, Key: KeyRight})
	h.tick(MoveTicks)
	if l.Crawler.Y != 20 {
		t.Errorf("swipe up ignored: head = (%d,%d)", l.Crawler.X, l.Crawler.Y)
	}
}
