package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"python-arcade/internal/game"
)

// Output levels.
const (
	MasterVolume = 0.1
	MusicVolume  = 0.6 // relative to master
)

// Speaker plays the bank on the local sound device.
type Speaker struct {
	bank *Bank

	mu      sync.Mutex
	started bool
}

// NewSpeaker creates a speaker. The device is opened by Start.
func NewSpeaker(bank *Bank) *Speaker {
	return &Speaker{bank: bank}
}

// Start opens the sound device. Calling it again is a no-op.
func (sp *Speaker) Start() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	sp.started = true
	return nil
}

func (sp *Speaker) ready() bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.started
}

// Play starts a sample. The returned channel closes when it has finished, or
// at once when the device is not started or the sample is missing.
func (sp *Speaker) Play(s game.Sample) <-chan struct{} {
	buf := sp.bank.Buffer(s)
	if buf == nil || !sp.ready() {
		return game.Done()
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(
		volume(buf.Streamer(0, buf.Len()), MasterVolume),
		beep.Callback(func() { close(done) }),
	))
	return done
}

// PlayMusic starts the music and returns a function that silences it.
func (sp *Speaker) PlayMusic() func() {
	if !sp.ready() || sp.bank.Buffer(game.SampleIntro) == nil {
		return func() {}
	}
	ctrl := &beep.Ctrl{Streamer: volume(sp.bank.Music(), MasterVolume*MusicVolume)}
	speaker.Play(ctrl)
	return func() {
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
	}
}

// volume scales s to level, where 1 is unchanged.
func volume(s beep.Streamer, level float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: level - 1}
}

// Timed plays nothing but completes each sample after its real duration.
// Remote sessions use it so phase changes keep their pacing.
type Timed struct {
	bank *Bank
}

// NewTimed creates a silent player paced by bank.
func NewTimed(bank *Bank) *Timed {
	return &Timed{bank: bank}
}

func (t *Timed) Start() error { return nil }

func (t *Timed) Play(s game.Sample) <-chan struct{} {
	d := t.bank.Duration(s)
	if d <= 0 {
		return game.Done()
	}
	done := make(chan struct{})
	time.AfterFunc(d, func() { close(done) })
	return done
}

func (t *Timed) PlayMusic() func() { return func() {} }
