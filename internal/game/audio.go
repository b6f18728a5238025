package game

// Sample indexes the sound effects and music parts in the asset blob.
type Sample int

const (
	SampleIntro Sample = iota
	SampleMusic1
	SampleMusic2
	SampleMusic3
	SampleJump
	SampleEat
	SampleComplete
	SampleDie
	SampleGameOver
	SampleCount
)

// MusicSequence is played once the intro ends, on repeat.
var MusicSequence = []Sample{SampleMusic1, SampleMusic1, SampleMusic2, SampleMusic1, SampleMusic1, SampleMusic2, SampleMusic3, SampleMusic3}

// Audio plays samples. Play returns a channel that is closed when the sample
// has finished; a sample that cannot be played completes immediately.
type Audio interface {
	Start() error
	Play(s Sample) <-chan struct{}
	PlayMusic() (stop func())
}

// Silent is an Audio that plays nothing.
type Silent struct{}

func (Silent) Start() error { return nil }

func (Silent) Play(Sample) <-chan struct{} {
	return Done()
}

func (Silent) PlayMusic() func() { return func() {} }

// Done returns an already closed completion channel.
func Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
