package audio

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"

	"python-arcade/internal/game"
)

// SampleRate is the rate every sample is resampled to.
const SampleRate = beep.SampleRate(44100)

var bufferFormat = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Source yields the encoded samples; *maps.Assets satisfies it.
type Source interface {
	SampleCount() int
	Sample(i int) []byte
}

// Bank holds the decoded samples, indexed by game.Sample.
type Bank struct {
	buffers []*beep.Buffer
}

// NewBank decodes every mp3 sample of src. A sample that fails to decode is
// logged and left empty: playing it completes at once.
func NewBank(src Source) *Bank {
	b := &Bank{buffers: make([]*beep.Buffer, game.SampleCount)}
	if src == nil {
		return b
	}
	for i := 0; i < src.SampleCount() && i < int(game.SampleCount); i++ {
		data := src.Sample(i)
		if len(data) == 0 {
			continue
		}
		buf, err := decode(data)
		if err != nil {
			log.Printf("audio: sample %d: %v", i, err)
			continue
		}
		b.buffers[i] = buf
	}
	return b
}

func decode(data []byte) (*beep.Buffer, error) {
	s, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, s)
	}
	buf := beep.NewBuffer(bufferFormat)
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("stream mp3: %w", err)
	}
	return buf, nil
}

// Buffer returns the decoded sample, or nil when it is missing or empty.
func (b *Bank) Buffer(s game.Sample) *beep.Buffer {
	if b == nil || s < 0 || int(s) >= len(b.buffers) {
		return nil
	}
	buf := b.buffers[s]
	if buf == nil || buf.Len() == 0 {
		return nil
	}
	return buf
}

// Duration returns how long the sample plays.
func (b *Bank) Duration(s game.Sample) time.Duration {
	buf := b.Buffer(s)
	if buf == nil {
		return 0
	}
	return SampleRate.D(buf.Len())
}

// Music streams the intro once, then MusicSequence forever. It ends early
// only when a part of the sequence is missing.
func (b *Bank) Music() beep.Streamer {
	i := -1
	return beep.Iterate(func() beep.Streamer {
		part := game.SampleIntro
		if i >= 0 {
			part = game.MusicSequence[i%len(game.MusicSequence)]
		}
		i++
		buf := b.Buffer(part)
		if buf == nil {
			return nil
		}
		return buf.Streamer(0, buf.Len())
	})
}
