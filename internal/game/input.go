package game

import (
	"sort"
	"time"
)

// Key is a logical control.
type Key int

const (
	KeyUp Key = iota
	KeyRight
	KeyDown
	KeyLeft
	KeyAbort
	KeyStart
)

// NoKey means no key is held.
const NoKey Key = -1

// Direction returns the heading of a movement key.
func (k Key) Direction() (Direction, bool) {
	if k >= KeyUp && k <= KeyLeft {
		return Direction(k), true
	}
	return NoDirection, false
}

// EventKind tells what happened.
type EventKind int

const (
	KeyPress   EventKind = iota // key went down (browser and desktop style)
	KeyRelease                  // key went up
	KeyRepeat                   // key press from a device without release events
	TouchStart
	TouchMove
	TouchEnd
)

// InputEvent carries one device event into the game loop.
type InputEvent struct {
	Kind EventKind
	Key  Key
	X, Y float64 // touch position in device units
}

// heldKeys implements the movement binding: the newest press wins and a
// release falls back to the most recent key still held.
type heldKeys struct {
	current Key
	held    []Key
}

func newHeldKeys() heldKeys {
	return heldKeys{current: NoKey}
}

func (h *heldKeys) press(k Key) {
	h.current = k
	for _, x := range h.held {
		if x == k {
			return
		}
	}
	h.held = append(h.held, k)
}

func (h *heldKeys) release(k Key) {
	kept := h.held[:0]
	for _, x := range h.held {
		if x != k {
			kept = append(kept, x)
		}
	}
	h.held = kept
	if h.current == k {
		h.current = NoKey
		if len(h.held) > 0 {
			h.current = h.held[len(h.held)-1]
		}
	}
}

// SwipeThreshold is how far a touch must travel before it counts as a direction.
const SwipeThreshold = 9

// Swipe quantizes touch drags into directions.
type Swipe struct {
	startX, startY float64
	dir            Direction
}

// NewSwipe returns a tracker with no direction.
func NewSwipe() Swipe {
	return Swipe{dir: NoDirection}
}

// Handle updates the tracker. Every touch event first forgets the previous
// direction; a move further than the threshold picks the dominant axis.
func (s *Swipe) Handle(ev InputEvent) {
	s.dir = NoDirection
	switch ev.Kind {
	case TouchStart:
		s.startX, s.startY = ev.X, ev.Y
	case TouchMove:
		dx := s.startX - ev.X
		dy := s.startY - ev.Y
		adx, ady := abs(dx), abs(dy)
		if adx <= SwipeThreshold && ady <= SwipeThreshold {
			return
		}
		switch {
		case adx > ady && dx > 0:
			s.dir = Left
		case adx > ady:
			s.dir = Right
		case dy > 0:
			s.dir = Up
		default:
			s.dir = Down
		}
	}
}

// Direction returns the current swipe direction, if any.
func (s *Swipe) Direction() (Direction, bool) {
	return s.dir, s.dir != NoDirection
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// DefaultHoldTimeout outlasts the usual terminal auto-repeat delay.
const DefaultHoldTimeout = 400 * time.Millisecond

// HoldTracker turns press-only key streams into press/release pairs. A key
// counts as held until no repeat has arrived for the hold timeout.
type HoldTracker struct {
	timeout time.Duration
	seen    map[Key]time.Duration
}

// NewHoldTracker creates a tracker; a zero timeout selects DefaultHoldTimeout.
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HoldTracker{timeout: timeout, seen: make(map[Key]time.Duration)}
}

// Press records a press at now and returns the event to deliver.
func (h *HoldTracker) Press(k Key, now time.Duration) InputEvent {
	h.seen[k] = now
	return InputEvent{Kind: KeyPress, Key: k}
}

// Expire returns a release for every key whose repeats stopped.
func (h *HoldTracker) Expire(now time.Duration) []InputEvent {
	var out []InputEvent
	for k, at := range h.seen {
		if now-at >= h.timeout {
			delete(h.seen, k)
			out = append(out, InputEvent{Kind: KeyRelease, Key: k})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Held reports whether k is currently considered held.
func (h *HoldTracker) Held(k Key) bool {
	_, ok := h.seen[k]
	return ok
}

// Pointer turns a mouse button held while dragging into touch events.
type Pointer struct {
	down bool
}

// Update reports the button state at (x, y) and returns the touch event it
// implies, if any.
func (p *Pointer) Update(pressed bool, x, y float64) (InputEvent, bool) {
	ev := InputEvent{X: x, Y: y}
	switch {
	case pressed && !p.down:
		ev.Kind = TouchStart
	case pressed:
		ev.Kind = TouchMove
	case p.down:
		ev.Kind = TouchEnd
	default:
		return ev, false
	}
	p.down = pressed
	return ev, true
}
