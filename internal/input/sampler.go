package input

import (
	"image"
	"log"

	"github.com/llz-project/llz/internal/platform"
)

// debounceSeconds is how long a raw button state change must persist before
// the sampler accepts it.
const debounceSeconds = 0.010

// maxConsecutiveFailures is how many poll errors in a row mark a device
// unavailable for the rest of the session.
const maxConsecutiveFailures = 3

// Sampler polls the platform shim once per frame, owns debounce and edge
// reconstruction, and publishes a RawInputSnapshot. A poll error is treated
// as "unchanged since last frame"; three consecutive errors on the same
// device mark it unavailable for the session and are logged once.
type Sampler struct {
	shim platform.Shim

	// Debounce state. stable is the accepted bitfield, pendingRaw the last
	// raw read, pendingSince when the raw read started to diverge.
	stable       platform.ButtonBits
	pendingRaw   platform.ButtonBits
	pendingSince [ButtonCount]float64
	pressedAt    [ButtonCount]float64

	touch       platform.TouchPoint
	touchDownAt float64
	lastPos     image.Point

	buttonFails  int
	encoderFails int
	touchFails   int
	buttonsDead  bool
	encoderDead  bool
	touchDead    bool

	lastTime float64
	started  bool
}

// NewSampler creates a sampler reading from the given platform shim.
func NewSampler(shim platform.Shim) *Sampler {
	return &Sampler{shim: shim}
}

// Sample polls the hardware and returns the snapshot for this frame.
// now is the monotonic frame time in seconds.
func (s *Sampler) Sample(now float64) RawInputSnapshot {
	delta := 0.0
	if s.started {
		delta = now - s.lastTime
	}
	s.lastTime = now
	s.started = true

	s.sampleButtons(now)
	detents := s.sampleEncoder()
	s.sampleTouch(now)

	snap := RawInputSnapshot{
		EncoderDetents: detents,
		Timestamp:      now,
		DeltaSeconds:   delta,
	}
	for b := Button(0); b < ButtonCount; b++ {
		down := s.stable&(1<<uint(b)) != 0
		snap.Buttons[b] = RawButton{Down: down, PressedAt: s.pressedAt[b]}
	}
	snap.Touch = RawTouch{
		Present:   s.touch.Present,
		Pos:       image.Point{X: s.touch.X, Y: s.touch.Y},
		PressedAt: s.touchDownAt,
	}
	if !s.touch.Present {
		snap.Touch.Pos = s.lastPos
	}
	return snap
}

func (s *Sampler) sampleButtons(now float64) {
	if s.buttonsDead {
		return
	}
	raw, err := s.shim.PollButtons()
	if err != nil {
		s.buttonFails++
		if s.buttonFails >= maxConsecutiveFailures {
			s.buttonsDead = true
			log.Printf("input: button device unavailable after %d read failures: %v", s.buttonFails, err)
		}
		return
	}
	s.buttonFails = 0

	for b := Button(0); b < ButtonCount; b++ {
		bit := platform.ButtonBits(1) << uint(b)
		rawDown := raw&bit != 0
		stableDown := s.stable&bit != 0
		if rawDown == stableDown {
			s.pendingRaw = s.pendingRaw&^bit | raw&bit
			continue
		}
		// Raw differs from the accepted state; restart the debounce window
		// whenever the raw reading itself flips.
		if raw&bit != s.pendingRaw&bit {
			s.pendingSince[b] = now
			s.pendingRaw = s.pendingRaw&^bit | raw&bit
			continue
		}
		if now-s.pendingSince[b] < debounceSeconds {
			continue
		}
		// Change persisted long enough; accept it.
		if rawDown {
			s.stable |= bit
			s.pressedAt[b] = now
		} else {
			s.stable &^= bit
			s.pressedAt[b] = 0
		}
	}
}

func (s *Sampler) sampleEncoder() int {
	if s.encoderDead {
		return 0
	}
	detents, err := s.shim.PollEncoder()
	if err != nil {
		s.encoderFails++
		if s.encoderFails >= maxConsecutiveFailures {
			s.encoderDead = true
			log.Printf("input: encoder unavailable after %d read failures: %v", s.encoderFails, err)
		}
		return 0
	}
	s.encoderFails = 0
	return detents
}

func (s *Sampler) sampleTouch(now float64) {
	if s.touchDead {
		return
	}
	tp, err := s.shim.PollTouch()
	if err != nil {
		s.touchFails++
		if s.touchFails >= maxConsecutiveFailures {
			s.touchDead = true
			log.Printf("input: touch panel unavailable after %d read failures: %v", s.touchFails, err)
		}
		return
	}
	s.touchFails = 0

	if tp.Present && !s.touch.Present {
		s.touchDownAt = now
	}
	if !tp.Present {
		s.touchDownAt = 0
	}
	if tp.Present {
		s.lastPos = image.Point{X: tp.X, Y: tp.Y}
	}
	s.touch = tp
}
