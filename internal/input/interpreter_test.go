package input

import (
	"image"
	"testing"
)

const frameDt = 1.0 / 60.0

// script drives an interpreter with synthetic snapshots on a 60 Hz clock.
type script struct {
	in   *Interpreter
	now  float64
	down [ButtonCount]bool
	at   [ButtonCount]float64

	touch   bool
	touchAt float64
	pos     image.Point

	detents int
}

func newScript() *script {
	return &script{in: NewInterpreter()}
}

func (s *script) press(b Button) {
	s.down[b] = true
	s.at[b] = s.now
}

func (s *script) release(b Button) {
	s.down[b] = false
	s.at[b] = 0
}

func (s *script) touchDown(x, y int) {
	s.touch = true
	s.touchAt = s.now
	s.pos = image.Pt(x, y)
}

func (s *script) moveTo(x, y int) {
	s.pos = image.Pt(x, y)
}

func (s *script) touchUp() {
	s.touch = false
	s.touchAt = 0
}

// step advances one frame (or a custom delta) and interprets it.
func (s *script) step(dt float64) Frame {
	s.now += dt
	snap := RawInputSnapshot{
		EncoderDetents: s.detents,
		Timestamp:      s.now,
		DeltaSeconds:   dt,
	}
	s.detents = 0
	for b := Button(0); b < ButtonCount; b++ {
		snap.Buttons[b] = RawButton{Down: s.down[b], PressedAt: s.at[b]}
	}
	snap.Touch = RawTouch{Present: s.touch, Pos: s.pos, PressedAt: s.touchAt}
	return s.in.Interpret(snap)
}

// run steps frames until the scripted clock passes target seconds,
// returning the last frame.
func (s *script) run(target float64) Frame {
	var f Frame
	for s.now < target {
		f = s.step(frameDt)
	}
	return f
}

func TestShortClickOnSelect(t *testing.T) {
	s := newScript()
	s.press(ButtonSelect)

	clicks := 0
	for s.now < 0.120 {
		f := s.step(frameDt)
		if f.Buttons[ButtonSelect].Click {
			t.Fatalf("click before release at t=%.3f", s.now)
		}
		if f.Buttons[ButtonSelect].Hold {
			t.Fatalf("hold on a short press at t=%.3f", s.now)
		}
	}
	s.release(ButtonSelect)
	for s.now < 0.5 {
		f := s.step(frameDt)
		if f.Buttons[ButtonSelect].Click {
			clicks++
			if f.Buttons[ButtonSelect].Hold {
				t.Fatal("click and hold in the same cycle")
			}
			if !f.Buttons[ButtonSelect].Released {
				t.Fatal("click without released edge")
			}
		}
	}
	if clicks != 1 {
		t.Fatalf("expected exactly one click, got %d", clicks)
	}
}

func TestLongHoldOnSelect(t *testing.T) {
	s := newScript()
	s.press(ButtonSelect)

	holds, clicks := 0, 0
	var holdAt float64
	for s.now < 0.800 {
		f := s.step(frameDt)
		if f.Buttons[ButtonSelect].Hold {
			holds++
			holdAt = s.now
		}
		if f.Buttons[ButtonSelect].Click {
			clicks++
		}
	}
	s.release(ButtonSelect)
	f := s.step(frameDt)
	if f.Buttons[ButtonSelect].Click {
		clicks++
	}
	if !f.Buttons[ButtonSelect].Released {
		t.Fatal("expected released edge on release frame")
	}

	if holds != 1 {
		t.Fatalf("expected exactly one hold edge, got %d", holds)
	}
	if holdAt < HoldThresholdSeconds || holdAt > HoldThresholdSeconds+2*frameDt {
		t.Fatalf("hold fired at t=%.3f, want ~%.3f", holdAt, HoldThresholdSeconds)
	}
	if clicks != 0 {
		t.Fatalf("release after hold must not click, got %d clicks", clicks)
	}
}

func TestReleaseAtThresholdFrameIsClick(t *testing.T) {
	// Tie-break pin: release observed in the same frame the threshold
	// crosses emits click, not hold.
	s := newScript()
	s.press(ButtonSelect)
	s.run(HoldThresholdSeconds - frameDt/2)
	s.release(ButtonSelect)
	f := s.step(frameDt) // crosses the threshold and releases together
	if !f.Buttons[ButtonSelect].Click {
		t.Fatal("expected click on the tie-break frame")
	}
	if f.Buttons[ButtonSelect].Hold {
		t.Fatal("hold must not fire on the tie-break frame")
	}
}

func TestHoldTimeTracksPress(t *testing.T) {
	s := newScript()
	s.press(ButtonUp)
	f := s.run(0.3)
	got := f.Buttons[ButtonUp].HoldTime
	if got < 0.25 || got > 0.35 {
		t.Fatalf("holdTime = %.3f, want ~0.3", got)
	}
	s.release(ButtonUp)
	f = s.step(frameDt)
	if f.Buttons[ButtonUp].HoldTime != 0 {
		t.Fatalf("holdTime after release = %.3f, want 0", f.Buttons[ButtonUp].HoldTime)
	}
}

func TestTapShort(t *testing.T) {
	s := newScript()
	s.touchDown(100, 240)
	f := s.step(frameDt)
	if !f.MouseJustPressed || !f.MousePressed {
		t.Fatal("expected mouseJustPressed with mousePressed on down frame")
	}
	s.run(0.100)
	s.touchUp()
	f = s.step(frameDt)
	if !f.Tap {
		t.Fatal("expected tap")
	}
	if f.TapPos != image.Pt(100, 240) {
		t.Fatalf("tapPos = %v, want (100,240)", f.TapPos)
	}
	if !f.MouseJustReleased || f.MousePressed {
		t.Fatal("expected mouseJustReleased with !mousePressed on release frame")
	}
	if f.Swiped() || f.DragActive {
		t.Fatal("tap cycle must not also swipe or drag")
	}
}

func TestTapAtExactRadiusAndWindow(t *testing.T) {
	// Moved exactly 10 px and released within 200 ms: still a tap
	// (tap radius is inclusive).
	s := newScript()
	s.touchDown(100, 240)
	s.step(frameDt)
	s.moveTo(110, 240)
	s.run(0.180)
	s.touchUp()
	f := s.step(frameDt)
	if !f.Tap {
		t.Fatal("expected tap at inclusive 10 px boundary")
	}
}

func TestSwipeRight(t *testing.T) {
	s := newScript()
	s.touchDown(100, 240)
	s.run(0.170)
	s.moveTo(250, 245)
	s.step(frameDt) // ~t=187ms, movement landed
	s.touchUp()
	f := s.step(frameDt) // ~t=200ms
	if !f.SwipeRight {
		t.Fatal("expected swipeRight")
	}
	if f.Tap {
		t.Fatal("swipe cycle must not tap")
	}
	if f.DragActive {
		t.Fatal("dragActive must be false on the swipe frame")
	}
}

func TestSwipeDirections(t *testing.T) {
	cases := []struct {
		name   string
		to     image.Point
		expect func(Frame) bool
	}{
		{"left", image.Pt(20, 242), func(f Frame) bool { return f.SwipeLeft }},
		{"up", image.Pt(102, 150), func(f Frame) bool { return f.SwipeUp }},
		{"down", image.Pt(98, 330), func(f Frame) bool { return f.SwipeDown }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newScript()
			s.touchDown(100, 240)
			s.run(0.150)
			s.moveTo(tc.to.X, tc.to.Y)
			s.step(frameDt)
			s.touchUp()
			f := s.step(frameDt)
			if !tc.expect(f) {
				t.Fatalf("expected swipe %s, frame=%+v", tc.name, f)
			}
		})
	}
}

func TestDiagonalMovementIsNotASwipe(t *testing.T) {
	// Dominant-to-cross ratio below 1.5 must not classify.
	s := newScript()
	s.touchDown(100, 100)
	s.run(0.150)
	s.moveTo(180, 170) // dx=80, dy=70, ratio ~1.14
	s.step(frameDt)
	s.touchUp()
	f := s.step(frameDt)
	if f.Swiped() {
		t.Fatalf("ambiguous diagonal classified as swipe: %+v", f)
	}
}

func TestDrag(t *testing.T) {
	s := newScript()
	s.touchDown(100, 240)
	s.run(0.090)
	s.moveTo(140, 240)

	f := s.step(frameDt) // first frame after t=100ms
	if !f.DragActive {
		t.Fatal("expected dragActive after 40 px of slow movement")
	}
	if f.DragDelta.X != 40 || f.DragDelta.Y != 0 {
		t.Fatalf("dragDelta = %v, want (40,0)", f.DragDelta)
	}

	s.moveTo(180, 240)
	f = s.step(frameDt)
	if !f.DragActive || f.DragDelta.X != 40 {
		t.Fatalf("second drag frame delta = %v, want (40,0)", f.DragDelta)
	}

	// No movement: delta settles to zero while the drag stays active.
	f = s.step(frameDt)
	if !f.DragActive || f.DragDelta != image.Pt(0, 0) {
		t.Fatalf("still-finger drag frame = active=%v delta=%v", f.DragActive, f.DragDelta)
	}

	s.run(0.490)
	s.touchUp()
	f = s.step(frameDt)
	if f.Tap || f.Swiped() {
		t.Fatal("drag cycle must not end in tap or swipe")
	}
	if f.DragActive || f.DragDelta != image.Pt(0, 0) {
		t.Fatal("dragDelta must be zero once dragActive is false")
	}
}

func TestFastSwipeNotEatenAsDrag(t *testing.T) {
	// Displacement that already qualifies as a swipe must not commit the
	// cycle to dragging while held.
	s := newScript()
	s.touchDown(100, 240)
	s.run(0.170)
	s.moveTo(250, 245)
	f := s.step(frameDt)
	if f.DragActive {
		t.Fatal("swipe-qualifying contact committed to drag")
	}
	s.touchUp()
	f = s.step(frameDt)
	if !f.SwipeRight {
		t.Fatal("expected swipeRight after held swipe-qualifying motion")
	}
}

func TestStallCancelsHold(t *testing.T) {
	s := newScript()
	s.press(ButtonSelect)
	s.step(frameDt)

	// Frame stall: next sample arrives 900 ms later with SELECT still down.
	f := s.step(0.900 - s.now)
	if f.Buttons[ButtonSelect].Hold {
		t.Fatal("hold fired across a frame stall")
	}

	// The button is inert until released and pressed again.
	f = s.run(2.0)
	if f.Buttons[ButtonSelect].Hold || f.Buttons[ButtonSelect].Click {
		t.Fatal("suppressed press produced a gesture")
	}
	s.release(ButtonSelect)
	f = s.step(frameDt)
	if f.Buttons[ButtonSelect].Click {
		t.Fatal("suppressed press clicked on release")
	}

	// A fresh press after the stall behaves normally.
	s.press(ButtonSelect)
	holds := 0
	for start := s.now; s.now < start+0.6; {
		f = s.step(frameDt)
		if f.Buttons[ButtonSelect].Hold {
			holds++
		}
	}
	if holds != 1 {
		t.Fatalf("fresh press after stall: %d holds, want 1", holds)
	}
}

func TestStallCancelsTouchCycle(t *testing.T) {
	s := newScript()
	s.touchDown(100, 240)
	s.step(frameDt)
	s.moveTo(300, 240)
	s.step(0.400) // stall
	s.touchUp()
	f := s.step(frameDt)
	if f.Tap || f.Swiped() || f.DragActive {
		t.Fatalf("stalled touch cycle emitted a gesture: %+v", f)
	}
}

func TestScrollDeltaPassesThrough(t *testing.T) {
	s := newScript()
	total := 0
	deltas := []int{3, -1, 0, 5, -2}
	for _, d := range deltas {
		s.detents = d
		f := s.step(frameDt)
		total += f.ScrollDelta
	}
	if total != 5 {
		t.Fatalf("scroll sum = %d, want 5", total)
	}
}

func TestScrollSurvivesStallFrames(t *testing.T) {
	s := newScript()
	s.detents = 4
	f := s.step(0.500) // stall frame still carries its detents
	if f.ScrollDelta != 4 {
		t.Fatalf("scrollDelta on stall frame = %d, want 4", f.ScrollDelta)
	}
}

func TestEdgeFlagsFireAtMostOncePerCycle(t *testing.T) {
	s := newScript()
	s.press(ButtonBack)
	pressed, released := 0, 0
	for s.now < 0.3 {
		f := s.step(frameDt)
		if f.Buttons[ButtonBack].Pressed {
			pressed++
		}
	}
	s.release(ButtonBack)
	for s.now < 0.5 {
		f := s.step(frameDt)
		if f.Buttons[ButtonBack].Released {
			released++
		}
	}
	if pressed != 1 || released != 1 {
		t.Fatalf("pressed=%d released=%d, want 1/1", pressed, released)
	}
}

func TestSwipeCooldownSuppressesImmediateRepeat(t *testing.T) {
	s := newScript()

	swipe := func() Frame {
		start := s.now
		s.touchDown(100, 240)
		for s.now < start+0.120 {
			s.step(frameDt)
		}
		s.moveTo(300, 240)
		s.step(frameDt)
		s.touchUp()
		return s.step(frameDt)
	}

	if f := swipe(); !f.SwipeRight {
		t.Fatal("first swipe should fire")
	}
	if f := swipe(); f.Swiped() {
		t.Fatal("second swipe inside cooldown should be suppressed")
	}
	s.run(s.now + SwipeCooldownSeconds + 0.1)
	if f := swipe(); !f.SwipeRight {
		t.Fatal("swipe after cooldown should fire")
	}
}
