package input

import (
	"image"
	"math"
)

// Gesture thresholds. These are host-wide; plugins cannot override them.
const (
	// HoldThresholdSeconds is how long a button must stay down before the
	// hold edge fires. A release strictly before this emits click instead.
	HoldThresholdSeconds = 0.500

	// TapMaxSeconds and TapRadiusPixels bound a tap: released within the
	// window with the contact never straying more than the radius
	// (inclusive) from the down point.
	TapMaxSeconds   = 0.200
	TapRadiusPixels = 10.0

	// Swipe classification, evaluated at release: under the time limit
	// (strict), at least SwipeMinPixels of net travel on the dominant axis,
	// and the dominant axis at least SwipeAxisRatio times the cross axis.
	SwipeMaxSeconds = 0.400
	SwipeMinPixels  = 60.0
	SwipeAxisRatio  = 1.5

	// DragMinAgeSeconds keeps slow swipes from being eaten as drags: a
	// contact commits to dragging only once it has both left the tap radius
	// and aged past this.
	DragMinAgeSeconds = 0.060

	// StallCancelSeconds: a frame delta beyond this cancels every in-flight
	// gesture so a debugger pause or frame stall cannot fire spurious holds
	// or swipes.
	StallCancelSeconds = 0.250

	// SwipeCooldownSeconds suppresses a second swipe fired too soon after
	// the first. Cooldowns live here so plugins never need their own.
	SwipeCooldownSeconds = 0.250
)

type buttonPhase int

const (
	buttonIdle buttonPhase = iota
	buttonPressed
	buttonHeldFired
	// buttonSuppressed: the press was cancelled by a stall; the button is
	// inert until it is released and pressed again.
	buttonSuppressed
)

type touchPhase int

const (
	touchIdle touchPhase = iota
	touchDownUnclassified
	touchDragging
	touchSuppressed
)

type buttonTrack struct {
	phase      buttonPhase
	pressStart float64
}

type touchTrack struct {
	phase   touchPhase
	downAt  float64
	downPos image.Point
	lastPos image.Point
	// anchor is the reference point for per-frame drag deltas.
	anchor  image.Point
	maxDisp float64
}

// Interpreter folds raw snapshots into rolling per-button and per-touch
// state machines and emits one Frame per snapshot. It is the single
// authority for gesture classification: a touch cycle resolves to exactly
// one of tap, swipe, drag, or nothing.
type Interpreter struct {
	buttons   [ButtonCount]buttonTrack
	touch     touchTrack
	mousePos  image.Point
	lastSwipe float64
}

// NewInterpreter returns an interpreter with all cycles idle.
func NewInterpreter() *Interpreter {
	return &Interpreter{lastSwipe: math.Inf(-1)}
}

// Interpret consumes one snapshot and returns the frame input state.
func (in *Interpreter) Interpret(snap RawInputSnapshot) Frame {
	frame := Frame{
		ScrollDelta:  snap.EncoderDetents,
		Timestamp:    snap.Timestamp,
		DeltaSeconds: snap.DeltaSeconds,
	}

	if snap.DeltaSeconds > StallCancelSeconds {
		in.cancelInFlight(snap)
	}

	for b := Button(0); b < ButtonCount; b++ {
		frame.Buttons[b] = in.stepButton(b, snap.Buttons[b], snap.Timestamp)
	}
	in.stepTouch(&frame, snap)
	return frame
}

// cancelInFlight resets every in-flight gesture after a frame stall.
// Buttons still down become suppressed: no hold or click can fire until the
// next fresh press. An ongoing contact is likewise inert until it lifts.
func (in *Interpreter) cancelInFlight(snap RawInputSnapshot) {
	for b := Button(0); b < ButtonCount; b++ {
		t := &in.buttons[b]
		if snap.Buttons[b].Down {
			t.phase = buttonSuppressed
		} else {
			t.phase = buttonIdle
		}
	}
	if snap.Touch.Present {
		in.touch.phase = touchSuppressed
	} else {
		in.touch.phase = touchIdle
	}
}

func (in *Interpreter) stepButton(b Button, raw RawButton, now float64) ButtonFrame {
	t := &in.buttons[b]
	var out ButtonFrame

	switch t.phase {
	case buttonIdle:
		if raw.Down {
			t.phase = buttonPressed
			t.pressStart = raw.PressedAt
			if t.pressStart == 0 {
				t.pressStart = now
			}
			out.Pressed = true
			out.HoldTime = now - t.pressStart
		}

	case buttonPressed:
		if !raw.Down {
			// Release is processed before the threshold check, so a release
			// observed in the same frame the threshold crosses emits click.
			out.Released = true
			out.Click = true
			t.phase = buttonIdle
			break
		}
		out.HoldTime = now - t.pressStart
		if out.HoldTime >= HoldThresholdSeconds {
			out.Hold = true
			t.phase = buttonHeldFired
		}

	case buttonHeldFired:
		if !raw.Down {
			out.Released = true
			t.phase = buttonIdle
			break
		}
		out.HoldTime = now - t.pressStart

	case buttonSuppressed:
		if !raw.Down {
			out.Released = true
			t.phase = buttonIdle
		}
	}
	return out
}

func (in *Interpreter) stepTouch(frame *Frame, snap RawInputSnapshot) {
	t := &in.touch
	raw := snap.Touch
	now := snap.Timestamp

	if raw.Present {
		in.mousePos = raw.Pos
	}
	frame.MousePos = in.mousePos
	frame.MousePressed = raw.Present

	switch t.phase {
	case touchIdle:
		if raw.Present {
			t.phase = touchDownUnclassified
			t.downAt = raw.PressedAt
			if t.downAt == 0 {
				t.downAt = now
			}
			t.downPos = raw.Pos
			t.lastPos = raw.Pos
			t.maxDisp = 0
			frame.MouseJustPressed = true
		}

	case touchDownUnclassified:
		if raw.Present {
			t.lastPos = raw.Pos
			d := dist(raw.Pos, t.downPos)
			if d > t.maxDisp {
				t.maxDisp = d
			}
			age := now - t.downAt
			if t.maxDisp > TapRadiusPixels && age > DragMinAgeSeconds && !in.qualifiesAsSwipe(now) {
				t.phase = touchDragging
				t.anchor = t.downPos
				frame.DragActive = true
				frame.DragDelta = raw.Pos.Sub(t.anchor)
				t.anchor = raw.Pos
			}
			break
		}
		frame.MouseJustReleased = true
		in.classifyRelease(frame, now)
		t.phase = touchIdle

	case touchDragging:
		if raw.Present {
			t.lastPos = raw.Pos
			frame.DragActive = true
			frame.DragDelta = raw.Pos.Sub(t.anchor)
			t.anchor = raw.Pos
			break
		}
		// A cycle that became a drag ends without a tap or swipe.
		frame.MouseJustReleased = true
		t.phase = touchIdle

	case touchSuppressed:
		if !raw.Present {
			frame.MouseJustReleased = true
			t.phase = touchIdle
		}
	}
}

// qualifiesAsSwipe reports whether the current contact, if released right
// now, would classify as a swipe. While this holds the interpreter refuses
// to commit the cycle to dragging, so a swipe that has already covered the
// distance is never demoted to a drag no matter how slowly it finishes.
func (in *Interpreter) qualifiesAsSwipe(now float64) bool {
	t := &in.touch
	if now-t.downAt >= SwipeMaxSeconds {
		return false
	}
	net := t.lastPos.Sub(t.downPos)
	ax, ay := math.Abs(float64(net.X)), math.Abs(float64(net.Y))
	dom, cross := ax, ay
	if ay > ax {
		dom, cross = ay, ax
	}
	return dom >= SwipeMinPixels && dom >= SwipeAxisRatio*cross
}

// classifyRelease resolves an unclassified touch cycle at lift-off into
// tap, swipe, or nothing.
func (in *Interpreter) classifyRelease(frame *Frame, now float64) {
	t := &in.touch
	age := now - t.downAt

	if age <= TapMaxSeconds && t.maxDisp <= TapRadiusPixels {
		frame.Tap = true
		frame.TapPos = t.downPos
		return
	}
	if age >= SwipeMaxSeconds {
		return
	}
	if now-in.lastSwipe < SwipeCooldownSeconds {
		return
	}

	net := t.lastPos.Sub(t.downPos)
	ax, ay := math.Abs(float64(net.X)), math.Abs(float64(net.Y))
	dom, cross := ax, ay
	if ay > ax {
		dom, cross = ay, ax
	}
	if dom < SwipeMinPixels || dom < SwipeAxisRatio*cross {
		return
	}

	if ax >= ay {
		if net.X > 0 {
			frame.SwipeRight = true
		} else {
			frame.SwipeLeft = true
		}
	} else {
		if net.Y > 0 {
			frame.SwipeDown = true
		} else {
			frame.SwipeUp = true
		}
	}
	in.lastSwipe = now
}

func dist(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Hypot(dx, dy)
}
