package input

import "image"

// ButtonFrame is the per-frame semantic state of one button. Pressed,
// Released, Click, and Hold are edge flags: true in at most one frame per
// press cycle. Click and Hold are mutually exclusive within a cycle.
type ButtonFrame struct {
	Pressed  bool
	Released bool
	Click    bool
	Hold     bool

	// HoldTime is how long the button has been continuously held, in
	// seconds. Zero when the button is up.
	HoldTime float64
}

// Frame is the per-frame input contract handed to plugins. Every field is a
// pure function of the interpreter's rolling state; the frame itself lives
// for one frame only.
type Frame struct {
	Buttons [ButtonCount]ButtonFrame

	// ScrollDelta is the signed encoder detent count this frame.
	// Clockwise (visual up) is positive.
	ScrollDelta int

	MousePos          image.Point
	MousePressed      bool
	MouseJustPressed  bool
	MouseJustReleased bool

	// Tap fires on a short press-release near the same point.
	Tap    bool
	TapPos image.Point

	// Swipe flags are one-shot; at most one fires per touch cycle, and
	// never in a cycle that also produced a tap or became a drag.
	SwipeLeft  bool
	SwipeRight bool
	SwipeUp    bool
	SwipeDown  bool

	// DragActive is true while a drag is in progress. DragDelta is the
	// pixel delta accumulated since the previous frame; it is zero whenever
	// DragActive is false.
	DragActive bool
	DragDelta  image.Point

	Timestamp    float64
	DeltaSeconds float64
}

// Button returns the semantic state of b this frame.
func (f *Frame) Button(b Button) ButtonFrame {
	if b < 0 || b >= ButtonCount {
		return ButtonFrame{}
	}
	return f.Buttons[b]
}

// Swiped reports whether any swipe fired this frame.
func (f *Frame) Swiped() bool {
	return f.SwipeLeft || f.SwipeRight || f.SwipeUp || f.SwipeDown
}

// AnyEdge reports whether any edge flag is set this frame. The host uses
// this to assert that blocked frames carry no edges.
func (f *Frame) AnyEdge() bool {
	for i := range f.Buttons {
		b := &f.Buttons[i]
		if b.Pressed || b.Released || b.Click || b.Hold {
			return true
		}
	}
	return f.Tap || f.Swiped() || f.MouseJustPressed || f.MouseJustReleased
}
