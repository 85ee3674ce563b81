package input

import "image"

// RawButton is the debounced state of one button within a snapshot.
type RawButton struct {
	Down bool

	// PressedAt is the monotonic time in seconds at which the current press
	// began. Zero when the button is up.
	PressedAt float64
}

// RawTouch is the debounced touch state within a snapshot.
type RawTouch struct {
	Present bool
	Pos     image.Point

	// PressedAt is the monotonic time in seconds at which the current
	// contact began. Zero when no contact is present.
	PressedAt float64
}

// RawInputSnapshot is what the sampler publishes once per frame. It lives
// for exactly one frame; the gesture interpreter folds it into its rolling
// state and discards it.
type RawInputSnapshot struct {
	Buttons [ButtonCount]RawButton

	// EncoderDetents is the signed detent count accumulated this frame.
	// Clockwise is positive.
	EncoderDetents int

	Touch RawTouch

	// Timestamp is the monotonic frame time in seconds.
	Timestamp float64

	// DeltaSeconds is the time since the previous frame.
	DeltaSeconds float64
}
