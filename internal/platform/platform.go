// Package platform defines the hardware abstraction for the front panel:
// buttons, rotary encoder, and the capacitive touch panel. Both the
// development shim (keyboard/mouse via the window backend) and the embedded
// evdev shim implement Shim.
package platform

// Logical display dimensions. Plugins draw in this coordinate space
// regardless of the physical panel.
const (
	DisplayWidth  = 800
	DisplayHeight = 480
)

// ButtonBits is the raw state of all front-panel buttons as a bitfield.
// Bit i corresponds to input.Button(i).
type ButtonBits uint16

// Bit positions in ButtonBits, in front-panel order.
const (
	BitBack ButtonBits = 1 << iota
	BitSelect
	BitUp
	BitDown
	BitScreenshot
	BitAux1
	BitAux2
	BitAux3
	BitAux4
	BitAux5
)

// TouchPoint is one raw touch sample in logical display coordinates.
type TouchPoint struct {
	Present bool
	X, Y    int
}

// Shim is the surface the raw sampler polls once per frame. A failed poll
// returns an error; the sampler treats it as "unchanged since last frame"
// and marks the device unavailable after three consecutive failures.
type Shim interface {
	// PollButtons returns the current button bitfield.
	PollButtons() (ButtonBits, error)

	// PollEncoder returns the detents accumulated since the previous poll.
	// Clockwise rotation is positive.
	PollEncoder() (int, error)

	// PollTouch returns the current touch sample.
	PollTouch() (TouchPoint, error)
}
