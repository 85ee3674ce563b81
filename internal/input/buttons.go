// Package input samples the front panel hardware and derives the per-frame
// semantic input state consumed by plugins: button edges, click/hold
// arbitration, scroll detents, and touch gestures (tap, swipe, drag).
package input

// Button identifies a physical front-panel button. The value doubles as the
// bit position in platform.ButtonBits.
type Button int

const (
	ButtonBack Button = iota
	ButtonSelect
	ButtonUp
	ButtonDown
	ButtonScreenshot
	ButtonAux1
	ButtonAux2
	ButtonAux3
	ButtonAux4
	ButtonAux5

	ButtonCount
)

var buttonNames = [ButtonCount]string{
	"back", "select", "up", "down", "screenshot",
	"aux1", "aux2", "aux3", "aux4", "aux5",
}

func (b Button) String() string {
	if b < 0 || b >= ButtonCount {
		return "unknown"
	}
	return buttonNames[b]
}
