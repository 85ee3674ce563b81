// Package dev is the desktop development backend. It presents the software
// framebuffer in an ebiten window and translates keyboard, mouse wheel, and
// mouse button input into the hardware shim contract.
package dev

import (
	"context"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/llz-project/llz/internal/platform"
)

// keyBindings maps desktop keys onto the panel's physical buttons.
var keyBindings = map[ebiten.Key]platform.ButtonBits{
	ebiten.KeyEscape:    platform.BitBack,
	ebiten.KeyEnter:     platform.BitSelect,
	ebiten.KeySpace:     platform.BitSelect,
	ebiten.KeyArrowUp:   platform.BitUp,
	ebiten.KeyArrowDown: platform.BitDown,
	ebiten.KeyF12:       platform.BitScreenshot,
	ebiten.KeyDigit1:    platform.BitAux1,
	ebiten.KeyDigit2:    platform.BitAux2,
	ebiten.KeyDigit3:    platform.BitAux3,
	ebiten.KeyDigit4:    platform.BitAux4,
	ebiten.KeyDigit5:    platform.BitAux5,
}

// Shim adapts ebiten input to the platform shim contract. The backend
// refreshes it once per frame before the host samples.
type Shim struct {
	bits    platform.ButtonBits
	wheel   float64
	detents int
	touch   platform.TouchPoint
}

func (s *Shim) PollButtons() (platform.ButtonBits, error) { return s.bits, nil }

func (s *Shim) PollEncoder() (int, error) {
	d := s.detents
	s.detents = 0
	return d, nil
}

func (s *Shim) PollTouch() (platform.TouchPoint, error) { return s.touch, nil }

// refresh reads the ebiten input state for this frame. Wheel movement
// accumulates fractionally and is emitted in whole detents, scroll-up
// mapping to clockwise.
func (s *Shim) refresh() {
	var bits platform.ButtonBits
	for key, bit := range keyBindings {
		if ebiten.IsKeyPressed(key) {
			bits |= bit
		}
	}
	s.bits = bits

	_, wheelY := ebiten.Wheel()
	s.wheel += wheelY
	for s.wheel >= 1 {
		s.wheel--
		s.detents++
	}
	for s.wheel <= -1 {
		s.wheel++
		s.detents--
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.touch = platform.TouchPoint{Present: true, X: x, Y: y}
	} else {
		s.touch = platform.TouchPoint{}
	}
}

// Framebuffer exposes the pixels the backend blits each frame.
type Framebuffer interface {
	Image() *image.RGBA
}

// Backend owns the ebiten window and drives the tick callback.
type Backend struct {
	shim  *Shim
	fb    Framebuffer
	tick  func(now float64)
	ctx   context.Context
	start time.Time
}

// New creates a desktop backend over the given framebuffer. tick runs once
// per display frame with a monotonic timestamp in seconds.
func New(fb Framebuffer) *Backend {
	return &Backend{shim: &Shim{}, fb: fb}
}

// Shim returns the input shim the host should sample from.
func (b *Backend) Shim() *Shim {
	return b.shim
}

// Run opens the window and blocks until the window closes or the context
// is cancelled.
func (b *Backend) Run(ctx context.Context, tick func(now float64)) error {
	b.ctx = ctx
	b.tick = tick
	b.start = time.Now()

	ebiten.SetWindowSize(platform.DisplayWidth, platform.DisplayHeight)
	ebiten.SetWindowTitle("llz")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(b)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (b *Backend) Update() error {
	if b.ctx.Err() != nil {
		return ebiten.Termination
	}
	b.shim.refresh()
	b.tick(time.Since(b.start).Seconds())
	return nil
}

// Draw implements ebiten.Game.
func (b *Backend) Draw(screen *ebiten.Image) {
	screen.WritePixels(b.fb.Image().Pix)
}

// Layout implements ebiten.Game.
func (b *Backend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return platform.DisplayWidth, platform.DisplayHeight
}
