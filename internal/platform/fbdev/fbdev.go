//go:build drm

// Package fbdev presents the software framebuffer on the panel's kernel
// framebuffer device and drives the sysfs backlight.
package fbdev

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/sys/unix"

	"github.com/llz-project/llz/internal/platform"
)

// Display is an open framebuffer device. The panel exposes a 32bpp BGRA
// surface matching the logical display size.
type Display struct {
	fd        int
	scratch   []byte
	backlight string
}

// Open opens the framebuffer node. backlightPath is the sysfs brightness
// file, empty to skip backlight control.
func Open(path, backlightPath string) (*Display, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening framebuffer %s: %w", path, err)
	}
	return &Display{
		fd:        fd,
		scratch:   make([]byte, platform.DisplayWidth*platform.DisplayHeight*4),
		backlight: backlightPath,
	}, nil
}

// Close releases the device.
func (d *Display) Close() {
	unix.Close(d.fd)
}

// Present writes one frame. The RGBA framebuffer is byte-swapped into the
// panel's BGRA layout.
func (d *Display) Present(img *image.RGBA) error {
	src := img.Pix
	if len(src) > len(d.scratch) {
		src = src[:len(d.scratch)]
	}
	for i := 0; i+3 < len(src); i += 4 {
		d.scratch[i] = src[i+2]
		d.scratch[i+1] = src[i+1]
		d.scratch[i+2] = src[i]
		d.scratch[i+3] = src[i+3]
	}
	if _, err := unix.Pwrite(d.fd, d.scratch, 0); err != nil {
		return fmt.Errorf("writing framebuffer: %w", err)
	}
	return nil
}

// SetBrightness maps percent onto the backlight's 0..255 range.
func (d *Display) SetBrightness(percent int) error {
	if d.backlight == "" {
		return nil
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	raw := percent * 255 / 100
	return os.WriteFile(d.backlight, []byte(fmt.Sprintf("%d\n", raw)), 0o644)
}
