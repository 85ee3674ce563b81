//go:build drm

package main

import (
	"context"
	"log"
	"time"

	"github.com/llz-project/llz/internal/config"
	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/platform"
	"github.com/llz-project/llz/internal/platform/evdev"
	"github.com/llz-project/llz/internal/platform/fbdev"
)

// Device node paths on the panel. The input paths come from the device
// tree labels, stable across boots.
const (
	fbPath        = "/dev/fb0"
	backlightPath = "/sys/class/backlight/panel/brightness"
	buttonsPath   = "/dev/input/by-path/platform-gpio-keys-event"
	encoderPath   = "/dev/input/by-path/platform-rotary-event"
	touchPath     = "/dev/input/by-path/platform-touchscreen-event"
)

// newBackend on the panel reads evdev input and presents frames on the
// kernel framebuffer at the configured rate.
func newBackend(fb *gfx.Software, hostCfg *config.Host) (platform.Shim, func(context.Context, func(float64)) error, error) {
	shim, err := evdev.Open(evdev.Options{
		ButtonsPath: buttonsPath,
		EncoderPath: encoderPath,
		TouchPath:   touchPath,
	})
	if err != nil {
		return nil, nil, err
	}

	display, err := fbdev.Open(fbPath, backlightPath)
	if err != nil {
		shim.Close()
		return nil, nil, err
	}
	if err := display.SetBrightness(hostCfg.Brightness); err != nil {
		log.Printf("Backlight: %v", err)
	}

	rate := hostCfg.FrameRate
	if rate <= 0 {
		rate = 60
	}

	run := func(ctx context.Context, tick func(float64)) error {
		defer display.Close()
		defer shim.Close()

		start := time.Now()
		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				tick(time.Since(start).Seconds())
				if err := display.Present(fb.Image()); err != nil {
					return err
				}
			}
		}
	}
	return shim, run, nil
}
