//go:build !drm

package main

import (
	"context"

	"github.com/llz-project/llz/internal/config"
	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/platform"
	"github.com/llz-project/llz/internal/platform/dev"
)

// newBackend on desktop builds opens an ebiten window that presents the
// framebuffer and synthesizes panel input from keyboard and mouse.
func newBackend(fb *gfx.Software, _ *config.Host) (platform.Shim, func(context.Context, func(float64)) error, error) {
	b := dev.New(fb)
	return b.Shim(), b.Run, nil
}
