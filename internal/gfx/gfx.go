// Package gfx defines the drawing surface contract the host and plugins
// render through, plus a software implementation targeting an RGBA
// framebuffer that the platform backend presents.
package gfx

import (
	"image"
	"image/color"
)

// Font selects one of the host-provided faces.
type Font int

const (
	FontRegular Font = iota
	FontBold
)

// Texture is an opaque handle to image data loaded into the renderer.
// Zero is never a valid handle.
type Texture int

// Renderer is the drawing surface. The host owns it; plugins may issue
// calls only during their Draw callback.
type Renderer interface {
	Clear(c color.RGBA)
	DrawRectangle(r image.Rectangle, c color.RGBA)
	DrawRoundedRectangle(r image.Rectangle, radius int, c color.RGBA)

	// DrawText draws text with its baseline-left origin adjusted so pos is
	// the top-left corner of the rendered string.
	DrawText(f Font, text string, pos image.Point, size float64, c color.RGBA)
	MeasureText(f Font, text string, size float64) (w, h int)

	// DrawImage blits a pre-rasterized image (icon glyphs) at pos.
	DrawImage(img image.Image, pos image.Point)

	BeginScissor(r image.Rectangle)
	EndScissor()

	// LoadTexture decodes PNG or JPEG bytes into a texture.
	LoadTexture(data []byte) (Texture, error)
	UnloadTexture(t Texture)

	// DrawTextureFitted scales the texture to fit dst preserving aspect
	// ratio, centered, and modulates it by tint.
	DrawTextureFitted(t Texture, dst image.Rectangle, tint color.RGBA)
}
