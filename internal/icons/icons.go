// Package icons rasterizes the host's embedded SVG glyphs for the launcher
// and the notification overlay.
package icons

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed svg/bell.svg
var bellSVG string

//go:embed svg/music.svg
var musicSVG string

//go:embed svg/clock.svg
var clockSVG string

//go:embed svg/grid.svg
var gridSVG string

//go:embed svg/gamepad.svg
var gamepadSVG string

//go:embed svg/info.svg
var infoSVG string

//go:embed svg/bug.svg
var bugSVG string

// Name identifies an embedded glyph.
type Name string

const (
	Bell    Name = "bell"
	Music   Name = "music"
	Clock   Name = "clock"
	Grid    Name = "grid"
	Gamepad Name = "gamepad"
	Info    Name = "info"
	Bug     Name = "bug"
)

var sources = map[Name]string{
	Bell:    bellSVG,
	Music:   musicSVG,
	Clock:   clockSVG,
	Grid:    gridSVG,
	Gamepad: gamepadSVG,
	Info:    infoSVG,
	Bug:     bugSVG,
}

type cacheKey struct {
	name  Name
	size  int
	color color.RGBA
}

// Set is a rasterized-glyph cache. Each consumer (the notification bus,
// the launcher) owns its own Set, so cached pixels share that owner's
// lifetime instead of living process-wide.
type Set struct {
	cache map[cacheKey]image.Image
}

// NewSet creates an empty glyph cache.
func NewSet() *Set {
	return &Set{cache: make(map[cacheKey]image.Image)}
}

// Render rasterizes the named glyph at the given size and color. Results
// are cached; the returned image must not be mutated.
func (s *Set) Render(name Name, size int, c color.RGBA) image.Image {
	key := cacheKey{name: name, size: size, color: c}
	if img, ok := s.cache[key]; ok {
		return img
	}
	src, ok := sources[name]
	if !ok {
		log.Printf("icons: unknown glyph %q", name)
		return image.NewRGBA(image.Rect(0, 0, size, size))
	}
	img := rasterize(src, size, c)
	s.cache[key] = img
	return img
}

func rasterize(svgContent string, size int, c color.RGBA) image.Image {
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	svgContent = strings.ReplaceAll(svgContent, "currentColor", hex)

	icon, err := oksvg.ReadIconStream(strings.NewReader(svgContent))
	if err != nil {
		log.Printf("icons: parse SVG: %v", err)
		return image.NewRGBA(image.Rect(0, 0, size, size))
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Transparent}, image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img
}
