package gfx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type faceKey struct {
	font Font
	size int
}

// Software renders into an RGBA framebuffer. The platform backend presents
// Image() each frame; on the embedded build it is copied to the panel, on
// the development build it is uploaded to the window.
type Software struct {
	img       *image.RGBA
	clip      image.Rectangle
	clipStack []image.Rectangle

	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face

	textures map[Texture]image.Image
	nextTex  Texture
}

// NewSoftware creates a software renderer with the given logical size.
func NewSoftware(w, h int) (*Software, error) {
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bld, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	bounds := image.Rect(0, 0, w, h)
	return &Software{
		img:      image.NewRGBA(bounds),
		clip:     bounds,
		regular:  reg,
		bold:     bld,
		faces:    make(map[faceKey]font.Face),
		textures: make(map[Texture]image.Image),
	}, nil
}

// Image returns the backing framebuffer.
func (s *Software) Image() *image.RGBA {
	return s.img
}

// Clear fills the whole framebuffer, ignoring the scissor.
func (s *Software) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
}

// DrawRectangle fills r with c, source-over.
func (s *Software) DrawRectangle(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(s.clip)
	if r.Empty() {
		return
	}
	if c.A == 255 {
		draw.Draw(s.img, r, &image.Uniform{c}, image.Point{}, draw.Src)
		return
	}
	draw.Draw(s.img, r, &image.Uniform{c}, image.Point{}, draw.Over)
}

// DrawRoundedRectangle fills r with quarter-circle corners of the given
// radius.
func (s *Software) DrawRoundedRectangle(r image.Rectangle, radius int, c color.RGBA) {
	if radius <= 0 {
		s.DrawRectangle(r, c)
		return
	}
	max := r.Dx() / 2
	if r.Dy()/2 < max {
		max = r.Dy() / 2
	}
	if radius > max {
		radius = max
	}

	// Center band plus top/bottom strips, then the four corners.
	s.DrawRectangle(image.Rect(r.Min.X, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), c)
	s.DrawRectangle(image.Rect(r.Min.X+radius, r.Min.Y, r.Max.X-radius, r.Min.Y+radius), c)
	s.DrawRectangle(image.Rect(r.Min.X+radius, r.Max.Y-radius, r.Max.X-radius, r.Max.Y), c)

	corners := []struct {
		cx, cy int
		rect   image.Rectangle
	}{
		{r.Min.X + radius, r.Min.Y + radius, image.Rect(r.Min.X, r.Min.Y, r.Min.X+radius, r.Min.Y+radius)},
		{r.Max.X - radius, r.Min.Y + radius, image.Rect(r.Max.X-radius, r.Min.Y, r.Max.X, r.Min.Y+radius)},
		{r.Min.X + radius, r.Max.Y - radius, image.Rect(r.Min.X, r.Max.Y-radius, r.Min.X+radius, r.Max.Y)},
		{r.Max.X - radius, r.Max.Y - radius, image.Rect(r.Max.X-radius, r.Max.Y-radius, r.Max.X, r.Max.Y)},
	}
	for _, corner := range corners {
		area := corner.rect.Intersect(s.clip)
		for y := area.Min.Y; y < area.Max.Y; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				dx := x - corner.cx
				dy := y - corner.cy
				// Sample the pixel center against the circle.
				if dx*dx+dy*dy <= radius*radius {
					s.blend(x, y, c)
				}
			}
		}
	}
}

func (s *Software) blend(x, y int, c color.RGBA) {
	if c.A == 255 {
		s.img.SetRGBA(x, y, c)
		return
	}
	dst := s.img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a
	s.img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(dst.B)*inv) / 255),
		A: uint8((a*255 + uint32(dst.A)*inv) / 255),
	})
}

func (s *Software) face(f Font, size float64) font.Face {
	key := faceKey{font: f, size: int(size)}
	if face, ok := s.faces[key]; ok {
		return face
	}
	src := s.regular
	if f == FontBold {
		src = s.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Face creation only fails for degenerate sizes; fall back to the
		// smallest cached face rather than crashing a draw call.
		return nil
	}
	s.faces[key] = face
	return face
}

// DrawText draws one line of text with pos as its top-left corner.
func (s *Software) DrawText(f Font, text string, pos image.Point, size float64, c color.RGBA) {
	face := s.face(f, size)
	if face == nil || text == "" {
		return
	}
	metrics := face.Metrics()
	d := &font.Drawer{
		Dst:  &clippedRGBA{img: s.img, clip: s.clip},
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(pos.X),
			Y: fixed.I(pos.Y) + metrics.Ascent,
		},
	}
	d.DrawString(text)
}

// MeasureText returns the pixel extent of one line of text.
func (s *Software) MeasureText(f Font, text string, size float64) (int, int) {
	face := s.face(f, size)
	if face == nil {
		return 0, 0
	}
	adv := font.MeasureString(face, text)
	metrics := face.Metrics()
	return adv.Ceil(), (metrics.Ascent + metrics.Descent).Ceil()
}

// DrawImage blits img with its top-left corner at pos, source-over.
func (s *Software) DrawImage(img image.Image, pos image.Point) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dst := image.Rect(pos.X, pos.Y, pos.X+b.Dx(), pos.Y+b.Dy())
	area := dst.Intersect(s.clip)
	if area.Empty() {
		return
	}
	draw.Draw(s.img, area, img, b.Min.Add(area.Min.Sub(dst.Min)), draw.Over)
}

// BeginScissor pushes a clip rectangle; draws outside it are discarded.
func (s *Software) BeginScissor(r image.Rectangle) {
	s.clipStack = append(s.clipStack, s.clip)
	s.clip = s.clip.Intersect(r)
}

// EndScissor pops the most recent clip rectangle.
func (s *Software) EndScissor() {
	n := len(s.clipStack)
	if n == 0 {
		s.clip = s.img.Bounds()
		return
	}
	s.clip = s.clipStack[n-1]
	s.clipStack = s.clipStack[:n-1]
}

// LoadTexture decodes image bytes into a texture handle.
func (s *Software) LoadTexture(data []byte) (Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode texture: %w", err)
	}
	s.nextTex++
	s.textures[s.nextTex] = img
	return s.nextTex, nil
}

// UnloadTexture releases a texture handle. Unknown handles are ignored.
func (s *Software) UnloadTexture(t Texture) {
	delete(s.textures, t)
}

// DrawTextureFitted scales the texture into dst preserving aspect ratio.
func (s *Software) DrawTextureFitted(t Texture, dst image.Rectangle, tint color.RGBA) {
	src, ok := s.textures[t]
	if !ok {
		return
	}
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || dst.Dx() <= 0 || dst.Dy() <= 0 {
		return
	}

	// Aspect-fit, centered.
	scaleX := float64(dst.Dx()) / float64(sb.Dx())
	scaleY := float64(dst.Dy()) / float64(sb.Dy())
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	w := int(float64(sb.Dx()) * scale)
	h := int(float64(sb.Dy()) * scale)
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	fit := image.Rect(x, y, x+w, y+h)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, sb, xdraw.Src, nil)

	if tint != (color.RGBA{255, 255, 255, 255}) {
		modulate(scaled, tint)
	}

	area := fit.Intersect(s.clip)
	if area.Empty() {
		return
	}
	draw.Draw(s.img, area, scaled, area.Min.Sub(fit.Min), draw.Over)
}

// modulate multiplies every pixel by tint in place.
func modulate(img *image.RGBA, tint color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(uint32(img.Pix[i+0]) * uint32(tint.R) / 255)
		img.Pix[i+1] = uint8(uint32(img.Pix[i+1]) * uint32(tint.G) / 255)
		img.Pix[i+2] = uint8(uint32(img.Pix[i+2]) * uint32(tint.B) / 255)
		img.Pix[i+3] = uint8(uint32(img.Pix[i+3]) * uint32(tint.A) / 255)
	}
}

// clippedRGBA restricts font drawing to the scissor rectangle.
type clippedRGBA struct {
	img  *image.RGBA
	clip image.Rectangle
}

func (c *clippedRGBA) ColorModel() color.Model { return c.img.ColorModel() }
func (c *clippedRGBA) Bounds() image.Rectangle { return c.clip }
func (c *clippedRGBA) At(x, y int) color.Color { return c.img.At(x, y) }

func (c *clippedRGBA) Set(x, y int, col color.Color) {
	if image.Pt(x, y).In(c.clip) {
		c.img.Set(x, y, col)
	}
}
