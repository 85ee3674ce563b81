// Package nowplaying shows the media bridge's current track with artwork
// and transport controls.
package nowplaying

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/input"
	"github.com/llz-project/llz/internal/media"
	"github.com/llz-project/llz/internal/plugin"
)

const (
	artSize    = 320
	margin     = 40
	volumeStep = 5
)

var (
	bgColor     = color.RGBA{12, 12, 16, 255}
	titleColor  = color.RGBA{235, 235, 235, 255}
	artistColor = color.RGBA{170, 170, 178, 255}
	faintColor  = color.RGBA{110, 110, 118, 255}
	barBack     = color.RGBA{40, 40, 46, 255}
	barFill     = color.RGBA{86, 156, 214, 255}
	artBack     = color.RGBA{28, 28, 34, 255}
	white       = color.RGBA{255, 255, 255, 255}
)

// NowPlaying is the media screen. SELECT toggles playback, swipes skip
// tracks, the encoder adjusts volume, and tapping the progress bar seeks.
type NowPlaying struct {
	plugin.Base

	artTrack string
	art      gfx.Texture
	renderer gfx.Renderer
}

// New creates a now-playing plugin instance.
func New() *NowPlaying {
	return &NowPlaying{
		Base: plugin.NewBase(plugin.Descriptor{
			Name:        "nowplaying",
			Description: "Current track and transport controls",
			Category:    plugin.CategoryMedia,
			Icon:        "music",
		}),
	}
}

func (n *NowPlaying) Init(ctx context.Context, env plugin.Env) error {
	if err := n.Base.Init(ctx, env); err != nil {
		return err
	}
	n.artTrack = ""
	n.art = 0
	return nil
}

func (n *NowPlaying) Shutdown() error {
	if n.art != 0 && n.renderer != nil {
		n.renderer.UnloadTexture(n.art)
		n.art = 0
	}
	return n.Base.Shutdown()
}

func (n *NowPlaying) Update(frame *input.Frame, dt float64) error {
	cache := n.Env().Media

	if frame.Button(input.ButtonSelect).Click {
		cache.SendCommand(media.CmdPlayPause, 0)
	}
	if frame.SwipeLeft {
		cache.SendCommand(media.CmdNext, 0)
	}
	if frame.SwipeRight {
		cache.SendCommand(media.CmdPrev, 0)
	}
	if frame.ScrollDelta != 0 {
		cache.SendCommand(media.CmdVolume, float64(frame.ScrollDelta*volumeStep))
	}

	if frame.Tap {
		if bar := n.progressRect(); frame.TapPos.In(bar) {
			if state, ok := cache.State(); ok && state.Duration > 0 {
				frac := float64(frame.TapPos.X-bar.Min.X) / float64(bar.Dx())
				cache.SendCommand(media.CmdSeek, frac*state.Duration)
			}
		}
	}
	return nil
}

func (n *NowPlaying) progressRect() image.Rectangle {
	env := n.Env()
	y := env.Height - margin - 24
	return image.Rect(margin, y, env.Width-margin, y+24)
}

// refreshArtwork swaps the artwork texture when the track changed.
func (n *NowPlaying) refreshArtwork(r gfx.Renderer, state media.PlayerState) {
	if state.TrackID == n.artTrack {
		return
	}
	n.artTrack = state.TrackID
	if n.art != 0 {
		r.UnloadTexture(n.art)
		n.art = 0
	}
	if len(state.ArtworkData) == 0 {
		return
	}
	tex, err := r.LoadTexture(state.ArtworkData)
	if err != nil {
		return
	}
	n.art = tex
}

func (n *NowPlaying) Draw(r gfx.Renderer) error {
	env := n.Env()
	n.renderer = r
	r.Clear(bgColor)

	state, ok := env.Media.State()
	if !ok {
		msg := "nothing playing"
		if !env.Media.Connection() {
			msg = "media bridge offline"
		}
		tw, _ := r.MeasureText(gfx.FontRegular, msg, 24)
		r.DrawText(gfx.FontRegular, msg, image.Pt((env.Width-tw)/2, env.Height/2), 24, faintColor)
		return nil
	}

	n.refreshArtwork(r, state)

	artRect := image.Rect(margin, margin, margin+artSize, margin+artSize)
	r.DrawRoundedRectangle(artRect, 8, artBack)
	if n.art != 0 {
		r.DrawTextureFitted(n.art, artRect, white)
	}

	textX := margin + artSize + margin
	textW := env.Width - textX - margin
	r.BeginScissor(image.Rect(textX, margin, textX+textW, env.Height-margin))
	r.DrawText(gfx.FontBold, state.Title, image.Pt(textX, margin+16), 30, titleColor)
	r.DrawText(gfx.FontRegular, state.Artist, image.Pt(textX, margin+64), 24, artistColor)
	r.DrawText(gfx.FontRegular, state.Album, image.Pt(textX, margin+100), 20, faintColor)

	status := "paused"
	if state.Playing {
		status = "playing"
	}
	r.DrawText(gfx.FontRegular, fmt.Sprintf("%s  ·  volume %d%%", status, state.Volume),
		image.Pt(textX, margin+160), 18, faintColor)
	r.EndScissor()

	bar := n.progressRect()
	r.DrawRoundedRectangle(bar, 6, barBack)
	if state.Duration > 0 {
		frac := state.Elapsed / state.Duration
		if frac > 1 {
			frac = 1
		}
		fill := bar
		fill.Max.X = bar.Min.X + int(float64(bar.Dx())*frac)
		if fill.Dx() > 0 {
			r.DrawRoundedRectangle(fill, 6, barFill)
		}
	}
	r.DrawText(gfx.FontRegular,
		fmt.Sprintf("%s / %s", clockTime(state.Elapsed), clockTime(state.Duration)),
		image.Pt(bar.Min.X, bar.Min.Y-26), 16, faintColor)
	return nil
}

func clockTime(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
