// Package clock is a full-screen clock with a configurable 12/24 hour
// format.
package clock

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/input"
	"github.com/llz-project/llz/internal/plugin"
)

const cfg24h = "24h"

var (
	bgColor   = color.RGBA{10, 10, 14, 255}
	timeColor = color.RGBA{235, 235, 235, 255}
	dateColor = color.RGBA{140, 140, 150, 255}
)

// Clock renders the current time. Holding SELECT flips between 12 and 24
// hour display, persisted in the plugin config.
type Clock struct {
	plugin.Base
	use24h bool
}

// New creates a clock plugin instance.
func New() *Clock {
	return &Clock{
		Base: plugin.NewBase(plugin.Descriptor{
			Name:        "clock",
			Description: "Full-screen clock",
			Category:    plugin.CategoryUtilities,
			Icon:        "clock",
		}),
	}
}

func (c *Clock) Init(ctx context.Context, env plugin.Env) error {
	if err := c.Base.Init(ctx, env); err != nil {
		return err
	}
	c.use24h = env.Config.GetBool(cfg24h, true)
	return nil
}

func (c *Clock) Update(frame *input.Frame, dt float64) error {
	if frame.Button(input.ButtonSelect).Hold {
		c.use24h = !c.use24h
		c.Env().Config.SetBool(cfg24h, c.use24h)
		label := "12-hour"
		if c.use24h {
			label = "24-hour"
		}
		if err := c.Env().Notify.Banner("clock: "+label+" format", 2); err != nil {
			return err
		}
	}
	return nil
}

func (c *Clock) Draw(r gfx.Renderer) error {
	env := c.Env()
	r.Clear(bgColor)

	now := time.Now()
	layout := "15:04:05"
	if !c.use24h {
		layout = "3:04:05 PM"
	}
	timeText := now.Format(layout)
	dateText := now.Format("Monday, January 2")

	tw, th := r.MeasureText(gfx.FontBold, timeText, 96)
	r.DrawText(gfx.FontBold, timeText,
		image.Pt((env.Width-tw)/2, (env.Height-th)/2-24), 96, timeColor)

	dw, _ := r.MeasureText(gfx.FontRegular, dateText, 28)
	r.DrawText(gfx.FontRegular, dateText,
		image.Pt((env.Width-dw)/2, (env.Height+th)/2+8), 28, dateColor)
	return nil
}

// RefreshHint holds redraws until the displayed second rolls over.
func (c *Clock) RefreshHint() float64 {
	return 1.0 - float64(time.Now().Nanosecond())/1e9
}
