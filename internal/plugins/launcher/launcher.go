// Package launcher is the home screen: a tiled grid of installed plugins
// driven by touch, encoder, and the navigation buttons.
package launcher

import (
	"context"
	"image"
	"image/color"

	"github.com/llz-project/llz/internal/config"
	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/icons"
	"github.com/llz-project/llz/internal/input"
	"github.com/llz-project/llz/internal/plugin"
)

const (
	columns    = 4
	tileSize   = 150
	tileGap    = 24
	iconSize   = 64
	headerH    = 56
	labelSize  = 18.0
	headerSize = 24.0
)

var (
	bgColor      = color.RGBA{14, 14, 18, 255}
	tileColor    = color.RGBA{30, 30, 36, 255}
	selTileColor = color.RGBA{48, 58, 76, 255}
	selBorder    = color.RGBA{86, 156, 214, 255}
	labelColor   = color.RGBA{210, 210, 215, 255}
	headerColor  = color.RGBA{150, 150, 155, 255}
	iconColor    = color.RGBA{225, 225, 230, 255}
)

// pages of the launcher: the home grid and the overflow folder.
type page int

const (
	pageHome page = iota
	pageFolder
)

// Launcher shows launchable plugins. Visibility placement comes from the
// host's visibility file; hidden plugins never appear.
type Launcher struct {
	plugin.Base

	list       func() []plugin.Descriptor
	visibility func() map[string]config.Visibility
	icons      *icons.Set

	page     page
	pages    [2][]plugin.Descriptor
	selected int
}

// New creates the launcher. list enumerates installed plugins and
// visibility supplies their launcher placement.
func New(list func() []plugin.Descriptor, visibility func() map[string]config.Visibility) *Launcher {
	return &Launcher{
		Base: plugin.NewBase(plugin.Descriptor{
			Name:              "launcher",
			Description:       "Plugin launcher",
			Category:          plugin.CategoryInfo,
			Icon:              "grid",
			HandlesBackButton: true,
		}),
		list:       list,
		visibility: visibility,
		icons:      icons.NewSet(),
	}
}

func (l *Launcher) Init(ctx context.Context, env plugin.Env) error {
	if err := l.Base.Init(ctx, env); err != nil {
		return err
	}
	l.page = pageHome
	l.selected = 0
	l.rebuild()
	return nil
}

// rebuild sorts installed plugins into the home and folder pages. The
// launcher itself is never listed.
func (l *Launcher) rebuild() {
	vis := l.visibility()
	l.pages[pageHome] = l.pages[pageHome][:0]
	l.pages[pageFolder] = l.pages[pageFolder][:0]
	for _, desc := range l.list() {
		if desc.Name == l.Descriptor().Name {
			continue
		}
		switch vis[desc.Name] {
		case config.VisibilityHidden:
		case config.VisibilityFolder:
			l.pages[pageFolder] = append(l.pages[pageFolder], desc)
		default:
			l.pages[pageHome] = append(l.pages[pageHome], desc)
		}
	}
}

func (l *Launcher) items() []plugin.Descriptor {
	return l.pages[l.page]
}

func (l *Launcher) Update(frame *input.Frame, dt float64) error {
	// Swipes flip between the home grid and the folder page.
	if frame.SwipeLeft && l.page == pageHome {
		l.page = pageFolder
		l.selected = 0
	}
	if frame.SwipeRight && l.page == pageFolder {
		l.page = pageHome
		l.selected = 0
	}

	items := l.items()
	if len(items) == 0 {
		return nil
	}

	// Encoder and UP/DOWN move the selection; clockwise advances.
	move := frame.ScrollDelta
	if frame.Button(input.ButtonDown).Click {
		move++
	}
	if frame.Button(input.ButtonUp).Click {
		move--
	}
	l.selected = (l.selected + move) % len(items)
	if l.selected < 0 {
		l.selected += len(items)
	}

	if frame.Button(input.ButtonSelect).Click {
		l.Env().OpenPlugin(items[l.selected].Name)
	}
	if frame.Tap {
		if idx, ok := l.tileAt(frame.TapPos); ok {
			l.selected = idx
			l.Env().OpenPlugin(items[idx].Name)
		}
	}
	return nil
}

// gridOrigin returns the top-left of the tile grid, centered horizontally.
func (l *Launcher) gridOrigin() image.Point {
	cols := columns
	if n := len(l.items()); n < cols {
		cols = n
	}
	w := cols*tileSize + (cols-1)*tileGap
	return image.Pt((l.Env().Width-w)/2, headerH+tileGap)
}

func (l *Launcher) tileRect(idx int) image.Rectangle {
	origin := l.gridOrigin()
	col := idx % columns
	row := idx / columns
	x := origin.X + col*(tileSize+tileGap)
	y := origin.Y + row*(tileSize+tileGap)
	return image.Rect(x, y, x+tileSize, y+tileSize)
}

func (l *Launcher) tileAt(pos image.Point) (int, bool) {
	for i := range l.items() {
		if pos.In(l.tileRect(i)) {
			return i, true
		}
	}
	return 0, false
}

func (l *Launcher) Draw(r gfx.Renderer) error {
	env := l.Env()
	r.Clear(bgColor)

	title := "Plugins"
	if l.page == pageFolder {
		title = "More"
	}
	r.DrawText(gfx.FontBold, title, image.Pt(tileGap, (headerH-24)/2), headerSize, headerColor)

	items := l.items()
	if len(items) == 0 {
		msg := "nothing here"
		tw, _ := r.MeasureText(gfx.FontRegular, msg, 20)
		r.DrawText(gfx.FontRegular, msg, image.Pt((env.Width-tw)/2, env.Height/2), 20, headerColor)
		return nil
	}

	for i, desc := range items {
		rect := l.tileRect(i)
		fill := tileColor
		if i == l.selected {
			fill = selTileColor
			r.DrawRoundedRectangle(rect.Inset(-3), 14, selBorder)
		}
		r.DrawRoundedRectangle(rect, 12, fill)

		glyph := l.icons.Render(icons.Name(desc.Icon), iconSize, iconColor)
		r.DrawImage(glyph, image.Pt(
			rect.Min.X+(tileSize-iconSize)/2,
			rect.Min.Y+24,
		))

		tw, _ := r.MeasureText(gfx.FontRegular, desc.Name, labelSize)
		r.DrawText(gfx.FontRegular, desc.Name,
			image.Pt(rect.Min.X+(tileSize-tw)/2, rect.Max.Y-34), labelSize, labelColor)
	}
	return nil
}
