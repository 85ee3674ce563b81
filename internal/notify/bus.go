package notify

import (
	"image"
	"image/color"

	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/icons"
	"github.com/llz-project/llz/internal/input"
)

const (
	defaultBannerSeconds = 3.0
	slideSeconds         = 0.20

	bannerMargin  = 16
	bannerPadX    = 18
	bannerPadY    = 12
	bannerRadius  = 10
	iconSize      = 24
	iconGap       = 10
	maxBanners    = 3
	dialogMinWide = 320
)

var (
	bannerBg   = color.RGBA{36, 36, 40, 235}
	dialogBg   = color.RGBA{28, 28, 32, 245}
	dialogDim  = color.RGBA{0, 0, 0, 140}
	textColor  = color.RGBA{235, 235, 235, 255}
	hintColor  = color.RGBA{150, 150, 155, 255}
	accentLine = color.RGBA{86, 156, 214, 255}
)

// item is a queued notification plus its animation state. The bus owns it
// until it reaches StateDone.
type item struct {
	n      Notification
	state  State
	age    float64 // seconds in the current state
	pinned bool    // tap cancelled the auto-dismiss
	bounds image.Rectangle
}

// Bus is the host-scoped notification queue. It is created after display
// init and destroyed before display teardown; plugins enqueue via Post but
// never touch queue internals.
type Bus struct {
	width, height int
	queue         []*item
	openReq       string
	icons         *icons.Set
}

// New creates a bus for the given logical display size.
func New(width, height int) *Bus {
	return &Bus{width: width, height: height, icons: icons.NewSet()}
}

// Blocking reports whether a dialog currently owns input. While true the
// host short-circuits plugin update after running the bus update.
func (b *Bus) Blocking() bool {
	for _, it := range b.queue {
		if it.n.Kind == KindDialog && it.state != StateDone {
			return true
		}
	}
	return false
}

// Pending returns how many notifications are still queued or on screen.
func (b *Bus) Pending() int {
	return len(b.queue)
}

// TakeOpenRequest returns and clears the pending open-plugin request, if a
// tapped notification produced one.
func (b *Bus) TakeOpenRequest() (string, bool) {
	if b.openReq == "" {
		return "", false
	}
	req := b.openReq
	b.openReq = ""
	return req, true
}

// Update advances animations and consumes taps aimed at notifications.
// It must run before the plugin update each frame.
func (b *Bus) Update(frame *input.Frame, dt float64) {
	dialogShown := false
	for _, it := range b.queue {
		if it.state == StateDone {
			continue
		}
		// Only one dialog is on screen at a time; later ones wait queued
		// in the entering state with a frozen clock.
		if it.n.Kind == KindDialog {
			if dialogShown {
				continue
			}
			dialogShown = true
		}
		it.age += dt
		b.step(it)
	}

	// Taps aimed at a notification are consumed so the plugin never sees
	// them in the same frame.
	if frame.Tap && b.handleTap(frame.TapPos) {
		frame.Tap = false
		frame.TapPos = image.Point{}
	}
	// SELECT dismisses the front dialog for the button-only path.
	if frame.Button(input.ButtonSelect).Click {
		if d := b.frontDialog(); d != nil && d.state == StateVisible {
			d.state = StateLeaving
			d.age = 0
		}
	}

	b.compact()
}

func (b *Bus) step(it *item) {
	switch it.state {
	case StateEntering:
		if it.age >= slideSeconds {
			it.state = StateVisible
			it.age = 0
		}
	case StateVisible:
		if it.n.Kind == KindBanner && !it.pinned && it.age >= it.n.DurationSeconds {
			it.state = StateLeaving
			it.age = 0
		}
	case StateLeaving:
		if it.age >= slideSeconds {
			it.state = StateDone
		}
	}
}

// handleTap routes a tap to the notification under it and reports whether
// the tap was consumed.
func (b *Bus) handleTap(pos image.Point) bool {
	// Dialogs win: a tap anywhere dismisses the front dialog.
	if d := b.frontDialog(); d != nil {
		if d.state == StateVisible {
			d.fireTap(b)
			d.state = StateLeaving
			d.age = 0
		}
		return true
	}
	for _, it := range b.queue {
		if it.state != StateVisible || !pos.In(it.bounds) {
			continue
		}
		if !it.pinned {
			// First tap pins the banner open and fires its action.
			it.pinned = true
			it.fireTap(b)
		} else {
			it.state = StateLeaving
			it.age = 0
		}
		return true
	}
	return false
}

func (it *item) fireTap(b *Bus) {
	if it.n.OnTap != nil {
		it.n.OnTap()
	}
	if it.n.OnTapPlugin != "" {
		b.openReq = it.n.OnTapPlugin
	}
}

func (b *Bus) frontDialog() *item {
	for _, it := range b.queue {
		if it.n.Kind == KindDialog && it.state != StateDone {
			return it
		}
	}
	return nil
}

func (b *Bus) compact() {
	live := b.queue[:0]
	for _, it := range b.queue {
		if it.state != StateDone {
			live = append(live, it)
		}
	}
	// Zero the tail so done items can be collected.
	for i := len(live); i < len(b.queue); i++ {
		b.queue[i] = nil
	}
	b.queue = live
}

// Draw renders all live notifications. The host calls this after the
// plugin draw so notifications sit strictly on top.
func (b *Bus) Draw(r gfx.Renderer) {
	stack := map[Position]int{}
	dialogShown := false
	for _, it := range b.queue {
		if it.state == StateDone {
			continue
		}
		if it.n.Kind == KindDialog {
			if dialogShown {
				continue
			}
			dialogShown = true
			b.drawDialog(r, it)
			continue
		}
		b.drawBanner(r, it, stack[it.n.Position])
		stack[it.n.Position]++
	}
}

// slideOffset returns the vertical animation offset for enter/leave.
func slideOffset(it *item, travel int) int {
	switch it.state {
	case StateEntering:
		p := it.age / slideSeconds
		if p > 1 {
			p = 1
		}
		return int(float64(travel) * (1 - p))
	case StateLeaving:
		p := it.age / slideSeconds
		if p > 1 {
			p = 1
		}
		return int(float64(travel) * p)
	}
	return 0
}

func (b *Bus) drawBanner(r gfx.Renderer, it *item, index int) {
	if index >= maxBanners {
		return
	}
	tw, th := r.MeasureText(gfx.FontRegular, it.n.Message, 18)
	w := tw + 2*bannerPadX
	h := th + 2*bannerPadY
	if it.n.IconText != "" {
		w += iconSize + iconGap
	}

	x := (b.width - w) / 2
	var y, travel int
	switch it.n.Position {
	case PositionTop:
		y = bannerMargin + index*(h+8)
		travel = -(y + h)
	case PositionBottom:
		y = b.height - bannerMargin - h - index*(h+8)
		travel = b.height - y
	case PositionCenter:
		y = (b.height-h)/2 + index*(h+8)
		travel = 0
	}
	y += slideOffset(it, travel)

	it.bounds = image.Rect(x, y, x+w, y+h)
	r.DrawRoundedRectangle(it.bounds, bannerRadius, bannerBg)
	r.DrawRectangle(image.Rect(x, y+h-2, x+w, y+h), accentLine)

	tx := x + bannerPadX
	if it.n.IconText != "" {
		// IconText names an embedded glyph; unknown names render blank.
		glyph := b.icons.Render(icons.Name(it.n.IconText), iconSize, textColor)
		r.DrawImage(glyph, image.Pt(tx, y+(h-iconSize)/2))
		tx += iconSize + iconGap
	}
	r.DrawText(gfx.FontRegular, it.n.Message, image.Pt(tx, y+bannerPadY), 18, textColor)
}

func (b *Bus) drawDialog(r gfx.Renderer, it *item) {
	// Dim the plugin output underneath.
	r.DrawRectangle(image.Rect(0, 0, b.width, b.height), dialogDim)

	tw, th := r.MeasureText(gfx.FontRegular, it.n.Message, 20)
	w := tw + 2*bannerPadX
	if w < dialogMinWide {
		w = dialogMinWide
	}
	h := th + 2*bannerPadY + 36

	x := (b.width - w) / 2
	y := (b.height - h) / 2
	it.bounds = image.Rect(x, y, x+w, y+h)

	r.DrawRoundedRectangle(it.bounds, bannerRadius, dialogBg)
	r.DrawText(gfx.FontRegular, it.n.Message, image.Pt(x+bannerPadX, y+bannerPadY), 20, textColor)
	hint := "tap or press select to dismiss"
	hw, _ := r.MeasureText(gfx.FontRegular, hint, 14)
	r.DrawText(gfx.FontRegular, hint, image.Pt(x+(w-hw)/2, y+h-bannerPadY-16), 14, hintColor)
}
