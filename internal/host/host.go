// Package host owns the frame loop: it samples raw input, interprets
// gestures, runs the notification bus, and drives exactly one plugin
// session at a time.
package host

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/llz-project/llz/internal/config"
	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/input"
	"github.com/llz-project/llz/internal/media"
	"github.com/llz-project/llz/internal/notify"
	"github.com/llz-project/llz/internal/platform"
	"github.com/llz-project/llz/internal/plugin"
)

// ErrUnknownPlugin is returned when an open request names a plugin the
// registry does not know.
var ErrUnknownPlugin = errors.New("unknown plugin")

// initSoftBudget is how long a plugin Init may take before the host logs a
// warning. Init is synchronous, so a slow one stalls the frame loop.
const initSoftBudget = 500 * time.Millisecond

// Options configures a Host.
type Options struct {
	Shim     platform.Shim
	Renderer gfx.Renderer
	Registry *plugin.Registry
	Store    *config.Store
	Media    *media.Cache

	// Home names the plugin opened at startup and returned to when a
	// plugin closes.
	Home string

	// ScreenshotDir receives PNG dumps when the screenshot button is
	// clicked. Empty disables the feature.
	ScreenshotDir string
}

// Host runs the dashboard frame loop.
type Host struct {
	width, height int

	sampler  *input.Sampler
	interp   *input.Interpreter
	renderer gfx.Renderer
	registry *plugin.Registry
	store    *config.Store
	bus      *notify.Bus
	media    *media.Cache

	home          string
	screenshotDir string

	ctx context.Context

	current     plugin.Plugin
	currentName string
	currentCfg  *config.PluginConfig

	pendingOpen string
	nextDraw    float64
}

// New assembles a host. Call Start before the first Tick.
func New(opts Options) *Host {
	return &Host{
		width:         platform.DisplayWidth,
		height:        platform.DisplayHeight,
		sampler:       input.NewSampler(opts.Shim),
		interp:        input.NewInterpreter(),
		renderer:      opts.Renderer,
		registry:      opts.Registry,
		store:         opts.Store,
		bus:           notify.New(platform.DisplayWidth, platform.DisplayHeight),
		media:         opts.Media,
		home:          opts.Home,
		screenshotDir: opts.ScreenshotDir,
	}
}

// Bus returns the notification bus, for posting host-level notices.
func (h *Host) Bus() *notify.Bus {
	return h.bus
}

// CurrentPlugin returns the name of the running plugin, or "" when idle.
func (h *Host) CurrentPlugin() string {
	return h.currentName
}

// Start opens the home plugin. The context bounds all plugin sessions.
func (h *Host) Start(ctx context.Context) error {
	h.ctx = ctx
	if h.media != nil {
		h.media.Start()
	}
	if h.home == "" {
		return nil
	}
	return h.OpenPlugin(h.home)
}

// Stop closes the running plugin and the media worker.
func (h *Host) Stop() {
	h.closeCurrent()
	if h.media != nil {
		h.media.Stop()
	}
}

// RequestOpen queues a plugin switch for the end of the current frame.
// The latest request wins.
func (h *Host) RequestOpen(name string) {
	h.pendingOpen = name
}

// OpenPlugin switches to the named plugin synchronously: the running
// plugin is shut down and its config flushed before the new one's Init
// runs. On an unknown name or Init failure the host is left idle.
func (h *Host) OpenPlugin(name string) error {
	next, ok := h.registry.Resolve(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}

	h.closeCurrent()

	cfg := h.store.Open(name)
	env := plugin.Env{
		Width:      h.width,
		Height:     h.height,
		Config:     cfg,
		Notify:     h.bus,
		Media:      h.media,
		OpenPlugin: h.RequestOpen,
	}

	started := time.Now()
	if err := next.Init(h.ctx, env); err != nil {
		return fmt.Errorf("initializing plugin %q: %w", name, err)
	}
	if elapsed := time.Since(started); elapsed > initSoftBudget {
		log.Printf("plugin %s: init took %v, frame loop was stalled", name, elapsed.Round(time.Millisecond))
	}

	h.current = next
	h.currentName = name
	h.currentCfg = cfg
	h.nextDraw = 0
	return nil
}

// closeCurrent shuts down the running plugin and flushes its config.
// Shutdown and flush errors are logged, never fatal.
func (h *Host) closeCurrent() {
	if h.current == nil {
		return
	}
	if err := h.current.Shutdown(); err != nil {
		log.Printf("plugin %s: shutdown: %v", h.currentName, err)
	}
	if err := h.currentCfg.Save(); err != nil {
		log.Printf("plugin %s: flushing config: %v", h.currentName, err)
	}
	h.current = nil
	h.currentName = ""
	h.currentCfg = nil
}

// teardown removes a misbehaving plugin. The fall back to home is queued
// rather than opened here: transitions only run between frames, so the
// remainder of the failing frame renders the idle screen and the new
// session starts fresh with its first update preceding its first draw.
func (h *Host) teardown(phase string, err error) {
	name := h.currentName
	log.Printf("plugin %s: %s: %v, closing", name, phase, err)
	h.closeCurrent()

	if berr := h.bus.Banner(fmt.Sprintf("%s stopped unexpectedly", name), 4); berr != nil {
		log.Printf("posting teardown notice: %v", berr)
	}
	if name != h.home && h.home != "" {
		h.pendingOpen = h.home
	}
}

// Tick runs one frame at the given monotonic timestamp (seconds). The
// order is fixed: sample, interpret, media delivery, bus update, plugin
// update, plugin draw, bus draw, then deferred plugin switches.
func (h *Host) Tick(now float64) {
	snap := h.sampler.Sample(now)
	frame := h.interp.Interpret(snap)

	if h.media != nil {
		h.media.Poll()
	}

	h.bus.Update(&frame, frame.DeltaSeconds)
	blocking := h.bus.Blocking()

	if h.current != nil && !blocking {
		if err := h.current.Update(&frame, frame.DeltaSeconds); err != nil {
			h.teardown("update", err)
		}
	}

	// BACK closes plugins that do not claim the button themselves.
	if h.current != nil && !blocking && h.currentName != h.home &&
		!h.current.Descriptor().HandlesBackButton && frame.Button(input.ButtonBack).Click {
		h.pendingOpen = h.home
	}

	if frame.Button(input.ButtonScreenshot).Click {
		h.saveScreenshot()
	}

	h.draw(&frame, now)
	h.bus.Draw(h.renderer)

	// Deferred transitions run after draw so a frame is never split
	// between two plugins.
	if req, ok := h.bus.TakeOpenRequest(); ok {
		h.pendingOpen = req
	}
	if h.current != nil && h.current.WantsClose() && h.pendingOpen == "" {
		if h.currentName == h.home {
			// Home closing into itself would be a no-op; go idle.
			h.closeCurrent()
		} else {
			h.pendingOpen = h.home
		}
	}
	if h.pendingOpen != "" {
		name := h.pendingOpen
		h.pendingOpen = ""
		if name != h.currentName {
			if err := h.OpenPlugin(name); err != nil {
				log.Printf("opening plugin %q: %v", name, err)
			}
		}
	}
}

// draw renders the plugin screen, honoring refresh hints. A hint lets a
// static plugin skip draw calls; input edges and live notifications force
// a redraw so nothing visibly lags.
func (h *Host) draw(frame *input.Frame, now float64) {
	if h.current == nil {
		h.drawIdle()
		return
	}
	if now < h.nextDraw && h.bus.Pending() == 0 &&
		!frame.AnyEdge() && frame.ScrollDelta == 0 && !frame.DragActive {
		return
	}
	if err := h.current.Draw(h.renderer); err != nil {
		h.teardown("draw", err)
		h.drawIdle()
		return
	}
	h.nextDraw = now
	if hinter, ok := h.current.(plugin.RefreshHinter); ok {
		if hint := hinter.RefreshHint(); hint > 0 {
			h.nextDraw = now + hint
		}
	}
}

func (h *Host) drawIdle() {
	h.renderer.Clear(color.RGBA{12, 12, 14, 255})
	msg := "no plugin running"
	tw, th := h.renderer.MeasureText(gfx.FontRegular, msg, 22)
	h.renderer.DrawText(gfx.FontRegular, msg,
		image.Pt((h.width-tw)/2, (h.height-th)/2), 22, color.RGBA{120, 120, 125, 255})
}

// saveScreenshot dumps the current framebuffer as a PNG. Only renderers
// exposing their backing image support it.
func (h *Host) saveScreenshot() {
	if h.screenshotDir == "" {
		return
	}
	fb, ok := h.renderer.(interface{ Image() *image.RGBA })
	if !ok {
		log.Printf("screenshot: renderer has no accessible framebuffer")
		return
	}
	if err := os.MkdirAll(h.screenshotDir, 0o755); err != nil {
		log.Printf("screenshot: %v", err)
		return
	}
	name := filepath.Join(h.screenshotDir, time.Now().Format("screenshot-20060102-150405.png"))
	f, err := os.Create(name)
	if err != nil {
		log.Printf("screenshot: %v", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, fb.Image()); err != nil {
		log.Printf("screenshot: encoding %s: %v", name, err)
		return
	}
	log.Printf("screenshot saved to %s", name)
}
