package plugin

import (
	"context"

	"github.com/llz-project/llz/internal/config"
	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/input"
	"github.com/llz-project/llz/internal/media"
	"github.com/llz-project/llz/internal/notify"
)

// Category groups plugins in the launcher.
type Category int

const (
	CategoryMedia Category = iota
	CategoryUtilities
	CategoryGames
	CategoryInfo
	CategoryDebug
)

func (c Category) String() string {
	switch c {
	case CategoryMedia:
		return "media"
	case CategoryUtilities:
		return "utilities"
	case CategoryGames:
		return "games"
	case CategoryInfo:
		return "info"
	case CategoryDebug:
		return "debug"
	}
	return "unknown"
}

// Descriptor is a plugin's static metadata, available without running it.
type Descriptor struct {
	// Name is the unique identifier, also used as the config file name.
	Name string

	Description string
	Category    Category

	// Icon names an embedded glyph shown in the launcher.
	Icon string

	// HandlesBackButton means the plugin consumes BACK presses itself.
	// When false the host closes the plugin on a BACK click.
	HandlesBackButton bool
}

// Env is what the host hands a plugin at init. The config handle and the
// notification bus stay valid until Shutdown returns.
type Env struct {
	Width  int
	Height int

	Config *config.PluginConfig
	Notify *notify.Bus
	Media  *media.Cache

	// OpenPlugin asks the host to switch to another plugin after the
	// current frame completes.
	OpenPlugin func(name string)
}

// Plugin defines the interface every dashboard plugin implements.
type Plugin interface {
	// Descriptor returns the plugin's static metadata.
	Descriptor() Descriptor

	// Init prepares the plugin for its session. The context is cancelled
	// when the host begins shutting the plugin down.
	Init(ctx context.Context, env Env) error

	// Update advances one frame of plugin logic. The frame carries all
	// interpreted input for this tick.
	Update(frame *input.Frame, dt float64) error

	// Draw renders the plugin's full screen content.
	Draw(r gfx.Renderer) error

	// WantsClose reports whether the plugin asks to be closed. The host
	// checks it after each update.
	WantsClose() bool

	// Shutdown releases plugin resources. Called exactly once per session.
	Shutdown() error
}

// RefreshHinter lets a plugin tell the host how long its display stays
// valid. The host may skip Draw calls until the hint expires; Update still
// runs every frame.
type RefreshHinter interface {
	// RefreshHint returns seconds until the next visual change, or 0 to
	// draw every frame.
	RefreshHint() float64
}
