package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llz-project/llz/internal/config"
	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/host"
	"github.com/llz-project/llz/internal/media"
	"github.com/llz-project/llz/internal/notify"
	"github.com/llz-project/llz/internal/platform"
	"github.com/llz-project/llz/internal/plugin"
	"github.com/llz-project/llz/internal/plugins/clock"
	"github.com/llz-project/llz/internal/plugins/launcher"
	"github.com/llz-project/llz/internal/plugins/nowplaying"
)

// Exit codes: 1 means the display could not be brought up, 2 means the
// config root is unusable.
const (
	exitDisplay = 1
	exitConfig  = 2
)

var rootCmd = &cobra.Command{
	Use:          "llz",
	Short:        "Touchscreen plugin dashboard",
	SilenceUsage: true,
	RunE:         runDashboard,
}

func main() {
	rootCmd.AddCommand(pluginsCmd, configCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	log.Println("=== llz dashboard ===")

	hostCfg, err := config.LoadHost()
	if err != nil {
		log.Printf("Warning: host config: %v, using defaults", err)
		hostCfg = &config.Host{Brightness: 80, FrameRate: 60}
	}

	if err := os.MkdirAll(config.Root(), 0o755); err != nil {
		log.Printf("Config root %s unusable: %v", config.Root(), err)
		os.Exit(exitConfig)
	}

	fb, err := gfx.NewSoftware(platform.DisplayWidth, platform.DisplayHeight)
	if err != nil {
		log.Printf("Display init: %v", err)
		os.Exit(exitDisplay)
	}

	shim, run, err := newBackend(fb, hostCfg)
	if err != nil {
		log.Printf("Display backend: %v", err)
		os.Exit(exitDisplay)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry := buildRegistry()

	var bridge media.Bridge = media.NullBridge{}
	if hostCfg.MediaAddr != "" {
		rb := media.NewRedisBridge(hostCfg.MediaAddr)
		defer rb.Close()
		bridge = rb
	}
	cache := media.NewCache(bridge)

	h := host.New(host.Options{
		Shim:          shim,
		Renderer:      fb,
		Registry:      registry,
		Store:         config.NewStore(config.Root()),
		Media:         cache,
		Home:          "launcher",
		ScreenshotDir: filepath.Join(config.Root(), "screenshots"),
	})

	if err := h.Start(ctx); err != nil {
		log.Printf("Starting host: %v", err)
		os.Exit(exitConfig)
	}
	defer h.Stop()

	// Surface track changes as banners unless the media screen is already
	// up; tapping the banner jumps to it.
	cache.SubscribeTrackChanged(func(state media.PlayerState) {
		if h.CurrentPlugin() == "nowplaying" || state.Title == "" {
			return
		}
		n := notify.Notification{
			Kind:            notify.KindBanner,
			Message:         "Now playing: " + state.Title,
			IconText:        "music",
			Position:        notify.PositionTop,
			DurationSeconds: 4,
			OnTapPlugin:     "nowplaying",
		}
		if err := h.Bus().Post(n); err != nil {
			log.Printf("track banner: %v", err)
		}
	})

	return run(ctx, h.Tick)
}

// buildRegistry registers every built-in plugin.
func buildRegistry() *plugin.Registry {
	registry := plugin.NewRegistry()
	must := func(factory plugin.Factory) {
		if err := registry.Register(factory); err != nil {
			log.Fatalf("registering plugin: %v", err)
		}
	}
	must(func() plugin.Plugin {
		return launcher.New(listDescriptors(registry), func() map[string]config.Visibility {
			return config.LoadVisibility(config.VisibilityPath())
		})
	})
	must(func() plugin.Plugin { return clock.New() })
	must(func() plugin.Plugin { return nowplaying.New() })
	return registry
}

// listDescriptors adapts the registry to the launcher's listing callback.
func listDescriptors(registry *plugin.Registry) func() []plugin.Descriptor {
	return func() []plugin.Descriptor {
		names := registry.Names()
		descs := make([]plugin.Descriptor, 0, len(names))
		for _, name := range names {
			if desc, ok := registry.Describe(name); ok {
				descs = append(descs, desc)
			}
		}
		return descs
	}
}
