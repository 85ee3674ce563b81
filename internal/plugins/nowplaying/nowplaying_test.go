package nowplaying

import (
	"image"
	"testing"

	"github.com/llz-project/llz/internal/config"
	"github.com/llz-project/llz/internal/gfx"
	"github.com/llz-project/llz/internal/input"
	"github.com/llz-project/llz/internal/media"
	"github.com/llz-project/llz/internal/notify"
	"github.com/llz-project/llz/internal/plugin"
)

type command struct {
	kind  media.CommandKind
	value float64
}

type fakeBridge struct {
	commands []command
}

func (f *fakeBridge) FetchState() (media.PlayerState, bool) { return media.PlayerState{}, false }
func (f *fakeBridge) Connected() bool                       { return false }

func (f *fakeBridge) SendCommand(kind media.CommandKind, value float64) bool {
	f.commands = append(f.commands, command{kind, value})
	return true
}

func newTestPlugin(t *testing.T) (*NowPlaying, *fakeBridge) {
	t.Helper()
	bridge := &fakeBridge{}
	n := New()
	env := plugin.Env{
		Width:  800,
		Height: 480,
		Config: config.NewStore(t.TempDir()).Open("nowplaying"),
		Notify: notify.New(800, 480),
		Media:  media.NewCache(bridge),
	}
	if err := n.Init(t.Context(), env); err != nil {
		t.Fatal(err)
	}
	return n, bridge
}

func TestTransportControls(t *testing.T) {
	n, bridge := newTestPlugin(t)

	frame := &input.Frame{}
	frame.Buttons[input.ButtonSelect].Click = true
	if err := n.Update(frame, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if err := n.Update(&input.Frame{SwipeLeft: true}, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if err := n.Update(&input.Frame{SwipeRight: true}, 1.0/60); err != nil {
		t.Fatal(err)
	}

	want := []media.CommandKind{media.CmdPlayPause, media.CmdNext, media.CmdPrev}
	if len(bridge.commands) != len(want) {
		t.Fatalf("commands = %v", bridge.commands)
	}
	for i, kind := range want {
		if bridge.commands[i].kind != kind {
			t.Fatalf("command %d = %v, want %v", i, bridge.commands[i].kind, kind)
		}
	}
}

func TestScrollAdjustsVolume(t *testing.T) {
	n, bridge := newTestPlugin(t)
	if err := n.Update(&input.Frame{ScrollDelta: 2}, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if len(bridge.commands) != 1 {
		t.Fatalf("commands = %v", bridge.commands)
	}
	got := bridge.commands[0]
	if got.kind != media.CmdVolume || got.value != 2*volumeStep {
		t.Fatalf("volume command = %+v", got)
	}
}

func TestTapOutsideProgressBarSendsNothing(t *testing.T) {
	n, bridge := newTestPlugin(t)
	if err := n.Update(&input.Frame{Tap: true, TapPos: image.Pt(400, 100)}, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if len(bridge.commands) != 0 {
		t.Fatalf("commands = %v", bridge.commands)
	}
}

func TestDrawWithoutState(t *testing.T) {
	n, _ := newTestPlugin(t)
	r, err := gfx.NewSoftware(800, 480)
	if err != nil {
		t.Fatal(err)
	}
	if err := n.Draw(r); err != nil {
		t.Fatal(err)
	}
	if err := n.Shutdown(); err != nil {
		t.Fatal(err)
	}
}
