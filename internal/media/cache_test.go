package media

import (
	"sync"
	"testing"
)

// fakeBridge is a Bridge whose state the test controls directly.
type fakeBridge struct {
	mu        sync.Mutex
	state     PlayerState
	ok        bool
	connected bool

	commands []CommandKind
}

func (f *fakeBridge) set(state PlayerState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
	f.ok = true
}

func (f *fakeBridge) FetchState() (PlayerState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.ok
}

func (f *fakeBridge) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeBridge) SendCommand(kind CommandKind, value float64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, kind)
	return true
}

func TestTrackChangeStagedUntilPoll(t *testing.T) {
	bridge := &fakeBridge{}
	cache := NewCache(bridge)

	var seen []string
	cache.SubscribeTrackChanged(func(s PlayerState) {
		seen = append(seen, s.TrackID)
	})

	bridge.set(PlayerState{TrackID: "a", Title: "first"})
	cache.refresh()
	if len(seen) != 0 {
		t.Fatal("callback fired from the worker path, not from Poll")
	}

	cache.Poll()
	if len(seen) != 1 || seen[0] != "a" {
		t.Fatalf("seen = %v, want [a]", seen)
	}

	// Same track polls again: no new event.
	cache.refresh()
	cache.Poll()
	if len(seen) != 1 {
		t.Fatalf("repeat state produced a change event, seen = %v", seen)
	}

	bridge.set(PlayerState{TrackID: "b", Title: "second"})
	cache.refresh()
	cache.Poll()
	if len(seen) != 2 || seen[1] != "b" {
		t.Fatalf("seen = %v, want [a b]", seen)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bridge := &fakeBridge{}
	cache := NewCache(bridge)

	calls := 0
	id := cache.SubscribeTrackChanged(func(PlayerState) { calls++ })

	bridge.set(PlayerState{TrackID: "a"})
	cache.refresh()
	cache.Poll()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	cache.Unsubscribe(id)
	bridge.set(PlayerState{TrackID: "b"})
	cache.refresh()
	cache.Poll()
	if calls != 1 {
		t.Fatalf("unsubscribed callback fired, calls = %d", calls)
	}
}

func TestStateAndConnectionReflectBridge(t *testing.T) {
	bridge := &fakeBridge{}
	cache := NewCache(bridge)

	if _, ok := cache.State(); ok {
		t.Fatal("empty cache reported a state")
	}

	bridge.connected = true
	bridge.set(PlayerState{TrackID: "x", Title: "song", Playing: true})
	cache.refresh()

	state, ok := cache.State()
	if !ok || state.Title != "song" || !state.Playing {
		t.Fatalf("state = %+v ok=%v", state, ok)
	}
	if !cache.Connection() {
		t.Fatal("connection not reported")
	}
}

func TestSendCommandForwards(t *testing.T) {
	bridge := &fakeBridge{}
	cache := NewCache(bridge)

	if !cache.SendCommand(CmdNext, 0) {
		t.Fatal("command rejected")
	}
	if len(bridge.commands) != 1 || bridge.commands[0] != CmdNext {
		t.Fatalf("commands = %v", bridge.commands)
	}
}

func TestNullBridgeIsInert(t *testing.T) {
	cache := NewCache(NullBridge{})
	cache.refresh()
	if _, ok := cache.State(); ok {
		t.Fatal("null bridge produced state")
	}
	if cache.Connection() {
		t.Fatal("null bridge reported connected")
	}
	if cache.SendCommand(CmdPlayPause, 0) {
		t.Fatal("null bridge accepted a command")
	}
}
