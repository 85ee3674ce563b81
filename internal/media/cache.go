package media

import (
	"sync"
	"time"
)

const pollInterval = 1 * time.Second

// Cache is the host-owned media state. The poll worker is the only writer;
// plugins read on the frame thread. Subscription callbacks never run on the
// worker: track changes are staged and delivered from Poll, which the host
// calls once per frame.
type Cache struct {
	bridge Bridge

	mu        sync.Mutex
	state     PlayerState
	connected bool
	pending   []PlayerState // staged track changes awaiting Poll

	subs    map[int]func(PlayerState)
	nextSub int

	stop chan struct{}
	done chan struct{}
}

// NewCache creates a cache over the given bridge.
func NewCache(bridge Bridge) *Cache {
	return &Cache{
		bridge: bridge,
		subs:   make(map[int]func(PlayerState)),
	}
}

// Start launches the background poll worker.
func (c *Cache) Start() {
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run()
}

// Stop terminates the worker and waits for it to exit.
func (c *Cache) Stop() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	<-c.done
	c.stop = nil
}

func (c *Cache) run() {
	defer close(c.done)
	c.refresh()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.refresh()
		}
	}
}

// refresh runs on the worker goroutine.
func (c *Cache) refresh() {
	connected := c.bridge.Connected()
	state, ok := c.bridge.FetchState()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = connected
	if !ok {
		return
	}
	if state.TrackID != c.state.TrackID {
		c.pending = append(c.pending, state)
	}
	c.state = state
}

// State returns the latest known player state and whether the bridge has
// delivered one.
func (c *Cache) State() (PlayerState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.state.TrackID != "" || c.state.Title != ""
}

// Connection reports whether the bridge is reachable.
func (c *Cache) Connection() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// SendCommand forwards a command to the bridge.
func (c *Cache) SendCommand(kind CommandKind, value float64) bool {
	return c.bridge.SendCommand(kind, value)
}

// SubscribeTrackChanged registers a callback fired on the frame thread
// whenever the current track changes. Returns the subscription id.
func (c *Cache) SubscribeTrackChanged(fn func(PlayerState)) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSub++
	c.subs[c.nextSub] = fn
	return c.nextSub
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (c *Cache) Unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, id)
}

// Poll delivers staged track-change events to subscribers. The host calls
// it once per frame, so callbacks run on the frame thread and never
// concurrently with plugin code.
func (c *Cache) Poll() {
	c.mu.Lock()
	changes := c.pending
	c.pending = nil
	var subs []func(PlayerState)
	if len(changes) > 0 {
		subs = make([]func(PlayerState), 0, len(c.subs))
		for _, fn := range c.subs {
			subs = append(subs, fn)
		}
	}
	c.mu.Unlock()

	for _, state := range changes {
		for _, fn := range subs {
			fn(state)
		}
	}
}
