package plugin

import (
	"context"

	"github.com/llz-project/llz/internal/input"
)

// Base provides default implementations of the Plugin interface. Embed it
// and override only the methods needed.
type Base struct {
	desc   Descriptor
	env    Env
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// NewBase creates a Base carrying the given descriptor.
func NewBase(desc Descriptor) Base {
	return Base{desc: desc}
}

// Descriptor returns the plugin's static metadata.
func (b *Base) Descriptor() Descriptor {
	return b.desc
}

// Init stores the context and environment. Override to perform
// plugin-specific setup, but call the base implementation first so Env and
// Context are populated.
func (b *Base) Init(ctx context.Context, env Env) error {
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.env = env
	b.closed = false
	return nil
}

// Update is a no-op by default.
func (b *Base) Update(frame *input.Frame, dt float64) error {
	return nil
}

// WantsClose reports whether RequestClose was called this session.
func (b *Base) WantsClose() bool {
	return b.closed
}

// RequestClose asks the host to close the plugin after this frame.
func (b *Base) RequestClose() {
	b.closed = true
}

// Shutdown cancels the plugin's context. Override for plugin-specific
// cleanup, but call the base implementation so the context is cancelled.
func (b *Base) Shutdown() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}

// Env returns the environment handed to Init.
func (b *Base) Env() Env {
	return b.env
}

// Context returns the plugin's session context.
func (b *Base) Context() context.Context {
	return b.ctx
}
