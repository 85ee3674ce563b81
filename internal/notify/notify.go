// Package notify implements the host-wide notification and overlay bus:
// a FIFO of banners (auto-dismissing, non-blocking) and dialogs (input
// blocking). The bus consumes input before the active plugin sees it and
// draws strictly on top of plugin output.
package notify

import (
	"errors"
	"fmt"
	"log"
)

// Kind distinguishes the two notification shapes.
type Kind int

const (
	// KindBanner auto-dismisses after its duration and does not block input.
	KindBanner Kind = iota
	// KindDialog blocks plugin input while visible and must be dismissed
	// by the user.
	KindDialog
)

// Position anchors a notification on screen.
type Position int

const (
	PositionTop Position = iota
	PositionBottom
	PositionCenter
)

// State is the lifecycle of a queued notification.
type State int

const (
	StateEntering State = iota
	StateVisible
	StateLeaving
	StateDone
)

// Notification is one item in the bus queue.
type Notification struct {
	Kind     Kind
	Message  string
	IconText string
	Position Position

	// DurationSeconds is how long a banner stays visible before animating
	// out. Ignored for dialogs.
	DurationSeconds float64

	// OnTapPlugin, when set, enqueues an open-plugin request honored by the
	// lifecycle manager after the current frame.
	OnTapPlugin string

	// OnTap is invoked on the frame thread when the notification is tapped.
	OnTap func()
}

// ErrInvalidNotification is returned when a posted notification violates
// the data contract (empty message, negative duration).
var ErrInvalidNotification = errors.New("notify: invalid notification")

// Banner is a convenience for posting a plain top banner.
func (b *Bus) Banner(message string, duration float64) error {
	return b.Post(Notification{
		Kind:            KindBanner,
		Message:         message,
		Position:        PositionTop,
		DurationSeconds: duration,
	})
}

// Dialog is a convenience for posting a centered blocking dialog.
func (b *Bus) Dialog(message string) error {
	return b.Post(Notification{
		Kind:     KindDialog,
		Message:  message,
		Position: PositionCenter,
	})
}

// Post validates and enqueues a notification. Invalid notifications are
// refused and logged; the system continues.
func (b *Bus) Post(n Notification) error {
	if n.Message == "" {
		log.Printf("notify: refusing notification with empty message")
		return fmt.Errorf("%w: empty message", ErrInvalidNotification)
	}
	if n.DurationSeconds < 0 {
		log.Printf("notify: refusing notification with negative duration %f", n.DurationSeconds)
		return fmt.Errorf("%w: negative duration", ErrInvalidNotification)
	}
	if n.Kind == KindBanner && n.DurationSeconds == 0 {
		n.DurationSeconds = defaultBannerSeconds
	}
	b.queue = append(b.queue, &item{n: n, state: StateEntering})
	return nil
}
