package notify

import (
	"context"
	"log/slog"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Channel separates the portal banner from the upload widget's status line;
// each channel holds at most one live notification per session.
type Channel string

const (
	ChannelPortal Channel = "portal"
	ChannelUpload Channel = "upload"
)

const (
	GeneralDelay    = 5 * time.Second
	ValidationDelay = 3 * time.Second
)

type Notification struct {
	Type      Kind      `json:"type"`
	Message   string    `json:"message"`
	Channel   Channel   `json:"channel"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (n Notification) Live(now time.Time) bool {
	return now.Before(n.ExpiresAt)
}

// Sink stores notifications until their delay elapses.
type Sink interface {
	Put(ctx context.Context, sessionID string, n Notification, delay time.Duration) error
	Active(ctx context.Context, sessionID string) ([]Notification, error)
}

// Notifier is what flows and widgets post to.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, message string, delay time.Duration)
}

// Delays overrides the two standard lifetimes.
type Delays struct {
	General    time.Duration
	Validation time.Duration
}

// Resolve maps a standard lifetime to its configured value. Other durations
// pass through; zero means general.
func (d Delays) Resolve(delay time.Duration) time.Duration {
	switch {
	case delay <= 0 || delay == GeneralDelay:
		if d.General > 0 {
			return d.General
		}
		return GeneralDelay
	case delay == ValidationDelay && d.Validation > 0:
		return d.Validation
	default:
		return delay
	}
}

// Bound posts to one session channel of a Sink.
type Bound struct {
	sink      Sink
	sessionID string
	channel   Channel
	now       func() time.Time
	delays    Delays
}

func Bind(sink Sink, sessionID string, channel Channel, now func() time.Time) *Bound {
	if now == nil {
		now = time.Now
	}
	return &Bound{sink: sink, sessionID: sessionID, channel: channel, now: now}
}

func (b *Bound) WithDelays(d Delays) *Bound {
	b.delays = d
	return b
}

func (b *Bound) Notify(ctx context.Context, kind Kind, message string, delay time.Duration) {
	delay = b.delays.Resolve(delay)
	n := Notification{
		Type:      kind,
		Message:   message,
		Channel:   b.channel,
		ExpiresAt: b.now().Add(delay),
	}
	if err := b.sink.Put(ctx, b.sessionID, n, delay); err != nil {
		slog.WarnContext(ctx, "store notification failed",
			"session_id", b.sessionID, "channel", b.channel, "error", err)
	}
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, kind Kind, message string, delay time.Duration)

func (f Func) Notify(ctx context.Context, kind Kind, message string, delay time.Duration) {
	f(ctx, kind, message, delay)
}

// LiveOnly drops entries whose delay has elapsed.
func LiveOnly(now time.Time, items []Notification) []Notification {
	out := make([]Notification, 0, len(items))
	for _, n := range items {
		if n.Live(now) {
			out = append(out, n)
		}
	}
	return out
}
