// Package notify delivers user-facing connectivity notifications ("toasts").
//
// A notification is emitted once per connectivity transition, never per
// request. Implementations must not block the caller.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the transition a notification announces.
type Kind string

const (
	KindOffline  Kind = "offline"
	KindRestored Kind = "restored"
)

const (
	MessageOffline  = "Backend service is unavailable. Using offline data."
	MessageRestored = "Connection to backend service restored."
)

// Notification is a transient, non-blocking message for the dashboard.
type Notification struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// New builds a notification of the given kind with its standard message.
func New(kind Kind, reason string) Notification {
	msg := MessageRestored
	if kind == KindOffline {
		msg = MessageOffline
	}
	return Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: msg,
		Reason:  reason,
		At:      time.Now().UTC(),
	}
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification)

// Notify calls f.
func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Notify delivers n to every non-nil notifier.
func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a notifier backed by log, or slog.Default if nil.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

// Notify logs offline notices at warn level and restorations at info level.
func (l *LogNotifier) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	if n.Kind == KindOffline {
		level = slog.LevelWarn
	}
	l.log.Log(ctx, level, n.Message, "kind", n.Kind, "reason", n.Reason, "id", n.ID)
}
