// Package notify delivers transient user-facing alerts.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultCapacity = 20

type Notifier interface {
	Alert(ctx context.Context, title, message string)
}

type Alert struct {
	Title   string
	Message string
	At      time.Time
}

// Inbox holds alerts until the presentation layer drains them. When full, the
// oldest alert is dropped.
type Inbox struct {
	mu       sync.Mutex
	alerts   []Alert
	capacity int
	now      func() time.Time
	logger   *slog.Logger
}

var _ Notifier = (*Inbox)(nil)

func NewInbox(capacity int, logger *slog.Logger) *Inbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{
		capacity: capacity,
		now:      time.Now,
		logger:   logger.With("component", "Inbox"),
	}
}

func (i *Inbox) Alert(ctx context.Context, title, message string) {
	i.logger.WarnContext(ctx, "Alert raised", slog.String("title", title), slog.String("message", message))

	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.alerts) == i.capacity {
		dropped := i.alerts[0]
		i.alerts = i.alerts[1:]
		i.logger.DebugContext(ctx, "Inbox full, dropping oldest alert", slog.String("message", dropped.Message))
	}
	i.alerts = append(i.alerts, Alert{Title: title, Message: message, At: i.now()})
}

// Drain returns pending alerts oldest first and empties the inbox.
func (i *Inbox) Drain() []Alert {
	i.mu.Lock()
	defer i.mu.Unlock()
	alerts := i.alerts
	i.alerts = nil
	return alerts
}

func (i *Inbox) Pending() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.alerts)
}
