package ports

import "context"

// Notification tells session participants that a new version is available.
// Clients fetch their own view; no state travels in the notification.
type Notification struct {
	SessionID  string
	Version    int64
	Recipients []string
	Events     []string
}

// Notifier signals state changes to players.
type Notifier interface {
	SessionUpdated(ctx context.Context, n Notification) error
}
