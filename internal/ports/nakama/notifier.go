package nakama

import (
	"context"
	"fmt"

	"cosanostra/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NotificationAPI is the part of runtime.NakamaModule the notifier needs.
type NotificationAPI interface {
	NotificationsSend(ctx context.Context, notifications []*runtime.NotificationSend) error
}

// NakamaNotifier implements ports.Notifier with persistent Nakama notifications.
type NakamaNotifier struct {
	nk NotificationAPI
}

// NewNakamaNotifier creates a new notifier.
func NewNakamaNotifier(nk NotificationAPI) *NakamaNotifier {
	return &NakamaNotifier{nk: nk}
}

// SessionUpdated sends one notification per recipient carrying the new version.
func (n *NakamaNotifier) SessionUpdated(ctx context.Context, update ports.Notification) error {
	if len(update.Recipients) == 0 {
		return nil
	}
	content := map[string]interface{}{
		"session_id": update.SessionID,
		"version":    update.Version,
		"events":     update.Events,
	}
	batch := make([]*runtime.NotificationSend, 0, len(update.Recipients))
	for _, userID := range update.Recipients {
		batch = append(batch, &runtime.NotificationSend{
			UserID:     userID,
			Subject:    NotificationSubjectSessionUpdated,
			Content:    content,
			Code:       NotificationCodeSessionUpdated,
			Persistent: true,
		})
	}
	if err := n.nk.NotificationsSend(ctx, batch); err != nil {
		return fmt.Errorf("failed to notify session %s: %w", update.SessionID, err)
	}
	return nil
}

var _ ports.Notifier = (*NakamaNotifier)(nil)
