package service

import "context"

// NotificationService defines the interface for push notification services
type NotificationService interface {
	// SendToUserTopic sends a push notification to the per-user topic the
	// client apps subscribe to.
	SendToUserTopic(ctx context.Context, userID, title, body string, data map[string]string) error
}
