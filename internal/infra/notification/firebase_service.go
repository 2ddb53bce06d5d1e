// Package notification delivers push notifications through Firebase Cloud
// Messaging.
package notification

import (
	"context"
	"fmt"

	"storefront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase notification service instance
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.NotificationService, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{
		client: client,
	}, nil
}

// SendToUserTopic sends a push notification to the per-user topic. Client apps
// subscribe to their own topic at sign-in, so no device token bookkeeping is
// needed server-side.
func (s *firebaseService) SendToUserTopic(ctx context.Context, userID, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: UserTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// UserTopic returns the FCM topic name for a user. Topic names only allow
// [a-zA-Z0-9-_.~%], which both UUIDs and Firebase UIDs satisfy.
func UserTopic(userID string) string {
	return "user-" + userID
}
