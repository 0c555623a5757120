package notifications

import "context"

type StoreAPI interface {
	CreateNotification(ctx context.Context, n Notification) (Notification, error)
	RecipientEmail(ctx context.Context, recipient string) (string, error)
	ListNotifications(ctx context.Context, recipient string, unreadOnly bool, limit, offset int) ([]Notification, error)
	CountNotifications(ctx context.Context, recipient string, unreadOnly bool) (int, error)
	MarkRead(ctx context.Context, recipient, notificationID string) error
	EmailSettings(ctx context.Context) (EmailSettings, error)
	UpdateSettings(ctx context.Context, settings EmailSettings) error
}
