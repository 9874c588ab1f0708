package storage

import (
	"context"

	"github.com/streamkit/donation-notifier/internal/model"
)

// NotificationStorage defines DB operations for donation notifications.
// The core exposes no update or delete operations; the read flag is
// toggled by consumers outside this service.
type NotificationStorage interface {
	Save(ctx context.Context, n *model.Notification) error
	ListUnread(ctx context.Context) ([]model.Notification, error)
	ListAll(ctx context.Context) ([]model.Notification, error)
	Ping(ctx context.Context) error
}
