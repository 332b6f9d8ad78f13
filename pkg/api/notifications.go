package api

import (
	"context"

	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// GetNotifications fetches the user's notifications, newest first
func GetNotifications(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	logger.Debug("Fetching notifications", "user_id", userID)

	q := store.Default().
		From("notifications").
		Select("*,actor:profiles(*)").
		Eq("user_id", userID).
		Order("created_at", false)
	if unreadOnly {
		q = q.Eq("read", "false")
	}

	var notifications []Notification
	err := q.Get(ctx, &notifications)
	return notifications, err
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(ctx context.Context, id string) error {
	logger.Debug("Marking notification read", "notification_id", id)
	return store.Default().Update(ctx, "notifications",
		map[string]bool{"read": true},
		map[string]string{"id": id},
		nil)
}

// MarkAllNotificationsRead marks every unread notification as read
func MarkAllNotificationsRead(ctx context.Context, userID string) error {
	logger.Debug("Marking all notifications read", "user_id", userID)
	return store.Default().Update(ctx, "notifications",
		map[string]bool{"read": true},
		map[string]string{"user_id": userID, "read": "false"},
		nil)
}
