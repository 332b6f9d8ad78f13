package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arslanonur06/connectme/cli/pkg/api"
)

func testNotificationService(t *testing.T) *NotificationService {
	t.Helper()

	ns := NewNotificationService(context.Background())
	ns.identity = func() string { return "user-1" }
	ns.fetch = func(ctx context.Context, userID string, unreadOnly bool) ([]api.Notification, error) {
		return []api.Notification{
			{ID: "n-1", UserID: "user-1", Kind: "like", Body: "someone liked your post"},
			{ID: "n-2", UserID: "user-1", Kind: "comment", Body: "new comment", Read: true},
		}, nil
	}
	ns.markRead = func(ctx context.Context, id string) error { return nil }
	require.NoError(t, ns.Load(context.Background(), false))
	return ns
}

func TestMarkReadFlipsImmediately(t *testing.T) {
	ns := testNotificationService(t)

	require.NoError(t, ns.MarkRead(context.Background(), "n-1"))

	notifications := ns.Notifications()
	assert.True(t, notifications[0].Read)
}

func TestMarkReadRollsBackOnFailure(t *testing.T) {
	ns := testNotificationService(t)
	ns.markRead = func(ctx context.Context, id string) error {
		return errors.New("backend down")
	}

	err := ns.MarkRead(context.Background(), "n-1")
	require.Error(t, err)

	notifications := ns.Notifications()
	assert.False(t, notifications[0].Read, "failed mark-read must roll back")
}

func TestMarkReadRefusedWhenSignedOut(t *testing.T) {
	ns := testNotificationService(t)
	ns.identity = func() string { return "" }

	assert.Error(t, ns.MarkRead(context.Background(), "n-1"))
	assert.False(t, ns.Notifications()[0].Read)
}
