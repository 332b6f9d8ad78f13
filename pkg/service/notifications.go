package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	json "github.com/json-iterator/go"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/cache"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/optimistic"
	"github.com/arslanonur06/connectme/cli/pkg/realtime"
)

// NotificationService lists, marks and watches notifications. Mark-read
// is optimistic: the cached row flips first and flips back on failure.
type NotificationService struct {
	cache    *cache.Cache[api.Notification]
	mutator  *optimistic.Mutator[api.Notification]
	identity func() string

	fetch    func(ctx context.Context, userID string, unreadOnly bool) ([]api.Notification, error)
	markRead func(ctx context.Context, id string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(scope context.Context) *NotificationService {
	c := cache.New[api.Notification]()
	ns := &NotificationService{
		cache:    c,
		identity: credentials.CurrentUserID,
		fetch:    api.GetNotifications,
		markRead: api.MarkNotificationRead,
	}
	ns.mutator = optimistic.New(c, scope, func() string { return ns.identity() })
	return ns
}

// Load replaces the cached notifications with the latest remote rows
func (ns *NotificationService) Load(ctx context.Context, unreadOnly bool) error {
	notifications, err := ns.fetch(ctx, ns.identity(), unreadOnly)
	if err != nil {
		return fmt.Errorf("failed to fetch notifications: %w", err)
	}

	ns.cache.Clear()
	for _, n := range notifications {
		ns.cache.Upsert(n)
	}
	return nil
}

// Notifications returns the cached notifications in display order
func (ns *NotificationService) Notifications() []api.Notification {
	return ns.cache.List()
}

// MarkRead marks one notification read, optimistically
func (ns *NotificationService) MarkRead(ctx context.Context, id string) error {
	return ns.mutator.Toggle(ctx, id, readSet(true), readSet(false), func(ctx context.Context) error {
		return ns.markRead(ctx, id)
	})
}

// MarkAllRead marks every unread notification read
func (ns *NotificationService) MarkAllRead(ctx context.Context) error {
	if err := api.MarkAllNotificationsRead(ctx, ns.identity()); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	for _, n := range ns.cache.List() {
		ns.cache.Update(n.ID, readSet(true))
	}
	formatter.PrintSuccess("All notifications marked read")
	return nil
}

// Show loads and prints notifications
func (ns *NotificationService) Show(ctx context.Context, unreadOnly bool) error {
	logger.Debug("Viewing notifications", "unread_only", unreadOnly)

	if err := ns.Load(ctx, unreadOnly); err != nil {
		return err
	}

	notifications := ns.Notifications()
	if len(notifications) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s [%s] %-14s %s (%s)\n", marker, n.ID, n.Kind, n.Body,
			n.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// Watch streams notifications live until interrupted
func (ns *NotificationService) Watch(ctx context.Context) error {
	creds, err := credentials.Load()
	if err != nil || !creds.IsValid() {
		return fmt.Errorf("watching requires a signed-in session")
	}

	rt := realtime.GetClient()
	if err := rt.Connect(creds.AccessToken); err != nil {
		return fmt.Errorf("failed to connect to realtime service: %w", err)
	}
	defer rt.Disconnect()

	formatter.PrintInfo("Watching notifications. Press Ctrl+C to stop.")

	unsub := rt.On(realtime.EventTypeNotificationCreated, func(evt realtime.Event) {
		var n api.Notification
		if err := json.Unmarshal(evt.Payload, &n); err != nil {
			logger.Warn("Malformed notification push", "error", err)
			return
		}
		if n.UserID != ns.identity() {
			return
		}
		ns.cache.Upsert(n)
		fmt.Printf("* [%s] %s\n", n.Kind, n.Body)
	})
	defer unsub()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	fmt.Println("\nStopped watching.")
	return nil
}

func readSet(on bool) func(api.Notification) api.Notification {
	return func(n api.Notification) api.Notification {
		n.Read = on
		return n
	}
}
