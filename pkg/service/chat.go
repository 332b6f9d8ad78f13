package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	json "github.com/json-iterator/go"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/cache"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/optimistic"
	"github.com/arslanonur06/connectme/cli/pkg/realtime"
	"github.com/arslanonur06/connectme/cli/pkg/translate"
)

// ChatService owns one conversation's message cache. Local sends go
// through the optimistic mutator; server pushes go through the
// reconciler, so a message confirmed over HTTP and echoed over the
// socket still appears exactly once.
type ChatService struct {
	chatID     string
	cache      *cache.Cache[api.Message]
	mutator    *optimistic.Mutator[api.Message]
	reconciler *realtime.Reconciler[api.Message]
	identity   func() string
	translator *translate.Client

	fetch         func(ctx context.Context, chatID string, limit int) ([]api.Message, error)
	sendMessage   func(ctx context.Context, chatID, senderID, content string) (*api.Message, error)
	deleteMessage func(ctx context.Context, id string) error
}

// NewChatService creates a chat service for one conversation
func NewChatService(scope context.Context, chatID string) *ChatService {
	c := cache.New[api.Message]()
	cs := &ChatService{
		chatID:        chatID,
		cache:         c,
		identity:      credentials.CurrentUserID,
		translator:    translate.FromConfig(),
		fetch:         api.GetMessages,
		sendMessage:   api.SendMessage,
		deleteMessage: api.DeleteMessage,
	}
	cs.mutator = optimistic.New(c, scope, func() string { return cs.identity() })
	cs.reconciler = realtime.NewReconciler(c, realtime.ReconcilerConfig[api.Message]{
		IsPending: func(m api.Message) bool {
			return m.Status == api.StatusPending || optimistic.IsTempID(m.ID)
		},
		Matches: func(pending, incoming api.Message) bool {
			return pending.SenderID == incoming.SenderID && pending.Content == incoming.Content
		},
		CreatedAt: func(m api.Message) time.Time { return m.CreatedAt },
		Identity:  func() string { return cs.identity() },
	})
	return cs
}

// ListChats prints the user's conversations
func ListChats(ctx context.Context) error {
	userID := credentials.CurrentUserID()
	chats, err := api.GetChats(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch chats: %w", err)
	}

	if len(chats) == 0 {
		fmt.Println("No chats yet.")
		return nil
	}

	for _, chat := range chats {
		fmt.Printf("[%s] %-7s %s (%d members)\n", chat.ID, chat.Kind, chat.Name, chat.MemberCount)
	}
	return nil
}

// Load replaces the cached messages with the latest remote rows,
// oldest first
func (cs *ChatService) Load(ctx context.Context, limit int) error {
	messages, err := cs.fetch(ctx, cs.chatID, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	cs.cache.Clear()
	for _, m := range messages {
		m.Status = api.StatusConfirmed
		cs.cache.Upsert(m)
	}
	return nil
}

// Messages returns the cached messages in display order
func (cs *ChatService) Messages() []api.Message {
	return cs.cache.List()
}

// Send delivers a message optimistically. It is visible in the cache
// under a temporary id before the server replies.
func (cs *ChatService) Send(ctx context.Context, content string) (api.Message, error) {
	senderID := cs.identity()

	pending := api.Message{
		ID:        optimistic.NewTempID(),
		ChatID:    cs.chatID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
		Status:    api.StatusPending,
	}

	return cs.mutator.Create(ctx, pending, func(ctx context.Context) (api.Message, error) {
		created, err := cs.sendMessage(ctx, cs.chatID, senderID, content)
		if err != nil {
			return api.Message{}, err
		}
		confirmed := *created
		confirmed.Status = api.StatusConfirmed
		return confirmed, nil
	})
}

// Delete removes a message optimistically
func (cs *ChatService) Delete(ctx context.Context, messageID string) error {
	return cs.mutator.Delete(ctx, messageID, func(ctx context.Context) error {
		return cs.deleteMessage(ctx, messageID)
	})
}

// Merge folds a server-pushed message into the cache. Pushes for other
// conversations are ignored.
func (cs *ChatService) Merge(incoming api.Message) {
	if incoming.ChatID != cs.chatID {
		return
	}
	incoming.Status = api.StatusConfirmed
	cs.reconciler.Merge(incoming)
}

// Show loads and prints the conversation. When targetLang is non-empty
// other people's messages are translated; if the translation service is
// down the original text is shown unchanged.
func (cs *ChatService) Show(ctx context.Context, limit int, targetLang string) error {
	logger.Debug("Viewing chat", "chat_id", cs.chatID)

	if err := cs.Load(ctx, limit); err != nil {
		return err
	}

	messages := cs.Messages()
	if len(messages) == 0 {
		fmt.Println("No messages yet.")
		return nil
	}

	me := cs.identity()
	for _, m := range messages {
		cs.printMessage(ctx, m, me, targetLang)
	}
	return nil
}

// Watch streams the conversation live until interrupted. Incoming
// pushes are reconciled into the cache and printed in arrival order.
func (cs *ChatService) Watch(ctx context.Context, targetLang string) error {
	creds, err := credentials.Load()
	if err != nil || !creds.IsValid() {
		return fmt.Errorf("watching requires a signed-in session")
	}

	rt := realtime.GetClient()
	if err := rt.Connect(creds.AccessToken); err != nil {
		return fmt.Errorf("failed to connect to realtime service: %w", err)
	}
	defer rt.Disconnect()

	if err := cs.Load(ctx, 0); err != nil {
		return err
	}

	me := cs.identity()
	for _, m := range cs.Messages() {
		cs.printMessage(ctx, m, me, targetLang)
	}
	formatter.PrintInfo("Watching chat %s. Press Ctrl+C to stop.", cs.chatID)

	unsubCreated := rt.On(realtime.EventTypeMessageCreated, func(evt realtime.Event) {
		var msg api.Message
		if err := json.Unmarshal(evt.Payload, &msg); err != nil {
			logger.Warn("Malformed message push", "error", err)
			return
		}
		if msg.ChatID != cs.chatID {
			return
		}
		before := cs.cache.Len()
		cs.Merge(msg)
		// A replaced pending entry was already printed locally.
		if cs.cache.Len() > before {
			cs.printMessage(ctx, msg, me, targetLang)
		}
	})
	defer unsubCreated()

	unsubDeleted := rt.On(realtime.EventTypeMessageDeleted, func(evt realtime.Event) {
		var msg api.Message
		if err := json.Unmarshal(evt.Payload, &msg); err != nil {
			return
		}
		cs.cache.Remove(msg.ID)
	})
	defer unsubDeleted()

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

func (cs *ChatService) printMessage(ctx context.Context, m api.Message, me, targetLang string) {
	sender := m.SenderName
	if sender == "" {
		sender = m.SenderID
	}
	if m.SenderID == me {
		sender = "you"
	}

	text := m.Content
	if targetLang != "" && m.SenderID != me {
		text = cs.translator.Translate(ctx, m.Content, "auto", targetLang)
	}

	marker := ""
	if m.Status == api.StatusPending {
		marker = " (sending)"
	}
	fmt.Printf("[%s] %s: %s%s\n", m.CreatedAt.Format("15:04"), sender, strings.TrimSpace(text), marker)
}
