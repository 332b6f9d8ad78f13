package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/optimistic"
)

func testChatService(t *testing.T, history []api.Message) *ChatService {
	t.Helper()

	cs := NewChatService(context.Background(), "chat-1")
	cs.identity = func() string { return "user-1" }
	cs.fetch = func(ctx context.Context, chatID string, limit int) ([]api.Message, error) {
		return history, nil
	}
	cs.sendMessage = func(ctx context.Context, chatID, senderID, content string) (*api.Message, error) {
		return &api.Message{
			ID:        "msg-server",
			ChatID:    chatID,
			SenderID:  senderID,
			Content:   content,
			CreatedAt: time.Now(),
		}, nil
	}
	cs.deleteMessage = func(ctx context.Context, id string) error { return nil }
	require.NoError(t, cs.Load(context.Background(), 0))
	return cs
}

func chatHistory() []api.Message {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []api.Message{
		{ID: "msg-1", ChatID: "chat-1", SenderID: "user-2", Content: "hey", CreatedAt: base},
		{ID: "msg-2", ChatID: "chat-1", SenderID: "user-1", Content: "hi", CreatedAt: base.Add(time.Minute)},
	}
}

func TestSendPromotesPendingMessage(t *testing.T) {
	cs := testChatService(t, chatHistory())

	sent, err := cs.Send(context.Background(), "how are you?")
	require.NoError(t, err)
	assert.Equal(t, "msg-server", sent.ID)

	messages := cs.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "msg-server", messages[2].ID)
	assert.False(t, optimistic.IsTempID(messages[2].ID))
}

func TestSendRollsBackOnFailure(t *testing.T) {
	cs := testChatService(t, chatHistory())
	cs.sendMessage = func(ctx context.Context, chatID, senderID, content string) (*api.Message, error) {
		return nil, errors.New("network down")
	}

	_, err := cs.Send(context.Background(), "lost message")
	require.Error(t, err)
	assert.Len(t, cs.Messages(), 2)
}

func TestEchoAfterHTTPConfirmDoesNotDuplicate(t *testing.T) {
	cs := testChatService(t, chatHistory())

	sent, err := cs.Send(context.Background(), "ping")
	require.NoError(t, err)

	// The realtime echo of the same message arrives after the HTTP
	// response already promoted the pending entry.
	cs.Merge(sent)

	messages := cs.Messages()
	assert.Len(t, messages, 3)
	assert.Equal(t, "msg-server", messages[2].ID)
}

func TestEchoBeforeHTTPConfirmPromotesPending(t *testing.T) {
	cs := testChatService(t, chatHistory())

	echo := make(chan api.Message, 1)
	cs.sendMessage = func(ctx context.Context, chatID, senderID, content string) (*api.Message, error) {
		msg := api.Message{
			ID:        "msg-echo",
			ChatID:    chatID,
			SenderID:  senderID,
			Content:   content,
			CreatedAt: time.Now(),
		}
		// Socket push lands before the HTTP response returns.
		cs.Merge(msg)
		echo <- msg
		return &msg, nil
	}

	_, err := cs.Send(context.Background(), "race")
	require.NoError(t, err)
	<-echo

	messages := cs.Messages()
	assert.Len(t, messages, 3, "echo winning the race must not leave a duplicate")
	assert.Equal(t, "msg-echo", messages[2].ID)
}

func TestMergeIgnoresOtherChats(t *testing.T) {
	cs := testChatService(t, chatHistory())

	cs.Merge(api.Message{ID: "msg-x", ChatID: "chat-other", SenderID: "user-9", Content: "wrong room"})
	assert.Len(t, cs.Messages(), 2)
}

func TestMergeInsertsForeignMessageInCreationOrder(t *testing.T) {
	cs := testChatService(t, chatHistory())

	base := time.Date(2026, 3, 1, 12, 0, 30, 0, time.UTC)
	cs.Merge(api.Message{ID: "msg-late", ChatID: "chat-1", SenderID: "user-2", Content: "in between", CreatedAt: base})

	messages := cs.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"msg-1", "msg-late", "msg-2"},
		[]string{messages[0].ID, messages[1].ID, messages[2].ID})
}

func TestMergeIsIdempotent(t *testing.T) {
	cs := testChatService(t, chatHistory())

	push := api.Message{ID: "msg-3", ChatID: "chat-1", SenderID: "user-2", Content: "again", CreatedAt: time.Now()}
	cs.Merge(push)
	cs.Merge(push)

	assert.Len(t, cs.Messages(), 3)
}

func TestMergeNoOpWhenSignedOut(t *testing.T) {
	cs := testChatService(t, chatHistory())
	cs.identity = func() string { return "" }

	cs.Merge(api.Message{ID: "msg-3", ChatID: "chat-1", SenderID: "user-2", Content: "ghost", CreatedAt: time.Now()})
	assert.Len(t, cs.Messages(), 2)
}

func TestDeleteMessageRestoredOnFailure(t *testing.T) {
	cs := testChatService(t, chatHistory())
	cs.deleteMessage = func(ctx context.Context, id string) error {
		return errors.New("forbidden")
	}

	err := cs.Delete(context.Background(), "msg-1")
	require.Error(t, err)

	messages := cs.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "msg-1", messages[0].ID)
}
