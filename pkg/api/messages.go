package api

import (
	"context"

	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// GetChats fetches the user's conversations. Group chats and event chats
// live in separate tables; each row is tagged with its kind here, at
// construction, so downstream code can switch on Kind alone.
func GetChats(ctx context.Context, userID string) ([]Chat, error) {
	logger.Debug("Fetching chats", "user_id", userID)

	var chats []Chat

	var groupRows []Chat
	err := store.Default().
		From("group_chats").
		Select("*").
		Order("created_at", true).
		Get(ctx, &groupRows)
	if err != nil {
		return nil, err
	}
	for _, c := range groupRows {
		c.Kind = ChatKindGroup
		chats = append(chats, c)
	}

	var eventRows []Chat
	err = store.Default().
		From("event_chats").
		Select("*").
		Order("created_at", true).
		Get(ctx, &eventRows)
	if err != nil {
		return nil, err
	}
	for _, c := range eventRows {
		c.Kind = ChatKindEvent
		chats = append(chats, c)
	}

	return chats, nil
}

// GetMessages fetches a chat's messages in ascending creation order
func GetMessages(ctx context.Context, chatID string, limit int) ([]Message, error) {
	logger.Debug("Fetching messages", "chat_id", chatID)

	var messages []Message
	q := store.Default().
		From("messages").
		Select("*").
		Eq("chat_id", chatID).
		Order("created_at", true)
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Get(ctx, &messages)
	return messages, err
}

// SendMessage persists a chat message and returns the stored row
func SendMessage(ctx context.Context, chatID, senderID, content string) (*Message, error) {
	logger.Debug("Sending message", "chat_id", chatID)

	record := map[string]string{
		"chat_id":   chatID,
		"sender_id": senderID,
		"content":   content,
	}

	var created []Message
	if err := store.Default().Insert(ctx, "messages", record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &APIError{Code: "empty_representation", Message: "insert returned no row", StatusCode: 500}
	}
	return &created[0], nil
}

// DeleteMessage removes a message by id
func DeleteMessage(ctx context.Context, id string) error {
	logger.Debug("Deleting message", "message_id", id)
	return store.Default().Delete(ctx, "messages", map[string]string{"id": id})
}
