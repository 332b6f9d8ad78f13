package api

import (
	"context"

	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// GetFriends fetches the user's accepted connections
func GetFriends(ctx context.Context, userID string) ([]User, error) {
	logger.Debug("Fetching friends", "user_id", userID)

	var rows []struct {
		Friend User `json:"friend"`
	}
	err := store.Default().
		From("connections").
		Select("friend:profiles(*)").
		Eq("user_id", userID).
		Eq("status", "accepted").
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	friends := make([]User, 0, len(rows))
	for _, row := range rows {
		friends = append(friends, row.Friend)
	}
	return friends, nil
}

// GetFriendRequests fetches requests awaiting the user's decision
func GetFriendRequests(ctx context.Context, userID string) ([]FriendRequest, error) {
	logger.Debug("Fetching friend requests", "user_id", userID)

	var requests []FriendRequest
	err := store.Default().
		From("friend_requests").
		Select("*,sender:profiles(*)").
		Eq("receiver_id", userID).
		Eq("status", "pending").
		Order("created_at", false).
		Get(ctx, &requests)
	return requests, err
}

// GetSuggestions fetches people the user may know
func GetSuggestions(ctx context.Context, userID string, limit int) ([]User, error) {
	logger.Debug("Fetching friend suggestions", "user_id", userID)

	var users []User
	err := store.Default().Rpc(ctx, "friend_suggestions", map[string]interface{}{
		"for_user": userID,
		"max_rows": limit,
	}, &users)
	return users, err
}

// SendFriendRequest creates a pending request and returns the stored row
func SendFriendRequest(ctx context.Context, senderID, receiverID string) (*FriendRequest, error) {
	logger.Debug("Sending friend request", "receiver_id", receiverID)

	record := map[string]string{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"status":      "pending",
	}

	var created []FriendRequest
	if err := store.Default().Insert(ctx, "friend_requests", record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &APIError{Code: "empty_representation", Message: "insert returned no row", StatusCode: 500}
	}
	return &created[0], nil
}

// AcceptFriendRequest marks a request accepted. The reciprocal
// connection rows are created by a database trigger.
func AcceptFriendRequest(ctx context.Context, requestID string) error {
	logger.Debug("Accepting friend request", "request_id", requestID)
	return store.Default().Update(ctx, "friend_requests",
		map[string]string{"status": "accepted"},
		map[string]string{"id": requestID},
		nil)
}

// DeclineFriendRequest marks a request declined
func DeclineFriendRequest(ctx context.Context, requestID string) error {
	logger.Debug("Declining friend request", "request_id", requestID)
	return store.Default().Update(ctx, "friend_requests",
		map[string]string{"status": "declined"},
		map[string]string{"id": requestID},
		nil)
}

// RemoveFriend deletes the connection in both directions
func RemoveFriend(ctx context.Context, userID, friendID string) error {
	logger.Debug("Removing friend", "friend_id", friendID)

	if err := store.Default().Delete(ctx, "connections", map[string]string{
		"user_id":   userID,
		"friend_id": friendID,
	}); err != nil {
		return err
	}
	return store.Default().Delete(ctx, "connections", map[string]string{
		"user_id":   friendID,
		"friend_id": userID,
	})
}
