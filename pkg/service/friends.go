package service

import (
	"context"
	"fmt"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/config"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

// FriendService handles connections, requests and suggestions
type FriendService struct {
	identity func() string

	friends     func(ctx context.Context, userID string) ([]api.User, error)
	requests    func(ctx context.Context, userID string) ([]api.FriendRequest, error)
	suggestions func(ctx context.Context, userID string, limit int) ([]api.User, error)
}

// NewFriendService creates a new friend service
func NewFriendService() *FriendService {
	return &FriendService{
		identity:    credentials.CurrentUserID,
		friends:     api.GetFriends,
		requests:    api.GetFriendRequests,
		suggestions: api.GetSuggestions,
	}
}

// ListFriends prints the user's connections
func (fs *FriendService) ListFriends(ctx context.Context) error {
	logger.Debug("Listing friends")

	friends, err := fs.friends(ctx, fs.identity())
	if err != nil {
		return fmt.Errorf("failed to fetch friends: %w", err)
	}

	if len(friends) == 0 {
		fmt.Println("No friends yet. Try 'connectme-cli friends suggest'.")
		return nil
	}

	for i, f := range friends {
		fmt.Printf("%d. @%s", i+1, f.Username)
		if f.FullName != "" {
			fmt.Printf(" (%s)", f.FullName)
		}
		fmt.Printf("\n")
	}
	return nil
}

// ListRequests prints requests awaiting the user's decision
func (fs *FriendService) ListRequests(ctx context.Context) error {
	logger.Debug("Listing friend requests")

	requests, err := fs.requests(ctx, fs.identity())
	if err != nil {
		return fmt.Errorf("failed to fetch friend requests: %w", err)
	}

	if len(requests) == 0 {
		fmt.Println("No pending friend requests.")
		return nil
	}

	for _, r := range requests {
		sender := r.SenderID
		if r.Sender != nil && r.Sender.Username != "" {
			sender = "@" + r.Sender.Username
		}
		fmt.Printf("[%s] from %s (%s)\n", r.ID, sender, r.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Suggest prints people the user may know. With demo seeding enabled an
// empty result falls back to a canned list so the flow can be exercised
// against a fresh backend.
func (fs *FriendService) Suggest(ctx context.Context, limit int) error {
	logger.Debug("Fetching suggestions", "limit", limit)

	users, err := fs.suggestions(ctx, fs.identity(), limit)
	if err != nil {
		return fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	if len(users) == 0 && config.GetBool("demo.seed") {
		users = demoSuggestions(limit)
		formatter.PrintInfo("Showing demo suggestions (demo.seed is on)")
	}

	if len(users) == 0 {
		fmt.Println("No suggestions right now.")
		return nil
	}

	for i, u := range users {
		fmt.Printf("%d. @%s", i+1, u.Username)
		if u.Location != "" {
			fmt.Printf(" - %s", u.Location)
		}
		fmt.Printf("\n")
	}
	return nil
}

// SendRequest sends a friend request
func (fs *FriendService) SendRequest(ctx context.Context, receiverID string) error {
	req, err := api.SendFriendRequest(ctx, fs.identity(), receiverID)
	if err != nil {
		return fmt.Errorf("failed to send friend request: %w", err)
	}

	formatter.PrintSuccess("Friend request %s sent", req.ID)
	return nil
}

// Accept accepts a friend request
func (fs *FriendService) Accept(ctx context.Context, requestID string) error {
	if err := api.AcceptFriendRequest(ctx, requestID); err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	formatter.PrintSuccess("Friend request accepted")
	return nil
}

// Decline declines a friend request
func (fs *FriendService) Decline(ctx context.Context, requestID string) error {
	if err := api.DeclineFriendRequest(ctx, requestID); err != nil {
		return fmt.Errorf("failed to decline friend request: %w", err)
	}

	formatter.PrintInfo("Friend request declined")
	return nil
}

// Remove removes a friend
func (fs *FriendService) Remove(ctx context.Context, friendID string) error {
	if err := api.RemoveFriend(ctx, fs.identity(), friendID); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}

	formatter.PrintSuccess("Friend removed")
	return nil
}

func demoSuggestions(limit int) []api.User {
	seed := []api.User{
		{ID: "demo-1", Username: "ayse_k", FullName: "Ayse Kaya", Location: "Istanbul"},
		{ID: "demo-2", Username: "marco.p", FullName: "Marco Rossi", Location: "Milan"},
		{ID: "demo-3", Username: "lena_w", FullName: "Lena Weber", Location: "Berlin"},
		{ID: "demo-4", Username: "tomas.h", FullName: "Tomas Novak", Location: "Prague"},
		{ID: "demo-5", Username: "sofia.m", FullName: "Sofia Martins", Location: "Lisbon"},
	}
	if limit > 0 && limit < len(seed) {
		return seed[:limit]
	}
	return seed
}
