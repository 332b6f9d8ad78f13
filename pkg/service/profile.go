package service

import (
	"context"
	"fmt"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/output"
)

// ProfileService reads and edits user profiles
type ProfileService struct{}

// NewProfileService creates a new profile service
func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// Show prints a profile. An empty userID means the signed-in user.
func (ps *ProfileService) Show(ctx context.Context, userID string) error {
	if userID == "" {
		userID = credentials.CurrentUserID()
		if userID == "" {
			return fmt.Errorf("not signed in and no user id given")
		}
	}

	logger.Debug("Viewing profile", "user_id", userID)

	user, err := api.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	record := map[string]interface{}{
		"username":  user.Username,
		"full_name": user.FullName,
		"bio":       user.Bio,
		"location":  user.Location,
		"language":  user.Language,
		"joined":    user.CreatedAt.Format("2006-01-02"),
	}
	return output.PrintRecord("Profile", record)
}

// Update patches the signed-in user's profile fields
func (ps *ProfileService) Update(ctx context.Context, fields map[string]interface{}) error {
	userID := credentials.CurrentUserID()
	if userID == "" {
		return fmt.Errorf("not signed in")
	}

	if len(fields) == 0 {
		formatter.PrintInfo("Nothing to update")
		return nil
	}

	if _, err := api.UpdateProfile(ctx, userID, fields); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	formatter.PrintSuccess("Profile updated")
	return nil
}

// Search prints users matching a username query
func (ps *ProfileService) Search(ctx context.Context, query string, limit int) error {
	logger.Debug("Searching profiles", "query", query)

	users, err := api.SearchProfiles(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("failed to search profiles: %w", err)
	}

	if len(users) == 0 {
		fmt.Printf("No users found for \"%s\"\n", query)
		return nil
	}

	for i, u := range users {
		fmt.Printf("%d. @%s", i+1, u.Username)
		if u.FullName != "" {
			fmt.Printf(" (%s)", u.FullName)
		}
		fmt.Printf("\n")
	}
	return nil
}
