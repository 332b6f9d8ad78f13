package api

import (
	"context"

	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// GetProfile fetches a user's profile by id
func GetProfile(ctx context.Context, userID string) (*User, error) {
	logger.Debug("Fetching profile", "user_id", userID)

	var users []User
	err := store.Default().
		From("profiles").
		Select("*").
		Eq("id", userID).
		Limit(1).
		Get(ctx, &users)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, &APIError{Code: "not_found", Message: "profile " + userID + " not found", StatusCode: 404}
	}
	return &users[0], nil
}

// SearchProfiles finds users whose username matches the query
func SearchProfiles(ctx context.Context, query string, limit int) ([]User, error) {
	logger.Debug("Searching profiles", "query", query)

	var users []User
	err := store.Default().Rpc(ctx, "search_profiles", map[string]interface{}{
		"query":    query,
		"max_rows": limit,
	}, &users)
	return users, err
}

// UpdateProfile patches the given fields on the user's profile and
// returns the stored row
func UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*User, error) {
	logger.Debug("Updating profile", "user_id", userID)

	var updated []User
	err := store.Default().Update(ctx, "profiles", fields,
		map[string]string{"id": userID}, &updated)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, &APIError{Code: "not_found", Message: "profile " + userID + " not found", StatusCode: 404}
	}
	return &updated[0], nil
}
