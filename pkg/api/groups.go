package api

import (
	"context"

	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// GetGroups fetches all groups. When userID is non-empty the viewer's
// membership flag is resolved from the members table.
func GetGroups(ctx context.Context, userID string) ([]Group, error) {
	logger.Debug("Fetching groups")

	var groups []Group
	err := store.Default().
		From("groups").
		Select("*").
		Order("member_count", false).
		Get(ctx, &groups)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		member, err := memberGroupIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		for i := range groups {
			groups[i].IsMember = member[groups[i].ID]
		}
	}

	return groups, nil
}

// GetGroup fetches a single group by id
func GetGroup(ctx context.Context, id string) (*Group, error) {
	var groups []Group
	err := store.Default().
		From("groups").
		Select("*").
		Eq("id", id).
		Limit(1).
		Get(ctx, &groups)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, &APIError{Code: "not_found", Message: "group " + id + " not found", StatusCode: 404}
	}
	return &groups[0], nil
}

// CreateGroup creates a group and returns the stored row. The creator
// is enrolled as the first member.
func CreateGroup(ctx context.Context, creatorID, name, description, category string) (*Group, error) {
	logger.Debug("Creating group", "name", name)

	record := map[string]string{
		"name":        name,
		"description": description,
		"category":    category,
		"creator_id":  creatorID,
	}

	var created []Group
	if err := store.Default().Insert(ctx, "groups", record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &APIError{Code: "empty_representation", Message: "insert returned no row", StatusCode: 500}
	}

	if err := JoinGroup(ctx, created[0].ID, creatorID); err != nil {
		return nil, err
	}
	created[0].IsMember = true
	return &created[0], nil
}

// JoinGroup enrolls the user in a group
func JoinGroup(ctx context.Context, groupID, userID string) error {
	logger.Debug("Joining group", "group_id", groupID)
	record := map[string]string{"group_id": groupID, "user_id": userID}
	return store.Default().Insert(ctx, "group_members", record, nil)
}

// LeaveGroup removes the user from a group
func LeaveGroup(ctx context.Context, groupID, userID string) error {
	logger.Debug("Leaving group", "group_id", groupID)
	return store.Default().Delete(ctx, "group_members", map[string]string{
		"group_id": groupID,
		"user_id":  userID,
	})
}

// GetGroupMembers fetches a group's member profiles
func GetGroupMembers(ctx context.Context, groupID string) ([]User, error) {
	var rows []struct {
		Member User `json:"member"`
	}
	err := store.Default().
		From("group_members").
		Select("member:profiles(*)").
		Eq("group_id", groupID).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	members := make([]User, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.Member)
	}
	return members, nil
}

func memberGroupIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var rows []struct {
		GroupID string `json:"group_id"`
	}
	err := store.Default().
		From("group_members").
		Select("group_id").
		Eq("user_id", userID).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(rows))
	for _, row := range rows {
		ids[row.GroupID] = true
	}
	return ids, nil
}
