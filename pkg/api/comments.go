package api

import (
	"context"

	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// GetComments fetches the comments on a post, oldest first
func GetComments(ctx context.Context, postID string) ([]Comment, error) {
	logger.Debug("Fetching comments", "post_id", postID)

	var comments []Comment
	err := store.Default().
		From("comments").
		Select("*,author:profiles(*)").
		Eq("post_id", postID).
		Order("created_at", true).
		Get(ctx, &comments)
	return comments, err
}

// CreateComment adds a comment to a post and returns the stored row
func CreateComment(ctx context.Context, postID, authorID, content string) (*Comment, error) {
	logger.Debug("Creating comment", "post_id", postID)

	record := map[string]string{
		"post_id":   postID,
		"author_id": authorID,
		"content":   content,
	}

	var created []Comment
	if err := store.Default().Insert(ctx, "comments", record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &APIError{Code: "empty_representation", Message: "insert returned no row", StatusCode: 500}
	}
	return &created[0], nil
}

// DeleteComment removes a comment by id
func DeleteComment(ctx context.Context, id string) error {
	logger.Debug("Deleting comment", "comment_id", id)
	return store.Default().Delete(ctx, "comments", map[string]string{"id": id})
}
