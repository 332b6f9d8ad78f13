package api

import (
	"context"
	"fmt"

	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// GetFeed fetches the most recent posts, newest first. When userID is
// non-empty the viewer's like/save flags are resolved from the relation
// tables so the feed rows arrive ready for optimistic toggling.
func GetFeed(ctx context.Context, userID string, limit int) ([]Post, error) {
	logger.Debug("Fetching feed", "limit", limit)

	var posts []Post
	err := store.Default().
		From("posts").
		Select("*,author:profiles(*)").
		Order("created_at", false).
		Limit(limit).
		Get(ctx, &posts)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		liked, err := relationPostIDs(ctx, "post_likes", userID)
		if err != nil {
			return nil, err
		}
		saved, err := relationPostIDs(ctx, "saved_posts", userID)
		if err != nil {
			return nil, err
		}
		for i := range posts {
			posts[i].LikedByMe = liked[posts[i].ID]
			posts[i].SavedByMe = saved[posts[i].ID]
		}
	}

	return posts, nil
}

// GetPost fetches a single post by id
func GetPost(ctx context.Context, id string) (*Post, error) {
	var posts []Post
	err := store.Default().
		From("posts").
		Select("*,author:profiles(*)").
		Eq("id", id).
		Limit(1).
		Get(ctx, &posts)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, &APIError{Code: "not_found", Message: fmt.Sprintf("post %s not found", id), StatusCode: 404}
	}
	return &posts[0], nil
}

// CreatePost publishes a new post and returns the stored row
func CreatePost(ctx context.Context, authorID, content, imageURL string) (*Post, error) {
	logger.Debug("Creating post", "author_id", authorID)

	record := map[string]interface{}{
		"author_id": authorID,
		"content":   content,
	}
	if imageURL != "" {
		record["image_url"] = imageURL
	}

	var created []Post
	if err := store.Default().Insert(ctx, "posts", record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &APIError{Code: "empty_representation", Message: "insert returned no row", StatusCode: 500}
	}
	return &created[0], nil
}

// DeletePost removes a post by id
func DeletePost(ctx context.Context, id string) error {
	logger.Debug("Deleting post", "post_id", id)
	return store.Default().Delete(ctx, "posts", map[string]string{"id": id})
}

// LikePost records a like. Aggregate counters on the post row are
// maintained by database triggers, not by the client.
func LikePost(ctx context.Context, postID, userID string) error {
	logger.Debug("Liking post", "post_id", postID)
	record := map[string]string{"post_id": postID, "user_id": userID}
	return store.Default().Insert(ctx, "post_likes", record, nil)
}

// UnlikePost removes a like
func UnlikePost(ctx context.Context, postID, userID string) error {
	logger.Debug("Unliking post", "post_id", postID)
	return store.Default().Delete(ctx, "post_likes", map[string]string{
		"post_id": postID,
		"user_id": userID,
	})
}

// SavePost bookmarks a post for the user
func SavePost(ctx context.Context, postID, userID string) error {
	logger.Debug("Saving post", "post_id", postID)
	record := map[string]string{"post_id": postID, "user_id": userID}
	return store.Default().Insert(ctx, "saved_posts", record, nil)
}

// UnsavePost removes a bookmark
func UnsavePost(ctx context.Context, postID, userID string) error {
	logger.Debug("Unsaving post", "post_id", postID)
	return store.Default().Delete(ctx, "saved_posts", map[string]string{
		"post_id": postID,
		"user_id": userID,
	})
}

// GetSavedPosts fetches the posts the user has bookmarked
func GetSavedPosts(ctx context.Context, userID string) ([]Post, error) {
	var rows []struct {
		Post Post `json:"post"`
	}
	err := store.Default().
		From("saved_posts").
		Select("post:posts(*,author:profiles(*))").
		Eq("user_id", userID).
		Order("created_at", false).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(rows))
	for _, row := range rows {
		p := row.Post
		p.SavedByMe = true
		posts = append(posts, p)
	}
	return posts, nil
}

func relationPostIDs(ctx context.Context, table, userID string) (map[string]bool, error) {
	var rows []struct {
		PostID string `json:"post_id"`
	}
	err := store.Default().
		From(table).
		Select("post_id").
		Eq("user_id", userID).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(rows))
	for _, row := range rows {
		ids[row.PostID] = true
	}
	return ids, nil
}
