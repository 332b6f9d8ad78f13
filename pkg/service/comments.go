package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/cache"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/optimistic"
)

// CommentService owns one post's comment cache with optimistic writes
type CommentService struct {
	postID   string
	cache    *cache.Cache[api.Comment]
	mutator  *optimistic.Mutator[api.Comment]
	identity func() string

	fetch         func(ctx context.Context, postID string) ([]api.Comment, error)
	createComment func(ctx context.Context, postID, authorID, content string) (*api.Comment, error)
	deleteComment func(ctx context.Context, id string) error
}

// NewCommentService creates a comment service for one post
func NewCommentService(scope context.Context, postID string) *CommentService {
	c := cache.New[api.Comment]()
	cs := &CommentService{
		postID:        postID,
		cache:         c,
		identity:      credentials.CurrentUserID,
		fetch:         api.GetComments,
		createComment: api.CreateComment,
		deleteComment: api.DeleteComment,
	}
	cs.mutator = optimistic.New(c, scope, func() string { return cs.identity() })
	return cs
}

// Load replaces the cached comments with the latest remote rows
func (cs *CommentService) Load(ctx context.Context) error {
	comments, err := cs.fetch(ctx, cs.postID)
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}

	cs.cache.Clear()
	for _, c := range comments {
		c.Status = api.StatusConfirmed
		cs.cache.Upsert(c)
	}
	return nil
}

// Comments returns the cached comments in display order
func (cs *CommentService) Comments() []api.Comment {
	return cs.cache.List()
}

// Add posts a comment optimistically. The pending entry is visible
// immediately under a temporary id and keeps its position when the
// stored row replaces it.
func (cs *CommentService) Add(ctx context.Context, content string) (api.Comment, error) {
	authorID := cs.identity()

	pending := api.Comment{
		ID:        optimistic.NewTempID(),
		PostID:    cs.postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
		Status:    api.StatusPending,
	}

	return cs.mutator.Create(ctx, pending, func(ctx context.Context) (api.Comment, error) {
		created, err := cs.createComment(ctx, cs.postID, authorID, content)
		if err != nil {
			return api.Comment{}, err
		}
		confirmed := *created
		confirmed.Status = api.StatusConfirmed
		return confirmed, nil
	})
}

// Delete removes a comment optimistically
func (cs *CommentService) Delete(ctx context.Context, commentID string) error {
	return cs.mutator.Delete(ctx, commentID, func(ctx context.Context) error {
		return cs.deleteComment(ctx, commentID)
	})
}

// Show loads and prints the post's comments
func (cs *CommentService) Show(ctx context.Context) error {
	logger.Debug("Viewing comments", "post_id", cs.postID)

	if err := cs.Load(ctx); err != nil {
		return err
	}

	comments := cs.Comments()
	if len(comments) == 0 {
		fmt.Println("No comments yet.")
		return nil
	}

	for _, c := range comments {
		author := c.AuthorID
		if c.Author != nil && c.Author.Username != "" {
			author = "@" + c.Author.Username
		}
		fmt.Printf("[%s] %s: %s\n", c.CreatedAt.Format("15:04"), author, c.Content)
	}
	fmt.Printf("\n%d comments\n", len(comments))
	return nil
}
