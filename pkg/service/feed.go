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

// FeedService owns the post cache and applies feed mutations
// optimistically: the cache changes first, the remote call follows, and
// failures roll the cache back.
type FeedService struct {
	cache    *cache.Cache[api.Post]
	mutator  *optimistic.Mutator[api.Post]
	identity func() string

	fetch      func(ctx context.Context, userID string, limit int) ([]api.Post, error)
	createPost func(ctx context.Context, authorID, content, imageURL string) (*api.Post, error)
	deletePost func(ctx context.Context, id string) error
	like       func(ctx context.Context, postID, userID string) error
	unlike     func(ctx context.Context, postID, userID string) error
	save       func(ctx context.Context, postID, userID string) error
	unsave     func(ctx context.Context, postID, userID string) error
}

// NewFeedService creates a feed service. The scope context bounds the
// lifetime of in-flight mutations: once it is cancelled, late remote
// results no longer touch the cache.
func NewFeedService(scope context.Context) *FeedService {
	c := cache.New[api.Post]()
	fs := &FeedService{
		cache:      c,
		identity:   credentials.CurrentUserID,
		fetch:      api.GetFeed,
		createPost: api.CreatePost,
		deletePost: api.DeletePost,
		like:       api.LikePost,
		unlike:     api.UnlikePost,
		save:       api.SavePost,
		unsave:     api.UnsavePost,
	}
	fs.mutator = optimistic.New(c, scope, func() string { return fs.identity() })
	return fs
}

// Load replaces the cached feed with the latest remote rows
func (fs *FeedService) Load(ctx context.Context, limit int) error {
	posts, err := fs.fetch(ctx, fs.identity(), limit)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	fs.cache.Clear()
	for _, p := range posts {
		p.Status = api.StatusConfirmed
		fs.cache.Upsert(p)
	}
	return nil
}

// Posts returns the cached feed in display order
func (fs *FeedService) Posts() []api.Post {
	return fs.cache.List()
}

// Get returns one cached post
func (fs *FeedService) Get(id string) (api.Post, bool) {
	return fs.cache.Get(id)
}

// Create publishes a post. The pending entry appears in the cache under
// a temporary id immediately and is promoted to the stored row once the
// server confirms.
func (fs *FeedService) Create(ctx context.Context, content, imageURL string) (api.Post, error) {
	userID := fs.identity()

	pending := api.Post{
		ID:        optimistic.NewTempID(),
		AuthorID:  userID,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
		Status:    api.StatusPending,
	}

	return fs.mutator.Create(ctx, pending, func(ctx context.Context) (api.Post, error) {
		created, err := fs.createPost(ctx, userID, content, imageURL)
		if err != nil {
			return api.Post{}, err
		}
		confirmed := *created
		confirmed.Status = api.StatusConfirmed
		return confirmed, nil
	})
}

// Delete removes a post optimistically, restoring it at its original
// position when the server refuses
func (fs *FeedService) Delete(ctx context.Context, postID string) error {
	return fs.mutator.Delete(ctx, postID, func(ctx context.Context) error {
		return fs.deletePost(ctx, postID)
	})
}

// ToggleLike flips the viewer's like on a post. The flag and the
// counter move together in a single cache transform, so readers never
// observe one without the other.
func (fs *FeedService) ToggleLike(ctx context.Context, postID string) error {
	post, ok := fs.cache.Get(postID)
	if !ok {
		return fmt.Errorf("post %s is not in the feed", postID)
	}

	turningOn := !post.LikedByMe
	userID := fs.identity()

	send := func(ctx context.Context) error {
		if turningOn {
			return fs.like(ctx, postID, userID)
		}
		return fs.unlike(ctx, postID, userID)
	}

	return fs.mutator.Toggle(ctx, postID, likeSet(turningOn), likeSet(!turningOn), send)
}

// ToggleSave flips the viewer's bookmark on a post
func (fs *FeedService) ToggleSave(ctx context.Context, postID string) error {
	post, ok := fs.cache.Get(postID)
	if !ok {
		return fmt.Errorf("post %s is not in the feed", postID)
	}

	turningOn := !post.SavedByMe
	userID := fs.identity()

	send := func(ctx context.Context) error {
		if turningOn {
			return fs.save(ctx, postID, userID)
		}
		return fs.unsave(ctx, postID, userID)
	}

	return fs.mutator.Toggle(ctx, postID, saveSet(turningOn), saveSet(!turningOn), send)
}

// ShowFeed loads and prints the feed
func (fs *FeedService) ShowFeed(ctx context.Context, limit int) error {
	logger.Debug("Viewing feed", "limit", limit)

	if err := fs.Load(ctx, limit); err != nil {
		return err
	}

	posts := fs.Posts()
	if len(posts) == 0 {
		fmt.Println("No posts yet.")
		return nil
	}

	for i, post := range posts {
		author := post.AuthorID
		if post.Author != nil && post.Author.Username != "" {
			author = "@" + post.Author.Username
		}
		fmt.Printf("%d. [%s] %s\n", i+1, post.ID, author)
		fmt.Printf("   %s\n", post.Content)

		likeMark := " "
		if post.LikedByMe {
			likeMark = "*"
		}
		saveMark := " "
		if post.SavedByMe {
			saveMark = "*"
		}
		fmt.Printf("   likes %d%s | comments %d | saved%s | %s\n",
			post.LikesCount, likeMark, post.CommentsCount, saveMark,
			post.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("\n")
	}

	fmt.Printf("Showing %d posts\n", len(posts))
	return nil
}

// likeSet returns a transform that sets the like flag to on, adjusting
// the counter only when the flag actually changes. Applying the same
// transform twice is a no-op, which keeps rollbacks safe when a racing
// merge already settled the flag.
func likeSet(on bool) func(api.Post) api.Post {
	return func(p api.Post) api.Post {
		if p.LikedByMe == on {
			return p
		}
		p.LikedByMe = on
		if on {
			p.LikesCount++
		} else if p.LikesCount > 0 {
			p.LikesCount--
		}
		return p
	}
}

func saveSet(on bool) func(api.Post) api.Post {
	return func(p api.Post) api.Post {
		if p.SavedByMe == on {
			return p
		}
		p.SavedByMe = on
		if on {
			p.SavesCount++
		} else if p.SavesCount > 0 {
			p.SavesCount--
		}
		return p
	}
}
