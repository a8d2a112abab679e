package service

import (
	"context"
	"errors"
	"testing"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryFeedCache is an in-process FeedCache for tests
type memoryFeedCache struct {
	posts []domain.Post
	set   bool
}

func (c *memoryFeedCache) GetPosts(ctx context.Context) ([]domain.Post, bool) {
	if !c.set {
		return nil, false
	}
	return c.posts, true
}

func (c *memoryFeedCache) SetPosts(ctx context.Context, posts []domain.Post) error {
	c.posts = posts
	c.set = true
	return nil
}

func (c *memoryFeedCache) Invalidate(ctx context.Context) error {
	c.posts = nil
	c.set = false
	return nil
}

func TestListPosts_FansInComments(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	svc := NewFeedService(postRepo, commentRepo, new(MockPostReactionRepository), nil)
	ctx := context.Background()

	p1 := domain.Post{ID: uuid.New(), Content: "rough week"}
	p2 := domain.Post{ID: uuid.New(), Content: "small win today"}
	c1 := domain.PostComment{ID: uuid.New(), PostID: p1.ID, Content: "hang in there"}

	postRepo.On("List", ctx).Return([]domain.Post{p1, p2}, nil)
	commentRepo.On("ListByPostIDs", ctx, []uuid.UUID{p1.ID, p2.ID}).Return([]domain.PostComment{c1}, nil)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Len(t, posts[0].Thread, 1)
	assert.Empty(t, posts[1].Thread)
}

func TestListPosts_CommentFailureIsNonFatal(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	svc := NewFeedService(postRepo, commentRepo, new(MockPostReactionRepository), nil)
	ctx := context.Background()

	p1 := domain.Post{ID: uuid.New(), Content: "rough week"}
	postRepo.On("List", ctx).Return([]domain.Post{p1}, nil)
	commentRepo.On("ListByPostIDs", ctx, mock.Anything).Return([]domain.PostComment(nil), errors.New("timeout"))

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Empty(t, posts[0].Thread)
}

func TestListPosts_Caching(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	cache := &memoryFeedCache{}
	svc := NewFeedService(postRepo, commentRepo, new(MockPostReactionRepository), cache)
	ctx := context.Background()

	p1 := domain.Post{ID: uuid.New(), Content: "rough week"}
	postRepo.On("List", ctx).Return([]domain.Post{p1}, nil).Once()
	commentRepo.On("ListByPostIDs", ctx, mock.Anything).Return([]domain.PostComment{}, nil).Once()

	// first read fills the cache, second one never hits the repo
	_, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	_, err = svc.ListPosts(ctx)
	require.NoError(t, err)
	postRepo.AssertNumberOfCalls(t, "List", 1)

	// a write invalidates
	postRepo.On("AdjustHearts", ctx, p1.ID, 1).Return(1, nil)
	_, err = svc.SetHeart(ctx, p1.ID, true)
	require.NoError(t, err)
	assert.False(t, cache.set)
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an active user", func(t *testing.T) {
		svc := NewFeedService(new(MockPostRepository), new(MockCommentRepository), new(MockPostReactionRepository), nil)

		_, err := svc.CreatePost(ctx, "", "", domain.PostCreate{Content: "hello"})
		assert.ErrorIs(t, err, domain.ErrNoActiveUser)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		svc := NewFeedService(new(MockPostRepository), new(MockCommentRepository), new(MockPostReactionRepository), nil)

		_, err := svc.CreatePost(ctx, "maya", "maya@example.com", domain.PostCreate{Content: "   "})
		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	})

	t.Run("success", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewFeedService(postRepo, new(MockCommentRepository), new(MockPostReactionRepository), nil)

		postRepo.On("Create", ctx, mock.AnythingOfType("*domain.Post")).Return(nil)

		post, err := svc.CreatePost(ctx, "maya", "maya@example.com", domain.PostCreate{
			Content:  "  finally slept well  ",
			Emotions: []string{"hopeful"},
		})
		require.NoError(t, err)
		assert.Equal(t, "finally slept well", post.Content)
		assert.Equal(t, 0, post.Hearts)
		assert.Equal(t, 0, post.Comments)
		assert.Equal(t, "maya", post.UserName)
		assert.NotNil(t, post.Thread)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	t.Run("success bumps the counter", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		commentRepo := new(MockCommentRepository)
		svc := NewFeedService(postRepo, commentRepo, new(MockPostReactionRepository), nil)

		commentRepo.On("Create", ctx, mock.AnythingOfType("*domain.PostComment")).Return(nil)
		postRepo.On("IncrementComments", ctx, postID).Return(3, nil)

		comment, count, err := svc.AddComment(ctx, postID, "maya", "", domain.CommentCreate{Content: "me too"})
		require.NoError(t, err)
		assert.Equal(t, postID, comment.PostID)
		assert.Equal(t, 3, count)
	})

	t.Run("counter failure keeps the comment", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		commentRepo := new(MockCommentRepository)
		svc := NewFeedService(postRepo, commentRepo, new(MockPostReactionRepository), nil)

		commentRepo.On("Create", ctx, mock.AnythingOfType("*domain.PostComment")).Return(nil)
		postRepo.On("IncrementComments", ctx, postID).Return(0, errors.New("deadlock"))

		comment, _, err := svc.AddComment(ctx, postID, "maya", "", domain.CommentCreate{Content: "me too"})
		require.NoError(t, err)
		assert.NotNil(t, comment)
	})

	t.Run("requires an active user", func(t *testing.T) {
		svc := NewFeedService(new(MockPostRepository), new(MockCommentRepository), new(MockPostReactionRepository), nil)

		_, _, err := svc.AddComment(ctx, postID, "", "", domain.CommentCreate{Content: "me too"})
		assert.ErrorIs(t, err, domain.ErrNoActiveUser)
	})
}

func TestSetHeart(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	t.Run("hearting adds one", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewFeedService(postRepo, new(MockCommentRepository), new(MockPostReactionRepository), nil)

		postRepo.On("AdjustHearts", ctx, postID, 1).Return(5, nil)

		hearts, err := svc.SetHeart(ctx, postID, true)
		require.NoError(t, err)
		assert.Equal(t, 5, hearts)
	})

	t.Run("unhearting removes one", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewFeedService(postRepo, new(MockCommentRepository), new(MockPostReactionRepository), nil)

		postRepo.On("AdjustHearts", ctx, postID, -1).Return(4, nil)

		hearts, err := svc.SetHeart(ctx, postID, false)
		require.NoError(t, err)
		assert.Equal(t, 4, hearts)
	})

	t.Run("failure applies nothing", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewFeedService(postRepo, new(MockCommentRepository), new(MockPostReactionRepository), nil)

		postRepo.On("AdjustHearts", ctx, postID, 1).Return(0, errors.New("timeout"))

		_, err := svc.SetHeart(ctx, postID, true)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestTogglePostReaction(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	t.Run("invalid type", func(t *testing.T) {
		svc := NewFeedService(new(MockPostRepository), new(MockCommentRepository), new(MockPostReactionRepository), nil)

		_, _, err := svc.TogglePostReaction(ctx, postID, "sparkles")
		assert.ErrorIs(t, err, domain.ErrInvalidReaction)
	})

	t.Run("toggle on then off", func(t *testing.T) {
		reactionRepo := new(MockPostReactionRepository)
		svc := NewFeedService(new(MockPostRepository), new(MockCommentRepository), reactionRepo, nil)

		reaction := &domain.PostReaction{ID: uuid.New(), PostID: postID, ReactionType: domain.PostReactionHug}
		reactionRepo.On("Toggle", ctx, postID, domain.PostReactionHug).Return(reaction, true, nil).Once()
		reactionRepo.On("Toggle", ctx, postID, domain.PostReactionHug).Return(nil, false, nil).Once()

		_, added, err := svc.TogglePostReaction(ctx, postID, domain.PostReactionHug)
		require.NoError(t, err)
		assert.True(t, added)

		_, added, err = svc.TogglePostReaction(ctx, postID, domain.PostReactionHug)
		require.NoError(t, err)
		assert.False(t, added)
	})
}
