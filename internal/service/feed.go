package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FeedCache caches the rendered feed page. Implementations may be absent
// (nil), in which case every read goes to the store.
type FeedCache interface {
	GetPosts(ctx context.Context) ([]domain.Post, bool)
	SetPosts(ctx context.Context, posts []domain.Post) error
	Invalidate(ctx context.Context) error
}

// FeedService handles the peer-support feed: posts, comments, hearts and
// post reactions. The hearts counter is authoritative in storage; whether the
// viewing client has hearted stays client-local state with no persisted
// analog.
type FeedService struct {
	postRepo     domain.PostRepository
	commentRepo  domain.CommentRepository
	reactionRepo domain.PostReactionRepository
	cache        FeedCache
	now          func() time.Time
}

// NewFeedService creates a new feed service
func NewFeedService(
	postRepo domain.PostRepository,
	commentRepo domain.CommentRepository,
	reactionRepo domain.PostReactionRepository,
	cache FeedCache,
) *FeedService {
	return &FeedService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// ListPosts returns the feed newest first with comments fanned in, served
// from cache when available
func (s *FeedService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	if s.cache != nil {
		if posts, ok := s.cache.GetPosts(ctx); ok {
			return posts, nil
		}
	}

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list posts: %v", domain.ErrStoreUnavailable, err)
	}

	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	comments, err := s.commentRepo.ListByPostIDs(ctx, ids)
	if err != nil {
		// the feed is still useful without comment threads
		log.Warn().Err(err).Msg("failed to fetch comments for feed")
		comments = nil
	}

	byPost := make(map[uuid.UUID][]domain.PostComment)
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	for i := range posts {
		if thread := byPost[posts[i].ID]; thread != nil {
			posts[i].Thread = thread
		} else {
			posts[i].Thread = []domain.PostComment{}
		}
	}

	if s.cache != nil {
		if err := s.cache.SetPosts(ctx, posts); err != nil {
			log.Warn().Err(err).Msg("failed to cache feed")
		}
	}

	return posts, nil
}

// CreatePost publishes a new feed entry. Posting requires an active user.
func (s *FeedService) CreatePost(ctx context.Context, userName, userEmail string, in domain.PostCreate) (*domain.Post, error) {
	if userName == "" {
		return nil, domain.ErrNoActiveUser
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.ErrEmptyMessage
	}

	now := s.now()
	post := &domain.Post{
		ID:        uuid.New(),
		Content:   strings.TrimSpace(in.Content),
		Emotions:  in.Emotions,
		Hearts:    0,
		Comments:  0,
		UserName:  userName,
		UserEmail: userEmail,
		CreatedAt: now,
		UpdatedAt: now,
		Thread:    []domain.PostComment{},
	}
	if post.Emotions == nil {
		post.Emotions = []string{}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("%w: failed to create post: %v", domain.ErrStoreUnavailable, err)
	}

	s.invalidateCache(ctx)
	return post, nil
}

// AddComment attaches a comment and bumps the post's denormalized comment
// count. The two writes are independent; the count update itself is atomic
// in SQL so concurrent comments cannot lose increments.
func (s *FeedService) AddComment(ctx context.Context, postID uuid.UUID, userName, userEmail string, in domain.CommentCreate) (*domain.PostComment, int, error) {
	if userName == "" {
		return nil, 0, domain.ErrNoActiveUser
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, 0, domain.ErrEmptyMessage
	}

	now := s.now()
	comment := &domain.PostComment{
		ID:        uuid.New(),
		PostID:    postID,
		Content:   strings.TrimSpace(in.Content),
		UserName:  userName,
		UserEmail: userEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, 0, fmt.Errorf("%w: failed to create comment: %v", domain.ErrStoreUnavailable, err)
	}

	count, err := s.postRepo.IncrementComments(ctx, postID)
	if err != nil {
		// the comment row exists; the counter drifting is non-fatal
		log.Error().Err(err).Str("post_id", postID.String()).Msg("failed to bump comment count")
	}

	s.invalidateCache(ctx)
	return comment, count, nil
}

// CommentsForPost returns a post's comments oldest first
func (s *FeedService) CommentsForPost(ctx context.Context, postID uuid.UUID) ([]domain.PostComment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list comments: %v", domain.ErrStoreUnavailable, err)
	}
	return comments, nil
}

// SetHeart applies the client's desired heart state as an atomic counter
// adjustment and returns the confirmed value. Nothing is applied on failure,
// so the caller's optimistic UI can revert cleanly.
func (s *FeedService) SetHeart(ctx context.Context, postID uuid.UUID, hearted bool) (int, error) {
	delta := 1
	if !hearted {
		delta = -1
	}

	hearts, err := s.postRepo.AdjustHearts(ctx, postID, delta)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to update hearts: %v", domain.ErrStoreUnavailable, err)
	}

	s.invalidateCache(ctx)
	return hearts, nil
}

// TogglePostReaction flips a typed reaction on a post, sharing the message
// ledger's atomic toggle semantics
func (s *FeedService) TogglePostReaction(ctx context.Context, postID uuid.UUID, reactionType domain.PostReactionType) (*domain.PostReaction, bool, error) {
	if !domain.ValidPostReactionType(reactionType) {
		return nil, false, domain.ErrInvalidReaction
	}

	reaction, added, err := s.reactionRepo.Toggle(ctx, postID, reactionType)
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to toggle post reaction: %v", domain.ErrStoreUnavailable, err)
	}

	s.invalidateCache(ctx)
	return reaction, added, nil
}

func (s *FeedService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate feed cache")
	}
}
