package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Post represents a feed entry. The hearts and comments columns are
// denormalized counters; hearts is the authoritative value in storage while
// the "has hearted" flag lives only on the client.
type Post struct {
	ID        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	Emotions  []string      `json:"emotions"`
	Hearts    int           `json:"hearts"`
	Comments  int           `json:"comments"`
	UserName  string        `json:"user_name"`
	UserEmail string        `json:"user_email,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Thread    []PostComment `json:"comments_data"`
}

// PostComment is a comment attached to a feed post
type PostComment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	Content   string    `json:"content"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostReactionType is the reaction set for feed posts
type PostReactionType string

const (
	PostReactionHeart      PostReactionType = "heart"
	PostReactionThumbsUp   PostReactionType = "thumbs_up"
	PostReactionThumbsDown PostReactionType = "thumbs_down"
	PostReactionHug        PostReactionType = "hug"
	PostReactionSupport    PostReactionType = "support"
)

// ValidPostReactionType reports whether t is one of the known post reaction types
func ValidPostReactionType(t PostReactionType) bool {
	switch t {
	case PostReactionHeart, PostReactionThumbsUp, PostReactionThumbsDown, PostReactionHug, PostReactionSupport:
		return true
	}
	return false
}

// PostReaction mirrors the message reaction ledger for feed posts
type PostReaction struct {
	ID           uuid.UUID        `json:"id"`
	PostID       uuid.UUID        `json:"post_id"`
	ReactionType PostReactionType `json:"reaction_type"`
	CreatedAt    time.Time        `json:"created_at"`
}

// PostCreate represents post authoring data
type PostCreate struct {
	Content  string   `json:"content" validate:"required,max=2000"`
	Emotions []string `json:"emotions" validate:"max=5,dive,max=32"`
}

// CommentCreate represents comment authoring data
type CommentCreate struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// PostRepository defines the interface for post storage
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	List(ctx context.Context) ([]Post, error)
	// AdjustHearts applies delta to the hearts counter atomically, floored
	// at zero, and returns the confirmed value.
	AdjustHearts(ctx context.Context, postID uuid.UUID, delta int) (int, error)
	IncrementComments(ctx context.Context, postID uuid.UUID) (int, error)
}

// CommentRepository defines the interface for comment storage
type CommentRepository interface {
	Create(ctx context.Context, comment *PostComment) error
	ListByPost(ctx context.Context, postID uuid.UUID) ([]PostComment, error)
	ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]PostComment, error)
}

// PostReactionRepository mirrors ReactionRepository for feed posts
type PostReactionRepository interface {
	Toggle(ctx context.Context, postID uuid.UUID, reactionType PostReactionType) (*PostReaction, bool, error)
	ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]PostReaction, error)
}
