package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReactionType is the set of acknowledgments a reader can attach to a
// companion message
type ReactionType string

const (
	ReactionHelpful    ReactionType = "helpful"
	ReactionNotHelpful ReactionType = "not_helpful"
	ReactionHeart      ReactionType = "heart"
	ReactionThumbsUp   ReactionType = "thumbs_up"
	ReactionThumbsDown ReactionType = "thumbs_down"
)

// ValidReactionType reports whether t is one of the known reaction types
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionHelpful, ReactionNotHelpful, ReactionHeart, ReactionThumbsUp, ReactionThumbsDown:
		return true
	}
	return false
}

// Reaction is a typed acknowledgment on a message. At most one reaction per
// (message_id, reaction_type) pair exists at a time: reactions carry no actor
// identity and behave as a single boolean toggle.
type Reaction struct {
	ID           uuid.UUID    `json:"id"`
	MessageID    uuid.UUID    `json:"message_id"`
	ReactionType ReactionType `json:"reaction_type"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ReactionRepository defines the interface for reaction storage.
// Toggle must be atomic per (messageID, reactionType): delete if present,
// insert otherwise, with no window for duplicates under concurrent calls.
type ReactionRepository interface {
	Toggle(ctx context.Context, messageID uuid.UUID, reactionType ReactionType) (*Reaction, bool, error)
	ListByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]Reaction, error)
}
