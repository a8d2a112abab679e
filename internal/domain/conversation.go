package domain

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Conversation represents one companion chat thread. A conversation is
// superseded, never deleted, when the user starts a new chat.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationRepository defines the interface for conversation storage
type ConversationRepository interface {
	Create(ctx context.Context, conv *Conversation) error
	Get(ctx context.Context, id uuid.UUID) (*Conversation, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewSessionID generates a client-style session token: session_<unix-ms>_<9 alnum>.
// Tokens are unique per conversation and never reused.
func NewSessionID(now time.Time) string {
	suffix := make([]byte, 9)
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is not survivable for token generation
		panic(fmt.Sprintf("domain: read random: %v", err))
	}
	for i, b := range buf {
		suffix[i] = sessionIDAlphabet[int(b)%len(sessionIDAlphabet)]
	}
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}
