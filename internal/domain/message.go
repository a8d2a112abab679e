package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageType classifies how a companion message should be rendered
type MessageType string

const (
	MessageNormal   MessageType = "normal"
	MessageWarning  MessageType = "warning"
	MessageResource MessageType = "resource"
)

// Message represents a single entry in a companion conversation. Replay
// ordering is created_at ascending with id as tie-break.
type Message struct {
	ID             uuid.UUID   `json:"id"`
	ConversationID uuid.UUID   `json:"conversation_id"`
	Content        string      `json:"content"`
	IsUser         bool        `json:"is_user"`
	MessageType    MessageType `json:"message_type"`
	CreatedAt      time.Time   `json:"created_at"`
	Reactions      []Reaction  `json:"reactions"`
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]Message, error)
	CountByConversation(ctx context.Context, conversationID uuid.UUID) (int, error)
}
