package postgres

import (
	"context"
	"fmt"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository implements domain.MessageRepository
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO companion_messages (id, conversation_id, content, is_user, message_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.ConversationID,
		message.Content,
		message.IsUser,
		string(message.MessageType),
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListByConversation retrieves a conversation's messages in replay order.
// created_at is the primary chat ordering; id breaks equal-timestamp ties
// deterministically.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	query := `
		SELECT id, conversation_id, content, is_user, message_type, created_at
		FROM companion_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var typeStr string

		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.Content,
			&m.IsUser,
			&typeStr,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.MessageType = domain.MessageType(typeStr)
		m.Reactions = []domain.Reaction{}
		messages = append(messages, m)
	}

	return messages, nil
}

// CountByConversation returns how many messages a conversation holds
func (r *MessageRepository) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM companion_messages WHERE conversation_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, conversationID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	return count, nil
}
