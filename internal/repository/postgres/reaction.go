package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReactionRepository implements domain.ReactionRepository
type ReactionRepository struct {
	pool *pgxpool.Pool
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(pool *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{pool: pool}
}

// Toggle flips the (message, type) reaction in one round trip per branch:
// delete wins if a row exists, otherwise insert under the unique constraint.
// Concurrent toggles on the same pair serialize on the constraint instead of
// racing a read-then-write.
func (r *ReactionRepository) Toggle(ctx context.Context, messageID uuid.UUID, reactionType domain.ReactionType) (*domain.Reaction, bool, error) {
	deleteQuery := `
		DELETE FROM companion_reactions
		WHERE message_id = $1 AND reaction_type = $2
		RETURNING id
	`

	var deletedID uuid.UUID
	err := r.pool.QueryRow(ctx, deleteQuery, messageID, string(reactionType)).Scan(&deletedID)
	if err == nil {
		return nil, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to delete reaction: %w", err)
	}

	insertQuery := `
		INSERT INTO companion_reactions (id, message_id, reaction_type, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (message_id, reaction_type) DO NOTHING
		RETURNING id, message_id, reaction_type, created_at
	`

	reaction := domain.Reaction{}
	var typeStr string
	err = r.pool.QueryRow(ctx, insertQuery, uuid.New(), messageID, string(reactionType), time.Now()).Scan(
		&reaction.ID,
		&reaction.MessageID,
		&typeStr,
		&reaction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// lost the insert race to a concurrent toggle; the pair is on
			return r.get(ctx, messageID, reactionType)
		}
		return nil, false, fmt.Errorf("failed to insert reaction: %w", err)
	}
	reaction.ReactionType = domain.ReactionType(typeStr)

	return &reaction, true, nil
}

// ListByMessageIDs batch-fetches reactions for a page of messages
func (r *ReactionRepository) ListByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]domain.Reaction, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, message_id, reaction_type, created_at
		FROM companion_reactions
		WHERE message_id = ANY($1)
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}
	defer rows.Close()

	var reactions []domain.Reaction
	for rows.Next() {
		var reaction domain.Reaction
		var typeStr string
		if err := rows.Scan(&reaction.ID, &reaction.MessageID, &typeStr, &reaction.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		reaction.ReactionType = domain.ReactionType(typeStr)
		reactions = append(reactions, reaction)
	}

	return reactions, nil
}

func (r *ReactionRepository) get(ctx context.Context, messageID uuid.UUID, reactionType domain.ReactionType) (*domain.Reaction, bool, error) {
	query := `
		SELECT id, message_id, reaction_type, created_at
		FROM companion_reactions
		WHERE message_id = $1 AND reaction_type = $2
	`

	reaction := domain.Reaction{}
	var typeStr string
	err := r.pool.QueryRow(ctx, query, messageID, string(reactionType)).Scan(
		&reaction.ID,
		&reaction.MessageID,
		&typeStr,
		&reaction.CreatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get reaction: %w", err)
	}
	reaction.ReactionType = domain.ReactionType(typeStr)

	return &reaction, true, nil
}
