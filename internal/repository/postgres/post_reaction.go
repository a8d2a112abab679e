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

// PostReactionRepository implements domain.PostReactionRepository
type PostReactionRepository struct {
	pool *pgxpool.Pool
}

// NewPostReactionRepository creates a new post reaction repository
func NewPostReactionRepository(pool *pgxpool.Pool) *PostReactionRepository {
	return &PostReactionRepository{pool: pool}
}

// Toggle flips the (post, type) reaction atomically, mirroring the message
// reaction ledger
func (r *PostReactionRepository) Toggle(ctx context.Context, postID uuid.UUID, reactionType domain.PostReactionType) (*domain.PostReaction, bool, error) {
	deleteQuery := `
		DELETE FROM post_reactions
		WHERE post_id = $1 AND reaction_type = $2
		RETURNING id
	`

	var deletedID uuid.UUID
	err := r.pool.QueryRow(ctx, deleteQuery, postID, string(reactionType)).Scan(&deletedID)
	if err == nil {
		return nil, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to delete post reaction: %w", err)
	}

	insertQuery := `
		INSERT INTO post_reactions (id, post_id, reaction_type, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (post_id, reaction_type) DO NOTHING
		RETURNING id, post_id, reaction_type, created_at
	`

	reaction := domain.PostReaction{}
	var typeStr string
	err = r.pool.QueryRow(ctx, insertQuery, uuid.New(), postID, string(reactionType), time.Now()).Scan(
		&reaction.ID,
		&reaction.PostID,
		&typeStr,
		&reaction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// a concurrent toggle inserted first; the pair is on
			return r.get(ctx, postID, reactionType)
		}
		return nil, false, fmt.Errorf("failed to insert post reaction: %w", err)
	}
	reaction.ReactionType = domain.PostReactionType(typeStr)

	return &reaction, true, nil
}

// ListByPostIDs batch-fetches reactions for a page of posts
func (r *PostReactionRepository) ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]domain.PostReaction, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, post_id, reaction_type, created_at
		FROM post_reactions
		WHERE post_id = ANY($1)
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list post reactions: %w", err)
	}
	defer rows.Close()

	var reactions []domain.PostReaction
	for rows.Next() {
		var reaction domain.PostReaction
		var typeStr string
		if err := rows.Scan(&reaction.ID, &reaction.PostID, &typeStr, &reaction.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post reaction: %w", err)
		}
		reaction.ReactionType = domain.PostReactionType(typeStr)
		reactions = append(reactions, reaction)
	}

	return reactions, nil
}

func (r *PostReactionRepository) get(ctx context.Context, postID uuid.UUID, reactionType domain.PostReactionType) (*domain.PostReaction, bool, error) {
	query := `
		SELECT id, post_id, reaction_type, created_at
		FROM post_reactions
		WHERE post_id = $1 AND reaction_type = $2
	`

	reaction := domain.PostReaction{}
	var typeStr string
	err := r.pool.QueryRow(ctx, query, postID, string(reactionType)).Scan(
		&reaction.ID,
		&reaction.PostID,
		&typeStr,
		&reaction.CreatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get post reaction: %w", err)
	}
	reaction.ReactionType = domain.PostReactionType(typeStr)

	return &reaction, true, nil
}
