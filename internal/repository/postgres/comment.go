package postgres

import (
	"context"
	"fmt"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository implements domain.CommentRepository
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *domain.PostComment) error {
	query := `
		INSERT INTO post_comments (id, post_id, content, user_name, user_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.Content,
		comment.UserName,
		comment.UserEmail,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByPost retrieves a post's comments oldest first
func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.PostComment, error) {
	query := `
		SELECT id, post_id, content, user_name, user_email, created_at, updated_at
		FROM post_comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	return scanComments(rows)
}

// ListByPostIDs batch-fetches comments for a page of posts
func (r *CommentRepository) ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]domain.PostComment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, post_id, content, user_name, user_email, created_at, updated_at
		FROM post_comments
		WHERE post_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	return scanComments(rows)
}

func scanComments(rows pgx.Rows) ([]domain.PostComment, error) {
	var comments []domain.PostComment
	for rows.Next() {
		var c domain.PostComment
		if err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.Content,
			&c.UserName,
			&c.UserEmail,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, nil
}
