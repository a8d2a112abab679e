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

// PostRepository implements domain.PostRepository
type PostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new post repository
func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create inserts a new feed post
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO emotional_posts (id, content, emotions, hearts, comments, user_name, user_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Content,
		post.Emotions,
		post.Hearts,
		post.Comments,
		post.UserName,
		post.UserEmail,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// List retrieves all posts newest first
func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	query := `
		SELECT id, content, emotions, hearts, comments, user_name, user_email, created_at, updated_at
		FROM emotional_posts
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.ID,
			&p.Content,
			&p.Emotions,
			&p.Hearts,
			&p.Comments,
			&p.UserName,
			&p.UserEmail,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		if p.Emotions == nil {
			p.Emotions = []string{}
		}
		posts = append(posts, p)
	}

	return posts, nil
}

// AdjustHearts applies delta to the authoritative hearts counter in a single
// statement, floored at zero, and returns the confirmed value
func (r *PostRepository) AdjustHearts(ctx context.Context, postID uuid.UUID, delta int) (int, error) {
	query := `
		UPDATE emotional_posts
		SET hearts = GREATEST(hearts + $2, 0), updated_at = $3
		WHERE id = $1
		RETURNING hearts
	`

	var hearts int
	err := r.pool.QueryRow(ctx, query, postID, delta, time.Now()).Scan(&hearts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("failed to adjust hearts: %w", err)
	}

	return hearts, nil
}

// IncrementComments bumps the denormalized comment counter and returns the
// new value
func (r *PostRepository) IncrementComments(ctx context.Context, postID uuid.UUID) (int, error) {
	query := `
		UPDATE emotional_posts
		SET comments = comments + 1, updated_at = $2
		WHERE id = $1
		RETURNING comments
	`

	var count int
	err := r.pool.QueryRow(ctx, query, postID, time.Now()).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment comments: %w", err)
	}

	return count, nil
}
