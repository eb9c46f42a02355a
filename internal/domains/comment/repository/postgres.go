package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"news-portal-backend/internal/domains/comment/model"
)

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (id, article_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.ArticleID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByArticle reads comments oldest-first. The author relation goes
// through the same normalizer as article reads.
func (r *postgresCommentRepository) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.article_id, c.author_id, c.content, c.created_at,
			jsonb_build_object('full_name', p.full_name) AS author
		FROM comments c
		LEFT JOIN profiles p ON p.id = c.author_id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		var authorJSON []byte

		if err := rows.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.Content, &c.CreatedAt, &authorJSON); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}

		if len(authorJSON) > 0 {
			if err := json.Unmarshal(authorJSON, &c.Author); err != nil {
				return nil, fmt.Errorf("failed to decode comment author: %w", err)
			}
		}

		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}
