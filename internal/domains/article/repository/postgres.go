package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"news-portal-backend/internal/domains/article/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresArticleRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &postgresArticleRepository{pool: pool}
}

// articleColumns is shared by every article-shaped SELECT. The author
// relation is selected as JSON; list rows build a bare object while the
// detail/related paths aggregate (yielding an array), and both shapes
// decode through model.Author.
const articleColumns = `
	a.id, a.title, a.body, a.image_url, a.published,
	a.category, a.tags, a.author_id, a.created_at, a.updated_at
`

// =====================================================
// FEED QUERY BUILDER
// =====================================================

// feedConditions translates UI filter state into WHERE clauses.
// Category uses ILIKE without wildcards: case-insensitive string
// equality against stored category text, so an unknown slug yields zero
// rows rather than an error. An empty (or blank) search applies no text
// filter at all.
func feedConditions(f model.FeedFilter) ([]string, []interface{}) {
	conds := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if f.PublishedOnly {
		conds = append(conds, "a.published = TRUE")
	}

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("a.category ILIKE $%d", len(args)))
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + search + "%"
		args = append(args, like)
		first := len(args)
		args = append(args, like)
		conds = append(conds, fmt.Sprintf("(a.title ILIKE $%d OR a.body ILIKE $%d)", first, first+1))
	}

	return conds, args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *postgresArticleRepository) List(ctx context.Context, f model.FeedFilter) ([]model.Article, int, error) {
	conds, args := feedConditions(f)
	where := whereClause(conds)

	// Exact count over the identical filter.
	var total int
	countQuery := "SELECT COUNT(*) FROM articles a" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	// Rows for the half-open range [(page-1)*size, page*size). A page
	// past the end simply returns no rows.
	offset := (f.Page - 1) * f.PageSize
	listQuery := fmt.Sprintf(`
		SELECT %s,
			jsonb_build_object('full_name', p.full_name) AS author
		FROM articles a
		LEFT JOIN profiles p ON p.id = a.author_id
		%s
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, articleColumns, where, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, listQuery, append(args, f.PageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT json_agg(jsonb_build_object('full_name', p.full_name))
			 FROM profiles p WHERE p.id = a.author_id) AS author
		FROM articles a
		WHERE a.id = $1
	`, articleColumns)

	article, err := scanArticleRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

// =====================================================
// RELATED ARTICLES
// =====================================================

func (r *postgresArticleRepository) Related(ctx context.Context, id uuid.UUID, category string, limit int) ([]model.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT json_agg(jsonb_build_object('full_name', p.full_name))
			 FROM profiles p WHERE p.id = a.author_id) AS author
		FROM articles a
		WHERE a.published = TRUE
		  AND a.id <> $1
		  AND a.category ILIKE $2
		ORDER BY a.created_at DESC
		LIMIT $3
	`, articleColumns)

	rows, err := r.pool.Query(ctx, query, id, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list related articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// =====================================================
// CREATE / UPDATE / DELETE
// =====================================================

func (r *postgresArticleRepository) Create(ctx context.Context, a *model.Article) error {
	query := `
		INSERT INTO articles (
			id, title, body, image_url, published,
			category, tags, author_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Body,
		a.ImageURL,
		a.Published,
		a.Category,
		pq.Array(a.Tags),
		a.AuthorID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// Update is last-write-wins: no version column, concurrent edits
// silently overwrite each other.
func (r *postgresArticleRepository) Update(ctx context.Context, a *model.Article) error {
	query := `
		UPDATE articles SET
			title = $2, body = $3, image_url = $4, published = $5,
			category = $6, tags = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Body,
		a.ImageURL,
		a.Published,
		a.Category,
		pq.Array(a.Tags),
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrArticleNotFound
	}

	return nil
}

// Delete removes the row immediately; there is no soft delete.
func (r *postgresArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrArticleNotFound
	}

	return nil
}

// =====================================================
// SCANNING
// =====================================================

func scanArticleRow(row pgx.Row) (*model.Article, error) {
	a := &model.Article{}
	var tags []string
	var authorJSON []byte

	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.ImageURL,
		&a.Published,
		&a.Category,
		pq.Array(&tags),
		&a.AuthorID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&authorJSON,
	)
	if err != nil {
		return nil, err
	}

	a.Tags = tags
	if a.Tags == nil {
		a.Tags = []string{}
	}

	if err := decodeAuthor(authorJSON, &a.Author); err != nil {
		return nil, fmt.Errorf("failed to decode author relation: %w", err)
	}

	return a, nil
}

func scanArticles(rows pgx.Rows) ([]model.Article, error) {
	articles := make([]model.Article, 0)
	for rows.Next() {
		a, err := scanArticleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	return articles, nil
}

// decodeAuthor funnels whatever JSON shape the join produced through
// the normalizer.
func decodeAuthor(raw []byte, author *model.Author) error {
	if len(raw) == 0 {
		*author = model.Author{}
		return nil
	}
	return json.Unmarshal(raw, author)
}
