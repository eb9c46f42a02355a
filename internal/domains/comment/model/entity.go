package model

import (
	"time"

	"github.com/google/uuid"

	articlemodel "news-portal-backend/internal/domains/article/model"
)

// Comment on an article. Append-only: there is no edit or delete path.
type Comment struct {
	ID        uuid.UUID           `json:"id"`
	ArticleID uuid.UUID           `json:"article_id"`
	AuthorID  uuid.UUID           `json:"author_id"`
	Author    articlemodel.Author `json:"author"`
	Content   string              `json:"content"`
	CreatedAt time.Time           `json:"created_at"`
}
