package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal-backend/internal/domains/article/model"
	"news-portal-backend/internal/domains/article/repository"
)

// fakeArticleRepository filters an in-memory article set the way the
// real store would, so service behavior can be exercised without
// Postgres.
type fakeArticleRepository struct {
	articles   []model.Article
	listErr    error
	lastFilter model.FeedFilter
	created    *model.Article
	updated    *model.Article
}

var _ repository.ArticleRepository = (*fakeArticleRepository)(nil)

func (f *fakeArticleRepository) List(ctx context.Context, filter model.FeedFilter) ([]model.Article, int, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	matched := make([]model.Article, 0, len(f.articles))
	for _, a := range f.articles {
		if filter.PublishedOnly && !a.Published {
			continue
		}
		matched = append(matched, a)
	}
	return matched, len(matched), nil
}

func (f *fakeArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	for i := range f.articles {
		if f.articles[i].ID == id {
			a := f.articles[i]
			return &a, nil
		}
	}
	return nil, model.ErrArticleNotFound
}

func (f *fakeArticleRepository) Related(ctx context.Context, id uuid.UUID, category string, limit int) ([]model.Article, error) {
	related := make([]model.Article, 0)
	for _, a := range f.articles {
		if a.ID == id || !a.Published || a.Category == nil || *a.Category != category {
			continue
		}
		if len(related) == limit {
			break
		}
		related = append(related, a)
	}
	return related, nil
}

func (f *fakeArticleRepository) Create(ctx context.Context, a *model.Article) error {
	f.created = a
	f.articles = append(f.articles, *a)
	return nil
}

func (f *fakeArticleRepository) Update(ctx context.Context, a *model.Article) error {
	f.updated = a
	return nil
}

func (f *fakeArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeUploader struct {
	lastKey  string
	lastData []byte
	err      error
}

func (f *fakeUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.lastKey = key
	f.lastData = data
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + key, nil
}

func testArticle(title string, published bool, category string) model.Article {
	a := model.Article{
		ID:        uuid.New(),
		Title:     title,
		Body:      "<p>isi berita</p>",
		Published: published,
	}
	if category != "" {
		a.Category = &category
	}
	return a
}

func TestListFeedExcludesUnpublished(t *testing.T) {
	repo := &fakeArticleRepository{articles: []model.Article{
		testArticle("A", false, "Politik"),
		testArticle("B", true, "Politik"),
	}}
	svc := NewArticleService(repo, &fakeUploader{})

	resp, err := svc.ListFeed(context.Background(), model.ListArticlesRequest{})
	require.NoError(t, err)

	assert.True(t, repo.lastFilter.PublishedOnly)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "B", resp.Articles[0].Title)
	assert.Equal(t, 1, resp.Total)
}

func TestListAllIncludesUnpublished(t *testing.T) {
	repo := &fakeArticleRepository{articles: []model.Article{
		testArticle("A", false, "Politik"),
		testArticle("B", true, "Politik"),
	}}
	svc := NewArticleService(repo, &fakeUploader{})

	resp, err := svc.ListAll(context.Background(), model.ListArticlesRequest{})
	require.NoError(t, err)

	assert.False(t, repo.lastFilter.PublishedOnly)
	assert.Len(t, resp.Articles, 2)
	assert.Equal(t, 2, resp.Total)
}

func TestListFeedDegradesStoreErrorToEmptyPage(t *testing.T) {
	repo := &fakeArticleRepository{listErr: errors.New("connection refused")}
	svc := NewArticleService(repo, &fakeUploader{})

	resp, err := svc.ListFeed(context.Background(), model.ListArticlesRequest{Page: 3})

	// The public feed never propagates store errors; the page renders
	// empty and the failure is only visible in the log.
	require.NoError(t, err)
	assert.Empty(t, resp.Articles)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, 3, resp.Page)
}

func TestListAllPropagatesStoreError(t *testing.T) {
	repo := &fakeArticleRepository{listErr: errors.New("connection refused")}
	svc := NewArticleService(repo, &fakeUploader{})

	_, err := svc.ListAll(context.Background(), model.ListArticlesRequest{})
	assert.Error(t, err)
}

func TestListFeedNormalizesPage(t *testing.T) {
	repo := &fakeArticleRepository{}
	svc := NewArticleService(repo, &fakeUploader{})

	_, err := svc.ListFeed(context.Background(), model.ListArticlesRequest{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, 10, repo.lastFilter.PageSize)
}

func TestCreateSplitsTagsAndSanitizesBody(t *testing.T) {
	repo := &fakeArticleRepository{}
	svc := NewArticleService(repo, &fakeUploader{})

	article, err := svc.Create(context.Background(), uuid.New(), model.CreateArticleRequest{
		Title: "Harga BBM naik",
		Body:  `<p>isi</p><script>alert("x")</script>`,
		Tags:  "AI, ,Tech,",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"AI", "Tech"}, article.Tags)
	assert.NotContains(t, article.Body, "<script>")
	assert.Contains(t, article.Body, "<p>isi</p>")
}

func TestCreateWithoutCategoryStoresNull(t *testing.T) {
	repo := &fakeArticleRepository{}
	svc := NewArticleService(repo, &fakeUploader{})

	article, err := svc.Create(context.Background(), uuid.New(), model.CreateArticleRequest{
		Title: "Tanpa kategori",
		Body:  "isi berita",
	})
	require.NoError(t, err)

	// Category is optional on create; the row persists with NULL.
	assert.Nil(t, article.Category)
	require.NotNil(t, repo.created)
	assert.Nil(t, repo.created.Category)
}

func TestCreateRejectsMissingTitle(t *testing.T) {
	svc := NewArticleService(&fakeArticleRepository{}, &fakeUploader{})

	_, err := svc.Create(context.Background(), uuid.New(), model.CreateArticleRequest{
		Body: "isi berita",
	})
	assert.Error(t, err)
}

func TestUpdateIsLastWriteWins(t *testing.T) {
	existing := testArticle("Lama", true, "Politik")
	repo := &fakeArticleRepository{articles: []model.Article{existing}}
	svc := NewArticleService(repo, &fakeUploader{})

	updated, err := svc.Update(context.Background(), existing.ID, model.UpdateArticleRequest{
		Title:     "Baru",
		Body:      "isi baru",
		Published: false,
	})
	require.NoError(t, err)

	// The whole row is replaced from the request; no merge, no
	// version check.
	assert.Equal(t, "Baru", updated.Title)
	assert.False(t, updated.Published)
	assert.Nil(t, updated.Category)
	require.NotNil(t, repo.updated)
	assert.Equal(t, existing.ID, repo.updated.ID)
}

func TestUpdateUnknownArticle(t *testing.T) {
	svc := NewArticleService(&fakeArticleRepository{}, &fakeUploader{})

	_, err := svc.Update(context.Background(), uuid.New(), model.UpdateArticleRequest{
		Title: "Baru",
		Body:  "isi",
	})
	assert.ErrorIs(t, err, model.ErrArticleNotFound)
}

func TestRelatedFiltersByCategory(t *testing.T) {
	target := testArticle("Target", true, "Ekonomi")
	repo := &fakeArticleRepository{articles: []model.Article{
		target,
		testArticle("Sama", true, "Ekonomi"),
		testArticle("Beda", true, "Politik"),
		testArticle("Draft", false, "Ekonomi"),
	}}
	svc := NewArticleService(repo, &fakeUploader{})

	related, err := svc.Related(context.Background(), target.ID)
	require.NoError(t, err)

	require.Len(t, related, 1)
	assert.Equal(t, "Sama", related[0].Title)
}

func TestRelatedWithoutCategoryIsEmpty(t *testing.T) {
	target := testArticle("Tanpa", true, "")
	repo := &fakeArticleRepository{articles: []model.Article{target}}
	svc := NewArticleService(repo, &fakeUploader{})

	related, err := svc.Related(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Empty(t, related)
}

func TestUploadImageKeyAndURL(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewArticleService(&fakeArticleRepository{}, uploader)

	uploaderID := uuid.New()
	url, err := svc.UploadImage(context.Background(), uploaderID, "cover.PNG", []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Contains(t, uploader.lastKey, "articles/")
	assert.Contains(t, uploader.lastKey, uploaderID.String())
	assert.Contains(t, uploader.lastKey, ".png")
	assert.Equal(t, "https://cdn.example.com/"+uploader.lastKey, url)
}

func TestUploadImageErrorPropagates(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("bucket unavailable")}
	svc := NewArticleService(&fakeArticleRepository{}, uploader)

	_, err := svc.UploadImage(context.Background(), uuid.New(), "cover.jpg", []byte("img"), "image/jpeg")
	assert.Error(t, err)
}
