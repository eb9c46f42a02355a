package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"news-portal-backend/internal/domains/article/model"
)

func TestFeedConditionsPublishedOnly(t *testing.T) {
	conds, args := feedConditions(model.FeedFilter{PublishedOnly: true})

	assert.Equal(t, []string{"a.published = TRUE"}, conds)
	assert.Empty(t, args)
}

func TestFeedConditionsAdminQueryHasNoFilter(t *testing.T) {
	conds, args := feedConditions(model.FeedFilter{PublishedOnly: false})

	assert.Empty(t, conds)
	assert.Empty(t, args)
	assert.Equal(t, "", whereClause(conds))
}

func TestFeedConditionsCategoryIsCaseInsensitiveEquality(t *testing.T) {
	conds, args := feedConditions(model.FeedFilter{Category: "politik"})

	// ILIKE without wildcards: "politik" matches stored "Politik" but
	// nothing longer. An unknown slug yields zero rows, not an error.
	assert.Equal(t, []string{"a.category ILIKE $1"}, conds)
	assert.Equal(t, []interface{}{"politik"}, args)
}

func TestFeedConditionsEmptySearchAppliesNoTextFilter(t *testing.T) {
	for _, search := range []string{"", "   ", "\t\n"} {
		conds, args := feedConditions(model.FeedFilter{PublishedOnly: true, Search: search})

		assert.Equal(t, []string{"a.published = TRUE"}, conds, "search %q must add no clause", search)
		assert.Empty(t, args)
	}
}

func TestFeedConditionsSearchMatchesTitleOrBody(t *testing.T) {
	conds, args := feedConditions(model.FeedFilter{PublishedOnly: true, Search: " bbm "})

	assert.Equal(t, []string{
		"a.published = TRUE",
		"(a.title ILIKE $1 OR a.body ILIKE $2)",
	}, conds)
	assert.Equal(t, []interface{}{"%bbm%", "%bbm%"}, args)
}

func TestFeedConditionsAllFiltersCombined(t *testing.T) {
	conds, args := feedConditions(model.FeedFilter{
		PublishedOnly: true,
		Category:      "ekonomi",
		Search:        "inflasi",
	})

	assert.Equal(t, []string{
		"a.published = TRUE",
		"a.category ILIKE $1",
		"(a.title ILIKE $2 OR a.body ILIKE $3)",
	}, conds)
	assert.Equal(t, []interface{}{"ekonomi", "%inflasi%", "%inflasi%"}, args)

	assert.Equal(t,
		" WHERE a.published = TRUE AND a.category ILIKE $1 AND (a.title ILIKE $2 OR a.body ILIKE $3)",
		whereClause(conds))
}
