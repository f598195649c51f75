package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []domain.Movie {
	movies := make([]domain.Movie, n)
	for i := range movies {
		movies[i] = domain.Movie{ID: fmt.Sprintf("m%d", i+1), Title: fmt.Sprintf("Movie %d", i+1)}
	}
	return movies
}

func ids(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestFetchPagePaginates(t *testing.T) {
	c := New(numbered(45), 20, nil)
	ctx := context.Background()

	p1, err := c.FetchPage(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, p1.Movies, 20)
	assert.Equal(t, 2, p1.NextPage)
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, 45, p1.TotalResults)

	p3, err := c.FetchPage(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"m41", "m42", "m43", "m44", "m45"}, ids(p3.Movies))
	assert.False(t, p3.HasNext())

	_, err = c.FetchPage(ctx, 4)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
	_, err = c.FetchPage(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestEmptyCatalogFirstPage(t *testing.T) {
	c := New(nil, 0, nil)

	page, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Movies)
	assert.False(t, page.HasNext())
}

func TestNewDropsMoviesWithoutID(t *testing.T) {
	c := New([]domain.Movie{{Title: "No ID"}, {ID: "x", Title: "X"}}, 10, nil)

	page, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(page.Movies))
}

func TestSearchPageRanksMatches(t *testing.T) {
	c := New([]domain.Movie{
		{ID: "1", Title: "The Dark Knight"},
		{ID: "2", Title: "Batman Begins"},
		{ID: "3", Title: "Casablanca"},
		{ID: "4", Title: "Batman"},
		{ID: "5", Title: "The Lego Batman Movie"},
		{ID: "6", Title: "Bad Taste Man"},
	}, 20, nil)

	page, err := c.SearchPage(context.Background(), "Batman", 1)
	require.NoError(t, err)

	// exact, prefix, substring, then scattered
	assert.Equal(t, []string{"4", "2", "5", "6"}, ids(page.Movies))
	assert.Equal(t, 4, page.TotalResults)
}

func TestSearchPageNoMatches(t *testing.T) {
	c := New(numbered(5), 20, nil)

	page, err := c.SearchPage(context.Background(), "zzzzqx", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Movies)
	assert.Equal(t, 0, page.TotalResults)
}

func TestSearchPagePaginatesRankedResults(t *testing.T) {
	c := New(numbered(30), 10, nil)

	page, err := c.SearchPage(context.Background(), "movie", 2)
	require.NoError(t, err)
	assert.Equal(t, "m11", page.Movies[0].ID)
	assert.Equal(t, 3, page.NextPage)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(numbered(3), 10, nil).FetchPage(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.json")

	data, err := json.Marshal(numbered(3))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	c, err := Open(path, 2, nil)
	require.NoError(t, err)

	page, err := c.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"m3"}, ids(page.Movies))

	_, err = Open(filepath.Join(dir, "missing.json"), 2, nil)
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = Open(path, 2, nil)
	assert.Error(t, err)
}
