package rottentomatoes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchHTML = `<html><body>
<search-page-result type="movie"><ul>
  <search-page-media-row releaseyear="1999" tomatometerscore="83">
    <a href="https://www.rottentomatoes.com/m/matrix" slot="thumbnail"><img src="https://img.example/matrix.jpg"></a>
    <a href="https://www.rottentomatoes.com/m/matrix" slot="title"> The Matrix </a>
  </search-page-media-row>
  <search-page-media-row releaseyear="" tomatometerscore="">
    <a href="/m/the_matrix_resurrections_2021/" slot="title">The Matrix Resurrections</a>
  </search-page-media-row>
  <search-page-media-row>
    <a href="/m/" slot="title">Broken</a>
  </search-page-media-row>
</ul></search-page-result>
<search-page-result type="tvSeries"><ul>
  <search-page-media-row releaseyear="2022">
    <a href="/tv/the_matrix_show" slot="title">The Matrix Show</a>
  </search-page-media-row>
</ul></search-page-result>
</body></html>`

func browseHTML(n int) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"discovery-tiles\">")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<div data-qa="discovery-media-list-item">
  <a href="/m/movie_%d"><rt-img src="https://img.example/%d.jpg"></rt-img></a>
  <span data-qa="discovery-media-list-item-title">Movie %d</span>
  <span data-qa="discovery-media-list-item-start-date">Streaming Apr 16, 2024</span>
  <rt-text slot="criticsScore">%d%%</rt-text>
</div>`, i, i, i, i%100)
	}
	b.WriteString("</div></body></html>")
	return b.String()
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, nil)
}

func TestParseSearch(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchHTML))
	require.NoError(t, err)

	movies := parseSearch(doc, "https://rt.example")
	require.Len(t, movies, 2)

	assert.Equal(t, domain.Movie{
		ID:        "/m/matrix",
		Title:     "The Matrix",
		PosterURL: "https://img.example/matrix.jpg",
		Year:      1999,
		Rating:    8.3,
		URL:       "https://rt.example/m/matrix",
	}, movies[0])

	assert.Equal(t, "/m/the_matrix_resurrections_2021", movies[1].ID)
	assert.Equal(t, 2021, movies[1].Year, "year falls back to the slug")
	assert.Zero(t, movies[1].Rating)
}

func TestSearchPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "the matrix", r.URL.Query().Get("search"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, searchHTML)
	})

	page, err := client.SearchPage(context.Background(), "the matrix", 1)
	require.NoError(t, err)
	assert.Len(t, page.Movies, 2)
	assert.Equal(t, 2, page.TotalResults)
	assert.False(t, page.HasNext())

	_, err = client.SearchPage(context.Background(), "the matrix", 2)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestFetchPageSlicesCumulativeListing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/browse/movies_at_home/sort:popular", r.URL.Path)
		switch r.URL.Query().Get("page") {
		case "":
			fmt.Fprint(w, browseHTML(30))
		case "2":
			fmt.Fprint(w, browseHTML(45))
		default:
			http.NotFound(w, r)
		}
	})

	first, err := client.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, first.Movies, 30)
	assert.Equal(t, "/m/movie_1", first.Movies[0].ID)
	assert.Equal(t, 2024, first.Movies[0].Year)
	assert.InDelta(t, 0.1, first.Movies[0].Rating, 1e-9)
	assert.True(t, first.HasNext())
	assert.Equal(t, 2, first.NextPage)

	second, err := client.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, second.Movies, 15)
	assert.Equal(t, "/m/movie_31", second.Movies[0].ID)
	assert.False(t, second.HasNext())

	_, err = client.FetchPage(context.Background(), 3)
	assert.Error(t, err)
}

func TestSliceBrowseShortListing(t *testing.T) {
	page := sliceBrowse(make([]domain.Movie, 20), 3)
	assert.Empty(t, page.Movies)
	assert.False(t, page.HasNext())
	assert.Equal(t, 20, page.TotalResults)
}

func TestOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(base, nil).FetchPage(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrSourceOffline)
}

func TestMovieID(t *testing.T) {
	tests := map[string]string{
		"https://www.rottentomatoes.com/m/dune_part_two": "/m/dune_part_two",
		"/m/dune_part_two/":                              "/m/dune_part_two",
		"/m/dune_part_two/reviews?type=top":              "/m/dune_part_two",
		"/tv/shogun":                                     "",
		"/m/":                                            "",
		"":                                               "",
	}
	for href, want := range tests {
		assert.Equal(t, want, movieID(href), "href %q", href)
	}
}

func TestParseScore(t *testing.T) {
	assert.InDelta(t, 9.2, parseScore(" 92% "), 1e-9)
	assert.InDelta(t, 10.0, parseScore("100"), 1e-9)
	assert.Zero(t, parseScore(""))
	assert.Zero(t, parseScore("--"))
	assert.Zero(t, parseScore("140%"))
}
