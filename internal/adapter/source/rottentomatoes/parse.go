package rottentomatoes

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/reel/internal/domain"
)

var (
	yearInURL  = regexp.MustCompile(`/m/[^/]*_(\d{4})(?:/|$)`)
	yearInText = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

// parseBrowse extracts every movie tile on a browse page, in page order
func parseBrowse(doc *goquery.Document, baseURL string) []domain.Movie {
	var movies []domain.Movie
	doc.Find(`[data-qa="discovery-media-list-item"]`).Each(func(_ int, tile *goquery.Selection) {
		href, ok := tile.Attr("href")
		if !ok {
			href, _ = tile.Find("a[href]").First().Attr("href")
		}
		id := movieID(href)
		title := strings.TrimSpace(tile.Find(`[data-qa="discovery-media-list-item-title"]`).Text())
		if id == "" || title == "" {
			return
		}

		date := strings.TrimSpace(tile.Find(`[data-qa="discovery-media-list-item-start-date"]`).Text())
		poster, _ := tile.Find("rt-img, img").First().Attr("src")

		movies = append(movies, domain.Movie{
			ID:        id,
			Title:     title,
			PosterURL: poster,
			Year:      firstYear(date, href),
			Rating:    parseScore(tile.Find(`[slot="criticsScore"]`).Text()),
			URL:       baseURL + id,
		})
	})
	return movies
}

// parseSearch extracts movie rows from a search results page
func parseSearch(doc *goquery.Document, baseURL string) []domain.Movie {
	rows := doc.Find(`search-page-result[type="movie"] search-page-media-row`)
	if rows.Length() == 0 {
		rows = doc.Find("search-page-media-row")
	}

	var movies []domain.Movie
	rows.Each(func(_ int, row *goquery.Selection) {
		titleSel := row.Find("[slot=title]").First()
		title := strings.TrimSpace(titleSel.Text())

		href, ok := titleSel.Attr("href")
		if !ok {
			href, _ = row.Find("a[href]").First().Attr("href")
		}
		id := movieID(href)
		if id == "" || title == "" {
			return
		}

		poster, _ := row.Find("img").First().Attr("src")
		year := 0
		if y, ok := row.Attr("releaseyear"); ok {
			year, _ = strconv.Atoi(strings.TrimSpace(y))
		}
		if year == 0 {
			year = firstYear("", href)
		}
		score, _ := row.Attr("tomatometerscore")

		movies = append(movies, domain.Movie{
			ID:        id,
			Title:     title,
			PosterURL: poster,
			Year:      year,
			Rating:    parseScore(score),
			URL:       baseURL + id,
		})
	})
	return movies
}

// movieID returns the canonical /m/<slug> path of a movie link, or "" for
// links that are not movies (tv series, celebrities)
func movieID(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	path := strings.TrimRight(u.Path, "/")
	if !strings.HasPrefix(path, "/m/") || len(path) == len("/m/") {
		return ""
	}
	// Sub-pages such as /m/slug/reviews belong to the same movie
	if rest := path[len("/m/"):]; strings.Contains(rest, "/") {
		path = "/m/" + rest[:strings.Index(rest, "/")]
	}
	return path
}

func firstYear(text, href string) int {
	if m := yearInText.FindStringSubmatch(text); len(m) > 1 {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := yearInURL.FindStringSubmatch(href); len(m) > 1 {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	return 0
}

// parseScore converts a tomatometer percentage ("92%") to a 0-10 rating
func parseScore(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	pct, err := strconv.Atoi(s)
	if err != nil || pct < 0 || pct > 100 {
		return 0
	}
	return float64(pct) / 10
}
