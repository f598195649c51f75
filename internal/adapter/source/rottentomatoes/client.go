package rottentomatoes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// tilesPerPage is how many tiles each ?page= step adds to a browse listing
	tilesPerPage = 30

	browsePath = "/browse/movies_at_home/sort:popular"
)

// Client implements domain.PageSource by scraping rottentomatoes.com.
// Browse pages are cumulative on the site: ?page=N returns the first N*30 tiles.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Rotten Tomatoes scraper
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

func (c *Client) getDocument(ctx context.Context, path string, query url.Values) (*goquery.Document, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	c.logger.Debug("rottentomatoes request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("rottentomatoes request failed", "error", err)
		return nil, domain.ErrSourceOffline
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("rottentomatoes request error", "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// FetchPage returns the tiles page N adds to the popular listing
func (c *Client) FetchPage(ctx context.Context, page int) (domain.Page, error) {
	if page < 1 {
		return domain.Page{}, fmt.Errorf("page %d: %w", page, domain.ErrPageOutOfRange)
	}

	query := url.Values{}
	if page > 1 {
		query.Set("page", fmt.Sprint(page))
	}
	doc, err := c.getDocument(ctx, browsePath, query)
	if err != nil {
		return domain.Page{}, err
	}

	all := parseBrowse(doc, c.baseURL)
	return sliceBrowse(all, page), nil
}

// sliceBrowse keeps only the tiles past the previous pages of a cumulative listing
func sliceBrowse(all []domain.Movie, page int) domain.Page {
	start := (page - 1) * tilesPerPage
	p := domain.Page{
		Number:       page,
		TotalPages:   page,
		TotalResults: len(all),
	}
	if start < len(all) {
		p.Movies = all[start:]
	}
	// A full listing means the site likely has another step
	if len(all) >= page*tilesPerPage {
		p.NextPage = page + 1
		p.TotalPages = page + 1
	}
	return p
}

// SearchPage returns movies matching query. Search results are a single page.
func (c *Client) SearchPage(ctx context.Context, query string, page int) (domain.Page, error) {
	if page != 1 {
		return domain.Page{}, fmt.Errorf("page %d: %w", page, domain.ErrPageOutOfRange)
	}

	doc, err := c.getDocument(ctx, "/search", url.Values{"search": {query}})
	if err != nil {
		return domain.Page{}, err
	}

	movies := parseSearch(doc, c.baseURL)
	return domain.Page{
		Number:       1,
		Movies:       movies,
		TotalPages:   1,
		TotalResults: len(movies),
	}, nil
}
