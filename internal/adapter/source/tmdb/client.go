package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Reel/1.0"
)

// Client implements domain.PageSource and domain.Validator for TMDB
type Client struct {
	baseURL    string
	imageURL   string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client.
// token may be a v3 API key or a v4 read access token.
func NewClient(baseURL, imageURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		imageURL: strings.TrimRight(imageURL, "/"),
		token:    token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// isReadToken reports whether token looks like a v4 read access token (a JWT)
func isReadToken(token string) bool {
	return strings.HasPrefix(token, "eyJ") && strings.Count(token, ".") == 2
}

// doRequest performs an authenticated GET request
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	useBearer := isReadToken(c.token)
	if !useBearer {
		query.Set("api_key", c.token)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if useBearer {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("tmdb request", "path", path, "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "error", err)
		return nil, domain.ErrSourceOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode != http.StatusOK {
		var status StatusResponse
		_ = json.Unmarshal(body, &status)
		c.logger.Error("tmdb request error", "status", resp.StatusCode, "message", status.StatusMessage)
		if status.StatusMessage != "" {
			return nil, fmt.Errorf("tmdb: %s (status %d)", status.StatusMessage, resp.StatusCode)
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

func (c *Client) getPage(ctx context.Context, path string, query url.Values, page int) (domain.Page, error) {
	if page < 1 || page > maxPages {
		return domain.Page{}, fmt.Errorf("page %d: %w", page, domain.ErrPageOutOfRange)
	}
	query.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return domain.Page{}, err
	}

	var resp PageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return domain.Page{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Page == 0 {
		resp.Page = page
	}

	return MapPage(resp, c.imageURL), nil
}

// FetchPage returns a page of popular movies
func (c *Client) FetchPage(ctx context.Context, page int) (domain.Page, error) {
	return c.getPage(ctx, "/movie/popular", url.Values{}, page)
}

// SearchPage returns a page of movies whose title matches query
func (c *Client) SearchPage(ctx context.Context, query string, page int) (domain.Page, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("include_adult", "false")
	return c.getPage(ctx, "/search/movie", q, page)
}

// Validate checks the token against /authentication
func (c *Client) Validate(ctx context.Context) error {
	body, err := c.doRequest(ctx, "/authentication", nil)
	if err != nil {
		return err
	}

	var status StatusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !status.Success {
		return domain.ErrAuthFailed
	}
	return nil
}
