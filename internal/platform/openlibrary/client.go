package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

type Client struct {
	httpClient    *http.Client
	userAgent     string
	baseURL       string
	coversBaseURL string
	limiter       *rate.Limiter
}

func NewClient(userAgent string, rps int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent:     userAgent,
		baseURL:       "https://openlibrary.org",
		coversBaseURL: "https://covers.openlibrary.org",
		limiter:       rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// SearchResponse matches search.json
type SearchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Key         string   `json:"key"`
		Title       string   `json:"title"`
		AuthorNames []string `json:"author_name"`
		CoverID     int      `json:"cover_i"`
	} `json:"docs"`
}

// FindCoverURL searches Open Library for the book and returns a medium
// cover image URL, or an empty string when no cover is available.
func (c *Client) FindCoverURL(ctx context.Context, title, author string) (string, error) {
	query := title
	if author != "" {
		query = title + " " + author
	}

	u := fmt.Sprintf("%s/search.json?q=%s&fields=key,title,author_name,cover_i&limit=1",
		c.baseURL, url.QueryEscape(query))

	var res SearchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return "", err
	}

	if len(res.Docs) == 0 || res.Docs[0].CoverID == 0 {
		return "", nil
	}
	return fmt.Sprintf("%s/b/id/%d-M.jpg", c.coversBaseURL, res.Docs[0].CoverID), nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
