// Package kanoon searches the Indian Kanoon legal database.
package kanoon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/nyaya-legal/nyaya/internal/config"
	"github.com/nyaya-legal/nyaya/internal/upstream"
)

// ErrNilConfig is returned when a nil config is provided.
var ErrNilConfig = errors.New("case search config is nil")

const (
	service = "Indian Kanoon"
	docURL  = "https://indiankanoon.org/doc/%s/"
)

// Document is one search hit.
type Document struct {
	Title       string `json:"title"`
	Headline    string `json:"headline"`
	PublishDate string `json:"publishdate"`
	DocSource   string `json:"docsource"`
	TID         string `json:"tid"`
	URL         string `json:"url"`
}

// Client calls the Indian Kanoon search API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a new Client from a ProviderConfig.
func NewClient(cfg *config.ProviderConfig) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("case search base_url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("case search api_key is required")
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{},
	}, nil
}

type searchResponse struct {
	Docs   []searchDoc `json:"docs"`
	Found  string      `json:"found"`
	ErrMsg string      `json:"errmsg"`
}

// The API returns tid as a number; older mirrors return a string.
type searchDoc struct {
	TID         json.Number `json:"tid"`
	Title       string      `json:"title"`
	Headline    string      `json:"headline"`
	PublishDate string      `json:"publishdate"`
	DocSource   string      `json:"docsource"`
}

// Search runs a free-text query and returns one page (0-based) of results.
func (c *Client) Search(ctx context.Context, query string, page int) ([]Document, error) {
	params := url.Values{}
	params.Set("formInput", query)
	params.Set("pagenum", strconv.Itoa(page))

	endpoint := c.baseURL + "/search/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, upstream.Wrap(service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.Wrap(service, fmt.Errorf("read search response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstream.Status(service, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, upstream.Wrap(service, fmt.Errorf("unmarshal search response: %w", err))
	}
	if sr.ErrMsg != "" {
		return nil, upstream.Wrap(service, errors.New(sr.ErrMsg))
	}

	docs := make([]Document, 0, len(sr.Docs))
	for _, d := range sr.Docs {
		tid := d.TID.String()
		docs = append(docs, Document{
			Title:       html.UnescapeString(d.Title),
			Headline:    headlineMarkdown(d.Headline),
			PublishDate: d.PublishDate,
			DocSource:   d.DocSource,
			TID:         tid,
			URL:         fmt.Sprintf(docURL, tid),
		})
	}
	return docs, nil
}

// headlineMarkdown converts the HTML snippet (query terms wrapped in <b>) to
// Markdown. The raw snippet is kept if conversion fails.
func headlineMarkdown(headline string) string {
	if headline == "" {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(headline)
	if err != nil {
		return headline
	}
	return strings.TrimSpace(md)
}
