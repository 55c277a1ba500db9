package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/domain/entity"
)

var _ output.SearchPort = (*Client)(nil)

const defaultBaseURL = "https://serpapi.com"

type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Client queries the google_shopping engine. It asks for 10 results; the
// renderer applies the 6-card cap after dropping linkless items.
type Client struct {
	cfg    Config
	logger output.LoggerPort
}

func NewClient(cfg Config, logger output.LoggerPort) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{cfg: cfg, logger: logger}
}

type shoppingItem struct {
	Thumbnail   string `json:"thumbnail"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Source      string `json:"source"`
	Link        string `json:"link"`
	ProductLink string `json:"product_link"`
}

type searchResponse struct {
	ShoppingResults []shoppingItem `json:"shopping_results"`
	Error           string         `json:"error"`
}

func (c *Client) Search(ctx context.Context, query string) ([]entity.Product, error) {
	if c.cfg.APIKey == "" {
		return nil, output.ErrMissingCredentials
	}

	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	endpoint.Path = "/search.json"

	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("google_domain", "google.com")
	params.Set("gl", "us")
	params.Set("hl", "en")
	params.Set("num", "10")
	params.Set("api_key", c.cfg.APIKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned %s", resp.Status)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("search provider error: %s", parsed.Error)
	}

	c.logger.Info("Shopping search completed", "query", query, "results", len(parsed.ShoppingResults))

	products := make([]entity.Product, 0, len(parsed.ShoppingResults))
	for _, item := range parsed.ShoppingResults {
		link := item.Link
		if link == "" {
			link = item.ProductLink
		}
		products = append(products, entity.Product{
			Thumbnail: item.Thumbnail,
			Title:     item.Title,
			Price:     item.Price,
			Source:    item.Source,
			Link:      link,
		})
	}
	return products, nil
}
