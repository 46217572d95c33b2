// Package mealdb is a thin client for TheMealDB JSON API. Responses are
// relayed as raw JSON; only lookups are decoded into models.Recipe.
package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"mykitchen_backend/apperr"
	"mykitchen_backend/models"
)

// DefaultBaseURL is the public TheMealDB v1 endpoint using the test key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

const maxBodyBytes = 10 << 20

// ErrNotFound is returned when a lookup yields no meals.
var ErrNotFound = errors.New("recipe not found")

// Recorder observes outbound calls.
type Recorder interface {
	ObserveUpstream(operation, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveUpstream(string, string, time.Duration) {}

// Client calls TheMealDB.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	recorder   Recorder
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRecorder reports every outbound call to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient returns a client for baseURL. A zero timeout means outbound
// calls are bounded only by the request context. A nil logger discards logs.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		recorder:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks meals up by name. An empty query lists every meal.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	return c.getJSON(ctx, "search", "search.php", url.Values{"s": {query}})
}

// ListAll returns the unfiltered meal list.
func (c *Client) ListAll(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, "list_all", "search.php", url.Values{"s": {""}})
}

// FilterByIngredient filters meals by main ingredient. Only the first entry
// of a comma separated list is used, as the free API takes a single one.
func (c *Client) FilterByIngredient(ctx context.Context, ingredients string) (json.RawMessage, error) {
	first := strings.TrimSpace(strings.Split(ingredients, ",")[0])
	return c.getJSON(ctx, "filter", "filter.php", url.Values{"i": {first}})
}

// Lookup returns the raw lookup response for id.
func (c *Client) Lookup(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getJSON(ctx, "lookup", "lookup.php", url.Values{"i": {id}})
}

// Recipe looks id up and decodes the first meal. It returns an apperr
// NOT_FOUND wrapping ErrNotFound when the result set is empty.
func (c *Client) Recipe(ctx context.Context, id string) (models.Recipe, error) {
	raw, err := c.Lookup(ctx, id)
	if err != nil {
		return models.Recipe{}, err
	}

	var resp struct {
		Meals []models.Recipe `json:"meals"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.Recipe{}, apperr.Upstream(fmt.Errorf("decode lookup %q: %w", id, err))
	}
	if len(resp.Meals) == 0 {
		return models.Recipe{}, apperr.Wrap(ErrNotFound, apperr.CodeNotFound, "Recipe not found")
	}
	return resp.Meals[0], nil
}

// Image downloads an image, returning its bytes and reported content type.
func (c *Client) Image(ctx context.Context, imageURL string) ([]byte, string, error) {
	body, header, err := c.do(ctx, "image", imageURL)
	if err != nil {
		return nil, "", err
	}
	return body, header.Get("Content-Type"), nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())

	body, _, err := c.do(ctx, op, endpoint)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, apperr.Upstream(fmt.Errorf("%s: response is not valid JSON", op))
	}
	return json.RawMessage(body), nil
}

func (c *Client) do(ctx context.Context, op, endpoint string) ([]byte, http.Header, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.recorder.ObserveUpstream(op, "error", time.Since(start))
		return nil, nil, apperr.Upstream(fmt.Errorf("build %s request: %w", op, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.ObserveUpstream(op, "error", time.Since(start))
		c.logger.Warn("MealDB request failed", zap.String("operation", op), zap.Error(err))
		return nil, nil, apperr.Upstream(fmt.Errorf("%s: %w", op, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.recorder.ObserveUpstream(op, "bad_status", time.Since(start))
		c.logger.Warn("MealDB returned unexpected status",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil, apperr.Upstream(fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.recorder.ObserveUpstream(op, "error", time.Since(start))
		return nil, nil, apperr.Upstream(fmt.Errorf("read %s response: %w", op, err))
	}

	c.recorder.ObserveUpstream(op, "ok", time.Since(start))
	return body, resp.Header, nil
}
