// Package client is a Go client for the recipe catalog API. Pager implements
// the page navigation the browser UI uses, including the speculative
// next-page probe that decides lastness.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/firerecipes/backend/internal/models"
)

// Client calls the recipe REST API. Token, when set, is sent as a bearer
// credential on every request; the list endpoint degrades to the anonymous
// view on its own if the token is stale.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken attaches a bearer credential to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRequest holds the query parameters of a list call.
type ListRequest struct {
	Category         string
	OrderByField     string
	OrderByDirection string
	PageNumber       int
	PerPage          int
}

// ListResponse mirrors the list endpoint body. RecipeCount is an approximate
// hint; Documents carry publishDate as seconds since epoch.
type ListResponse struct {
	RecipeCount int64              `json:"recipeCount"`
	IsAuth      bool               `json:"isAuth"`
	Documents   []models.RecipeDoc `json:"documents"`
}

func (c *Client) ListRecipes(ctx context.Context, req ListRequest) (*ListResponse, error) {
	q := url.Values{}
	if req.Category != "" {
		q.Set("category", req.Category)
	}
	if req.OrderByField != "" {
		q.Set("orderByField", req.OrderByField)
		if req.OrderByDirection != "" {
			q.Set("orderByDirection", req.OrderByDirection)
		}
	}
	if req.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(req.PerPage))
		if req.PageNumber > 0 {
			q.Set("pageNumber", strconv.Itoa(req.PageNumber))
		}
	}

	var out ListResponse
	if err := c.do(ctx, http.MethodGet, "/recipes?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRecipe stores a new recipe and returns its assigned ID.
func (c *Client) CreateRecipe(ctx context.Context, payload models.RecipePayload) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/recipes", payload, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateRecipe fully replaces the recipe at id.
func (c *Client) UpdateRecipe(ctx context.Context, id string, payload models.RecipePayload) error {
	return c.do(ctx, http.MethodPut, "/recipes/"+url.PathEscape(id), payload, nil)
}

// DeleteRecipe removes the recipe at id. Image cleanup and counter updates
// happen server-side via triggers.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
