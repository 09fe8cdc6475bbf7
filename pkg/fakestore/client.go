package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the public demo catalog.
	DefaultBaseURL = "https://fakestoreapi.com"
)

// Config holds client construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// Client is a minimal HTTP client for the demo product catalog.
// Every call is a single attempt; failures surface as *FetchError.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// NewClient constructs a new catalog client with sane defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		debug:      cfg.Debug,
	}
}

// BaseURL returns the upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetProducts retrieves the full product list.
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.doRequest(ctx, "get products", http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// GetProduct retrieves a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	path := "/products/" + strconv.Itoa(id)
	var product *Product
	if err := c.doRequest(ctx, "get product", http.MethodGet, path, nil, &product); err != nil {
		return nil, err
	}
	// Upstream answers 200 with an empty body for unknown ids.
	if product == nil || product.ID == 0 {
		return nil, &FetchError{Op: "get product", URL: c.baseURL + path, StatusCode: http.StatusNotFound}
	}
	return product, nil
}

// GetCategories retrieves the category names.
func (c *Client) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.doRequest(ctx, "get categories", http.MethodGet, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// GetProductsByCategory retrieves the products of one category.
func (c *Client) GetProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.doRequest(ctx, "get products by category", http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// CreateProduct issues a mock create. The upstream does not persist it.
func (c *Client) CreateProduct(ctx context.Context, req *ProductRequest) (*Product, error) {
	var product Product
	if err := c.doRequest(ctx, "create product", http.MethodPost, "/products", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct issues a mock update. The upstream does not persist it.
func (c *Client) UpdateProduct(ctx context.Context, id int, req *ProductRequest) (*Product, error) {
	var product Product
	if err := c.doRequest(ctx, "update product", http.MethodPut, "/products/"+strconv.Itoa(id), req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct issues a mock delete. The upstream does not persist it.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.doRequest(ctx, "delete product", http.MethodDelete, "/products/"+strconv.Itoa(id), nil, nil)
}

// doRequest performs one HTTP call and decodes the JSON response into result
// when result is non-nil.
func (c *Client) doRequest(ctx context.Context, op, method, path string, body any, result any) error {
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)

		if c.debug {
			log.Debug().
				Str("method", method).
				Str("endpoint", endpoint).
				RawJSON("request", payload).
				Msg("[CATALOG] Outgoing request")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &FetchError{Op: op, URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Int("bytes", len(respBody)).
			Msg("[CATALOG] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, URL: endpoint, StatusCode: resp.StatusCode}
	}

	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return &FetchError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
