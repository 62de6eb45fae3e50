// Package fakestore is the catalog client for fakestoreapi.com.
package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yunisnasibov/e-ticaret-12/internal/httputil"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/platform"
)

const (
	DefaultBaseURL = "https://fakestoreapi.com"

	DefaultTimeout           = 10 * time.Second
	DefaultCategoriesTimeout = 5 * time.Second
)

// Client implements platform.Catalog. Each call gets its own deadline and
// is attempted exactly once.
type Client struct {
	client            *http.Client
	baseURL           string
	timeout           time.Duration
	categoriesTimeout time.Duration
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithCategoriesTimeout(d time.Duration) Option {
	return func(c *Client) { c.categoriesTimeout = d }
}

func NewClient(client *http.Client, opts ...Option) *Client {
	if client == nil {
		client = httputil.NewHTTPClient(nil)
	}
	c := &Client{
		client:            client,
		baseURL:           DefaultBaseURL,
		timeout:           DefaultTimeout,
		categoriesTimeout: DefaultCategoriesTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ platform.Catalog = (*Client)(nil)

// Products calls GET /products.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/products", c.timeout, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product calls GET /products/{id}. The API answers an unknown ID with 200
// and an empty body; both that and a 404 map to platform.ErrNotFound.
func (c *Client) Product(ctx context.Context, id int) (*models.Product, error) {
	var p *models.Product
	err := c.get(ctx, "/products/"+strconv.Itoa(id), c.timeout, &p)
	if errors.Is(err, errEmptyBody) || errors.Is(err, errStatusNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, platform.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, platform.ErrNotFound)
	}
	return p, nil
}

// Category calls GET /products/category/{slug}.
func (c *Client) Category(ctx context.Context, slug string) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/products/category/"+url.PathEscape(slug), c.timeout, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories calls GET /products/categories with the shorter categories
// deadline.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/products/categories", c.categoriesTimeout, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

var (
	errEmptyBody      = errors.New("empty response body")
	errStatusNotFound = errors.New("status 404")
)

func (c *Client) get(ctx context.Context, path string, timeout time.Duration, out any) error {
	platform.ReportProgress(ctx, "GET "+path)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", platform.ErrUnavailable, err)
	}
	for k, v := range httputil.JSONHeaders() {
		req.Header[k] = v
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", platform.ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", platform.ErrUnavailable, path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: GET %s: %w", platform.ErrUnavailable, path, errStatusNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: status %d", platform.ErrUnavailable, path, resp.StatusCode)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: GET %s: %w", platform.ErrUnavailable, path, errEmptyBody)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", platform.ErrUnavailable, path, err)
	}
	return nil
}
