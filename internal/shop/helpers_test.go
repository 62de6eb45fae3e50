package shop

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/platform"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

// stubCatalog serves a fixed product list; a non-nil err fails every call.
type stubCatalog struct {
	products      []models.Product
	categories    []string
	err           error
	categoriesErr error
}

func (c *stubCatalog) Products(context.Context) ([]models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}

func (c *stubCatalog) Product(_ context.Context, id int) (*models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	for _, p := range c.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, platform.ErrNotFound
}

func (c *stubCatalog) Category(_ context.Context, slug string) ([]models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []models.Product
	for _, p := range c.products {
		if p.Category == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *stubCatalog) Categories(context.Context) ([]string, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.categoriesErr != nil {
		return nil, c.categoriesErr
	}
	return c.categories, nil
}

var categoryCycle = []string{"men's clothing", "jewelery", "electronics", "women's clothing"}

// catalogOf returns n products with IDs 1..n and prices 10, 20, ...
func catalogOf(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		id := i + 1
		out[i] = models.Product{
			ID:          id,
			Title:       fmt.Sprintf("Product %02d", id),
			Description: fmt.Sprintf("description of item %d", id),
			Price:       decimal.NewFromInt(int64(id * 10)),
			Category:    categoryCycle[i%len(categoryCycle)],
		}
	}
	return out
}

func newTestShop(t *testing.T, catalog platform.Catalog) *Shop {
	t.Helper()
	s := New(catalog, NewStores(storage.NewMemory()))
	require.NoError(t, s.Load(context.Background()))
	return s
}

func ids(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
