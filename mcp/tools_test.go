package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/platform"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

type stubCatalog struct{ products []models.Product }

func (c stubCatalog) Products(context.Context) ([]models.Product, error) { return c.products, nil }

func (c stubCatalog) Product(_ context.Context, id int) (*models.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, platform.ErrNotFound
}

func (c stubCatalog) Category(_ context.Context, slug string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range c.products {
		if p.Category == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c stubCatalog) Categories(context.Context) ([]string, error) {
	return []string{"electronics", "jewelery"}, nil
}

func newTestTools(t *testing.T) *tools {
	t.Helper()
	products := make([]models.Product, 4)
	for i := range products {
		products[i] = models.Product{
			ID:       i + 1,
			Title:    fmt.Sprintf("Item %d", i+1),
			Price:    decimal.NewFromInt(int64(10 * (i + 1))),
			Category: []string{"electronics", "jewelery"}[i%2],
		}
	}
	app := shop.New(stubCatalog{products: products}, shop.NewStores(storage.NewMemory()))
	require.NoError(t, app.Load(context.Background()))
	return &tools{shop: app}
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestCartTools(t *testing.T) {
	tl := newTestTools(t)

	_, isErr := call(t, tl.cartAdd, map[string]any{"id": float64(2)})
	require.False(t, isErr)
	out, isErr := call(t, tl.cartAdd, map[string]any{"id": float64(2)})
	require.False(t, isErr)

	var view shop.CartView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "40", view.Total.String())

	out, isErr = call(t, tl.cartDecrease, map[string]any{"id": float64(2)})
	require.False(t, isErr)
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 1, view.Count)

	out, isErr = call(t, tl.cartAdd, map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, out, "id is required")

	out, isErr = call(t, tl.cartAdd, map[string]any{"id": float64(99)})
	assert.True(t, isErr)
	assert.Contains(t, out, "product not found")

	_, isErr = call(t, tl.cartClear, nil)
	require.False(t, isErr)
	out, _ = call(t, tl.cartView, nil)
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Empty(t, view.Items)
}

func TestCheckoutTool(t *testing.T) {
	tl := newTestTools(t)

	out, isErr := call(t, tl.checkout, map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, out, "cart is empty")

	_, isErr = call(t, tl.cartAdd, map[string]any{"id": float64(1)})
	require.False(t, isErr)

	out, isErr = call(t, tl.checkout, map[string]any{"full_name": "Ali Veli"})
	assert.True(t, isErr)
	assert.Contains(t, out, "city is required")

	out, isErr = call(t, tl.checkout, map[string]any{
		"full_name":      "Ali Veli",
		"address":        "Kızılay 1",
		"city":           "Ankara",
		"postal_code":    "06000",
		"payment_method": "cash-on-delivery",
	})
	require.False(t, isErr, out)
	var order models.Order
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	assert.Equal(t, "Cash on Delivery", order.PaymentMethod)
	assert.Equal(t, models.StatusPending, order.Status)

	out, isErr = call(t, tl.orderDetail, map[string]any{"id": order.ID})
	require.False(t, isErr)
	assert.Contains(t, out, order.ID)

	_, isErr = call(t, tl.orderDetail, map[string]any{"id": "ORD-0-NOPE"})
	assert.True(t, isErr)

	out, _ = call(t, tl.listOrders, nil)
	var orders []models.Order
	require.NoError(t, json.Unmarshal([]byte(out), &orders))
	assert.Len(t, orders, 1)
}

func TestAccountTools(t *testing.T) {
	tl := newTestTools(t)

	out, isErr := call(t, tl.profile, nil)
	assert.True(t, isErr)
	assert.Contains(t, out, "not logged in")

	_, isErr = call(t, tl.register, map[string]any{
		"name": "Leyla", "email": "leyla@example.com", "password": "pw", "confirm_password": "pw",
	})
	require.False(t, isErr)

	out, isErr = call(t, tl.updateProfile, map[string]any{"name": "Leyla Q"})
	require.False(t, isErr)
	assert.Contains(t, out, "Leyla Q")

	_, isErr = call(t, tl.saveAddress, map[string]any{
		"full_name": "Leyla Q", "address": "Nizami 5", "city": "Bakı", "postal_code": "AZ1000", "phone": "+994",
	})
	require.False(t, isErr)

	out, isErr = call(t, tl.profile, nil)
	require.False(t, isErr)
	assert.Contains(t, out, "Nizami 5")

	out, isErr = call(t, tl.addReview, map[string]any{"product_id": float64(1), "rating": float64(4), "comment": "nice"})
	require.False(t, isErr)
	assert.Contains(t, out, "Leyla Q")

	_, isErr = call(t, tl.logout, nil)
	require.False(t, isErr)

	out, isErr = call(t, tl.login, map[string]any{"email": "leyla@example.com", "password": "nope"})
	assert.True(t, isErr)
	assert.Contains(t, out, "invalid email or password")
}

func TestCatalogTools(t *testing.T) {
	tl := newTestTools(t)

	out, isErr := call(t, tl.searchProducts, map[string]any{"query": "item", "sort": "price-desc", "max_price": float64(30)})
	require.False(t, isErr)
	var view shop.SearchView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.NotEmpty(t, view.Products)
	assert.True(t, view.Products[0].Price.Equal(decimal.NewFromInt(30)))

	_, isErr = call(t, tl.searchProducts, map[string]any{"sort": "random"})
	assert.True(t, isErr)

	out, isErr = call(t, tl.listCategories, nil)
	require.False(t, isErr)
	assert.Contains(t, out, "gifts")

	out, isErr = call(t, tl.getCategory, map[string]any{"slug": "jewelery"})
	require.False(t, isErr)
	assert.Contains(t, out, "Item 2")

	out, isErr = call(t, tl.favoriteToggle, map[string]any{"id": float64(3)})
	require.False(t, isErr)
	assert.Contains(t, out, `"favorite": true`)

	out, isErr = call(t, tl.productDetail, map[string]any{"id": float64(3)})
	require.False(t, isErr)
	assert.Contains(t, out, `"favorite": true`)
}

func TestHTTPHandler(t *testing.T) {
	tl := newTestTools(t)
	h := newHTTPHandler(tl.shop, "secret")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
}
