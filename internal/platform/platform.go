package platform

import (
	"context"
	"errors"

	"github.com/yunisnasibov/e-ticaret-12/internal/models"
)

var (
	// ErrUnavailable wraps every failed catalog call: transport errors,
	// timeouts, non-2xx statuses and undecodable bodies.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrNotFound reports a product ID the catalog does not know.
	ErrNotFound = errors.New("product not found")
)

// Catalog is a read-only remote product catalog.
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id int) (*models.Product, error)
	Category(ctx context.Context, slug string) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}
