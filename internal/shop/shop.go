// Package shop composes the catalog and the persisted stores into the
// storefront views: home, browse, category, search, product detail, cart,
// favorites, checkout, account and orders.
package shop

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/yunisnasibov/e-ticaret-12/internal/platform"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
	"github.com/yunisnasibov/e-ticaret-12/internal/store"
)

const (
	DefaultCountry       = "Türkiye"
	DefaultMaxConcurrent = 4
)

// Stores bundles the persisted state the shop works on.
type Stores struct {
	Cart      *store.Cart
	Favorites *store.Favorites
	Orders    *store.Orders
	Auth      *store.Auth
	Addresses *store.Addresses
	Reviews   *store.Reviews
}

// NewStores builds every store over the same storage.
func NewStores(st storage.Storage) Stores {
	return Stores{
		Cart:      store.NewCart(st),
		Favorites: store.NewFavorites(st),
		Orders:    store.NewOrders(st),
		Auth:      store.NewAuth(st),
		Addresses: store.NewAddresses(st),
		Reviews:   store.NewReviews(st),
	}
}

type Shop struct {
	stores         Stores
	catalog        platform.Catalog
	validate       *validator.Validate
	defaultCountry string
	maxConcurrent  int
}

type Option func(*Shop)

// WithDefaultCountry sets the country used when checkout leaves it blank.
func WithDefaultCountry(country string) Option {
	return func(s *Shop) { s.defaultCountry = country }
}

// WithMaxConcurrent bounds the number of catalog calls a view runs at once.
func WithMaxConcurrent(n int) Option {
	return func(s *Shop) { s.maxConcurrent = n }
}

func New(catalog platform.Catalog, stores Stores, opts ...Option) *Shop {
	s := &Shop{
		stores:         stores,
		catalog:        catalog,
		validate:       newValidator(),
		defaultCountry: DefaultCountry,
		maxConcurrent:  DefaultMaxConcurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxConcurrent < 1 {
		s.maxConcurrent = 1
	}
	return s
}

// Load hydrates the stores from storage. Addresses are read on demand.
func (s *Shop) Load(ctx context.Context) error {
	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{"cart", s.stores.Cart.Load},
		{"favorites", s.stores.Favorites.Load},
		{"orders", s.stores.Orders.Load},
		{"auth", s.stores.Auth.Load},
		{"reviews", s.stores.Reviews.Load},
	}
	for _, l := range loaders {
		if err := l.load(ctx); err != nil {
			return fmt.Errorf("load %s: %w", l.name, err)
		}
	}
	return nil
}
