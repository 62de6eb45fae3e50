package store

import (
	"context"
	"slices"
	"sync"

	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

// Favorites is a set of products keyed by product ID.
type Favorites struct {
	observers

	storage  storage.Storage
	mu       sync.RWMutex
	products []models.Product
}

func NewFavorites(st storage.Storage) *Favorites {
	return &Favorites{storage: st}
}

func (f *Favorites) Load(ctx context.Context) error {
	products, err := loadJSON[[]models.Product](ctx, f.storage, keyFavorites)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.products = products
	f.mu.Unlock()
	return nil
}

func (f *Favorites) Save(ctx context.Context) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.save(ctx)
}

func (f *Favorites) save(ctx context.Context) error {
	products := f.products
	if products == nil {
		products = []models.Product{}
	}
	return saveJSON(ctx, f.storage, keyFavorites, products)
}

func (f *Favorites) Items() []models.Product {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.products)
}

func (f *Favorites) IsFavorite(productID int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.index(productID) >= 0
}

// Add inserts p unless a product with the same ID is already present.
func (f *Favorites) Add(ctx context.Context, p models.Product) error {
	return f.mutate(ctx, func() {
		if f.index(p.ID) < 0 {
			f.products = append(f.products, p)
		}
	})
}

func (f *Favorites) Remove(ctx context.Context, productID int) error {
	return f.mutate(ctx, func() {
		f.products = slices.DeleteFunc(f.products, func(p models.Product) bool {
			return p.ID == productID
		})
	})
}

// Toggle adds p when absent and removes it otherwise. It reports whether p
// is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, p models.Product) (bool, error) {
	var added bool
	err := f.mutate(ctx, func() {
		if i := f.index(p.ID); i >= 0 {
			f.products = slices.Delete(f.products, i, i+1)
			return
		}
		f.products = append(f.products, p)
		added = true
	})
	return added, err
}

func (f *Favorites) Clear(ctx context.Context) error {
	return f.mutate(ctx, func() {
		f.products = nil
	})
}

func (f *Favorites) mutate(ctx context.Context, fn func()) error {
	f.mu.Lock()
	fn()
	err := f.save(ctx)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	f.notify()
	return nil
}

func (f *Favorites) index(productID int) int {
	return slices.IndexFunc(f.products, func(p models.Product) bool {
		return p.ID == productID
	})
}
