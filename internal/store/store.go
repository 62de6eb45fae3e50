// Package store holds the persisted shop state: cart, favorites, orders,
// the authenticated user, saved addresses and product reviews. Each store
// keeps its collection in memory and rewrites its whole storage key after
// every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

// Storage keys.
const (
	keyCart      = "cart"
	keyFavorites = "favorites"
	keyOrders    = "orders"
	keyUser      = "user"
	keyUsers     = "users"
	keyReviews   = "productReviews"
)

var (
	ErrEmailTaken         = errors.New("email address is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not logged in")
)

// observers is embedded by every store to provide Subscribe.
type observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

// Subscribe registers fn to run after each successful mutation and returns
// a function that removes it.
func (o *observers) Subscribe(fn func()) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]func())
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.fns, id)
	}
}

func (o *observers) notify() {
	o.mu.Lock()
	fns := make([]func(), 0, len(o.fns))
	// registration order
	for i := 0; i < o.next; i++ {
		if fn, ok := o.fns[i]; ok {
			fns = append(fns, fn)
		}
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// loadJSON decodes the value under key. A missing key and corrupt JSON
// both yield the zero T; corruption is logged. Only storage errors are
// returned.
func loadJSON[T any](ctx context.Context, st storage.Storage, key string) (T, error) {
	var v T
	raw, found, err := st.Get(ctx, key)
	if err != nil {
		return v, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return v, nil
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("store: discarding corrupt %q value: %v", key, err)
		var zero T
		return zero, nil
	}
	return v, nil
}

func saveJSON(ctx context.Context, st storage.Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := st.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
