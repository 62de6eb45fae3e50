package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

// Orders is the append-only order history, most recent first.
type Orders struct {
	observers

	storage storage.Storage
	mu      sync.RWMutex
	orders  []models.Order
	now     func() time.Time
}

func NewOrders(st storage.Storage) *Orders {
	return &Orders{storage: st, now: time.Now}
}

func (o *Orders) Load(ctx context.Context) error {
	orders, err := loadJSON[[]models.Order](ctx, o.storage, keyOrders)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.orders = orders
	o.mu.Unlock()
	return nil
}

func (o *Orders) Save(ctx context.Context) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.save(ctx)
}

func (o *Orders) save(ctx context.Context) error {
	orders := o.orders
	if orders == nil {
		orders = []models.Order{}
	}
	return saveJSON(ctx, o.storage, keyOrders, orders)
}

// Orders returns all orders, most recent first.
func (o *Orders) Orders() []models.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.orders)
}

// Recent returns at most n of the newest orders.
func (o *Orders) Recent(n int) []models.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if n > len(o.orders) {
		n = len(o.orders)
	}
	return slices.Clone(o.orders[:n])
}

func (o *Orders) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.orders)
}

// OrderByID scans the history for id.
func (o *Orders) OrderByID(id string) (models.Order, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, ord := range o.orders {
		if ord.ID == id {
			return ord, true
		}
	}
	return models.Order{}, false
}

// AddOrder stamps an ID and creation time onto draft, fixes its status to
// pending and puts it at the front of the history. A failed write leaves
// the history unchanged.
func (o *Orders) AddOrder(ctx context.Context, draft models.OrderDraft) (models.Order, error) {
	now := o.now()
	order := models.Order{
		ID:              newOrderID(now),
		Items:           slices.Clone(draft.Items),
		TotalAmount:     draft.TotalAmount,
		Date:            now.UTC(),
		Status:          models.StatusPending,
		ShippingAddress: draft.ShippingAddress,
		PaymentMethod:   draft.PaymentMethod,
	}

	o.mu.Lock()
	o.orders = append([]models.Order{order}, o.orders...)
	err := o.save(ctx)
	if err != nil {
		o.orders = o.orders[1:]
	}
	o.mu.Unlock()
	if err != nil {
		return models.Order{}, err
	}
	o.notify()
	return order, nil
}

// newOrderID is ORD-<unix millis>-<8 hex>. The random suffix keeps IDs
// unique when several orders land in the same millisecond.
func newOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), strings.ToUpper(suffix))
}
