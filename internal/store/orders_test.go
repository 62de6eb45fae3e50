package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

func draft(total string) models.OrderDraft {
	return models.OrderDraft{
		Items:       []models.OrderItem{{Product: product(1, total), Quantity: 1}},
		TotalAmount: decimal.RequireFromString(total),
		ShippingAddress: models.ShippingAddress{
			FullName: "Ada Lovelace", Address: "1 Main St", City: "Istanbul",
			PostalCode: "34000", Country: "Türkiye",
		},
		PaymentMethod: "Bank Transfer",
	}
}

func TestAddOrderStampsAndPrepends(t *testing.T) {
	ctx := context.Background()
	o := NewOrders(storage.NewMemory())
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	o.now = func() time.Time { return fixed }

	first, err := o.AddOrder(ctx, draft("10.00"))
	require.NoError(t, err)
	second, err := o.AddOrder(ctx, draft("20.00"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, fixed, first.Date)
	assert.Regexp(t, `^ORD-\d+-[0-9A-F]{8}$`, first.ID)
	// same millisecond, still distinct
	assert.NotEqual(t, first.ID, second.ID)

	orders := o.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderIDsUniqueUnderBurst(t *testing.T) {
	ctx := context.Background()
	o := NewOrders(storage.NewMemory())
	o.now = func() time.Time { return time.UnixMilli(1700000000000) }

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		ord, err := o.AddOrder(ctx, draft("1.00"))
		require.NoError(t, err)
		assert.False(t, seen[ord.ID], ord.ID)
		seen[ord.ID] = true
	}
}

func TestOrderByIDAndRecent(t *testing.T) {
	ctx := context.Background()
	o := NewOrders(storage.NewMemory())

	var ids []string
	for i := 0; i < 7; i++ {
		ord, err := o.AddOrder(ctx, draft("1.00"))
		require.NoError(t, err)
		ids = append(ids, ord.ID)
	}

	got, ok := o.OrderByID(ids[3])
	require.True(t, ok)
	assert.Equal(t, ids[3], got.ID)

	_, ok = o.OrderByID("ORD-missing")
	assert.False(t, ok)

	recent := o.Recent(5)
	require.Len(t, recent, 5)
	assert.Equal(t, ids[6], recent[0].ID)
	assert.Len(t, o.Recent(50), 7)
	assert.Equal(t, 7, o.Len())
}

func TestOrdersReloadPreservesOrder(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	o := NewOrders(st)
	for _, total := range []string{"1.00", "2.50", "3.75"} {
		_, err := o.AddOrder(ctx, draft(total))
		require.NoError(t, err)
	}

	reloaded := NewOrders(st)
	require.NoError(t, reloaded.Load(ctx))

	want, got := o.Orders(), reloaded.Orders()
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, want[i].TotalAmount.Equal(got[i].TotalAmount))
		assert.True(t, want[i].Date.Equal(got[i].Date))
		assert.Equal(t, want[i].ShippingAddress, got[i].ShippingAddress)
	}
}

func TestAddOrderFailedWriteLeavesHistory(t *testing.T) {
	ctx := context.Background()
	o := NewOrders(failingStorage{Memory: storage.NewMemory(), err: errDiskFull})

	_, err := o.AddOrder(ctx, draft("5.00"))
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, o.Orders())
}
