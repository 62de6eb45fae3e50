package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

func TestAddressesPerUser(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	a := NewAddresses(st)

	_, found, err := a.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, found)

	addr := models.Address{
		ShippingAddress: models.ShippingAddress{FullName: "Ada", Address: "1 Main St", City: "Izmir", PostalCode: "35000", Country: "Türkiye"},
		Phone:           "+90 555 000 0000",
	}
	require.NoError(t, a.Save(ctx, "user-1", addr))

	got, found, err := a.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, addr, got)

	_, found, err = a.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, _ = st.Get(ctx, "address-user-1")
	assert.True(t, found)
}
