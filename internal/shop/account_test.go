package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/store"
)

func TestRegisterPasswordMismatch(t *testing.T) {
	s := newTestShop(t, &stubCatalog{})
	_, err := s.Register(context.Background(), RegisterForm{
		Name: "Ali", Email: "ali@example.com", Password: "one", ConfirmPassword: "two",
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "confirmPassword does not match")

	_, ok := s.CurrentUser()
	assert.False(t, ok)
}

func TestLoginLogout(t *testing.T) {
	s := newTestShop(t, &stubCatalog{})
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterForm{Name: "Ali", Email: "ali@example.com", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	_, err = s.Login(ctx, "ali@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Login(ctx, "ali@example.com", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	u, err := s.Login(ctx, "ali@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Ali", u.Name)
}

func TestProfile(t *testing.T) {
	s := newTestShop(t, &stubCatalog{products: catalogOf(2)})
	ctx := context.Background()

	_, err := s.Profile(ctx)
	assert.ErrorIs(t, err, store.ErrNotAuthenticated)

	_, err = s.Register(ctx, RegisterForm{Name: "Ali", Email: "ali@example.com", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)

	form := validForm()
	form.PaymentMethod = PaymentBankTransfer
	for i := 0; i < 6; i++ {
		_, err := s.AddToCart(ctx, 1)
		require.NoError(t, err)
		_, err = s.Checkout(ctx, form)
		require.NoError(t, err)
	}

	view, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ali", view.User.Name)
	assert.Nil(t, view.Address)
	assert.Len(t, view.RecentOrders, 5)
	assert.Equal(t, 6, view.OrderCount)
	assert.Equal(t, s.Orders()[0].ID, view.RecentOrders[0].ID)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestShop(t, &stubCatalog{})
	ctx := context.Background()

	blank := ""
	_, err := s.UpdateProfile(ctx, models.UserPatch{Name: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	name := "Ali Veli"
	_, err = s.UpdateProfile(ctx, models.UserPatch{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotAuthenticated)

	_, err = s.Register(ctx, RegisterForm{Name: "Ali", Email: "ali@example.com", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)
	u, err := s.UpdateProfile(ctx, models.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ali Veli", u.Name)
}

func TestSaveAddress(t *testing.T) {
	s := newTestShop(t, &stubCatalog{})
	ctx := context.Background()

	_, err := s.SaveAddress(ctx, models.Address{})
	assert.ErrorIs(t, err, store.ErrNotAuthenticated)

	_, err = s.Register(ctx, RegisterForm{Name: "Ali", Email: "ali@example.com", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)

	_, err = s.SaveAddress(ctx, models.Address{ShippingAddress: models.ShippingAddress{FullName: "Ali"}})
	require.ErrorIs(t, err, ErrValidation)

	addr := models.Address{
		ShippingAddress: models.ShippingAddress{
			FullName: "Ali Veli", Address: "Kızılay 1", City: "Ankara", PostalCode: "06000",
		},
		Phone: "0312 000 00 00",
	}
	saved, err := s.SaveAddress(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, DefaultCountry, saved.Country)

	view, err := s.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, view.Address)
	assert.Equal(t, "0312 000 00 00", view.Address.Phone)
}
