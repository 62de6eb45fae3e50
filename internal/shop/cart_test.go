package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartOperations(t *testing.T) {
	s := newTestShop(t, &stubCatalog{products: catalogOf(3)})
	ctx := context.Background()

	view, err := s.AddToCart(ctx, 1)
	require.NoError(t, err)
	view, err = s.AddToCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "20", view.Total.String())

	view, err = s.DecreaseQuantity(ctx, 1)
	require.NoError(t, err)
	view, err = s.DecreaseQuantity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)

	view, err = s.RemoveFromCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = s.AddToCart(ctx, 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, s.CartView().Items)

	_, err = s.AddToCart(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, s.ClearCart(ctx))
	assert.Zero(t, s.CartView().Count)
}

func TestToggleFavorite(t *testing.T) {
	cat := &stubCatalog{products: catalogOf(3)}
	s := newTestShop(t, cat)
	ctx := context.Background()

	fav, err := s.ToggleFavorite(ctx, 2)
	require.NoError(t, err)
	assert.True(t, fav)

	view, err := s.Product(ctx, 2)
	require.NoError(t, err)
	assert.True(t, view.Favorite)

	// removal works offline
	cat.err = errDown
	fav, err = s.ToggleFavorite(ctx, 2)
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Empty(t, s.Favorites())
}

func TestReviews(t *testing.T) {
	s := newTestShop(t, &stubCatalog{products: catalogOf(3)})
	ctx := context.Background()

	_, err := s.AddReview(ctx, 1, 5, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddReview(ctx, 1, 5, "   \n\t")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddReview(ctx, 1, 6, "too good")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddReview(ctx, 999, 4, "no such product")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, s.Reviews(999).Reviews)

	rv, err := s.AddReview(ctx, 1, 4, "  solid\n")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", rv.Username)
	assert.Equal(t, "solid", rv.Comment)

	_, err = s.Register(ctx, RegisterForm{Name: "Zeynep", Email: "z@example.com", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)
	rv, err = s.AddReview(ctx, 1, 2, "meh")
	require.NoError(t, err)
	assert.Equal(t, "Zeynep", rv.Username)

	view := s.Reviews(1)
	assert.Len(t, view.Reviews, 2)
	assert.InDelta(t, 3.0, view.AverageRating, 0.001)

	pv, err := s.Product(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, pv.Reviews, 2)
}
