package shop

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
)

type CartView struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

func (s *Shop) CartView() CartView {
	return CartView{
		Items: s.stores.Cart.Items(),
		Count: s.stores.Cart.Count(),
		Total: s.stores.Cart.Total(),
	}
}

// AddToCart fetches product id and adds one unit of it.
func (s *Shop) AddToCart(ctx context.Context, id int) (CartView, error) {
	p, err := s.product(ctx, id)
	if err != nil {
		return CartView{}, err
	}
	if err := s.stores.Cart.Add(ctx, p); err != nil {
		return CartView{}, err
	}
	return s.CartView(), nil
}

func (s *Shop) RemoveFromCart(ctx context.Context, id int) (CartView, error) {
	if err := s.stores.Cart.Remove(ctx, id); err != nil {
		return CartView{}, err
	}
	return s.CartView(), nil
}

// DecreaseQuantity lowers the quantity of id by one, never below one.
func (s *Shop) DecreaseQuantity(ctx context.Context, id int) (CartView, error) {
	if err := s.stores.Cart.Decrease(ctx, id); err != nil {
		return CartView{}, err
	}
	return s.CartView(), nil
}

func (s *Shop) ClearCart(ctx context.Context) error {
	return s.stores.Cart.Clear(ctx)
}

func (s *Shop) Favorites() []models.Product {
	return s.stores.Favorites.Items()
}

// ToggleFavorite adds product id to favorites or removes it, reporting
// whether it is a favorite afterwards. Removal needs no catalog call.
func (s *Shop) ToggleFavorite(ctx context.Context, id int) (bool, error) {
	if s.stores.Favorites.IsFavorite(id) {
		return false, s.stores.Favorites.Remove(ctx, id)
	}
	p, err := s.product(ctx, id)
	if err != nil {
		return false, err
	}
	return s.stores.Favorites.Toggle(ctx, p)
}

func (s *Shop) RemoveFavorite(ctx context.Context, id int) error {
	return s.stores.Favorites.Remove(ctx, id)
}

func (s *Shop) ClearFavorites(ctx context.Context) error {
	return s.stores.Favorites.Clear(ctx)
}
