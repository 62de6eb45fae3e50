package shop

import (
	"context"
	"strings"

	"github.com/yunisnasibov/e-ticaret-12/internal/models"
)

type ProductView struct {
	models.Product
	Favorite      bool            `json:"favorite"`
	InCart        int             `json:"inCart"`
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
}

// Product returns the detail view of id. Unknown IDs and catalog failures
// both return ErrProductNotFound.
func (s *Shop) Product(ctx context.Context, id int) (ProductView, error) {
	p, err := s.product(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	view := ProductView{
		Product:       p,
		Favorite:      s.stores.Favorites.IsFavorite(id),
		Reviews:       s.stores.Reviews.ForProduct(id),
		AverageRating: s.stores.Reviews.Average(id),
	}
	if item, ok := s.stores.Cart.Item(id); ok {
		view.InCart = item.Quantity
	}
	return view, nil
}

type reviewForm struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// AddReview stores a review for productID under the session user's name,
// or "Anonymous" when logged out. The comment is trimmed; a blank one is
// rejected. The product must resolve like it does for Product.
func (s *Shop) AddReview(ctx context.Context, productID, rating int, comment string) (models.Review, error) {
	comment = strings.TrimSpace(comment)
	if err := s.check(reviewForm{Rating: rating, Comment: comment}); err != nil {
		return models.Review{}, err
	}
	if _, err := s.product(ctx, productID); err != nil {
		return models.Review{}, err
	}
	username := "Anonymous"
	if u, ok := s.stores.Auth.CurrentUser(); ok {
		username = u.Name
	}
	return s.stores.Reviews.Add(ctx, models.Review{
		ProductID: productID,
		Username:  username,
		Rating:    rating,
		Comment:   comment,
	})
}

type ReviewsView struct {
	ProductID     int             `json:"productId"`
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
}

func (s *Shop) Reviews(productID int) ReviewsView {
	return ReviewsView{
		ProductID:     productID,
		Reviews:       s.stores.Reviews.ForProduct(productID),
		AverageRating: s.stores.Reviews.Average(productID),
	}
}
