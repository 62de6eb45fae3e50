package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

// Reviews holds product reviews for every product in one list.
type Reviews struct {
	observers

	storage storage.Storage
	mu      sync.RWMutex
	reviews []models.Review
	now     func() time.Time
}

func NewReviews(st storage.Storage) *Reviews {
	return &Reviews{storage: st, now: time.Now}
}

func (r *Reviews) Load(ctx context.Context) error {
	reviews, err := loadJSON[[]models.Review](ctx, r.storage, keyReviews)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.reviews = reviews
	r.mu.Unlock()
	return nil
}

func (r *Reviews) Save(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.save(ctx)
}

func (r *Reviews) save(ctx context.Context) error {
	reviews := r.reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	return saveJSON(ctx, r.storage, keyReviews, reviews)
}

// ForProduct returns the reviews of productID, oldest first.
func (r *Reviews) ForProduct(productID int) []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out
}

// Average returns the mean rating of productID, or 0 without reviews.
func (r *Reviews) Average(productID int) float64 {
	reviews := r.ForProduct(productID)
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// Add stamps an ID and date onto rv and appends it.
func (r *Reviews) Add(ctx context.Context, rv models.Review) (models.Review, error) {
	rv.ID = uuid.NewString()
	rv.Date = r.now().UTC()

	r.mu.Lock()
	r.reviews = append(r.reviews, rv)
	err := r.save(ctx)
	r.mu.Unlock()
	if err != nil {
		return models.Review{}, err
	}
	r.notify()
	return rv, nil
}
