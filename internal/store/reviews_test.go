package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

func TestReviews(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	r := NewReviews(st)

	assert.Zero(t, r.Average(1))

	for _, rating := range []int{5, 4} {
		_, err := r.Add(ctx, models.Review{ProductID: 1, Username: "Ada", Rating: rating, Comment: "nice"})
		require.NoError(t, err)
	}
	rv, err := r.Add(ctx, models.Review{ProductID: 2, Username: "Bob", Rating: 1, Comment: "meh"})
	require.NoError(t, err)
	assert.NotEmpty(t, rv.ID)
	assert.False(t, rv.Date.IsZero())

	assert.Len(t, r.ForProduct(1), 2)
	assert.InDelta(t, 4.5, r.Average(1), 0.0001)
	assert.Len(t, r.ForProduct(2), 1)

	reloaded := NewReviews(st)
	require.NoError(t, reloaded.Load(ctx))
	assert.Len(t, reloaded.ForProduct(1), 2)
}
