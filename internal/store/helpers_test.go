package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

func product(id int, price string) models.Product {
	return models.Product{
		ID:       id,
		Title:    "Product",
		Price:    decimal.RequireFromString(price),
		Category: "electronics",
	}
}

// failingStorage returns err from every write.
type failingStorage struct {
	*storage.Memory
	err error
}

func (f failingStorage) Set(context.Context, string, string) error { return f.err }
func (f failingStorage) Delete(context.Context, string) error      { return f.err }

var errDiskFull = errors.New("disk full")
