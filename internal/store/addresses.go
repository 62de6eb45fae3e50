package store

import (
	"context"

	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

// Addresses keeps one saved address per user under "address-<userID>".
// It is read on demand rather than hydrated up front.
type Addresses struct {
	observers

	storage storage.Storage
}

func NewAddresses(st storage.Storage) *Addresses {
	return &Addresses{storage: st}
}

func addressKey(userID string) string {
	return "address-" + userID
}

// Get returns the saved address for userID. found is false when none has
// been saved or the stored value is unreadable.
func (a *Addresses) Get(ctx context.Context, userID string) (addr models.Address, found bool, err error) {
	stored, err := loadJSON[*models.Address](ctx, a.storage, addressKey(userID))
	if err != nil || stored == nil {
		return models.Address{}, false, err
	}
	return *stored, true, nil
}

// Save replaces the saved address for userID.
func (a *Addresses) Save(ctx context.Context, userID string, addr models.Address) error {
	if err := saveJSON(ctx, a.storage, addressKey(userID), addr); err != nil {
		return err
	}
	a.notify()
	return nil
}
