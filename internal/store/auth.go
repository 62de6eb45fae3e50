package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/password"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

// Auth keeps the registered accounts (key "users") and the session user
// (key "user"). Emails are compared exactly, as typed at registration.
type Auth struct {
	observers

	storage  storage.Storage
	mu       sync.RWMutex
	user     *models.User
	accounts []models.Account
}

func NewAuth(st storage.Storage) *Auth {
	return &Auth{storage: st}
}

func (a *Auth) Load(ctx context.Context) error {
	user, err := loadJSON[*models.User](ctx, a.storage, keyUser)
	if err != nil {
		return err
	}
	accounts, err := loadJSON[[]models.Account](ctx, a.storage, keyUsers)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.user = user
	a.accounts = accounts
	a.mu.Unlock()
	return nil
}

func (a *Auth) Save(ctx context.Context) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if err := a.saveAccounts(ctx); err != nil {
		return err
	}
	return a.saveSession(ctx)
}

func (a *Auth) saveAccounts(ctx context.Context) error {
	accounts := a.accounts
	if accounts == nil {
		accounts = []models.Account{}
	}
	return saveJSON(ctx, a.storage, keyUsers, accounts)
}

// saveSession writes the session user, or deletes the key when nobody is
// logged in.
func (a *Auth) saveSession(ctx context.Context) error {
	if a.user == nil {
		if err := a.storage.Delete(ctx, keyUser); err != nil {
			return fmt.Errorf("save %s: %w", keyUser, err)
		}
		return nil
	}
	return saveJSON(ctx, a.storage, keyUser, a.user)
}

// CurrentUser returns the session user.
func (a *Auth) CurrentUser() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return models.User{}, false
	}
	return *a.user, true
}

// Register creates an account and logs it in. It fails with ErrEmailTaken,
// leaving the session untouched, when email is already registered.
func (a *Auth) Register(ctx context.Context, name, email, pw string) (models.User, error) {
	hash, err := password.Hash(pw)
	if err != nil {
		return models.User{}, err
	}

	a.mu.Lock()
	if a.accountIndex(email) >= 0 {
		a.mu.Unlock()
		return models.User{}, ErrEmailTaken
	}
	user := models.User{
		ID:    "user-" + uuid.NewString(),
		Name:  name,
		Email: email,
	}
	a.accounts = append(a.accounts, models.Account{User: user, PasswordHash: hash})
	err = a.saveAccounts(ctx)
	if err == nil {
		a.user = &user
		err = a.saveSession(ctx)
	}
	a.mu.Unlock()
	if err != nil {
		return models.User{}, err
	}
	a.notify()
	return user, nil
}

// Login sets the session user when email and password match an account.
func (a *Auth) Login(ctx context.Context, email, pw string) (models.User, error) {
	a.mu.Lock()
	i := a.accountIndex(email)
	if i < 0 {
		a.mu.Unlock()
		return models.User{}, ErrInvalidCredentials
	}
	acc := a.accounts[i]
	ok, err := password.Verify(pw, acc.PasswordHash)
	if err != nil || !ok {
		a.mu.Unlock()
		return models.User{}, ErrInvalidCredentials
	}
	user := acc.User
	a.user = &user
	err = a.saveSession(ctx)
	a.mu.Unlock()
	if err != nil {
		return models.User{}, err
	}
	a.notify()
	return user, nil
}

// Logout clears the session user.
func (a *Auth) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.user = nil
	err := a.saveSession(ctx)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	a.notify()
	return nil
}

// UpdateUser merges patch into the session user and its account record.
func (a *Auth) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	a.mu.Lock()
	if a.user == nil {
		a.mu.Unlock()
		return models.User{}, ErrNotAuthenticated
	}
	if patch.Email != nil && *patch.Email != a.user.Email {
		if a.accountIndex(*patch.Email) >= 0 {
			a.mu.Unlock()
			return models.User{}, ErrEmailTaken
		}
	}

	updated := applyPatch(*a.user, patch)
	a.user = &updated
	for i := range a.accounts {
		if a.accounts[i].ID == updated.ID {
			a.accounts[i].User = applyPatch(a.accounts[i].User, patch)
		}
	}
	err := a.saveAccounts(ctx)
	if err == nil {
		err = a.saveSession(ctx)
	}
	a.mu.Unlock()
	if err != nil {
		return models.User{}, err
	}
	a.notify()
	return updated, nil
}

func applyPatch(u models.User, patch models.UserPatch) models.User {
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	return u
}

func (a *Auth) accountIndex(email string) int {
	return slices.IndexFunc(a.accounts, func(acc models.Account) bool {
		return acc.Email == email
	})
}
