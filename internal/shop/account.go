package shop

import (
	"context"
	"fmt"

	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/store"
)

// recentOrders is the number of orders the profile shows.
const recentOrders = 5

type RegisterForm struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Register creates an account and logs it in.
func (s *Shop) Register(ctx context.Context, form RegisterForm) (models.User, error) {
	if err := s.check(form); err != nil {
		return models.User{}, err
	}
	return s.stores.Auth.Register(ctx, form.Name, form.Email, form.Password)
}

type loginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Shop) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := s.check(loginForm{Email: email, Password: password}); err != nil {
		return models.User{}, err
	}
	return s.stores.Auth.Login(ctx, email, password)
}

func (s *Shop) Logout(ctx context.Context) error {
	return s.stores.Auth.Logout(ctx)
}

// CurrentUser reports the session user, if any.
func (s *Shop) CurrentUser() (models.User, bool) {
	return s.stores.Auth.CurrentUser()
}

type ProfileView struct {
	User         models.User     `json:"user"`
	Address      *models.Address `json:"address,omitempty"`
	RecentOrders []models.Order  `json:"recentOrders"`
	OrderCount   int             `json:"orderCount"`
}

// Profile returns the session user with the saved address and the five
// most recent orders.
func (s *Shop) Profile(ctx context.Context) (ProfileView, error) {
	u, ok := s.stores.Auth.CurrentUser()
	if !ok {
		return ProfileView{}, store.ErrNotAuthenticated
	}
	view := ProfileView{
		User:         u,
		RecentOrders: s.stores.Orders.Recent(recentOrders),
		OrderCount:   s.stores.Orders.Len(),
	}
	addr, found, err := s.stores.Addresses.Get(ctx, u.ID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("load address: %w", err)
	}
	if found {
		view.Address = &addr
	}
	return view, nil
}

// UpdateProfile merges patch into the session user. A name, when given,
// must not be blank.
func (s *Shop) UpdateProfile(ctx context.Context, patch models.UserPatch) (models.User, error) {
	if patch.Name != nil && *patch.Name == "" {
		return models.User{}, newValidationError("name", "name is required")
	}
	if patch.Email != nil && *patch.Email == "" {
		return models.User{}, newValidationError("email", "email is required")
	}
	return s.stores.Auth.UpdateUser(ctx, patch)
}

type addressForm struct {
	FullName   string `json:"fullName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

// SaveAddress stores the session user's address. Every field is required.
func (s *Shop) SaveAddress(ctx context.Context, addr models.Address) (models.Address, error) {
	u, ok := s.stores.Auth.CurrentUser()
	if !ok {
		return models.Address{}, store.ErrNotAuthenticated
	}
	if addr.Country == "" {
		addr.Country = s.defaultCountry
	}
	err := s.check(addressForm{
		FullName:   addr.FullName,
		Address:    addr.Address,
		City:       addr.City,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
		Phone:      addr.Phone,
	})
	if err != nil {
		return models.Address{}, err
	}
	if err := s.stores.Addresses.Save(ctx, u.ID, addr); err != nil {
		return models.Address{}, fmt.Errorf("save address: %w", err)
	}
	return addr, nil
}
