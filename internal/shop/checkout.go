package shop

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
)

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit-card"
	PaymentBankTransfer   PaymentMethod = "bank-transfer"
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
)

// CheckoutForm is the shipping and payment form. Card fields are only
// required for credit card payments.
type CheckoutForm struct {
	FullName      string        `json:"fullName" validate:"required"`
	Address       string        `json:"address" validate:"required"`
	City          string        `json:"city" validate:"required"`
	PostalCode    string        `json:"postalCode" validate:"required"`
	Country       string        `json:"country"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"oneof=credit-card bank-transfer cash-on-delivery"`
	CardNumber    string        `json:"cardNumber" validate:"required_if=PaymentMethod credit-card"`
	CardName      string        `json:"cardName" validate:"required_if=PaymentMethod credit-card"`
	ExpiryDate    string        `json:"expiryDate" validate:"required_if=PaymentMethod credit-card"`
	CVC           string        `json:"cvc" validate:"required_if=PaymentMethod credit-card"`
}

// paymentSummary is the label stored on the order. Only the last four
// card digits are kept.
func (f CheckoutForm) paymentSummary() string {
	switch f.PaymentMethod {
	case PaymentCreditCard:
		last4 := f.CardNumber
		if len(last4) > 4 {
			last4 = last4[len(last4)-4:]
		}
		return "Credit Card (" + last4 + ")"
	case PaymentBankTransfer:
		return "Bank Transfer"
	default:
		return "Cash on Delivery"
	}
}

// fillFrom copies the saved address into the blank shipping fields.
func (f *CheckoutForm) fillFrom(addr models.Address) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&f.FullName, addr.FullName)
	fill(&f.Address, addr.Address)
	fill(&f.City, addr.City)
	fill(&f.PostalCode, addr.PostalCode)
	fill(&f.Country, addr.Country)
}

// Checkout turns the cart into a pending order and empties the cart. A
// logged-in user's saved address fills blank shipping fields. Nothing
// changes when the cart is empty or the form is rejected. The cart is taken
// in one step before the order is written and put back if that write fails.
func (s *Shop) Checkout(ctx context.Context, form CheckoutForm) (models.Order, error) {
	if s.stores.Cart.Count() == 0 {
		return models.Order{}, ErrEmptyCart
	}

	if u, ok := s.stores.Auth.CurrentUser(); ok {
		addr, found, err := s.stores.Addresses.Get(ctx, u.ID)
		if err != nil {
			return models.Order{}, fmt.Errorf("load saved address: %w", err)
		}
		if found {
			form.fillFrom(addr)
		}
	}
	if form.PaymentMethod == "" {
		form.PaymentMethod = PaymentCreditCard
	}
	if form.Country == "" {
		form.Country = s.defaultCountry
	}
	if err := s.check(form); err != nil {
		return models.Order{}, err
	}

	items, err := s.stores.Cart.Take(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("take cart: %w", err)
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	lines := make([]models.OrderItem, len(items))
	total := decimal.Zero
	for i, it := range items {
		lines[i] = models.OrderItem{Product: it.Product, Quantity: it.Quantity}
		total = total.Add(it.Subtotal())
	}
	order, err := s.stores.Orders.AddOrder(ctx, models.OrderDraft{
		Items:       lines,
		TotalAmount: total,
		ShippingAddress: models.ShippingAddress{
			FullName:   form.FullName,
			Address:    form.Address,
			City:       form.City,
			PostalCode: form.PostalCode,
			Country:    form.Country,
		},
		PaymentMethod: form.paymentSummary(),
	})
	if err != nil {
		if rerr := s.stores.Cart.Restore(ctx, items); rerr != nil {
			log.Printf("shop: restore cart after failed order: %v", rerr)
		}
		return models.Order{}, fmt.Errorf("place order: %w", err)
	}
	return order, nil
}

func (s *Shop) Orders() []models.Order {
	return s.stores.Orders.Orders()
}

func (s *Shop) Order(id string) (models.Order, error) {
	o, ok := s.stores.Orders.OrderByID(id)
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
	}
	return o, nil
}
