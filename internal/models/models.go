package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog entry as returned by the product API.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      *Rating         `json:"rating,omitempty"`
}

// CartItem is a product line in the cart. It is persisted flattened:
// product fields plus "quantity" in a single object.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price × quantity.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type OrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Label returns the human-readable status name.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusProcessing:
		return "Processing"
	case StatusShipped:
		return "Shipped"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

type Order struct {
	ID              string          `json:"id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Date            time.Time       `json:"date"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// OrderDraft is an order before the orders store stamps its ID and date.
type OrderDraft struct {
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	ShippingAddress ShippingAddress
	PaymentMethod   string
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Account is a registered-users record. The password is only ever
// kept as an argon2id hash.
type Account struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// UserPatch carries the fields to merge into the session user.
// Nil fields are left untouched.
type UserPatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Address is the per-user address record edited on the profile page.
type Address struct {
	ShippingAddress
	Phone string `json:"phone"`
}

type Review struct {
	ID        string    `json:"id"`
	ProductID int       `json:"productId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}
