package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLineItem is one product/size/date-range/quantity selection. The product
// and vendor fields are denormalized snapshots taken at add-time and are never
// re-synced from the live product record. Subtotal, DepositTotal and
// RentalDays are derived fields, recomputed by the cart service on every
// quantity or date mutation, never written by callers.
type CartLineItem struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProductImage    string    `json:"product_image,omitempty"`
	Category        string    `json:"category"`
	VendorID        uuid.UUID `json:"vendor_id"`
	ShopName        string    `json:"shop_name"`
	PricePerDay     float64   `json:"price_per_day"`
	SecurityDeposit float64   `json:"security_deposit"`
	Size            string    `json:"size"`
	Quantity        int       `json:"quantity"`
	RentalStartDate time.Time `json:"rental_start_date"`
	RentalEndDate   time.Time `json:"rental_end_date"`
	RentalDays      int       `json:"rental_days"`
	Subtotal        float64   `json:"subtotal"`
	DepositTotal    float64   `json:"deposit_total"`
}

// Cart is the per-user line item collection. One row per user; the row is
// keyed by user id so switching identities never leaks items between users.
type Cart struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Items     []CartLineItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// VendorGroup is the partition of cart items belonging to one vendor,
// in cart insertion order.
type VendorGroup struct {
	VendorID uuid.UUID      `json:"vendor_id"`
	ShopName string         `json:"shop_name"`
	Items    []CartLineItem `json:"items"`
}

// CartSummary carries the derived aggregates. They are recomputed on every
// read, never cached on the cart row.
type CartSummary struct {
	CartCount       int           `json:"cart_count"`
	TotalRentalFees float64       `json:"total_rental_fees"`
	TotalDeposits   float64       `json:"total_deposits"`
	GrandTotal      float64       `json:"grand_total"`
	Groups          []VendorGroup `json:"groups"`
}

type AddCartItemRequest struct {
	ProductID       uuid.UUID `json:"product_id" validate:"required"`
	Size            string    `json:"size" validate:"required"`
	Quantity        int       `json:"quantity" validate:"required,min=1"`
	RentalStartDate time.Time `json:"rental_start_date" validate:"required"`
	RentalEndDate   time.Time `json:"rental_end_date" validate:"required"`
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type UpdateCartDatesRequest struct {
	RentalStartDate time.Time `json:"rental_start_date" validate:"required"`
	RentalEndDate   time.Time `json:"rental_end_date" validate:"required"`
}

type UpdateCartSizeRequest struct {
	Size string `json:"size" validate:"required"`
}
