package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a rentable catalog item owned by a vendor. AvailableQuantity is
// never assigned directly; every change goes through the stock guard (the
// conditional UPDATEs in the product repository).
type Product struct {
	ID                uuid.UUID `json:"id"`
	VendorID          uuid.UUID `json:"vendor_id"`
	ShopName          string    `json:"shop_name"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	PricePerDay       float64   `json:"price_per_day"`
	SecurityDeposit   float64   `json:"security_deposit"`
	StockQuantity     int       `json:"stock_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	Sizes             []string  `json:"sizes"`
	Images            []string  `json:"images"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name            string   `json:"name" validate:"required,min=3,max=200"`
	Category        string   `json:"category" validate:"required"`
	Description     string   `json:"description,omitempty"`
	PricePerDay     float64  `json:"price_per_day" validate:"required,gt=0"`
	SecurityDeposit float64  `json:"security_deposit" validate:"gte=0"`
	StockQuantity   int      `json:"stock_quantity" validate:"required,gte=1"`
	Sizes           []string `json:"sizes" validate:"required,min=1"`
	Images          []string `json:"images,omitempty"`
}

type UpdateProductRequest struct {
	Name            *string   `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Category        *string   `json:"category,omitempty"`
	Description     *string   `json:"description,omitempty"`
	PricePerDay     *float64  `json:"price_per_day,omitempty" validate:"omitempty,gt=0"`
	SecurityDeposit *float64  `json:"security_deposit,omitempty" validate:"omitempty,gte=0"`
	Sizes           *[]string `json:"sizes,omitempty" validate:"omitempty,min=1"`
	Images          *[]string `json:"images,omitempty"`
}

// RestockRequest grows both the total stock and the availability by Quantity.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
