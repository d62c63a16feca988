package models

import "time"

// Coupon is a flat percentage discount. It applies to rental fees only,
// never to security deposits.
type Coupon struct {
	Code      string    `json:"code"`
	Percent   float64   `json:"percent"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCouponRequest struct {
	Code    string  `json:"code" validate:"required,alphanum,min=3,max=32"`
	Percent float64 `json:"percent" validate:"required,gt=0,lte=100"`
}
