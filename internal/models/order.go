package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusActive        OrderStatus = "Active"
	OrderStatusPendingReturn OrderStatus = "Pending Return"
	OrderStatusReturned      OrderStatus = "Returned"
	OrderStatusOverdue       OrderStatus = "Overdue"
	OrderStatusCancelled     OrderStatus = "Cancelled"
)

// orderTransitions is the closed transition table. Returned and Cancelled are
// terminal; everything else must reach them through a listed edge.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusActive:        {OrderStatusPendingReturn, OrderStatusReturned, OrderStatusOverdue, OrderStatusCancelled},
	OrderStatusPendingReturn: {OrderStatusReturned, OrderStatusOverdue},
	OrderStatusOverdue:       {OrderStatusReturned, OrderStatusPendingReturn, OrderStatusCancelled},
	OrderStatusReturned:      {},
	OrderStatusCancelled:     {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// CanTransitionTo reports whether the transition table allows moving from s
// to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "Open"
	IssueStatusResolved IssueStatus = "Resolved"
	IssueStatusRejected IssueStatus = "Rejected"
)

// OrderItem is the immutable snapshot of a cart line at checkout time.
// Later product edits must not change historical order content.
type OrderItem struct {
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProductImage    string    `json:"product_image,omitempty"`
	Category        string    `json:"category"`
	PricePerDay     float64   `json:"price_per_day"`
	SecurityDeposit float64   `json:"security_deposit"`
	Size            string    `json:"size"`
	Quantity        int       `json:"quantity"`
	RentalDays      int       `json:"rental_days"`
	Subtotal        float64   `json:"subtotal"`
	DepositTotal    float64   `json:"deposit_total"`
}

type Feedback struct {
	Rating      int       `json:"rating"`
	Review      string    `json:"review,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	ItemIndex   int       `json:"item_index"`
	ItemName    string    `json:"item_name"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Issue struct {
	IssueID       uuid.UUID   `json:"issue_id"`
	Type          string      `json:"type"`
	Description   string      `json:"description"`
	ItemIndex     int         `json:"item_index"`
	ItemName      string      `json:"item_name"`
	Status        IssueStatus `json:"status"`
	RaisedAt      time.Time   `json:"raised_at"`
	AdminResponse string      `json:"admin_response,omitempty"`
}

// Order is one vendor's share of a checkout. A multi-vendor cart produces one
// Order per vendor, all carrying the same CheckoutID.
type Order struct {
	ID              uuid.UUID   `json:"id"`
	CheckoutID      uuid.UUID   `json:"checkout_id"`
	CustomerID      uuid.UUID   `json:"customer_id"`
	CustomerName    string      `json:"customer_name"`
	VendorID        uuid.UUID   `json:"vendor_id"`
	ShopName        string      `json:"shop_name"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	DiscountAmount  float64     `json:"discount_amount,omitempty"`
	RentalStartDate time.Time   `json:"rental_start_date"`
	RentalEndDate   time.Time   `json:"rental_end_date"`
	PaymentMethod   string      `json:"payment_method"`
	Status          OrderStatus `json:"status"`
	Feedback        *Feedback   `json:"feedback,omitempty"`
	Issues          []Issue     `json:"issues,omitempty"`
	OrderDate       time.Time   `json:"order_date"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// IsOverdue is the derived view of lateness. The persisted Overdue status is
// set by an explicit transition; this helper lets callers spot lateness
// without one.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.Status == OrderStatusActive && now.After(o.RentalEndDate)
}

type CheckoutRequest struct {
	// CheckoutID is the client-generated idempotency key for the whole
	// multi-vendor checkout attempt. Retries with the same id return the
	// already-placed orders instead of creating new ones.
	CheckoutID    uuid.UUID `json:"checkout_id" validate:"required"`
	PaymentMethod string    `json:"payment_method" validate:"required,oneof=cod card upi"`
	CouponCode    string    `json:"coupon_code,omitempty"`
}

type CheckoutResponse struct {
	CheckoutID uuid.UUID `json:"checkout_id"`
	Orders     []Order   `json:"orders"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=Active 'Pending Return' Returned Overdue Cancelled"`
}

type SubmitFeedbackRequest struct {
	Rating    int      `json:"rating" validate:"required,min=1,max=5"`
	Review    string   `json:"review,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ItemIndex int      `json:"item_index" validate:"gte=0"`
	ItemName  string   `json:"item_name" validate:"required"`
}

type RaiseIssueRequest struct {
	Type        string `json:"type" validate:"required,oneof=damage wrong_item missing_item late_delivery other"`
	Description string `json:"description" validate:"required"`
	ItemIndex   int    `json:"item_index" validate:"gte=0"`
	ItemName    string `json:"item_name" validate:"required"`
}

type ResolveIssueRequest struct {
	Status        IssueStatus `json:"status" validate:"required,oneof=Resolved Rejected"`
	AdminResponse string      `json:"admin_response" validate:"required"`
}
