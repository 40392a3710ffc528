package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCard = "card"
	PaymentMethodCOD  = "cod"
)

// Payment status lifecycle: pending moves to paid or failed exactly once.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Order fulfilment statuses. Transitions past processing are admin-driven.
const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	BaseModel
	UserID         uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	User           *User           `json:"user,omitempty"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentStatus  string          `json:"payment_status"`
	Status         string          `json:"status"`
	Currency       string          `json:"currency"`
	ShippingAmount decimal.Decimal `gorm:"type:numeric(10,2)" json:"shipping_amount"`
	ShippingMethod string          `json:"shipping_method"`
	GrandTotal     decimal.Decimal `gorm:"type:numeric(10,2)" json:"grand_total"`
	Notes          string          `json:"notes"`
	Items          []OrderItem     `json:"items,omitempty"`
	Address        *Address        `json:"address,omitempty"`
}

// OrderItem snapshots a cart line at order-creation time so historical
// orders stay stable when catalog prices change.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID       `gorm:"type:uuid;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index" json:"product_id"`
	Product     *Product        `json:"product,omitempty"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitAmount  decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_amount"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_amount"`
}

// Address is the shipping destination, one per order, immutable once created.
type Address struct {
	BaseModel
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"order_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone"`
	StreetAddress string    `json:"street_address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	ZipCode       string    `json:"zip_code"`
}

// FullName joins the recipient's first and last name.
func (a Address) FullName() string {
	return a.FirstName + " " + a.LastName
}
