package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodMercadoPago PaymentMethod = "mercadopago"
	MethodCard        PaymentMethod = "card"
	MethodCash        PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Purchase tracks one payment for N tickets. Gateway purchases stay pending
// until the webhook confirms them; card purchases complete synchronously.
type Purchase struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"not null;index" json:"user_id"`
	Total            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Method           PaymentMethod   `gorm:"size:20;not null" json:"method"`
	Status           PaymentStatus   `gorm:"size:20;not null;default:pending" json:"status"`
	PreferenceID     *string         `gorm:"size:100" json:"preference_id,omitempty"`
	GatewayPaymentID *string         `gorm:"size:100" json:"gateway_payment_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:PurchaseID" json:"tickets,omitempty"`
}
