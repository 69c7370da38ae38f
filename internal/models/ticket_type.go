package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketType struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:50;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
