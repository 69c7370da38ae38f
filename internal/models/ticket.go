package models

import "time"

// Ticket is one admission unit. QRCode holds a PNG data URI whose payload
// encodes the ticket's own identity, so two tickets never share a code.
type Ticket struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PurchaseID   uint       `gorm:"not null;index" json:"purchase_id"`
	EventID      uint       `gorm:"not null;index" json:"event_id"`
	SectorNumber uint       `gorm:"not null" json:"sector_number"`
	StadiumID    uint       `gorm:"not null" json:"stadium_id"`
	QRCode       string     `gorm:"type:text;not null" json:"qr_code"`
	Used         bool       `gorm:"not null;default:false" json:"used"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	Purchase *Purchase `gorm:"foreignKey:PurchaseID" json:"purchase,omitempty"`
	Event    *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Sector   *Sector   `gorm:"foreignKey:SectorNumber,StadiumID;references:Number,StadiumID" json:"sector,omitempty"`
}
