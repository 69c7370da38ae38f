package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is the flat per-ticket amount for one sector at one event. The
// stadium id is part of the key because sector numbers are only unique
// within a stadium.
type Price struct {
	EventID      uint            `gorm:"primaryKey;autoIncrement:false" json:"event_id"`
	SectorNumber uint            `gorm:"primaryKey;autoIncrement:false" json:"sector_number"`
	StadiumID    uint            `gorm:"primaryKey;autoIncrement:false" json:"stadium_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Event  *Event  `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Sector *Sector `gorm:"foreignKey:SectorNumber,StadiumID;references:Number,StadiumID" json:"sector,omitempty"`
}

type PriceKey struct {
	EventID uint
	Sector  SectorKey
}

func (p *Price) Key() PriceKey {
	return PriceKey{
		EventID: p.EventID,
		Sector:  SectorKey{Number: p.SectorNumber, StadiumID: p.StadiumID},
	}
}
