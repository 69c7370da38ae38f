package models

import "time"

// Sector is a seating zone inside a stadium. Sector numbers repeat across
// stadiums, so a sector is only identified together with its stadium.
type Sector struct {
	Number    uint      `gorm:"primaryKey;autoIncrement:false" json:"number"`
	StadiumID uint      `gorm:"primaryKey;autoIncrement:false" json:"stadium_id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Stadium *Stadium `gorm:"foreignKey:StadiumID" json:"stadium,omitempty"`
	Prices  []Price  `gorm:"foreignKey:SectorNumber,StadiumID;references:Number,StadiumID" json:"prices,omitempty"`
}

// SectorKey is the composite identity of a sector. Comparable, usable as a
// map key.
type SectorKey struct {
	Number    uint
	StadiumID uint
}

func (s *Sector) Key() SectorKey {
	return SectorKey{Number: s.Number, StadiumID: s.StadiumID}
}
