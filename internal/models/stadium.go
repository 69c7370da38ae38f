package models

import (
	"fmt"
	"time"
)

type Stadium struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Street    string    `gorm:"size:100;not null" json:"street"`
	Number    string    `gorm:"size:10;not null" json:"number"`
	City      string    `gorm:"size:50;not null" json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sectors []Sector `gorm:"foreignKey:StadiumID" json:"sectors,omitempty"`
	Events  []Event  `gorm:"foreignKey:StadiumID" json:"events,omitempty"`
}

func (s *Stadium) Address() string {
	return fmt.Sprintf("%s %s, %s", s.Street, s.Number, s.City)
}
