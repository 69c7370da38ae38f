package models

import "time"

type Club struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Prefix    string    `gorm:"size:10;uniqueIndex;not null" json:"prefix"`
	LogoPath  string    `gorm:"size:255" json:"logo_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Memberships []Membership `gorm:"foreignKey:ClubID" json:"memberships,omitempty"`
	HomeEvents  []Event      `gorm:"foreignKey:HomeClubID" json:"home_events,omitempty"`
	AwayEvents  []Event      `gorm:"foreignKey:AwayClubID" json:"away_events,omitempty"`
}
