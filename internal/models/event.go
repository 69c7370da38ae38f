package models

import (
	"fmt"
	"time"
)

type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventOnSale    EventStatus = "on_sale"
	EventFinished  EventStatus = "finished"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventScheduled, EventOnSale, EventFinished, EventCancelled:
		return true
	}
	return false
}

type Event struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	StartsAt   time.Time   `gorm:"not null" json:"starts_at"`
	Tournament string      `gorm:"size:100;not null" json:"tournament"`
	Status     EventStatus `gorm:"size:20;not null;default:scheduled" json:"status"`
	HomeOnly   bool        `gorm:"not null;default:false" json:"home_only"`
	HomeClubID uint        `gorm:"not null" json:"home_club_id"`
	AwayClubID uint        `gorm:"not null" json:"away_club_id"`
	StadiumID  uint        `gorm:"not null" json:"stadium_id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	HomeClub *Club    `gorm:"foreignKey:HomeClubID" json:"home_club,omitempty"`
	AwayClub *Club    `gorm:"foreignKey:AwayClubID" json:"away_club,omitempty"`
	Stadium  *Stadium `gorm:"foreignKey:StadiumID" json:"stadium,omitempty"`
	Prices   []Price  `gorm:"foreignKey:EventID" json:"prices,omitempty"`
	Tickets  []Ticket `gorm:"foreignKey:EventID" json:"tickets,omitempty"`
}

// Description renders "Home vs Away" when both clubs are preloaded.
func (e *Event) Description() string {
	if e.HomeClub != nil && e.AwayClub != nil {
		return fmt.Sprintf("%s vs %s", e.HomeClub.Name, e.AwayClub.Name)
	}
	return fmt.Sprintf("Event #%d", e.ID)
}
