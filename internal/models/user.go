package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	NationalID string     `gorm:"size:8;uniqueIndex;not null" json:"national_id"`
	FirstName  string     `gorm:"size:100;not null" json:"first_name"`
	LastName   string     `gorm:"size:100;not null" json:"last_name"`
	Email      string     `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Role       Role       `gorm:"size:10;not null;default:user" json:"role"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Memberships []Membership `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Purchases   []Purchase   `gorm:"foreignKey:UserID" json:"purchases,omitempty"`
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
