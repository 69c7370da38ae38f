package models

import "time"

// Membership ("socio") links a user to a club. The membership number is
// club-scoped ("RIV-1", "RIV-2", ...); the unique index on (club_id, number)
// turns a numbering race into a constraint violation instead of a duplicate.
type Membership struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ClubID    uint      `gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_club_membership_number,priority:1" json:"club_id"`
	Number    string    `gorm:"size:20;not null;uniqueIndex:idx_club_membership_number,priority:2" json:"number"`
	JoinedAt  time.Time `gorm:"not null" json:"joined_at"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}

type MembershipKey struct {
	UserID uint
	ClubID uint
}

func (m *Membership) Key() MembershipKey {
	return MembershipKey{UserID: m.UserID, ClubID: m.ClubID}
}
