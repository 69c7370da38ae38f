package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
)

// CreateMembership enrolls a user as a club member. The membership number is
// "{prefix}-{n}" where n is one past the club's current member count; numbers
// are not reused after deletions.
func CreateMembership(db *gorm.DB, userID, clubID uint) (*models.Membership, error) {
	var membership models.Membership
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helpers.NewNotFound("User not found.")
			}
			return err
		}

		var club models.Club
		if err := tx.First(&club, clubID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helpers.NewNotFound("Club not found.")
			}
			return err
		}

		var existing models.Membership
		err := tx.Where("user_id = ? AND club_id = ?", userID, clubID).First(&existing).Error
		if err == nil {
			return helpers.NewConflict("User is already a member of that club.")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&models.Membership{}).Where("club_id = ?", clubID).Count(&count).Error; err != nil {
			return err
		}

		membership = models.Membership{
			UserID:   userID,
			ClubID:   clubID,
			Number:   fmt.Sprintf("%s-%d", club.Prefix, count+1),
			JoinedAt: time.Now(),
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}
	return &membership, nil
}
