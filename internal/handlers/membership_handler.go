package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
	"github.com/matchdaylabs/tribuna/internal/services"
)

type MembershipRequest struct {
	UserID uint `json:"user_id"`
	ClubID uint `json:"club_id" binding:"required"`
}

type MembershipUpdateRequest struct {
	Number string `json:"number" binding:"required"`
}

func membershipKeyFromParams(c *gin.Context) (models.MembershipKey, error) {
	userID, err := helpers.UintParam(c, "userId")
	if err != nil {
		return models.MembershipKey{}, err
	}
	clubID, err := helpers.UintParam(c, "clubId")
	if err != nil {
		return models.MembershipKey{}, err
	}
	return models.MembershipKey{UserID: userID, ClubID: clubID}, nil
}

// CreateMembership enrolls a user in a club. Regular users may only enroll
// themselves; admins may pass an explicit user_id.
func CreateMembership(c *gin.Context) {
	authUserID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	targetUserID := authUserID.(uint)
	if req.UserID != 0 && req.UserID != targetUserID {
		role, _ := c.Get("role")
		if role != string(models.RoleAdmin) {
			helpers.RespondWithError(c, http.StatusForbidden, "Cannot create memberships for other users.")
			return
		}
		targetUserID = req.UserID
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	membership, err := services.CreateMembership(gormDB, targetUserID, req.ClubID)
	if err != nil {
		helpers.RespondWithAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Membership created successfully.",
		"membership": membership,
	})
}

func ListMemberships(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, limit, err := helpers.PaginationParams(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Membership{})
	if clubID := c.Query("club_id"); clubID != "" {
		query = query.Where("club_id = ?", clubID)
	}

	var totalCount int64
	query.Count(&totalCount)

	var memberships []models.Membership
	offset := (page - 1) * limit
	err = query.
		Preload("User").
		Preload("Club").
		Offset(offset).Limit(limit).
		Order("joined_at DESC").
		Find(&memberships).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving memberships.")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated(memberships, totalCount, page, limit))
}

func GetMembership(c *gin.Context) {
	key, err := membershipKeyFromParams(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid membership ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var membership models.Membership
	err = gormDB.
		Preload("User").
		Preload("Club").
		Where("user_id = ? AND club_id = ?", key.UserID, key.ClubID).
		First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Membership not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving membership.")
		return
	}

	c.JSON(http.StatusOK, membership)
}

func UpdateMembership(c *gin.Context) {
	key, err := membershipKeyFromParams(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid membership ID.")
		return
	}

	var req MembershipUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var membership models.Membership
	err = gormDB.
		Where("user_id = ? AND club_id = ?", key.UserID, key.ClubID).
		First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Membership not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding membership.")
		return
	}

	var duplicate models.Membership
	err = gormDB.
		Where("club_id = ? AND number = ? AND user_id != ?", key.ClubID, req.Number, key.UserID).
		First(&duplicate).Error
	if err == nil {
		helpers.RespondWithError(c, http.StatusConflict, "Membership number already in use for this club.")
		return
	}

	membership.Number = req.Number
	if err := gormDB.Save(&membership).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update membership.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Membership updated successfully.",
		"membership": membership,
	})
}

func DeleteMembership(c *gin.Context) {
	key, err := membershipKeyFromParams(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid membership ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.
		Where("user_id = ? AND club_id = ?", key.UserID, key.ClubID).
		Delete(&models.Membership{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete membership.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Membership not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Membership deleted successfully."})
}
