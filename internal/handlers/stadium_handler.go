package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
)

type StadiumRequest struct {
	Name   string `json:"name" binding:"required,min=2"`
	Street string `json:"street" binding:"required"`
	Number string `json:"number" binding:"required"`
	City   string `json:"city" binding:"required"`
}

func CreateStadium(c *gin.Context) {
	var req StadiumRequest
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

	stadium := models.Stadium{
		Name:   req.Name,
		Street: req.Street,
		Number: req.Number,
		City:   req.City,
	}

	if err := gormDB.Create(&stadium).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create stadium.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stadium created successfully.",
		"stadium": stadium,
	})
}

func ListStadiums(c *gin.Context) {
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

	query := gormDB.Model(&models.Stadium{})
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var totalCount int64
	query.Count(&totalCount)

	var stadiums []models.Stadium
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("name ASC").Find(&stadiums).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving stadiums.")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated(stadiums, totalCount, page, limit))
}

func GetStadium(c *gin.Context) {
	stadiumID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid stadium ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var stadium models.Stadium
	if err := gormDB.Preload("Sectors").First(&stadium, stadiumID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Stadium not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving stadium.")
		return
	}

	c.JSON(http.StatusOK, stadium)
}

func UpdateStadium(c *gin.Context) {
	stadiumID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid stadium ID.")
		return
	}

	var req StadiumRequest
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

	var stadium models.Stadium
	if err := gormDB.First(&stadium, stadiumID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Stadium not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding stadium.")
		return
	}

	stadium.Name = req.Name
	stadium.Street = req.Street
	stadium.Number = req.Number
	stadium.City = req.City

	if err := gormDB.Save(&stadium).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update stadium.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stadium updated successfully.",
		"stadium": stadium,
	})
}

func DeleteStadium(c *gin.Context) {
	stadiumID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid stadium ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Delete(&models.Stadium{}, stadiumID)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete stadium.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Stadium not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stadium deleted successfully."})
}
