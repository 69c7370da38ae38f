package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
)

func CreateClub(c *gin.Context) {
	name := c.PostForm("name")
	prefix := c.PostForm("prefix")
	if name == "" || prefix == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields: name, prefix.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var existing models.Club
	if result := gormDB.Where("name = ? OR prefix = ?", name, prefix).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "A club with that name or prefix already exists.")
		return
	}

	club := models.Club{
		Name:   name,
		Prefix: prefix,
	}

	logoFile, err := c.FormFile("logo")
	if err == nil {
		logoPath, err := helpers.UploadFile(c, logoFile, "club_logos")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		club.LogoPath = logoPath
	}

	if err := gormDB.Create(&club).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create club.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Club created successfully.",
		"club":    club,
	})
}

func ListClubs(c *gin.Context) {
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

	query := gormDB.Model(&models.Club{})
	var totalCount int64
	query.Count(&totalCount)

	var clubs []models.Club
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("name ASC").Find(&clubs).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving clubs.")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated(clubs, totalCount, page, limit))
}

func GetClub(c *gin.Context) {
	clubID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid club ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var club models.Club
	if err := gormDB.First(&club, clubID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Club not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving club.")
		return
	}

	c.JSON(http.StatusOK, club)
}

func UpdateClub(c *gin.Context) {
	clubID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid club ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var club models.Club
	if err := gormDB.First(&club, clubID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Club not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding club.")
		return
	}

	// Whitelisted fields only.
	if name := c.PostForm("name"); name != "" {
		club.Name = name
	}
	if prefix := c.PostForm("prefix"); prefix != "" {
		club.Prefix = prefix
	}

	logoFile, err := c.FormFile("logo")
	if err == nil {
		logoPath, err := helpers.UploadFile(c, logoFile, "club_logos")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if club.LogoPath != "" {
			helpers.DeleteFile(club.LogoPath)
		}
		club.LogoPath = logoPath
	}

	if err := gormDB.Save(&club).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update club.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Club updated successfully.",
		"club":    club,
	})
}

func DeleteClub(c *gin.Context) {
	clubID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid club ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Delete(&models.Club{}, clubID)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete club.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Club not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Club deleted successfully."})
}
