package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
)

type SectorRequest struct {
	Number   uint   `json:"number" binding:"required"`
	Name     string `json:"name" binding:"required,min=2"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

type SectorUpdateRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// sectorKeyFromParams resolves the composite (stadium, number) identity out
// of the nested route.
func sectorKeyFromParams(c *gin.Context) (models.SectorKey, error) {
	stadiumID, err := helpers.UintParam(c, "id")
	if err != nil {
		return models.SectorKey{}, err
	}
	number, err := helpers.UintParam(c, "number")
	if err != nil {
		return models.SectorKey{}, err
	}
	return models.SectorKey{Number: number, StadiumID: stadiumID}, nil
}

func CreateSector(c *gin.Context) {
	stadiumID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid stadium ID.")
		return
	}

	var req SectorRequest
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
		helpers.RespondWithError(c, http.StatusNotFound, "Stadium not found.")
		return
	}

	var existing models.Sector
	if result := gormDB.Where("number = ? AND stadium_id = ?", req.Number, stadiumID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "That sector number already exists in this stadium.")
		return
	}

	sector := models.Sector{
		Number:    req.Number,
		StadiumID: stadiumID,
		Name:      req.Name,
		Capacity:  req.Capacity,
	}

	if err := gormDB.Create(&sector).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create sector.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sector created successfully.",
		"sector":  sector,
	})
}

func ListSectors(c *gin.Context) {
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

	page, limit, err := helpers.PaginationParams(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Sector{}).Where("stadium_id = ?", stadiumID)
	var totalCount int64
	query.Count(&totalCount)

	var sectors []models.Sector
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("number ASC").Find(&sectors).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sectors.")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated(sectors, totalCount, page, limit))
}

func GetSector(c *gin.Context) {
	key, err := sectorKeyFromParams(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sector reference.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var sector models.Sector
	err = gormDB.Preload("Stadium").Where("number = ? AND stadium_id = ?", key.Number, key.StadiumID).First(&sector).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Sector not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sector.")
		return
	}

	c.JSON(http.StatusOK, sector)
}

func UpdateSector(c *gin.Context) {
	key, err := sectorKeyFromParams(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sector reference.")
		return
	}

	var req SectorUpdateRequest
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

	var sector models.Sector
	err = gormDB.Where("number = ? AND stadium_id = ?", key.Number, key.StadiumID).First(&sector).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Sector not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding sector.")
		return
	}

	sector.Name = req.Name
	sector.Capacity = req.Capacity

	if err := gormDB.Save(&sector).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update sector.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sector updated successfully.",
		"sector":  sector,
	})
}

func DeleteSector(c *gin.Context) {
	key, err := sectorKeyFromParams(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sector reference.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("number = ? AND stadium_id = ?", key.Number, key.StadiumID).Delete(&models.Sector{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete sector.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Sector not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sector deleted successfully."})
}
