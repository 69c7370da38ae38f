package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
)

type PriceRequest struct {
	SectorNumber uint            `json:"sector_number" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

type PriceUpdateRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func CreatePrice(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Amount.IsNegative() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Amount must not be negative.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.First(&event, eventID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	// The sector must belong to the stadium hosting the event.
	var sector models.Sector
	err = gormDB.Where("number = ? AND stadium_id = ?", req.SectorNumber, event.StadiumID).First(&sector).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Sector not found in the event's stadium.")
		return
	}

	var existing models.Price
	result := gormDB.Where("event_id = ? AND sector_number = ? AND stadium_id = ?", eventID, req.SectorNumber, event.StadiumID).First(&existing)
	if result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "A price for that sector already exists on this event.")
		return
	}

	price := models.Price{
		EventID:      eventID,
		SectorNumber: req.SectorNumber,
		StadiumID:    event.StadiumID,
		Amount:       req.Amount,
	}

	if err := gormDB.Create(&price).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create price.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Price created successfully.",
		"price":   price,
	})
}

func ListPrices(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
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

	query := gormDB.Model(&models.Price{}).Where("event_id = ?", eventID)
	var totalCount int64
	query.Count(&totalCount)

	var prices []models.Price
	offset := (page - 1) * limit
	if err := query.Preload("Sector").Offset(offset).Limit(limit).Order("sector_number ASC").Find(&prices).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving prices.")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated(prices, totalCount, page, limit))
}

func GetPrice(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}
	sectorNumber, err := helpers.UintParam(c, "sector")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sector number.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.First(&event, eventID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	var price models.Price
	err = gormDB.Where("event_id = ? AND sector_number = ? AND stadium_id = ?", eventID, sectorNumber, event.StadiumID).First(&price).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Price not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving price.")
		return
	}

	c.JSON(http.StatusOK, price)
}

func UpdatePrice(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}
	sectorNumber, err := helpers.UintParam(c, "sector")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sector number.")
		return
	}

	var req PriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Amount.IsNegative() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Amount must not be negative.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.First(&event, eventID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	result := gormDB.Model(&models.Price{}).
		Where("event_id = ? AND sector_number = ? AND stadium_id = ?", eventID, sectorNumber, event.StadiumID).
		Update("amount", req.Amount)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update price.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Price not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Price updated successfully."})
}

func DeletePrice(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}
	sectorNumber, err := helpers.UintParam(c, "sector")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sector number.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.First(&event, eventID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	result := gormDB.Where("event_id = ? AND sector_number = ? AND stadium_id = ?", eventID, sectorNumber, event.StadiumID).
		Delete(&models.Price{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete price.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Price not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Price deleted successfully."})
}
