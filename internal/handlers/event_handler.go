package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
)

type EventRequest struct {
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	Tournament string    `json:"tournament" binding:"required"`
	Status     string    `json:"status"`
	HomeOnly   bool      `json:"home_only"`
	HomeClubID uint      `json:"home_club_id" binding:"required"`
	AwayClubID uint      `json:"away_club_id" binding:"required"`
	StadiumID  uint      `json:"stadium_id" binding:"required"`
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	status := models.EventScheduled
	if req.Status != "" {
		status = models.EventStatus(req.Status)
		if !status.Valid() {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event status.")
			return
		}
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var homeClub, awayClub models.Club
	if err := gormDB.First(&homeClub, req.HomeClubID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Home club not found.")
		return
	}
	if err := gormDB.First(&awayClub, req.AwayClubID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Away club not found.")
		return
	}

	var stadium models.Stadium
	if err := gormDB.First(&stadium, req.StadiumID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Stadium not found.")
		return
	}

	event := models.Event{
		StartsAt:   req.StartsAt,
		Tournament: req.Tournament,
		Status:     status,
		HomeOnly:   req.HomeOnly,
		HomeClubID: req.HomeClubID,
		AwayClubID: req.AwayClubID,
		StadiumID:  req.StadiumID,
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func ListEvents(c *gin.Context) {
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

	query := gormDB.Model(&models.Event{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if tournament := c.Query("tournament"); tournament != "" {
		query = query.Where("tournament = ?", tournament)
	}

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (page - 1) * limit
	err = query.Preload("HomeClub").Preload("AwayClub").Preload("Stadium").
		Offset(offset).Limit(limit).Order("starts_at ASC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated(events, totalCount, page, limit))
}

func GetEvent(c *gin.Context) {
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

	var event models.Event
	err = gormDB.Preload("HomeClub").Preload("AwayClub").Preload("Stadium").Preload("Prices").
		First(&event, eventID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func UpdateEvent(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	status := models.EventScheduled
	if req.Status != "" {
		status = models.EventStatus(req.Status)
		if !status.Valid() {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event status.")
			return
		}
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	event.StartsAt = req.StartsAt
	event.Tournament = req.Tournament
	event.Status = status
	event.HomeOnly = req.HomeOnly
	event.HomeClubID = req.HomeClubID
	event.AwayClubID = req.AwayClubID
	event.StadiumID = req.StadiumID

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
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

	result := gormDB.Delete(&models.Event{}, eventID)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}
