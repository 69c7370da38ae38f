package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/services"
)

// RedeemTicket marks a ticket as used at the gate. A ticket can only be
// redeemed once.
func RedeemTicket(c *gin.Context) {
	ticketID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	ticket, err := services.RedeemTicket(gormDB, ticketID)
	if err != nil {
		helpers.RespondWithAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket redeemed successfully.",
		"ticket":  ticket,
	})
}
