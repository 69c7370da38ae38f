package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/middleware"
	"github.com/matchdaylabs/tribuna/internal/services"
)

type CheckoutRequest struct {
	EventID  uint `json:"event_id" binding:"required"`
	SectorID uint `json:"sector_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// webhookNotification is the body shape MercadoPago posts. Older integrations
// send the payment id as a "data.id" query parameter instead.
type webhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// CreateCheckout opens a purchase and returns the gateway preference the
// frontend redirects the buyer to. The purchase stays pending until the
// payment webhook confirms it.
func CreateCheckout(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req CheckoutRequest
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

	gw := middleware.GetGatewayClient(c)
	if gw == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway not configured.")
		return
	}

	result, err := services.CreateCheckout(c.Request.Context(), gormDB, gw, services.CheckoutInput{
		UserID:   userID.(uint),
		EventID:  req.EventID,
		SectorID: req.SectorID,
		Quantity: req.Quantity,
	})
	if err != nil {
		helpers.RespondWithAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Checkout created successfully.",
		"checkout": result,
	})
}

// CreateCardPurchase completes a purchase immediately, without going through
// the gateway. Tickets are issued in the same transaction.
func CreateCardPurchase(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req CheckoutRequest
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

	result, err := services.CreateCardPurchase(c.Request.Context(), gormDB, services.CheckoutInput{
		UserID:   userID.(uint),
		EventID:  req.EventID,
		SectorID: req.SectorID,
		Quantity: req.Quantity,
	})
	if err != nil {
		helpers.RespondWithAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Purchase completed successfully.",
		"purchase": result,
	})
}

// PaymentWebhook receives payment notifications from the gateway. It always
// answers 200 so the gateway does not disable the endpoint; failed
// notifications are retried by the gateway and handled idempotently.
func PaymentWebhook(c *gin.Context) {
	notificationID := c.Query("data.id")
	if notificationID == "" {
		var body webhookNotification
		if err := c.ShouldBindJSON(&body); err == nil {
			notificationID = body.Data.ID
		}
	}
	if notificationID == "" {
		c.String(http.StatusOK, "OK")
		return
	}

	if secret := os.Getenv("MP_WEBHOOK_SECRET"); secret != "" {
		ok := helpers.VerifyWebhookSignature(
			c.GetHeader("x-signature"),
			c.GetHeader("x-request-id"),
			notificationID,
			secret,
		)
		if !ok {
			log.Printf("webhook: invalid signature for notification %s", notificationID)
			c.String(http.StatusOK, "OK")
			return
		}
	}

	db, exists := c.Get("db")
	if !exists {
		c.String(http.StatusOK, "OK")
		return
	}
	gormDB := db.(*gorm.DB)

	gw := middleware.GetGatewayClient(c)
	if gw == nil {
		c.String(http.StatusOK, "OK")
		return
	}

	if err := services.FinalizeGatewayPayment(c.Request.Context(), gormDB, gw, notificationID); err != nil {
		log.Printf("webhook: failed to process notification %s: %v", notificationID, err)
	}

	c.String(http.StatusOK, "OK")
}

// ListPurchaseTickets returns the tickets of one of the caller's purchases.
func ListPurchaseTickets(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	purchaseID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	tickets, err := services.TicketsForPurchase(gormDB, purchaseID, userID.(uint))
	if err != nil {
		helpers.RespondWithAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}
