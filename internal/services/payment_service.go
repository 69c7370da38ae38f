package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/gateway"
	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
	"github.com/matchdaylabs/tribuna/internal/monitoring"
)

type CheckoutInput struct {
	UserID   uint
	EventID  uint
	SectorID uint
	Quantity int
}

type CheckoutResult struct {
	PurchaseID   uint   `json:"purchase_id"`
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point,omitempty"`
}

type PurchaseResult struct {
	PurchaseID uint            `json:"purchase_id"`
	Total      decimal.Decimal `json:"total"`
	Tickets    []models.Ticket `json:"tickets"`
}

// qrPayload is what each ticket's QR image encodes. The ticket id makes the
// payload unique per ticket.
type qrPayload struct {
	TicketID   uint `json:"ticket_id"`
	EventID    uint `json:"event_id"`
	PurchaseID uint `json:"purchase_id"`
}

// lookupPrice resolves the flat price for a sector at an event. The event
// determines the stadium half of the sector's composite key.
func lookupPrice(tx *gorm.DB, eventID, sectorID uint) (*models.Event, *models.Price, error) {
	var event models.Event
	if err := tx.Preload("HomeClub").Preload("AwayClub").First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, helpers.NewNotFound("Event not found.")
		}
		return nil, nil, err
	}

	var price models.Price
	err := tx.Where("event_id = ? AND sector_number = ? AND stadium_id = ?", event.ID, sectorID, event.StadiumID).
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, helpers.NewNotFound("No price set for that event and sector.")
		}
		return nil, nil, err
	}

	return &event, &price, nil
}

// CreateCheckout creates a pending purchase and a gateway checkout preference
// for it. The purchase stays pending until the webhook confirms the payment.
func CreateCheckout(ctx context.Context, db *gorm.DB, gw gateway.Client, in CheckoutInput) (*CheckoutResult, error) {
	if in.Quantity <= 0 {
		return nil, helpers.NewInvalidArgument("Quantity must be a positive integer.")
	}

	var result CheckoutResult
	err := db.Transaction(func(tx *gorm.DB) error {
		event, price, err := lookupPrice(tx, in.EventID, in.SectorID)
		if err != nil {
			return err
		}

		purchase := models.Purchase{
			UserID: in.UserID,
			Total:  price.Amount.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Method: models.MethodMercadoPago,
			Status: models.PaymentPending,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		pref, err := gw.CreatePreference(ctx, gateway.PreferenceRequest{
			Items: []gateway.Item{{
				ID:          fmt.Sprintf("event-%d-sector-%d", in.EventID, in.SectorID),
				Title:       event.Description(),
				Description: fmt.Sprintf("Admission for sector #%d", in.SectorID),
				Quantity:    in.Quantity,
				UnitPrice:   price.Amount,
				CurrencyID:  "ARS",
			}},
			SuccessURL:        os.Getenv("FRONTEND_URL") + "/purchase-success",
			FailureURL:        os.Getenv("FRONTEND_URL") + "/purchase-failed",
			ExternalReference: strconv.FormatUint(uint64(purchase.ID), 10),
			// The gateway echoes this back on the payment; the webhook needs
			// it to know how many tickets to issue.
			Metadata: map[string]any{
				"event_id":  in.EventID,
				"sector_id": in.SectorID,
				"quantity":  in.Quantity,
			},
		})
		if err != nil {
			log.Printf("payment gateway preference creation failed: %v", err)
			return helpers.NewUpstream("Payment gateway request failed.")
		}

		if err := tx.Model(&purchase).Update("preference_id", pref.ID).Error; err != nil {
			return err
		}

		result = CheckoutResult{
			PurchaseID:   purchase.ID,
			PreferenceID: pref.ID,
			InitPoint:    pref.InitPoint,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordPurchase(string(models.MethodMercadoPago))
	return &result, nil
}

// CreateCardPurchase completes a card payment synchronously: the purchase is
// created already completed and its tickets are issued in the same
// transaction.
func CreateCardPurchase(ctx context.Context, db *gorm.DB, in CheckoutInput) (*PurchaseResult, error) {
	if in.Quantity <= 0 {
		return nil, helpers.NewInvalidArgument("Quantity must be a positive integer.")
	}

	var result PurchaseResult
	err := db.Transaction(func(tx *gorm.DB) error {
		event, price, err := lookupPrice(tx, in.EventID, in.SectorID)
		if err != nil {
			return err
		}

		purchase := models.Purchase{
			UserID: in.UserID,
			Total:  price.Amount.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Method: models.MethodCard,
			Status: models.PaymentCompleted,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		tickets, err := issueTickets(tx, &purchase, event, in.SectorID, in.Quantity)
		if err != nil {
			return err
		}

		result = PurchaseResult{
			PurchaseID: purchase.ID,
			Total:      purchase.Total,
			Tickets:    tickets,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordPurchase(string(models.MethodCard))
	return &result, nil
}

// issueTickets creates quantity tickets for a purchase. Each ticket is
// flushed first so its id can be baked into its QR payload.
func issueTickets(tx *gorm.DB, purchase *models.Purchase, event *models.Event, sectorID uint, quantity int) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0, quantity)
	for i := 0; i < quantity; i++ {
		ticket := models.Ticket{
			PurchaseID:   purchase.ID,
			EventID:      event.ID,
			SectorNumber: sectorID,
			StadiumID:    event.StadiumID,
			QRCode:       "generating",
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return nil, err
		}

		qr, err := encodeTicketQR(qrPayload{
			TicketID:   ticket.ID,
			EventID:    event.ID,
			PurchaseID: purchase.ID,
		})
		if err != nil {
			return nil, err
		}
		if err := tx.Model(&ticket).Update("qr_code", qr).Error; err != nil {
			return nil, err
		}
		ticket.QRCode = qr
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func encodeTicketQR(payload qrPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

type checkoutMetadata struct {
	EventID  uint
	SectorID uint
	Quantity int
}

func parseCheckoutMetadata(meta map[string]any) (*checkoutMetadata, error) {
	eventID, okEvent := metadataUint(meta, "event_id")
	sectorID, okSector := metadataUint(meta, "sector_id")
	quantity, okQuantity := metadataUint(meta, "quantity")
	if !okEvent || !okSector || !okQuantity || quantity == 0 {
		return nil, fmt.Errorf("payment metadata missing event_id/sector_id/quantity: %v", meta)
	}
	return &checkoutMetadata{
		EventID:  eventID,
		SectorID: sectorID,
		Quantity: int(quantity),
	}, nil
}

// metadataUint tolerates the numeric shapes gateway metadata comes back in
// (JSON numbers decode as float64, replayed fixtures may carry strings).
func metadataUint(meta map[string]any, key string) (uint, bool) {
	switch v := meta[key].(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case string:
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	}
	return 0, false
}

// FinalizeGatewayPayment is the confirmation receiver: it resolves a webhook
// notification to a gateway payment and, for an approved payment, completes
// the referenced purchase and issues its tickets exactly once. A conditional
// update on the pending status is what makes redelivered (and concurrently
// delivered) notifications no-ops.
func FinalizeGatewayPayment(ctx context.Context, db *gorm.DB, gw gateway.Client, notificationID string) error {
	pay, err := gw.PaymentByID(ctx, notificationID)
	if err != nil {
		monitoring.RecordWebhook("gateway_error")
		return helpers.NewUpstream("Could not fetch payment details from gateway.")
	}

	if pay.Status != gateway.StatusApproved || pay.ExternalReference == "" {
		monitoring.RecordWebhook("ignored")
		return nil
	}

	purchaseID, err := strconv.ParseUint(pay.ExternalReference, 10, 32)
	if err != nil {
		monitoring.RecordWebhook("bad_reference")
		return helpers.NewInvalidArgument("Malformed external reference on payment.")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.First(&purchase, uint(purchaseID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Nothing to finalize; likely a reference from another system.
				return nil
			}
			return err
		}
		if purchase.Status == models.PaymentCompleted {
			return nil
		}

		// Only one delivery can move pending -> completed; losers see zero
		// rows affected and back off.
		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND status = ?", purchase.ID, models.PaymentPending).
			Updates(map[string]any{
				"status":             models.PaymentCompleted,
				"gateway_payment_id": pay.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		meta, err := parseCheckoutMetadata(pay.Metadata)
		if err != nil {
			return err
		}

		var event models.Event
		if err := tx.First(&event, meta.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("payment metadata references missing event %d", meta.EventID)
			}
			return err
		}

		purchase.Status = models.PaymentCompleted
		_, err = issueTickets(tx, &purchase, &event, meta.SectorID, meta.Quantity)
		return err
	})
	if err != nil {
		monitoring.RecordWebhook("failed")
		return err
	}

	monitoring.RecordWebhook("processed")
	return nil
}

// TicketView is the joined shape returned when a buyer lists the tickets of
// one of their purchases.
type TicketView struct {
	TicketID uint      `json:"ticket_id"`
	QRCode   string    `json:"qr_code"`
	HomeClub string    `json:"home_club"`
	AwayClub string    `json:"away_club"`
	Sector   string    `json:"sector"`
	Stadium  string    `json:"stadium"`
	StartsAt time.Time `json:"starts_at"`
}

// TicketsForPurchase lists the tickets of a purchase owned by userID. A
// purchase owned by someone else is indistinguishable from a missing one.
func TicketsForPurchase(db *gorm.DB, purchaseID, userID uint) ([]TicketView, error) {
	var purchase models.Purchase
	err := db.Where("id = ? AND user_id = ?", purchaseID, userID).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helpers.NewNotFound("Purchase not found.")
		}
		return nil, err
	}

	var tickets []models.Ticket
	err = db.Preload("Event.HomeClub").Preload("Event.AwayClub").Preload("Event.Stadium").Preload("Sector").
		Where("purchase_id = ?", purchaseID).
		Order("id ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}

	views := make([]TicketView, 0, len(tickets))
	for _, ticket := range tickets {
		view := TicketView{
			TicketID: ticket.ID,
			QRCode:   ticket.QRCode,
		}
		if ticket.Event != nil {
			view.StartsAt = ticket.Event.StartsAt
			if ticket.Event.HomeClub != nil {
				view.HomeClub = ticket.Event.HomeClub.Name
			}
			if ticket.Event.AwayClub != nil {
				view.AwayClub = ticket.Event.AwayClub.Name
			}
			if ticket.Event.Stadium != nil {
				view.Stadium = ticket.Event.Stadium.Name
			}
		}
		if ticket.Sector != nil {
			view.Sector = ticket.Sector.Name
		}
		views = append(views, view)
	}
	return views, nil
}

// RedeemTicket marks a ticket used at the gate. A conditional update keeps
// two scans of the same code from both succeeding.
func RedeemTicket(db *gorm.DB, ticketID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helpers.NewNotFound("Ticket not found.")
		}
		return nil, err
	}
	if ticket.Used {
		return nil, helpers.NewConflict("Ticket already used.")
	}

	now := time.Now()
	res := db.Model(&models.Ticket{}).
		Where("id = ? AND used = ?", ticketID, false).
		Updates(map[string]any{"used": true, "used_at": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, helpers.NewConflict("Ticket already used.")
	}

	ticket.Used = true
	ticket.UsedAt = &now
	return &ticket, nil
}
