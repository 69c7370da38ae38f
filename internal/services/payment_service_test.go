package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matchdaylabs/tribuna/internal/gateway"
	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Stadium{},
		&models.Sector{},
		&models.Event{},
		&models.Price{},
		&models.Membership{},
		&models.TicketType{},
		&models.Purchase{},
		&models.Ticket{},
	)
	require.NoError(t, err)

	return db
}

// fixture ids created by seedEventWithPrice.
type paymentFixture struct {
	User    models.User
	Event   models.Event
	Sector  models.Sector
	Price   models.Price
	Stadium models.Stadium
}

func seedEventWithPrice(t *testing.T, db *gorm.DB, amount string) paymentFixture {
	t.Helper()

	user := models.User{
		NationalID: "30123456",
		FirstName:  "Diego",
		LastName:   "Paz",
		Email:      "diego@example.com",
		Password:   "hashed",
		Role:       models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)

	home := models.Club{Name: "River Plate", Prefix: "RIV"}
	away := models.Club{Name: "Boca Juniors", Prefix: "BOC"}
	require.NoError(t, db.Create(&home).Error)
	require.NoError(t, db.Create(&away).Error)

	stadium := models.Stadium{Name: "Monumental", Street: "Av. Figueroa Alcorta", Number: "7597", City: "Buenos Aires"}
	require.NoError(t, db.Create(&stadium).Error)

	sector := models.Sector{Number: 1, StadiumID: stadium.ID, Name: "Platea Baja", Capacity: 500}
	require.NoError(t, db.Create(&sector).Error)

	event := models.Event{
		StartsAt:   time.Now().Add(72 * time.Hour),
		Tournament: "Liga Profesional",
		Status:     models.EventOnSale,
		HomeClubID: home.ID,
		AwayClubID: away.ID,
		StadiumID:  stadium.ID,
	}
	require.NoError(t, db.Create(&event).Error)

	price := models.Price{
		EventID:      event.ID,
		SectorNumber: sector.Number,
		StadiumID:    stadium.ID,
		Amount:       decimal.RequireFromString(amount),
	}
	require.NoError(t, db.Create(&price).Error)

	return paymentFixture{User: user, Event: event, Sector: sector, Price: price, Stadium: stadium}
}

// fakeGateway records requests and returns canned responses.
type fakeGateway struct {
	preference    *gateway.Preference
	preferenceErr error
	payment       *gateway.Payment
	paymentErr    error

	preferenceRequests []gateway.PreferenceRequest
	paymentLookups     []string
}

func (f *fakeGateway) CreatePreference(_ context.Context, req gateway.PreferenceRequest) (*gateway.Preference, error) {
	f.preferenceRequests = append(f.preferenceRequests, req)
	if f.preferenceErr != nil {
		return nil, f.preferenceErr
	}
	return f.preference, nil
}

func (f *fakeGateway) PaymentByID(_ context.Context, id string) (*gateway.Payment, error) {
	f.paymentLookups = append(f.paymentLookups, id)
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return f.payment, nil
}

func TestCreateCheckout(t *testing.T) {
	t.Run("creates a pending purchase with a preference id", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1500.00")
		gw := &fakeGateway{preference: &gateway.Preference{ID: "pref-123", InitPoint: "https://gateway.test/pref-123"}}

		result, err := CreateCheckout(context.Background(), db, gw, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  fx.Event.ID,
			SectorID: fx.Sector.Number,
			Quantity: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "pref-123", result.PreferenceID)
		assert.Equal(t, "https://gateway.test/pref-123", result.InitPoint)

		var purchase models.Purchase
		require.NoError(t, db.First(&purchase, result.PurchaseID).Error)
		assert.Equal(t, models.PaymentPending, purchase.Status)
		assert.Equal(t, models.MethodMercadoPago, purchase.Method)
		assert.True(t, purchase.Total.Equal(decimal.RequireFromString("3000.00")))
		require.NotNil(t, purchase.PreferenceID)
		assert.Equal(t, "pref-123", *purchase.PreferenceID)

		require.Len(t, gw.preferenceRequests, 1)
		req := gw.preferenceRequests[0]
		require.Len(t, req.Items, 1)
		assert.Equal(t, "River Plate vs Boca Juniors", req.Items[0].Title)
		assert.Equal(t, 2, req.Items[0].Quantity)
		assert.Equal(t, "ARS", req.Items[0].CurrencyID)
		assert.Equal(t, fmt.Sprintf("%d", purchase.ID), req.ExternalReference)

		// No tickets before the webhook confirms.
		var ticketCount int64
		db.Model(&models.Ticket{}).Count(&ticketCount)
		assert.Zero(t, ticketCount)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1500.00")
		gw := &fakeGateway{}

		_, err := CreateCheckout(context.Background(), db, gw, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  fx.Event.ID,
			SectorID: fx.Sector.Number,
			Quantity: 0,
		})
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Code)
		assert.Empty(t, gw.preferenceRequests)
	})

	t.Run("returns 404 when no price is set for the sector", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1500.00")
		gw := &fakeGateway{}

		_, err := CreateCheckout(context.Background(), db, gw, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  fx.Event.ID,
			SectorID: 99,
			Quantity: 1,
		})
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Code)
	})

	t.Run("rolls the purchase back when the gateway fails", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1500.00")
		gw := &fakeGateway{preferenceErr: errors.New("gateway unavailable")}

		_, err := CreateCheckout(context.Background(), db, gw, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  fx.Event.ID,
			SectorID: fx.Sector.Number,
			Quantity: 1,
		})
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Code)

		var purchaseCount int64
		db.Model(&models.Purchase{}).Count(&purchaseCount)
		assert.Zero(t, purchaseCount)
	})
}

func TestCreateCardPurchase(t *testing.T) {
	t.Run("completes immediately and issues distinct tickets", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1000.00")

		result, err := CreateCardPurchase(context.Background(), db, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  fx.Event.ID,
			SectorID: fx.Sector.Number,
			Quantity: 3,
		})
		require.NoError(t, err)
		assert.True(t, result.Total.Equal(decimal.RequireFromString("3000.00")))
		require.Len(t, result.Tickets, 3)

		seen := make(map[string]bool)
		for _, ticket := range result.Tickets {
			assert.True(t, strings.HasPrefix(ticket.QRCode, "data:image/png;base64,"))
			assert.False(t, seen[ticket.QRCode], "qr codes must be unique per ticket")
			seen[ticket.QRCode] = true
			assert.Equal(t, fx.Event.ID, ticket.EventID)
			assert.Equal(t, fx.Sector.Number, ticket.SectorNumber)
			assert.False(t, ticket.Used)
		}

		var purchase models.Purchase
		require.NoError(t, db.First(&purchase, result.PurchaseID).Error)
		assert.Equal(t, models.PaymentCompleted, purchase.Status)
		assert.Equal(t, models.MethodCard, purchase.Method)
	})

	t.Run("returns 404 for an unknown event", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1000.00")

		_, err := CreateCardPurchase(context.Background(), db, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  999,
			SectorID: fx.Sector.Number,
			Quantity: 1,
		})
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Code)
	})
}

func pendingCheckout(t *testing.T, db *gorm.DB, fx paymentFixture, quantity int) *models.Purchase {
	t.Helper()
	gw := &fakeGateway{preference: &gateway.Preference{ID: "pref-1", InitPoint: "https://gateway.test/pref-1"}}
	result, err := CreateCheckout(context.Background(), db, gw, CheckoutInput{
		UserID:   fx.User.ID,
		EventID:  fx.Event.ID,
		SectorID: fx.Sector.Number,
		Quantity: quantity,
	})
	require.NoError(t, err)

	var purchase models.Purchase
	require.NoError(t, db.First(&purchase, result.PurchaseID).Error)
	return &purchase
}

func approvedPayment(purchase *models.Purchase, fx paymentFixture, quantity int) *gateway.Payment {
	return &gateway.Payment{
		ID:                "pay-77",
		Status:            gateway.StatusApproved,
		ExternalReference: fmt.Sprintf("%d", purchase.ID),
		// Gateway metadata arrives as decoded JSON, so numbers are float64.
		Metadata: map[string]any{
			"event_id":  float64(fx.Event.ID),
			"sector_id": float64(fx.Sector.Number),
			"quantity":  float64(quantity),
		},
	}
}

func TestFinalizeGatewayPayment(t *testing.T) {
	t.Run("completes the purchase and issues tickets", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "2000.00")
		purchase := pendingCheckout(t, db, fx, 2)
		gw := &fakeGateway{payment: approvedPayment(purchase, fx, 2)}

		require.NoError(t, FinalizeGatewayPayment(context.Background(), db, gw, "pay-77"))

		var updated models.Purchase
		require.NoError(t, db.First(&updated, purchase.ID).Error)
		assert.Equal(t, models.PaymentCompleted, updated.Status)
		require.NotNil(t, updated.GatewayPaymentID)
		assert.Equal(t, "pay-77", *updated.GatewayPaymentID)

		var tickets []models.Ticket
		require.NoError(t, db.Where("purchase_id = ?", purchase.ID).Find(&tickets).Error)
		assert.Len(t, tickets, 2)
	})

	t.Run("redelivered notifications do not issue tickets twice", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "2000.00")
		purchase := pendingCheckout(t, db, fx, 2)
		gw := &fakeGateway{payment: approvedPayment(purchase, fx, 2)}

		require.NoError(t, FinalizeGatewayPayment(context.Background(), db, gw, "pay-77"))
		require.NoError(t, FinalizeGatewayPayment(context.Background(), db, gw, "pay-77"))

		var ticketCount int64
		db.Model(&models.Ticket{}).Where("purchase_id = ?", purchase.ID).Count(&ticketCount)
		assert.EqualValues(t, 2, ticketCount)
	})

	t.Run("ignores payments that are not approved", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "2000.00")
		purchase := pendingCheckout(t, db, fx, 1)
		payment := approvedPayment(purchase, fx, 1)
		payment.Status = "rejected"
		gw := &fakeGateway{payment: payment}

		require.NoError(t, FinalizeGatewayPayment(context.Background(), db, gw, "pay-77"))

		var updated models.Purchase
		require.NoError(t, db.First(&updated, purchase.ID).Error)
		assert.Equal(t, models.PaymentPending, updated.Status)
	})

	t.Run("ignores references to unknown purchases", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "2000.00")
		gw := &fakeGateway{payment: &gateway.Payment{
			ID:                "pay-77",
			Status:            gateway.StatusApproved,
			ExternalReference: "424242",
			Metadata: map[string]any{
				"event_id":  float64(fx.Event.ID),
				"sector_id": float64(fx.Sector.Number),
				"quantity":  float64(1),
			},
		}}

		require.NoError(t, FinalizeGatewayPayment(context.Background(), db, gw, "pay-77"))

		var ticketCount int64
		db.Model(&models.Ticket{}).Count(&ticketCount)
		assert.Zero(t, ticketCount)
	})

	t.Run("missing metadata leaves the purchase pending for retry", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "2000.00")
		purchase := pendingCheckout(t, db, fx, 1)
		payment := approvedPayment(purchase, fx, 1)
		payment.Metadata = map[string]any{}
		gw := &fakeGateway{payment: payment}

		err := FinalizeGatewayPayment(context.Background(), db, gw, "pay-77")
		require.Error(t, err)

		var updated models.Purchase
		require.NoError(t, db.First(&updated, purchase.ID).Error)
		assert.Equal(t, models.PaymentPending, updated.Status)

		var ticketCount int64
		db.Model(&models.Ticket{}).Count(&ticketCount)
		assert.Zero(t, ticketCount)
	})

	t.Run("gateway lookup failures surface as upstream errors", func(t *testing.T) {
		db := setupTestDB(t)
		gw := &fakeGateway{paymentErr: errors.New("timeout")}

		err := FinalizeGatewayPayment(context.Background(), db, gw, "pay-77")
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Code)
	})

	t.Run("string metadata from replayed notifications is accepted", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "2000.00")
		purchase := pendingCheckout(t, db, fx, 1)
		payment := approvedPayment(purchase, fx, 1)
		payment.Metadata = map[string]any{
			"event_id":  fmt.Sprintf("%d", fx.Event.ID),
			"sector_id": fmt.Sprintf("%d", fx.Sector.Number),
			"quantity":  "1",
		}
		gw := &fakeGateway{payment: payment}

		require.NoError(t, FinalizeGatewayPayment(context.Background(), db, gw, "pay-77"))

		var ticketCount int64
		db.Model(&models.Ticket{}).Where("purchase_id = ?", purchase.ID).Count(&ticketCount)
		assert.EqualValues(t, 1, ticketCount)
	})
}

func TestTicketsForPurchase(t *testing.T) {
	t.Run("returns joined ticket views for the owner", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1000.00")

		result, err := CreateCardPurchase(context.Background(), db, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  fx.Event.ID,
			SectorID: fx.Sector.Number,
			Quantity: 2,
		})
		require.NoError(t, err)

		views, err := TicketsForPurchase(db, result.PurchaseID, fx.User.ID)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "River Plate", views[0].HomeClub)
		assert.Equal(t, "Boca Juniors", views[0].AwayClub)
		assert.Equal(t, "Platea Baja", views[0].Sector)
		assert.Equal(t, "Monumental", views[0].Stadium)
		assert.NotEmpty(t, views[0].QRCode)
	})

	t.Run("another user's purchase looks missing", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1000.00")

		result, err := CreateCardPurchase(context.Background(), db, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  fx.Event.ID,
			SectorID: fx.Sector.Number,
			Quantity: 1,
		})
		require.NoError(t, err)

		_, err = TicketsForPurchase(db, result.PurchaseID, fx.User.ID+1)
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Code)
	})
}

func TestRedeemTicket(t *testing.T) {
	t.Run("redeems once and rejects the second scan", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedEventWithPrice(t, db, "1000.00")

		result, err := CreateCardPurchase(context.Background(), db, CheckoutInput{
			UserID:   fx.User.ID,
			EventID:  fx.Event.ID,
			SectorID: fx.Sector.Number,
			Quantity: 1,
		})
		require.NoError(t, err)
		ticketID := result.Tickets[0].ID

		redeemed, err := RedeemTicket(db, ticketID)
		require.NoError(t, err)
		assert.True(t, redeemed.Used)
		require.NotNil(t, redeemed.UsedAt)

		_, err = RedeemTicket(db, ticketID)
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.Code)
	})

	t.Run("unknown tickets return 404", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := RedeemTicket(db, 12345)
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Code)
	})
}
