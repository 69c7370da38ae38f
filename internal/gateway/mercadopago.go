package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type mercadoPago struct {
	preferences preference.Client
	payments    payment.Client
}

// NewMercadoPago builds a Client backed by the Mercado Pago SDK. Gateway
// calls are bounded by a 5s HTTP timeout.
func NewMercadoPago(accessToken string) (Client, error) {
	cfg, err := mpconfig.New(accessToken, mpconfig.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	if err != nil {
		return nil, err
	}
	return &mercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

func (m *mercadoPago) CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	items := make([]preference.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		unitPrice, _ := item.UnitPrice.Float64()
		items = append(items, preference.ItemRequest{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			CurrencyID:  item.CurrencyID,
		})
	}

	resp, err := m.preferences.Create(ctx, preference.Request{
		Items: items,
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
		},
		AutoReturn:        "approved",
		ExternalReference: req.ExternalReference,
		Metadata:          req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return &Preference{ID: resp.ID, InitPoint: resp.InitPoint}, nil
}

func (m *mercadoPago) PaymentByID(ctx context.Context, id string) (*Payment, error) {
	paymentID, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q", id)
	}

	resp, err := m.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return &Payment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		Metadata:          resp.Metadata,
	}, nil
}
