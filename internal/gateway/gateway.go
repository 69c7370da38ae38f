package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatusApproved is the gateway payment status that triggers ticket issuance.
const StatusApproved = "approved"

// Item is one purchasable line in a checkout preference.
type Item struct {
	ID          string
	Title       string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	CurrencyID  string
}

type PreferenceRequest struct {
	Items             []Item
	SuccessURL        string
	FailureURL        string
	ExternalReference string
	Metadata          map[string]any
}

type Preference struct {
	ID        string
	InitPoint string
}

// Payment is the subset of gateway payment data the confirmation flow needs.
type Payment struct {
	ID                string
	Status            string
	ExternalReference string
	Metadata          map[string]any
}

// Client abstracts the payment gateway so the purchase workflow can be
// exercised against a fake in tests.
type Client interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
	PaymentByID(ctx context.Context, id string) (*Payment, error)
}
