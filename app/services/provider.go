package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzk/eticaret/app/models"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusCaptured   = "captured"
	PaymentStatusCanceled   = "canceled"
)

var (
	ErrInvalidProviderData = errors.New("invalid payment provider data")
	ErrNotAllowed          = errors.New("operation not allowed in current payment state")
	ErrUnknownProvider     = errors.New("unknown payment provider")
)

type InitiatePaymentInput struct {
	CartID       string
	Amount       decimal.Decimal
	CurrencyCode string
	Context      map[string]any
}

type PaymentSessionOutput struct {
	ID     string
	Status string
	Data   models.JSONMap
}

type WebhookPayload struct {
	Data    map[string]any
	RawData []byte
	Headers map[string]string
}

type WebhookActionResult struct {
	Action    string
	SessionID string
	Amount    decimal.Decimal
}

// PaymentProvider is the capability set the checkout machinery expects from
// every gateway integration. Session state travels as an opaque JSONMap that
// only the owning provider interprets.
type PaymentProvider interface {
	Identifier() string
	InitiatePayment(ctx context.Context, input InitiatePaymentInput) (*PaymentSessionOutput, error)
	AuthorizePayment(ctx context.Context, data models.JSONMap, authCtx map[string]any) (*PaymentSessionOutput, error)
	CapturePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error)
	RefundPayment(ctx context.Context, data models.JSONMap, amount decimal.Decimal) (models.JSONMap, error)
	CancelPayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error)
	GetPaymentStatus(ctx context.Context, data models.JSONMap) (string, error)
	DeletePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error)
	RetrievePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error)
	UpdatePayment(ctx context.Context, data models.JSONMap, update map[string]any) (models.JSONMap, error)
	GetWebhookActionAndData(payload WebhookPayload) (*WebhookActionResult, error)
}

type ProviderRegistry struct {
	providers map[string]PaymentProvider
}

func NewProviderRegistry(providers ...PaymentProvider) *ProviderRegistry {
	r := &ProviderRegistry{providers: make(map[string]PaymentProvider, len(providers))}
	for _, p := range providers {
		r.providers[p.Identifier()] = p
	}
	return r
}

func (r *ProviderRegistry) Get(identifier string) (PaymentProvider, error) {
	p, ok := r.providers[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, identifier)
	}
	return p, nil
}

// dataFlag reads a boolean out of provider session data, tolerating the
// float/bool ambiguity of JSON round trips.
func dataFlag(data models.JSONMap, key string) bool {
	switch v := data[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	}
	return false
}

// deriveStatus maps the stored flags onto the session status enum:
// captured wins over authorized, everything else is pending.
func deriveStatus(data models.JSONMap) string {
	if dataFlag(data, "captured") {
		return PaymentStatusCaptured
	}
	if dataFlag(data, "authorized") {
		return PaymentStatusAuthorized
	}
	return PaymentStatusPending
}

func cloneData(data models.JSONMap) models.JSONMap {
	out := make(models.JSONMap, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
