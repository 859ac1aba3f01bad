package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/oguzk/eticaret/app/models"
	"github.com/shopspring/decimal"
)

const FakeProviderID = "fake-cc"

// FakeCcProvider is a dev-only card provider: it fakes the whole
// authorize/capture/refund progression in session data without ever
// talking to a gateway. Never register it in production.
type FakeCcProvider struct{}

func NewFakeCcProvider() *FakeCcProvider {
	return &FakeCcProvider{}
}

func (p *FakeCcProvider) Identifier() string { return FakeProviderID }

func randID(prefix string) string {
	const alphanum = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = alphanum[rand.Intn(len(alphanum))]
	}
	return fmt.Sprintf("%s_%s", prefix, string(b))
}

func (p *FakeCcProvider) InitiatePayment(ctx context.Context, input InitiatePaymentInput) (*PaymentSessionOutput, error) {
	externalID := randID("ps")
	data := models.JSONMap{
		"external_id":     externalID,
		"client_secret":   randID("secret"),
		"authorized":      false,
		"captured":        false,
		"refunded_amount": 0.0,
		"currency_code":   input.CurrencyCode,
		"method":          "card",
	}
	return &PaymentSessionOutput{ID: externalID, Status: PaymentStatusPending, Data: data}, nil
}

func (p *FakeCcProvider) AuthorizePayment(ctx context.Context, data models.JSONMap, authCtx map[string]any) (*PaymentSessionOutput, error) {
	out := cloneData(data)
	out["authorized"] = true
	if _, ok := out["last4"]; !ok {
		out["last4"] = "4242"
	}
	return &PaymentSessionOutput{Status: PaymentStatusAuthorized, Data: out}, nil
}

func (p *FakeCcProvider) CapturePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	if !dataFlag(data, "authorized") {
		return nil, fmt.Errorf("%w: cannot capture payment that is not authorized", ErrInvalidProviderData)
	}
	out := cloneData(data)
	out["captured"] = true
	return out, nil
}

func (p *FakeCcProvider) RefundPayment(ctx context.Context, data models.JSONMap, amount decimal.Decimal) (models.JSONMap, error) {
	if !dataFlag(data, "captured") {
		return nil, fmt.Errorf("%w: cannot refund payment that is not captured", ErrInvalidProviderData)
	}
	out := cloneData(data)
	refunded, _ := out["refunded_amount"].(float64)
	f, _ := amount.Float64()
	out["refunded_amount"] = refunded + f
	return out, nil
}

func (p *FakeCcProvider) CancelPayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	if dataFlag(data, "captured") {
		return nil, fmt.Errorf("%w: cannot cancel captured payment", ErrNotAllowed)
	}
	out := cloneData(data)
	out["authorized"] = false
	return out, nil
}

func (p *FakeCcProvider) GetPaymentStatus(ctx context.Context, data models.JSONMap) (string, error) {
	return deriveStatus(data), nil
}

func (p *FakeCcProvider) DeletePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	return cloneData(data), nil
}

func (p *FakeCcProvider) RetrievePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	return cloneData(data), nil
}

func (p *FakeCcProvider) UpdatePayment(ctx context.Context, data models.JSONMap, update map[string]any) (models.JSONMap, error) {
	out := cloneData(data)
	for k, v := range update {
		out[k] = v
	}
	return out, nil
}

func (p *FakeCcProvider) GetWebhookActionAndData(payload WebhookPayload) (*WebhookActionResult, error) {
	sessionID, _ := payload.Data["session_id"].(string)
	if sessionID == "" {
		sessionID = "unknown"
	}
	amount := decimal.Zero
	if f, ok := payload.Data["amount"].(float64); ok {
		amount = decimal.NewFromFloat(f)
	}
	return &WebhookActionResult{Action: PaymentStatusAuthorized, SessionID: sessionID, Amount: amount}, nil
}
