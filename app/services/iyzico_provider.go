package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/oguzk/eticaret/app/models"
	"github.com/shopspring/decimal"
)

const IyzicoProviderID = "iyzico"

// IyzicoProvider tracks session state for the 3DS flow. The actual card
// authorization happens out-of-band (init3ds → bank ACS → callback →
// auth3ds); this provider only records the outcome on the session.
type IyzicoProvider struct{}

func NewIyzicoProvider() *IyzicoProvider {
	return &IyzicoProvider{}
}

func (p *IyzicoProvider) Identifier() string { return IyzicoProviderID }

func (p *IyzicoProvider) InitiatePayment(ctx context.Context, input InitiatePaymentInput) (*PaymentSessionOutput, error) {
	conversationID := input.CartID
	if conversationID == "" {
		conversationID = fmt.Sprintf("cart_%d", time.Now().UnixMilli())
	}
	amount, _ := input.Amount.Float64()
	data := models.JSONMap{
		"conversationId": conversationID,
		"amount":         amount,
		"currency":       input.CurrencyCode,
		"authorized":     false,
		"captured":       false,
	}
	return &PaymentSessionOutput{
		ID:     fmt.Sprintf("iyzico_session_%d", time.Now().UnixMilli()),
		Status: PaymentStatusPending,
		Data:   data,
	}, nil
}

func (p *IyzicoProvider) AuthorizePayment(ctx context.Context, data models.JSONMap, authCtx map[string]any) (*PaymentSessionOutput, error) {
	out := cloneData(data)
	out["authorized"] = true
	if paymentID, ok := authCtx["paymentId"].(string); ok && paymentID != "" {
		out["paymentId"] = paymentID
	}
	return &PaymentSessionOutput{Status: PaymentStatusAuthorized, Data: out}, nil
}

func (p *IyzicoProvider) CapturePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	if !dataFlag(data, "authorized") {
		return nil, fmt.Errorf("%w: cannot capture payment: not authorized", ErrInvalidProviderData)
	}
	out := cloneData(data)
	out["captured"] = true
	return out, nil
}

func (p *IyzicoProvider) RefundPayment(ctx context.Context, data models.JSONMap, amount decimal.Decimal) (models.JSONMap, error) {
	if !dataFlag(data, "captured") {
		return nil, fmt.Errorf("%w: cannot refund payment: not captured", ErrInvalidProviderData)
	}
	out := cloneData(data)
	refunded, _ := out["refunded_amount"].(float64)
	f, _ := amount.Float64()
	out["refunded_amount"] = refunded + f
	return out, nil
}

func (p *IyzicoProvider) CancelPayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	if dataFlag(data, "captured") {
		return nil, fmt.Errorf("%w: cannot cancel captured payment", ErrNotAllowed)
	}
	out := cloneData(data)
	out["authorized"] = false
	return out, nil
}

func (p *IyzicoProvider) GetPaymentStatus(ctx context.Context, data models.JSONMap) (string, error) {
	return deriveStatus(data), nil
}

func (p *IyzicoProvider) DeletePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	return cloneData(data), nil
}

func (p *IyzicoProvider) RetrievePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	return cloneData(data), nil
}

func (p *IyzicoProvider) UpdatePayment(ctx context.Context, data models.JSONMap, update map[string]any) (models.JSONMap, error) {
	out := cloneData(data)
	for k, v := range update {
		out[k] = v
	}
	return out, nil
}

func (p *IyzicoProvider) GetWebhookActionAndData(payload WebhookPayload) (*WebhookActionResult, error) {
	sessionID, _ := payload.Data["session_id"].(string)
	if sessionID == "" {
		sessionID = "unknown"
	}
	amount := decimal.Zero
	if f, ok := payload.Data["amount"].(float64); ok {
		amount = decimal.NewFromFloat(f)
	}
	log.Printf("IyzicoProvider: webhook action resolved for session %s", sessionID)
	return &WebhookActionResult{Action: PaymentStatusAuthorized, SessionID: sessionID, Amount: amount}, nil
}
