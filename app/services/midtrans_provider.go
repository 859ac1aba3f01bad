package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/oguzk/eticaret/app/models"
	"github.com/shopspring/decimal"
)

const MidtransProviderID = "midtrans"

// MidtransProvider drives the Midtrans Core API. Each session carries the
// Midtrans order_id so follow-up calls can address the transaction.
type MidtransProvider struct {
	client coreapi.Client
}

func NewMidtransProvider(client coreapi.Client) *MidtransProvider {
	return &MidtransProvider{client: client}
}

func (p *MidtransProvider) Identifier() string { return MidtransProviderID }

func (p *MidtransProvider) InitiatePayment(ctx context.Context, input InitiatePaymentInput) (*PaymentSessionOutput, error) {
	orderID := fmt.Sprintf("order-%s-%d", input.CartID, time.Now().UnixMilli())
	amount, _ := input.Amount.Float64()
	data := models.JSONMap{
		"order_id":   orderID,
		"amount":     amount,
		"currency":   input.CurrencyCode,
		"authorized": false,
		"captured":   false,
	}
	return &PaymentSessionOutput{
		ID:     orderID,
		Status: PaymentStatusPending,
		Data:   data,
	}, nil
}

func (p *MidtransProvider) AuthorizePayment(ctx context.Context, data models.JSONMap, authCtx map[string]any) (*PaymentSessionOutput, error) {
	orderID, _ := data["order_id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("%w: missing order_id", ErrInvalidProviderData)
	}
	res, err := p.client.CheckTransaction(orderID)
	if err != nil {
		log.Printf("MidtransProvider: check transaction failed for %s: %s", orderID, err.Error())
		return nil, fmt.Errorf("check midtrans transaction: %s", err.Error())
	}
	out := cloneData(data)
	out["transaction_id"] = res.TransactionID
	out["transaction_status"] = res.TransactionStatus
	switch res.TransactionStatus {
	case "capture", "settlement":
		out["authorized"] = true
		out["captured"] = true
		return &PaymentSessionOutput{Status: PaymentStatusCaptured, Data: out}, nil
	case "authorize", "pending":
		out["authorized"] = true
		return &PaymentSessionOutput{Status: PaymentStatusAuthorized, Data: out}, nil
	}
	return nil, fmt.Errorf("%w: transaction status %s", ErrNotAllowed, res.TransactionStatus)
}

func (p *MidtransProvider) CapturePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	if !dataFlag(data, "authorized") {
		return nil, fmt.Errorf("%w: cannot capture payment: not authorized", ErrInvalidProviderData)
	}
	out := cloneData(data)
	if dataFlag(data, "captured") {
		return out, nil
	}
	transactionID, _ := data["transaction_id"].(string)
	amount, _ := data["amount"].(float64)
	if transactionID != "" {
		res, err := p.client.CaptureTransaction(&coreapi.CaptureReq{
			TransactionID: transactionID,
			GrossAmt:      amount,
		})
		if err != nil {
			return nil, fmt.Errorf("capture midtrans transaction: %s", err.Error())
		}
		out["transaction_status"] = res.TransactionStatus
	}
	out["captured"] = true
	return out, nil
}

func (p *MidtransProvider) RefundPayment(ctx context.Context, data models.JSONMap, amount decimal.Decimal) (models.JSONMap, error) {
	if !dataFlag(data, "captured") {
		return nil, fmt.Errorf("%w: cannot refund payment: not captured", ErrInvalidProviderData)
	}
	orderID, _ := data["order_id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("%w: missing order_id", ErrInvalidProviderData)
	}
	res, err := p.client.RefundTransaction(orderID, &coreapi.RefundReq{
		Amount: amount.IntPart(),
		Reason: "customer refund request",
	})
	if err != nil {
		return nil, fmt.Errorf("refund midtrans transaction: %s", err.Error())
	}
	out := cloneData(data)
	refunded, _ := out["refunded_amount"].(float64)
	f, _ := amount.Float64()
	out["refunded_amount"] = refunded + f
	out["transaction_status"] = res.TransactionStatus
	return out, nil
}

func (p *MidtransProvider) CancelPayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	if dataFlag(data, "captured") {
		return nil, fmt.Errorf("%w: cannot cancel captured payment", ErrNotAllowed)
	}
	orderID, _ := data["order_id"].(string)
	if orderID != "" {
		if _, err := p.client.CancelTransaction(orderID); err != nil {
			log.Printf("MidtransProvider: cancel failed for %s: %s", orderID, err.Error())
		}
	}
	out := cloneData(data)
	out["authorized"] = false
	return out, nil
}

func (p *MidtransProvider) GetPaymentStatus(ctx context.Context, data models.JSONMap) (string, error) {
	orderID, _ := data["order_id"].(string)
	if orderID == "" {
		return deriveStatus(data), nil
	}
	res, err := p.client.CheckTransaction(orderID)
	if err != nil {
		return deriveStatus(data), nil
	}
	switch res.TransactionStatus {
	case "capture", "settlement":
		return PaymentStatusCaptured, nil
	case "authorize":
		return PaymentStatusAuthorized, nil
	case "cancel", "expire", "deny":
		return PaymentStatusCanceled, nil
	}
	return PaymentStatusPending, nil
}

func (p *MidtransProvider) DeletePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	if dataFlag(data, "captured") {
		return cloneData(data), nil
	}
	return p.CancelPayment(ctx, data)
}

func (p *MidtransProvider) RetrievePayment(ctx context.Context, data models.JSONMap) (models.JSONMap, error) {
	orderID, _ := data["order_id"].(string)
	if orderID == "" {
		return cloneData(data), nil
	}
	res, err := p.client.CheckTransaction(orderID)
	if err != nil {
		return nil, fmt.Errorf("retrieve midtrans transaction: %s", err.Error())
	}
	out := cloneData(data)
	out["transaction_id"] = res.TransactionID
	out["transaction_status"] = res.TransactionStatus
	return out, nil
}

func (p *MidtransProvider) UpdatePayment(ctx context.Context, data models.JSONMap, update map[string]any) (models.JSONMap, error) {
	out := cloneData(data)
	for k, v := range update {
		out[k] = v
	}
	return out, nil
}

func (p *MidtransProvider) GetWebhookActionAndData(payload WebhookPayload) (*WebhookActionResult, error) {
	orderID, _ := payload.Data["order_id"].(string)
	status, _ := payload.Data["transaction_status"].(string)
	action := PaymentStatusPending
	switch status {
	case "capture", "settlement":
		action = PaymentStatusCaptured
	case "authorize":
		action = PaymentStatusAuthorized
	case "cancel", "expire", "deny":
		action = PaymentStatusCanceled
	}
	amount := decimal.Zero
	if s, ok := payload.Data["gross_amount"].(string); ok {
		if d, err := decimal.NewFromString(s); err == nil {
			amount = d
		}
	}
	return &WebhookActionResult{Action: action, SessionID: orderID, Amount: amount}, nil
}
