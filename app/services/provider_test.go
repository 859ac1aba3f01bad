package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oguzk/eticaret/app/models"
	"github.com/shopspring/decimal"
)

func TestIyzicoProviderCaptureRequiresAuthorization(t *testing.T) {
	p := NewIyzicoProvider()
	ctx := context.Background()

	session, err := p.InitiatePayment(ctx, InitiatePaymentInput{
		CartID:       "cart-1",
		Amount:       decimal.NewFromFloat(100.50),
		CurrencyCode: "TRY",
	})
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if session.Status != PaymentStatusPending {
		t.Errorf("status = %q, want %q", session.Status, PaymentStatusPending)
	}

	if _, err := p.CapturePayment(ctx, session.Data); !errors.Is(err, ErrInvalidProviderData) {
		t.Fatalf("capture before authorize: err = %v, want ErrInvalidProviderData", err)
	}
	if dataFlag(session.Data, "captured") {
		t.Error("failed capture mutated session data")
	}

	authorized, err := p.AuthorizePayment(ctx, session.Data, map[string]any{"paymentId": "12345"})
	if err != nil {
		t.Fatalf("AuthorizePayment: %v", err)
	}
	if authorized.Status != PaymentStatusAuthorized {
		t.Errorf("status after authorize = %q, want %q", authorized.Status, PaymentStatusAuthorized)
	}
	if authorized.Data["paymentId"] != "12345" {
		t.Errorf("paymentId = %v, want 12345", authorized.Data["paymentId"])
	}

	captured, err := p.CapturePayment(ctx, authorized.Data)
	if err != nil {
		t.Fatalf("CapturePayment: %v", err)
	}
	if !dataFlag(captured, "captured") {
		t.Error("captured flag not set")
	}
}

func TestIyzicoProviderRefundRequiresCapture(t *testing.T) {
	p := NewIyzicoProvider()
	ctx := context.Background()

	data := models.JSONMap{"authorized": true, "captured": false}
	if _, err := p.RefundPayment(ctx, data, decimal.NewFromInt(10)); !errors.Is(err, ErrInvalidProviderData) {
		t.Fatalf("refund before capture: err = %v, want ErrInvalidProviderData", err)
	}

	data["captured"] = true
	out, err := p.RefundPayment(ctx, data, decimal.NewFromFloat(25.5))
	if err != nil {
		t.Fatalf("RefundPayment: %v", err)
	}
	if out["refunded_amount"] != 25.5 {
		t.Errorf("refunded_amount = %v, want 25.5", out["refunded_amount"])
	}

	out, err = p.RefundPayment(ctx, out, decimal.NewFromFloat(10))
	if err != nil {
		t.Fatalf("second RefundPayment: %v", err)
	}
	if out["refunded_amount"] != 35.5 {
		t.Errorf("accumulated refunded_amount = %v, want 35.5", out["refunded_amount"])
	}
}

func TestIyzicoProviderCancelRules(t *testing.T) {
	p := NewIyzicoProvider()
	ctx := context.Background()

	captured := models.JSONMap{"authorized": true, "captured": true}
	if _, err := p.CancelPayment(ctx, captured); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("cancel captured: err = %v, want ErrNotAllowed", err)
	}

	authorized := models.JSONMap{"authorized": true, "captured": false}
	out, err := p.CancelPayment(ctx, authorized)
	if err != nil {
		t.Fatalf("CancelPayment: %v", err)
	}
	if dataFlag(out, "authorized") {
		t.Error("cancel did not clear authorized flag")
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name string
		data models.JSONMap
		want string
	}{
		{"empty", models.JSONMap{}, PaymentStatusPending},
		{"authorized", models.JSONMap{"authorized": true}, PaymentStatusAuthorized},
		{"captured wins", models.JSONMap{"authorized": true, "captured": true}, PaymentStatusCaptured},
		{"json floats", models.JSONMap{"authorized": float64(1)}, PaymentStatusAuthorized},
		{"explicit false", models.JSONMap{"authorized": false, "captured": false}, PaymentStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveStatus(tt.data); got != tt.want {
				t.Errorf("deriveStatus(%v) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestFakeProviderLifecycle(t *testing.T) {
	p := NewFakeCcProvider()
	ctx := context.Background()

	session, err := p.InitiatePayment(ctx, InitiatePaymentInput{CartID: "cart-9", Amount: decimal.NewFromInt(50)})
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}

	if _, err := p.CapturePayment(ctx, session.Data); !errors.Is(err, ErrInvalidProviderData) {
		t.Fatalf("capture pending session: err = %v, want ErrInvalidProviderData", err)
	}

	authorized, err := p.AuthorizePayment(ctx, session.Data, nil)
	if err != nil {
		t.Fatalf("AuthorizePayment: %v", err)
	}
	captured, err := p.CapturePayment(ctx, authorized.Data)
	if err != nil {
		t.Fatalf("CapturePayment: %v", err)
	}

	status, err := p.GetPaymentStatus(ctx, captured)
	if err != nil {
		t.Fatalf("GetPaymentStatus: %v", err)
	}
	if status != PaymentStatusCaptured {
		t.Errorf("status = %q, want %q", status, PaymentStatusCaptured)
	}

	if _, err := p.CancelPayment(ctx, captured); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("cancel captured: err = %v, want ErrNotAllowed", err)
	}
}

func TestProviderRegistry(t *testing.T) {
	registry := NewProviderRegistry(NewIyzicoProvider(), NewFakeCcProvider())

	p, err := registry.Get(IyzicoProviderID)
	if err != nil {
		t.Fatalf("Get(%q): %v", IyzicoProviderID, err)
	}
	if p.Identifier() != IyzicoProviderID {
		t.Errorf("identifier = %q, want %q", p.Identifier(), IyzicoProviderID)
	}

	if _, err := registry.Get("stripe"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("Get unknown: err = %v, want ErrUnknownProvider", err)
	}
}
