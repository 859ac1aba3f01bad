package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oguzk/eticaret/app/services"
	"github.com/unrolled/render"
)

type stubIyzicoClient struct {
	resp services.GatewayResponse
	err  error
}

func (c *stubIyzicoClient) BinCheck(ctx context.Context, req services.BinCheckRequest) (services.GatewayResponse, error) {
	return c.resp, c.err
}

func (c *stubIyzicoClient) Init3DS(ctx context.Context, req services.Init3DSRequest) (services.GatewayResponse, error) {
	return c.resp, c.err
}

func (c *stubIyzicoClient) Auth3DS(ctx context.Context, req services.Auth3DSRequest) (services.GatewayResponse, error) {
	return c.resp, c.err
}

func (c *stubIyzicoClient) InitPWI(ctx context.Context, req services.InitPWIRequest) (services.GatewayResponse, error) {
	return c.resp, c.err
}

func (c *stubIyzicoClient) RetrievePWI(ctx context.Context, req services.RetrievePWIRequest) (services.GatewayResponse, error) {
	return c.resp, c.err
}

func TestBinCheckGatewayFailureShape(t *testing.T) {
	client := &stubIyzicoClient{err: errors.New("gateway request failed: connection refused")}
	handler := NewIyzicoHandler(client, nil, render.New())

	body := `{"binNumber":"554960","price":"100.50"}`
	req := httptest.NewRequest(http.MethodPost, "/store/iyzico/binCheck", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.BinCheck(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["status"] != "error" {
		t.Errorf("status field = %v, want error", resp["status"])
	}
	errText, _ := resp["error"].(string)
	if !strings.Contains(errText, "connection refused") {
		t.Errorf("error = %q, want the underlying failure detail", errText)
	}
}

func TestBinCheckValidationFailure(t *testing.T) {
	client := &stubIyzicoClient{resp: services.GatewayResponse{"status": "success"}}
	handler := NewIyzicoHandler(client, nil, render.New())

	req := httptest.NewRequest(http.MethodPost, "/store/iyzico/binCheck", strings.NewReader(`{"binNumber":"55"}`))
	rec := httptest.NewRecorder()
	handler.BinCheck(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["error"] != "Validation error" {
		t.Errorf("error = %v, want Validation error", resp["error"])
	}
}
