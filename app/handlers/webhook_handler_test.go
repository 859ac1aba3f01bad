package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/unrolled/render"
)

func newWebhookHandler() *WebhookHandler {
	return NewWebhookHandler("https://shop.example.com", render.New())
}

func TestWebhookReceive(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "three ds auth event",
			body:       `{"paymentId":"123456","status":"SUCCESS","iyziEventType":"THREE_DS_AUTH"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "api auth event",
			body:       `{"paymentId":789,"status":"SUCCESS","iyziEventType":"API_AUTH"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "bkm auth event",
			body:       `{"paymentId":"42","status":"FAILURE","iyziEventType":"BKM_AUTH"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown event type",
			body:       `{"paymentId":"123","status":"SUCCESS","iyziEventType":"SOMETHING_ELSE"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing payment id",
			body:       `{"status":"SUCCESS","iyziEventType":"API_AUTH"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing status",
			body:       `{"paymentId":"123","iyziEventType":"API_AUTH"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newWebhookHandler()
			req := httptest.NewRequest(http.MethodPost, "/iyzico/webhook", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.Receive(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response JSON: %v", err)
			}
			if tt.wantStatus == http.StatusOK {
				if resp["status"] != "success" {
					t.Errorf("status field = %v, want success", resp["status"])
				}
				if resp["message"] != "Webhook processed successfully" {
					t.Errorf("message = %v", resp["message"])
				}
				if resp["timestamp"] == nil {
					t.Error("timestamp missing")
				}
			}
		})
	}
}

func TestCallback3DSForwardsFormFields(t *testing.T) {
	handler := newWebhookHandler()

	form := url.Values{}
	form.Set("status", "success")
	form.Set("paymentId", "123456")
	form.Set("conversationId", "conv-1")
	form.Set("mdStatus", "1")

	req := httptest.NewRequest(http.MethodPost, "/iyzico/callback3ds", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.Callback3DS(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "https://shop.example.com/payment/callback/result?") {
		t.Errorf("redirect target missing from body: %s", body)
	}
	for _, fragment := range []string{"paymentId=123456", "conversationId=conv-1", "mdStatus=1", "status=success"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("body missing %q", fragment)
		}
	}
}

func TestCallback3DSRedirectGet(t *testing.T) {
	handler := newWebhookHandler()

	req := httptest.NewRequest(http.MethodGet, "/iyzico/callback3ds?status=success&paymentId=9", nil)
	rec := httptest.NewRecorder()
	handler.Callback3DSRedirect(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "https://shop.example.com/payment/callback/result?") {
		t.Errorf("Location = %q", loc)
	}
	if !strings.Contains(loc, "paymentId=9") {
		t.Errorf("Location missing paymentId: %q", loc)
	}
}

func TestWebhookHealth(t *testing.T) {
	handler := newWebhookHandler()

	req := httptest.NewRequest(http.MethodGet, "/iyzico/webhook", nil)
	rec := httptest.NewRecorder()
	handler.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
