package handlers

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/unrolled/render"
)

var webhookEventTypes = map[string]bool{
	"API_AUTH":      true,
	"THREE_DS_AUTH": true,
	"BKM_AUTH":      true,
}

// WebhookHandler receives gateway notifications and the 3D Secure bank
// callback. Both are outward facing: the gateway retries on non-200, and
// the callback is rendered inside the customer's browser, so failures are
// absorbed rather than surfaced.
type WebhookHandler struct {
	frontendURL string
	render      *render.Render
}

func NewWebhookHandler(frontendURL string, r *render.Render) *WebhookHandler {
	return &WebhookHandler{frontendURL, r}
}

type webhookNotification struct {
	PaymentID         json.Number `json:"paymentId"`
	Status            string      `json:"status"`
	IyziEventType     string      `json:"iyziEventType"`
	IyziReferenceCode string      `json:"iyziReferenceCode"`
	IyziEventTime     json.Number `json:"iyziEventTime"`
}

// Receive acknowledges a gateway notification. Payment state is advanced by
// the auth3ds flow, not here; the webhook exists so the gateway stops
// retrying.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var note webhookNotification
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid webhook payload"})
		return
	}
	if note.PaymentID.String() == "" || note.Status == "" || !webhookEventTypes[note.IyziEventType] {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid webhook payload"})
		return
	}

	log.Printf("WebhookHandler: event %s payment %s status %s", note.IyziEventType, note.PaymentID.String(), note.Status)

	h.render.JSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"message":   "Webhook processed successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health answers the gateway's GET probe of the webhook URL.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *WebhookHandler) resultURL(params url.Values) string {
	return h.frontendURL + "/payment/callback/result?" + params.Encode()
}

// Callback3DS is the bank's return point after the customer completes the
// 3D Secure challenge. The bank POSTs form fields into the customer's
// browser, so this always answers 200 with a page that forwards every
// field to the storefront result screen.
func (h *WebhookHandler) Callback3DS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("WebhookHandler: callback form parse failed: %v", err)
		h.renderRedirectPage(w, h.resultURL(url.Values{
			"status": {"error"},
			"error":  {"callback_processing_failed"},
		}))
		return
	}

	params := url.Values{}
	for key, values := range r.PostForm {
		if len(values) > 0 {
			params.Set(key, values[0])
		}
	}
	for key, values := range r.URL.Query() {
		if len(values) > 0 && params.Get(key) == "" {
			params.Set(key, values[0])
		}
	}

	log.Printf("WebhookHandler: 3DS callback status=%s paymentId=%s", params.Get("status"), params.Get("paymentId"))
	h.renderRedirectPage(w, h.resultURL(params))
}

// Callback3DSRedirect handles browsers that arrive with GET.
func (h *WebhookHandler) Callback3DSRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.resultURL(r.URL.Query()), http.StatusFound)
}

func (h *WebhookHandler) renderRedirectPage(w http.ResponseWriter, target string) {
	escaped := html.EscapeString(target)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta http-equiv="refresh" content="0;url=%s">
    <title>Ödeme İşleniyor</title>
</head>
<body>
    <p>Ödeme sonucunuz işleniyor, lütfen bekleyin...</p>
    <script>window.location.replace(%q);</script>
</body>
</html>`, escaped, target)
}
