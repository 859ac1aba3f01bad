package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oguzk/eticaret/app/utils/format"
)

const (
	endpointBinCheck    = "/payment/bin/check"
	endpointInit3DS     = "/payment/3dsecure/initialize"
	endpointAuth3DS     = "/payment/3dsecure/auth"
	endpointInitPWI     = "/payment/pay-with-iyzico/initialize"
	endpointRetrievePWI = "/payment/pay-with-iyzico/retrieve"

	iyzicoTimeout = 30 * time.Second
)

var ErrIyzicoConfig = errors.New("iyzico: missing API key, secret key or base URL")

// GatewayResponse is the İyzico response passed through to callers as-is.
// İyzico reports failures inside the body, not via HTTP status.
type GatewayResponse map[string]any

func (r GatewayResponse) Status() string {
	s, _ := r["status"].(string)
	return s
}

func (r GatewayResponse) ErrorCode() string {
	switch v := r["errorCode"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Successful mirrors the storefront's success heuristic: status "success"
// and no error code. Other encodings of failure are treated as failure.
func (r GatewayResponse) Successful() bool {
	return r.Status() == "success" && r.ErrorCode() == ""
}

type PaymentCard struct {
	CardHolderName string `json:"cardHolderName" validate:"required"`
	CardNumber     string `json:"cardNumber" validate:"required,min=12"`
	ExpireYear     string `json:"expireYear" validate:"required,min=2"`
	ExpireMonth    string `json:"expireMonth" validate:"required,min=1"`
	Cvc            string `json:"cvc" validate:"required,min=3"`
	RegisterCard   int    `json:"registerCard"`
}

type Init3DSRequest struct {
	Locale         string           `json:"locale"`
	ConversationID string           `json:"conversationId" validate:"required"`
	Price          any              `json:"price" validate:"required"`
	PaidPrice      any              `json:"paidPrice" validate:"required"`
	Currency       string           `json:"currency"`
	Installment    int              `json:"installment"`
	PaymentChannel string           `json:"paymentChannel"`
	BasketID       string           `json:"basketId" validate:"required"`
	PaymentGroup   string           `json:"paymentGroup"`
	CallbackURL    string           `json:"callbackUrl" validate:"required,url"`
	PaymentCard    PaymentCard      `json:"paymentCard" validate:"required"`
	Buyer          map[string]any   `json:"buyer" validate:"required"`
	ShippingAddr   map[string]any   `json:"shippingAddress" validate:"required"`
	BillingAddr    map[string]any   `json:"billingAddress" validate:"required"`
	BasketItems    []map[string]any `json:"basketItems" validate:"required,min=1"`
}

type Auth3DSRequest struct {
	Locale           string `json:"locale"`
	PaymentID        string `json:"paymentId" validate:"required"`
	ConversationID   string `json:"conversationId" validate:"required"`
	ConversationData string `json:"conversationData"`
}

type BinCheckRequest struct {
	Locale         string `json:"locale"`
	ConversationID string `json:"conversationId"`
	BinNumber      string `json:"binNumber" validate:"required,len=6"`
	Price          string `json:"price" validate:"required"`
}

type InitPWIRequest struct {
	Locale         string           `json:"locale"`
	ConversationID string           `json:"conversationId" validate:"required"`
	Price          any              `json:"price" validate:"required"`
	PaidPrice      any              `json:"paidPrice" validate:"required"`
	Currency       string           `json:"currency"`
	BasketID       string           `json:"basketId" validate:"required"`
	PaymentGroup   string           `json:"paymentGroup"`
	CallbackURL    string           `json:"callbackUrl" validate:"required"`
	Buyer          map[string]any   `json:"buyer" validate:"required"`
	ShippingAddr   map[string]any   `json:"shippingAddress" validate:"required"`
	BillingAddr    map[string]any   `json:"billingAddress" validate:"required"`
	BasketItems    []map[string]any `json:"basketItems" validate:"required,min=1"`
}

type RetrievePWIRequest struct {
	Locale         string `json:"locale"`
	ConversationID string `json:"conversationId" validate:"required"`
	Token          string `json:"token" validate:"required"`
}

type IyzicoClient interface {
	BinCheck(ctx context.Context, req BinCheckRequest) (GatewayResponse, error)
	Init3DS(ctx context.Context, req Init3DSRequest) (GatewayResponse, error)
	Auth3DS(ctx context.Context, req Auth3DSRequest) (GatewayResponse, error)
	InitPWI(ctx context.Context, req InitPWIRequest) (GatewayResponse, error)
	RetrievePWI(ctx context.Context, req RetrievePWIRequest) (GatewayResponse, error)
}

type IyzicoConfig struct {
	APIKey    string
	SecretKey string
	BaseURL   string
}

type iyzicoClient struct {
	client    *http.Client
	apiKey    string
	secretKey string
	baseURL   string
}

// NewIyzicoClient fails when any credential is missing. Misconfiguration is
// fatal at construction time, not something surfaced per call.
func NewIyzicoClient(cfg IyzicoConfig) (IyzicoClient, error) {
	if cfg.APIKey == "" || cfg.SecretKey == "" || cfg.BaseURL == "" {
		return nil, ErrIyzicoConfig
	}

	return &iyzicoClient{
		client: &http.Client{
			Timeout: iyzicoTimeout,
		},
		apiKey:    cfg.APIKey,
		secretKey: cfg.SecretKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

func (c *iyzicoClient) BinCheck(ctx context.Context, req BinCheckRequest) (GatewayResponse, error) {
	payload := map[string]any{
		"locale":    defaultLocale(req.Locale),
		"binNumber": req.BinNumber,
		"price":     format.ToMoney(req.Price),
	}
	if req.ConversationID != "" {
		payload["conversationId"] = req.ConversationID
	}
	return c.do(ctx, endpointBinCheck, payload)
}

func (c *iyzicoClient) Init3DS(ctx context.Context, req Init3DSRequest) (GatewayResponse, error) {
	installment := req.Installment
	if installment <= 0 {
		installment = 1
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "TRY"
	}
	paymentChannel := req.PaymentChannel
	if paymentChannel == "" {
		paymentChannel = "WEB"
	}
	paymentGroup := req.PaymentGroup
	if paymentGroup == "" {
		paymentGroup = "PRODUCT"
	}

	items := make([]map[string]any, 0, len(req.BasketItems))
	for _, item := range req.BasketItems {
		normalized := make(map[string]any, len(item))
		for k, v := range item {
			normalized[k] = v
		}
		normalized["price"] = format.ToMoney(item["price"])
		items = append(items, normalized)
	}

	payload := map[string]any{
		"locale":         defaultLocale(req.Locale),
		"conversationId": req.ConversationID,
		"price":          format.ToMoney(req.Price),
		"paidPrice":      format.ToMoney(req.PaidPrice),
		"currency":       currency,
		"installment":    strconv.Itoa(installment),
		"paymentChannel": paymentChannel,
		"basketId":       req.BasketID,
		"paymentGroup":   paymentGroup,
		"callbackUrl":    req.CallbackURL,
		"paymentCard": map[string]any{
			"cardHolderName": req.PaymentCard.CardHolderName,
			"cardNumber":     req.PaymentCard.CardNumber,
			"expireYear":     req.PaymentCard.ExpireYear,
			"expireMonth":    req.PaymentCard.ExpireMonth,
			"cvc":            req.PaymentCard.Cvc,
			"registerCard":   strconv.Itoa(req.PaymentCard.RegisterCard),
		},
		"buyer":           req.Buyer,
		"shippingAddress": req.ShippingAddr,
		"billingAddress":  req.BillingAddr,
		"basketItems":     items,
	}
	return c.do(ctx, endpointInit3DS, payload)
}

func (c *iyzicoClient) Auth3DS(ctx context.Context, req Auth3DSRequest) (GatewayResponse, error) {
	payload := map[string]any{
		"locale":         defaultLocale(req.Locale),
		"paymentId":      req.PaymentID,
		"conversationId": req.ConversationID,
	}
	if req.ConversationData != "" {
		payload["conversationData"] = req.ConversationData
	}
	return c.do(ctx, endpointAuth3DS, payload)
}

func (c *iyzicoClient) InitPWI(ctx context.Context, req InitPWIRequest) (GatewayResponse, error) {
	paymentGroup := req.PaymentGroup
	if paymentGroup == "" {
		paymentGroup = "PRODUCT"
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "TRY"
	}

	items := make([]map[string]any, 0, len(req.BasketItems))
	for _, item := range req.BasketItems {
		normalized := make(map[string]any, len(item))
		for k, v := range item {
			normalized[k] = v
		}
		normalized["price"] = format.ToMoney(item["price"])
		items = append(items, normalized)
	}

	payload := map[string]any{
		"locale":          defaultLocale(req.Locale),
		"conversationId":  req.ConversationID,
		"price":           format.ToMoney(req.Price),
		"paidPrice":       format.ToMoney(req.PaidPrice),
		"currency":        currency,
		"basketId":        req.BasketID,
		"paymentGroup":    paymentGroup,
		"callbackUrl":     req.CallbackURL,
		"buyer":           req.Buyer,
		"shippingAddress": req.ShippingAddr,
		"billingAddress":  req.BillingAddr,
		"basketItems":     items,
	}
	return c.do(ctx, endpointInitPWI, payload)
}

func (c *iyzicoClient) RetrievePWI(ctx context.Context, req RetrievePWIRequest) (GatewayResponse, error) {
	payload := map[string]any{
		"locale":         defaultLocale(req.Locale),
		"conversationId": req.ConversationID,
		"token":          req.Token,
	}
	return c.do(ctx, endpointRetrievePWI, payload)
}

func (c *iyzicoClient) do(ctx context.Context, path string, payload map[string]any) (GatewayResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("iyzico: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		log.Printf("IyzicoClient: Error creating request for %s: %v", path, err)
		return nil, fmt.Errorf("iyzico: failed to create request: %w", err)
	}

	randomKey := randomHeaderKey()
	req.Header.Set("Authorization", c.authorizationHeader(randomKey, path, body))
	req.Header.Set("x-iyzi-rnd", randomKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("IyzicoClient: Error performing request to %s: %v", path, err)
		return nil, fmt.Errorf("iyzico: request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("IyzicoClient: Error reading response body from %s: %v", path, err)
		return nil, fmt.Errorf("iyzico: failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("IyzicoClient: %s returned non-OK status: %d, Body: %s", path, resp.StatusCode, string(raw))
	}

	var out GatewayResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("IyzicoClient: Error unmarshalling response from %s: %v, Raw Body: %s", path, err, string(raw))
		return nil, fmt.Errorf("iyzico: failed to parse response: %w", err)
	}

	return out, nil
}

// authorizationHeader builds the IYZWSv2 signature: HMAC-SHA256 over
// randomKey + request path + request body, keyed by the secret key.
func (c *iyzicoClient) authorizationHeader(randomKey, path string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(randomKey + path + string(body)))
	signature := hex.EncodeToString(mac.Sum(nil))

	auth := fmt.Sprintf("apiKey:%s&randomKey:%s&signature:%s", c.apiKey, randomKey, signature)
	return "IYZWSv2 " + base64.StdEncoding.EncodeToString([]byte(auth))
}

func randomHeaderKey() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "123456789"
}

func defaultLocale(locale string) string {
	if locale == "" {
		return "tr"
	}
	return locale
}
