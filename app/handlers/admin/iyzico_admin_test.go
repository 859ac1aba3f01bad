package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/oguzk/eticaret/app/models"
	"github.com/oguzk/eticaret/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type stubOrderRepo struct {
	orders map[string]*models.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) FindByCartID(ctx context.Context, cartID string) (*models.Order, error) {
	for _, o := range s.orders {
		if o.CartID == cartID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) HasDeliveredPurchase(ctx context.Context, customerID, productID string) (bool, error) {
	return false, nil
}

type stubPaymentRepo struct {
	collections map[string]*models.PaymentCollection
	sessions    map[string][]models.PaymentSession
}

func (s *stubPaymentRepo) CreateCollection(ctx context.Context, c *models.PaymentCollection) error {
	s.collections[c.CartID] = c
	return nil
}

func (s *stubPaymentRepo) FindCollectionByCartID(ctx context.Context, cartID string) (*models.PaymentCollection, error) {
	c, ok := s.collections[cartID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *stubPaymentRepo) CreateSession(ctx context.Context, sess *models.PaymentSession) error {
	s.sessions[sess.PaymentCollectionID] = append(s.sessions[sess.PaymentCollectionID], *sess)
	return nil
}

func (s *stubPaymentRepo) FindSessionsByCollection(ctx context.Context, collectionID string) ([]models.PaymentSession, error) {
	return s.sessions[collectionID], nil
}

func (s *stubPaymentRepo) UpdateSession(ctx context.Context, sessionID, status string, data models.JSONMap) error {
	return nil
}

func (s *stubPaymentRepo) CreatePayment(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return nil
}

func (s *stubPaymentRepo) FindPaymentByCollection(ctx context.Context, collectionID string) (*models.Payment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPaymentRepo) MarkPaymentCaptured(ctx context.Context, paymentID string, at time.Time) error {
	return nil
}

func newIyzicoAdminFixture() (*IyzicoAdminHandler, *stubOrderRepo, *stubPaymentRepo) {
	orderRepo := &stubOrderRepo{orders: map[string]*models.Order{}}
	paymentRepo := &stubPaymentRepo{
		collections: map[string]*models.PaymentCollection{},
		sessions:    map[string][]models.PaymentSession{},
	}
	return NewIyzicoAdminHandler(orderRepo, paymentRepo, render.New()), orderRepo, paymentRepo
}

func TestIyzicoOrderInfoFound(t *testing.T) {
	handler, orderRepo, paymentRepo := newIyzicoAdminFixture()
	orderRepo.orders["order-1"] = &models.Order{ID: "order-1", CartID: "cart-1"}
	paymentRepo.collections["cart-1"] = &models.PaymentCollection{ID: "coll-1", CartID: "cart-1"}
	paymentRepo.sessions["coll-1"] = []models.PaymentSession{{
		ID:                  "sess-1",
		PaymentCollectionID: "coll-1",
		ProviderID:          services.IyzicoProviderID,
		Data:                models.JSONMap{"paymentId": "iyzi-42", "authorized": true},
	}}

	req := httptest.NewRequest(http.MethodGet, "/admin/iyzico/order-info/order-1", nil)
	req = mux.SetURLVars(req, map[string]string{"order_id": "order-1"})
	rec := httptest.NewRecorder()
	handler.OrderInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["found"] != true {
		t.Errorf("found = %v, want true", resp["found"])
	}
	if resp["iyzico_payment_id"] != "iyzi-42" {
		t.Errorf("iyzico_payment_id = %v, want iyzi-42", resp["iyzico_payment_id"])
	}
	if resp["payment_session_id"] != "sess-1" || resp["payment_collection_id"] != "coll-1" {
		t.Errorf("session/collection = %v/%v", resp["payment_session_id"], resp["payment_collection_id"])
	}
}

func TestIyzicoOrderInfoMisses(t *testing.T) {
	handler, orderRepo, paymentRepo := newIyzicoAdminFixture()
	orderRepo.orders["order-2"] = &models.Order{ID: "order-2", CartID: "cart-2"}
	orderRepo.orders["order-3"] = &models.Order{ID: "order-3", CartID: "cart-3"}
	paymentRepo.collections["cart-3"] = &models.PaymentCollection{ID: "coll-3", CartID: "cart-3"}
	paymentRepo.sessions["coll-3"] = []models.PaymentSession{{
		ID:                  "sess-3",
		PaymentCollectionID: "coll-3",
		ProviderID:          services.MidtransProviderID,
	}}

	tests := []struct {
		name     string
		orderID  string
		wantCode int
		found    bool
	}{
		{name: "unknown order", orderID: "ghost", wantCode: http.StatusNotFound},
		{name: "order without collection", orderID: "order-2", wantCode: http.StatusOK},
		{name: "collection without iyzico session", orderID: "order-3", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/iyzico/order-info/"+tt.orderID, nil)
			req = mux.SetURLVars(req, map[string]string{"order_id": tt.orderID})
			rec := httptest.NewRecorder()
			handler.OrderInfo(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response JSON: %v", err)
			}
			if resp["found"] != false {
				t.Errorf("found = %v, want false", resp["found"])
			}
		})
	}
}

func TestIyzicoAdminTest(t *testing.T) {
	handler, _, _ := newIyzicoAdminFixture()

	req := httptest.NewRequest(http.MethodGet, "/admin/iyzico/test", nil)
	rec := httptest.NewRecorder()
	handler.Test(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["endpoint"] != "/admin/iyzico/test" {
		t.Errorf("endpoint = %v", resp["endpoint"])
	}
}
