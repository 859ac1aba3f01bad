package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/oguzk/eticaret/app/repositories"
	"github.com/oguzk/eticaret/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// IyzicoAdminHandler serves the gateway diagnostics used from the admin
// dashboard: a reachability probe and an order-to-gateway-payment lookup.
type IyzicoAdminHandler struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	render      *render.Render
}

func NewIyzicoAdminHandler(orderRepo repositories.OrderRepository, paymentRepo repositories.PaymentRepository, r *render.Render) *IyzicoAdminHandler {
	return &IyzicoAdminHandler{orderRepo, paymentRepo, r}
}

func (h *IyzicoAdminHandler) Test(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"message":   "Admin test endpoint is working",
		"endpoint":  "/admin/iyzico/test",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if r.Method == http.MethodPost {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			resp["body"] = body
		}
	}
	h.render.JSON(w, http.StatusOK, resp)
}

// OrderInfo resolves the gateway payment id behind an order by walking
// order -> payment collection -> iyzico session. Misses answer 200 with
// found=false so the dashboard can tell "no session" from a failed lookup.
func (h *IyzicoAdminHandler) OrderInfo(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]
	if orderID == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Order ID is required"})
		return
	}

	order, err := h.orderRepo.FindByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{
				"found": false,
				"error": "Order not found",
			})
			return
		}
		log.Printf("IyzicoAdminHandler: order %s lookup failed: %v", orderID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{
			"found":   false,
			"error":   "Database query failed",
			"details": err.Error(),
		})
		return
	}

	collection, err := h.paymentRepo.FindCollectionByCartID(r.Context(), order.CartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusOK, map[string]any{
				"found":   false,
				"message": "No payment collections found for this order",
			})
			return
		}
		log.Printf("IyzicoAdminHandler: collection for order %s failed: %v", orderID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{
			"found":   false,
			"error":   "Database query failed",
			"details": err.Error(),
		})
		return
	}

	sessions, err := h.paymentRepo.FindSessionsByCollection(r.Context(), collection.ID)
	if err != nil {
		log.Printf("IyzicoAdminHandler: sessions for collection %s failed: %v", collection.ID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{
			"found":   false,
			"error":   "Database query failed",
			"details": err.Error(),
		})
		return
	}

	for _, sess := range sessions {
		if sess.ProviderID != services.IyzicoProviderID {
			continue
		}
		var paymentID any
		for _, key := range []string{"paymentId", "iyzico_payment_id", "payment_id"} {
			if v, ok := sess.Data[key]; ok && v != nil {
				paymentID = v
				break
			}
		}
		h.render.JSON(w, http.StatusOK, map[string]any{
			"found":                 true,
			"order_id":              orderID,
			"iyzico_payment_id":     paymentID,
			"payment_session_id":    sess.ID,
			"payment_collection_id": collection.ID,
			"session_data":          sess.Data,
		})
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]any{
		"found":   false,
		"message": "No Iyzico payment sessions found for this order",
	})
}
