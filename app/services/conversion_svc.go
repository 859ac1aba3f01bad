package services

import (
	"context"
	"log"
	"time"

	"github.com/oguzk/eticaret/app/repositories"
)

// ConversionResult summarizes what happened to the cart after a successful
// gateway authorization. It is reported back to the storefront alongside
// the raw gateway response and never fails the payment itself.
type ConversionResult struct {
	CartCompleted   bool   `json:"cart_completed"`
	OrderID         string `json:"order_id,omitempty"`
	PaymentCaptured bool   `json:"payment_captured"`
	Message         string `json:"message,omitempty"`
	Error           string `json:"error,omitempty"`
	CaptureError    string `json:"capture_error,omitempty"`
}

// ConversionService runs the post-authorization bookkeeping: mark the
// session authorized, complete the cart into an order, then capture.
type ConversionService struct {
	cartRepo    repositories.CartRepository
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	completer   CartCompleter
	providers   *ProviderRegistry
}

func NewConversionService(cartRepo repositories.CartRepository, paymentRepo repositories.PaymentRepository, orderRepo repositories.OrderRepository, completer CartCompleter, providers *ProviderRegistry) *ConversionService {
	return &ConversionService{
		cartRepo:    cartRepo,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		completer:   completer,
		providers:   providers,
	}
}

// ConvertCart is best-effort: the card has already been charged by the
// gateway, so every failure here is reported in the result instead of
// being returned as an error.
func (s *ConversionService) ConvertCart(ctx context.Context, cartID, paymentID string) *ConversionResult {
	result := &ConversionResult{}

	cart, err := s.cartRepo.GetWithItems(ctx, cartID)
	if err != nil {
		log.Printf("ConversionService: cart %s not found: %s", cartID, err.Error())
		result.Error = "Cart not found"
		return result
	}

	if cart.CompletedAt != nil {
		result.CartCompleted = true
		result.Message = "Cart already completed"
		if order, err := s.orderRepo.FindByCartID(ctx, cartID); err == nil {
			result.OrderID = order.ID
		}
		return result
	}

	collection, err := s.paymentRepo.FindCollectionByCartID(ctx, cartID)
	if err != nil {
		log.Printf("ConversionService: payment collection for cart %s not found: %s", cartID, err.Error())
		result.Error = "Payment collection not found"
		return result
	}

	sessions, err := s.paymentRepo.FindSessionsByCollection(ctx, collection.ID)
	if err != nil || len(sessions) == 0 {
		result.Error = "No payment sessions found"
		return result
	}

	sessionIdx := -1
	for i := range sessions {
		if sessions[i].ProviderID == IyzicoProviderID {
			sessionIdx = i
			break
		}
	}
	if sessionIdx < 0 {
		result.Error = "Iyzico payment session not found"
		return result
	}
	sess := sessions[sessionIdx]

	provider, err := s.providers.Get(sess.ProviderID)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if !dataFlag(sess.Data, "authorized") {
		authorized, err := provider.AuthorizePayment(ctx, sess.Data, map[string]any{"paymentId": paymentID})
		if err != nil {
			log.Printf("ConversionService: authorize session %s failed: %s", sess.ID, err.Error())
			result.Error = "Payment authorization failed"
			return result
		}
		if err := s.paymentRepo.UpdateSession(ctx, sess.ID, authorized.Status, authorized.Data); err != nil {
			log.Printf("ConversionService: update session %s failed: %s", sess.ID, err.Error())
			result.Error = "Failed to update payment session"
			return result
		}
		sess.Status = authorized.Status
		sess.Data = authorized.Data
	}

	order, err := s.completer.CompleteCart(ctx, cart)
	if err != nil {
		log.Printf("ConversionService: complete cart %s failed: %s", cartID, err.Error())
		result.Error = "Cart completion failed"
		return result
	}
	result.CartCompleted = true
	result.OrderID = order.ID

	captured, err := provider.CapturePayment(ctx, sess.Data)
	if err != nil {
		// The order exists and the money is authorized; capture can be
		// retried from the dashboard.
		log.Printf("ConversionService: capture for session %s failed: %s", sess.ID, err.Error())
		result.CaptureError = err.Error()
		return result
	}
	if err := s.paymentRepo.UpdateSession(ctx, sess.ID, PaymentStatusCaptured, captured); err != nil {
		log.Printf("ConversionService: update captured session %s failed: %s", sess.ID, err.Error())
		result.CaptureError = err.Error()
		return result
	}
	if payment, err := s.paymentRepo.FindPaymentByCollection(ctx, collection.ID); err == nil {
		if err := s.paymentRepo.MarkPaymentCaptured(ctx, payment.ID, time.Now()); err != nil {
			log.Printf("ConversionService: mark payment %s captured failed: %s", payment.ID, err.Error())
		}
	}
	result.PaymentCaptured = true

	log.Printf("✅ ConversionService: cart %s converted, order %s, captured=%t", cartID, result.OrderID, result.PaymentCaptured)
	return result
}
