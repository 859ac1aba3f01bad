package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oguzk/eticaret/app/models"
	"github.com/oguzk/eticaret/app/repositories"
	"gorm.io/gorm"
)

var (
	ErrCartEmpty     = errors.New("cart has no items")
	ErrCartCompleted = errors.New("cart already completed")
)

// CartCompleter turns a cart into an order. Split out as an interface so
// the conversion flow can be tested without a database.
type CartCompleter interface {
	CompleteCart(ctx context.Context, cart *models.Cart) (*models.Order, error)
}

type CheckoutService struct {
	db          *gorm.DB
	cartRepo    repositories.CartRepository
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
}

func NewCheckoutService(db *gorm.DB, cartRepo repositories.CartRepository, orderRepo repositories.OrderRepository, paymentRepo repositories.PaymentRepository) *CheckoutService {
	return &CheckoutService{
		db:          db,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

// CompleteCart converts the cart into an order inside a single transaction:
// order and items are created, a payment record is written for the
// authorized session, and the cart is stamped completed.
func (s *CheckoutService) CompleteCart(ctx context.Context, cart *models.Cart) (*models.Order, error) {
	if cart.CompletedAt != nil {
		return nil, ErrCartCompleted
	}
	if len(cart.CartItems) == 0 {
		return nil, ErrCartEmpty
	}

	order := &models.Order{
		CartID:        cart.ID,
		CustomerID:    cart.CustomerID,
		Email:         cart.Email,
		CurrencyCode:  cart.CurrencyCode,
		GrandTotal:    cart.GrandTotal,
		PaymentStatus: "authorized",
		Status:        models.OrderStatusCompleted,
	}
	for _, item := range cart.CartItems {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		collection, err := s.paymentRepo.FindCollectionByCartID(ctx, cart.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find payment collection: %w", err)
		}
		if collection != nil {
			sessions, err := s.paymentRepo.FindSessionsByCollection(ctx, collection.ID)
			if err != nil {
				return fmt.Errorf("find payment sessions: %w", err)
			}
			for _, session := range sessions {
				if session.Status != PaymentStatusAuthorized && session.Status != PaymentStatusCaptured {
					continue
				}
				payment := &models.Payment{
					PaymentCollectionID: collection.ID,
					PaymentSessionID:    session.ID,
					ProviderID:          session.ProviderID,
					Amount:              collection.Amount,
					CurrencyCode:        collection.CurrencyCode,
				}
				if err := s.paymentRepo.CreatePayment(ctx, tx, payment); err != nil {
					return fmt.Errorf("create payment: %w", err)
				}
				break
			}
		}

		if err := s.cartRepo.MarkCompleted(ctx, tx, cart.ID, time.Now()); err != nil {
			return fmt.Errorf("mark cart completed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("CheckoutService: cart %s converted to order %s", cart.ID, order.ID)
	return order, nil
}
