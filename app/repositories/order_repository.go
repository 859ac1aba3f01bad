package repositories

import (
	"context"

	"github.com/oguzk/eticaret/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByCartID(ctx context.Context, cartID string) (*models.Order, error)
	HasDeliveredPurchase(ctx context.Context, customerID, productID string) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db}
}

func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByCartID(ctx context.Context, cartID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// HasDeliveredPurchase reports whether the customer has a delivered
// fulfillment line for the product. This is what qualifies a review as a
// verified purchase.
func (r *orderRepository) HasDeliveredPurchase(ctx context.Context, customerID, productID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Joins("JOIN fulfillment_items ON fulfillment_items.order_item_id = order_items.id AND fulfillment_items.deleted_at IS NULL").
		Joins("JOIN fulfillments ON fulfillments.id = fulfillment_items.fulfillment_id AND fulfillments.deleted_at IS NULL").
		Where("orders.customer_id = ?", customerID).
		Where("order_items.product_id = ?", productID).
		Where("order_items.deleted_at IS NULL").
		Where("fulfillments.delivered_at IS NOT NULL").
		Count(&count).Error

	return count > 0, err
}
