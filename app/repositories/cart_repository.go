package repositories

import (
	"context"
	"time"

	"github.com/oguzk/eticaret/app/models"
	"gorm.io/gorm"
)

type CartRepository interface {
	GetWithItems(ctx context.Context, id string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	MarkCompleted(ctx context.Context, tx *gorm.DB, cartID string, at time.Time) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db}
}

func (r *cartRepository) GetWithItems(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems").
		Where("id = ?", id).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepository) MarkCompleted(ctx context.Context, tx *gorm.DB, cartID string, at time.Time) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{"completed_at": at, "updated_at": at}).Error
}
