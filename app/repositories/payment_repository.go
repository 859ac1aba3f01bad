package repositories

import (
	"context"
	"time"

	"github.com/oguzk/eticaret/app/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateCollection(ctx context.Context, collection *models.PaymentCollection) error
	FindCollectionByCartID(ctx context.Context, cartID string) (*models.PaymentCollection, error)
	CreateSession(ctx context.Context, session *models.PaymentSession) error
	FindSessionsByCollection(ctx context.Context, collectionID string) ([]models.PaymentSession, error)
	UpdateSession(ctx context.Context, sessionID, status string, data models.JSONMap) error
	CreatePayment(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	FindPaymentByCollection(ctx context.Context, collectionID string) (*models.Payment, error)
	MarkPaymentCaptured(ctx context.Context, paymentID string, at time.Time) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db}
}

func (r *paymentRepository) CreateCollection(ctx context.Context, collection *models.PaymentCollection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *paymentRepository) FindCollectionByCartID(ctx context.Context, cartID string) (*models.PaymentCollection, error) {
	var collection models.PaymentCollection
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *paymentRepository) CreateSession(ctx context.Context, session *models.PaymentSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *paymentRepository) FindSessionsByCollection(ctx context.Context, collectionID string) ([]models.PaymentSession, error) {
	var sessions []models.PaymentSession
	err := r.db.WithContext(ctx).
		Where("payment_collection_id = ?", collectionID).
		Order("created_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *paymentRepository) UpdateSession(ctx context.Context, sessionID, status string, data models.JSONMap) error {
	res := r.db.WithContext(ctx).
		Model(&models.PaymentSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"status":     status,
			"data":       data,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *paymentRepository) CreatePayment(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindPaymentByCollection(ctx context.Context, collectionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("payment_collection_id = ?", collectionID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) MarkPaymentCaptured(ctx context.Context, paymentID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{"captured_at": at, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
