package migrations

import (
	"github.com/oguzk/eticaret/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Fulfillment{},
		&models.FulfillmentItem{},
		&models.PaymentCollection{},
		&models.PaymentSession{},
		&models.Payment{},
		&models.ContactMessage{},
		&models.ProductReview{},
		&models.UiMedia{},
	)
}
