package seeders

import (
	"fmt"
	"log"
	"time"

	"github.com/oguzk/eticaret/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// Seed fills an empty database with demo data: an admin, a customer with a
// delivered order, a few products and some storefront media. Running it
// twice is safe, existing rows are left alone.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: count customers: %w", err)
	}
	if count > 0 {
		log.Println("Seeder: database already seeded, skipping")
		return nil
	}

	admin := models.Customer{
		Email:     "admin@example.com",
		FirstName: strPtr("Admin"),
		LastName:  strPtr("User"),
		Role:      models.RoleAdmin,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}
	customer := models.Customer{
		Email:     "ahmet@example.com",
		FirstName: strPtr("Ahmet"),
		LastName:  strPtr("Yılmaz"),
	}
	if err := customer.SetPassword("customer123"); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}
	if err := db.Create(&customer).Error; err != nil {
		return fmt.Errorf("seed: create customer: %w", err)
	}

	products := []models.Product{
		{Title: "Seramik Kupa", Handle: "seramik-kupa", Price: decimal.NewFromFloat(149.90)},
		{Title: "El Yapımı Defter", Handle: "el-yapimi-defter", Price: decimal.NewFromFloat(89.50)},
		{Title: "Keten Çanta", Handle: "keten-canta", Price: decimal.NewFromFloat(219.00)},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("seed: create product: %w", err)
		}
	}

	media := []models.UiMedia{
		{Type: models.UiMediaTypeCarousel, Title: strPtr("Yaz İndirimi"), ImageURL: "/uploads/carousel-summer.jpg", SortOrder: 0, IsActive: true},
		{Type: models.UiMediaTypeCarousel, Title: strPtr("Yeni Koleksiyon"), ImageURL: "/uploads/carousel-new.jpg", SortOrder: 1, IsActive: true},
		{Type: models.UiMediaTypeBanner, Title: strPtr("Ücretsiz Kargo"), ImageURL: "/uploads/banner-shipping.jpg", SortOrder: 0, IsActive: true},
	}
	for i := range media {
		if err := db.Create(&media[i]).Error; err != nil {
			return fmt.Errorf("seed: create ui media: %w", err)
		}
	}

	// Delivered order for the demo customer so the review flow has a
	// verified purchase to find.
	order := models.Order{
		CustomerID:    &customer.ID,
		Email:         customer.Email,
		CurrencyCode:  "TRY",
		GrandTotal:    products[0].Price,
		PaymentStatus: "captured",
		Status:        models.OrderStatusCompleted,
		OrderItems: []models.OrderItem{
			{ProductID: products[0].ID, Title: products[0].Title, Qty: 1, UnitPrice: products[0].Price},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		return fmt.Errorf("seed: create order: %w", err)
	}

	delivered := time.Now().AddDate(0, 0, -7)
	shipped := delivered.AddDate(0, 0, -2)
	fulfillment := models.Fulfillment{
		OrderID:     order.ID,
		ShippedAt:   &shipped,
		DeliveredAt: &delivered,
		Items: []models.FulfillmentItem{
			{OrderItemID: order.OrderItems[0].ID, Qty: 1},
		},
	}
	if err := db.Create(&fulfillment).Error; err != nil {
		return fmt.Errorf("seed: create fulfillment: %w", err)
	}

	log.Println("✅ Seeder: demo data created")
	return nil
}
