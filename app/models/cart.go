package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is a pre-order collection of line items. Once completed it is
// converted to an order and CompletedAt is set; a completed cart is never
// converted again.
type Cart struct {
	ID           string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CustomerID   *string         `gorm:"size:36;index" json:"customer_id"`
	Email        string          `gorm:"size:255" json:"email"`
	CurrencyCode string          `gorm:"size:3;default:TRY" json:"currency_code"`
	CartItems    []CartItem      `json:"items"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(16,2)" json:"grand_total"`
	CompletedAt  *time.Time      `gorm:"index" json:"completed_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

type CartItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID    string          `gorm:"size:36;not null;index" json:"cart_id"`
	ProductID string          `gorm:"size:36;not null;index" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"-"`
	Title     string          `gorm:"size:255" json:"title"`
	Qty       int             `gorm:"not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}
