package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID        string          `gorm:"size:36;index" json:"cart_id"`
	CustomerID    *string         `gorm:"size:36;index" json:"customer_id"`
	Email         string          `gorm:"size:255" json:"email"`
	CurrencyCode  string          `gorm:"size:3;default:TRY" json:"currency_code"`
	OrderItems    []OrderItem     `json:"order_items"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(16,2)" json:"grand_total"`
	PaymentStatus string          `gorm:"size:50;default:pending" json:"payment_status"`
	Status        string          `gorm:"size:20;default:pending" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

type OrderItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID   string          `gorm:"size:36;not null;index" json:"order_id"`
	ProductID string          `gorm:"size:36;not null;index" json:"product_id"`
	Title     string          `gorm:"size:255" json:"title"`
	Qty       int             `gorm:"not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

// Fulfillment tracks shipment of an order. DeliveredAt being set is what
// qualifies a customer to review the delivered products.
type Fulfillment struct {
	ID          string            `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID     string            `gorm:"size:36;not null;index" json:"order_id"`
	Items       []FulfillmentItem `json:"items"`
	ShippedAt   *time.Time        `json:"shipped_at"`
	DeliveredAt *time.Time        `gorm:"index" json:"delivered_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (f *Fulfillment) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

type FulfillmentItem struct {
	ID            string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	FulfillmentID string         `gorm:"size:36;not null;index" json:"fulfillment_id"`
	OrderItemID   string         `gorm:"size:36;not null;index" json:"order_item_id"`
	Qty           int            `gorm:"not null" json:"qty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (i *FulfillmentItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}
