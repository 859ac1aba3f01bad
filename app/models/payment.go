package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JSONMap stores provider-specific session state (authorized, captured,
// refunded_amount, external ids) as a JSON column. It is owned by the
// payment provider layer and never exposed to customers directly.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(v any) error {
	if v == nil {
		*m = JSONMap{}
		return nil
	}
	var raw []byte
	switch t := v.(type) {
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return fmt.Errorf("unsupported JSONMap column type %T", v)
	}
	if len(raw) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(raw, m)
}

// PaymentCollection groups the payment attempts against one cart.
type PaymentCollection struct {
	ID           string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID       string          `gorm:"size:36;not null;index" json:"cart_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(16,2)" json:"amount"`
	CurrencyCode string          `gorm:"size:3;default:TRY" json:"currency_code"`
	Sessions     []PaymentSession `gorm:"foreignKey:PaymentCollectionID" json:"sessions"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (c *PaymentCollection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// PaymentSession is bound to exactly one provider and carries that
// provider's opaque state in Data.
type PaymentSession struct {
	ID                  string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	PaymentCollectionID string    `gorm:"size:36;not null;index" json:"payment_collection_id"`
	ProviderID          string    `gorm:"size:50;not null;index" json:"provider_id"`
	Status              string    `gorm:"size:20;default:pending" json:"status"`
	Data                JSONMap   `gorm:"type:json" json:"data"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (s *PaymentSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

type Payment struct {
	ID                  string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	PaymentCollectionID string          `gorm:"size:36;not null;index" json:"payment_collection_id"`
	PaymentSessionID    string          `gorm:"size:36;index" json:"payment_session_id"`
	ProviderID          string          `gorm:"size:50" json:"provider_id"`
	Amount              decimal.Decimal `gorm:"type:decimal(16,2)" json:"amount"`
	CurrencyCode        string          `gorm:"size:3;default:TRY" json:"currency_code"`
	CapturedAt          *time.Time      `json:"captured_at"`
	CanceledAt          *time.Time      `json:"canceled_at"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
