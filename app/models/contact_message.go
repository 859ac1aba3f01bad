package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusArchived = "archived"
)

// ContactMessage is created by the public contact form and only ever
// mutated by admins. Deletion is physical, there is no soft delete here.
type ContactMessage struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name      *string   `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Phone     *string   `gorm:"size:50" json:"phone"`
	Subject   *string   `gorm:"size:255" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	OrderID   *string   `gorm:"size:36" json:"order_id"`
	Status    string    `gorm:"size:20;default:new;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = ContactStatusNew
	}
	return
}
