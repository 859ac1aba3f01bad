package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// At most one non-deleted review per (customer, product) pair. The check is
// done before insert rather than with a unique index, so the pair is only
// plain-indexed here.
type ProductReview struct {
	ID                 string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CustomerID         string   `gorm:"size:36;not null;index" json:"customer_id"`
	Customer           Customer `gorm:"foreignKey:CustomerID" json:"-"`
	ProductID          string   `gorm:"size:36;not null;index" json:"product_id"`
	Product            Product  `gorm:"foreignKey:ProductID" json:"-"`
	Rating             int      `gorm:"not null" json:"rating"`
	Title              *string  `gorm:"size:255" json:"title"`
	Comment            *string  `gorm:"type:text" json:"comment"`
	IsVerifiedPurchase bool     `gorm:"default:false" json:"is_verified_purchase"`
	Status             string   `gorm:"size:20;default:pending;index" json:"status"`
	HelpfulCount       int      `gorm:"default:0" json:"helpful_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (r *ProductReview) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func ValidReviewStatus(status string) bool {
	switch status {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}
