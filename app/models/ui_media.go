package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UiMediaTypeCarousel = "carousel"
	UiMediaTypeBanner   = "banner"
)

type UiMedia struct {
	ID          string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Type        string     `gorm:"size:20;not null;index:idx_ui_media_type_sort" json:"type"`
	Title       *string    `gorm:"size:255" json:"title"`
	ImageURL    string     `gorm:"type:text;not null" json:"image_url"`
	LinkURL     *string    `gorm:"type:text" json:"link_url"`
	SortOrder   int        `gorm:"not null;default:0;index:idx_ui_media_type_sort" json:"sort_order"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"is_active"`
	Locale      string     `gorm:"size:10;default:tr" json:"locale"`
	PublishAt   *time.Time `json:"publish_at"`
	UnpublishAt *time.Time `json:"unpublish_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (m *UiMedia) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Locale == "" {
		m.Locale = "tr"
	}
	return
}

// VisibleAt reports whether the item may appear in the public listing at t.
// A nil bound means unbounded on that side.
func (m *UiMedia) VisibleAt(t time.Time) bool {
	if !m.IsActive {
		return false
	}
	if m.PublishAt != nil && m.PublishAt.After(t) {
		return false
	}
	if m.UnpublishAt != nil && m.UnpublishAt.Before(t) {
		return false
	}
	return true
}

func ValidUiMediaType(t string) bool {
	return t == UiMediaTypeCarousel || t == UiMediaTypeBanner
}
