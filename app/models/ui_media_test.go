package models

import (
	"testing"
	"time"
)

func TestUiMediaVisibleAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name  string
		media UiMedia
		want  bool
	}{
		{"active without window", UiMedia{IsActive: true}, true},
		{"inactive", UiMedia{IsActive: false}, false},
		{"inside window", UiMedia{IsActive: true, PublishAt: &past, UnpublishAt: &future}, true},
		{"before publish", UiMedia{IsActive: true, PublishAt: &future}, false},
		{"after unpublish", UiMedia{IsActive: true, UnpublishAt: &past}, false},
		{"open start", UiMedia{IsActive: true, UnpublishAt: &future}, true},
		{"open end", UiMedia{IsActive: true, PublishAt: &past}, true},
		{"boundary at publish", UiMedia{IsActive: true, PublishAt: &now}, true},
		{"boundary at unpublish", UiMedia{IsActive: true, UnpublishAt: &now}, true},
		{"inactive inside window", UiMedia{IsActive: false, PublishAt: &past, UnpublishAt: &future}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.media.VisibleAt(now); got != tt.want {
				t.Errorf("VisibleAt = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestValidUiMediaType(t *testing.T) {
	valid := []string{UiMediaTypeCarousel, UiMediaTypeBanner}
	for _, v := range valid {
		if !ValidUiMediaType(v) {
			t.Errorf("ValidUiMediaType(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "video", "CAROUSEL"} {
		if ValidUiMediaType(v) {
			t.Errorf("ValidUiMediaType(%q) = true, want false", v)
		}
	}
}
