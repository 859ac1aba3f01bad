package services

import (
	"strings"
	"testing"

	"github.com/oguzk/eticaret/app/models"
)

func strptr(s string) *string { return &s }

func TestBuildContactEmailBody(t *testing.T) {
	tests := []struct {
		name     string
		msg      models.ContactMessage
		want     []string
		dontWant []string
	}{
		{
			name: "all fields present",
			msg: models.ContactMessage{
				Name:    strptr("Ahmet Yılmaz"),
				Email:   "ahmet@example.com",
				Phone:   strptr("+90 555 000 00 00"),
				Subject: strptr("Sipariş hakkında"),
				Message: "Merhaba",
			},
			want: []string{"Ahmet Yılmaz", "ahmet@example.com", "+90 555 000 00 00", "Sipariş hakkında", "Merhaba"},
		},
		{
			name: "nil optional fields fall back to dash",
			msg: models.ContactMessage{
				Email:   "test@example.com",
				Message: "hi",
			},
			want: []string{"test@example.com", "hi", "Name:</span> -", "Phone:</span> -", "Subject:</span> -"},
		},
		{
			name: "user input is escaped",
			msg: models.ContactMessage{
				Name:    strptr("<script>alert(1)</script>"),
				Email:   "x@example.com",
				Message: "<b>bold</b>",
			},
			want:     []string{"&lt;script&gt;alert(1)&lt;/script&gt;", "&lt;b&gt;bold&lt;/b&gt;"},
			dontWant: []string{"<script>", "<b>bold</b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := BuildContactEmailBody(&tt.msg)
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q", w)
				}
			}
			for _, dw := range tt.dontWant {
				if strings.Contains(body, dw) {
					t.Errorf("body contains unescaped %q", dw)
				}
			}
		})
	}
}

func TestNotifyContactMessageSkipsWhenUnconfigured(t *testing.T) {
	// No host configured: must return without attempting delivery.
	m := NewMailer(MailerConfig{})
	m.NotifyContactMessage("inbox@example.com", &models.ContactMessage{
		Email:   "a@example.com",
		Message: "hi",
	})

	m = NewMailer(MailerConfig{Host: "smtp.example.com", Port: "587"})
	m.NotifyContactMessage("", &models.ContactMessage{
		Email:   "a@example.com",
		Message: "hi",
	})
}

func TestDerefOr(t *testing.T) {
	if got := derefOr(nil, "-"); got != "-" {
		t.Errorf("derefOr(nil) = %q, want -", got)
	}
	empty := ""
	if got := derefOr(&empty, "-"); got != "-" {
		t.Errorf("derefOr(empty) = %q, want -", got)
	}
	v := "x"
	if got := derefOr(&v, "-"); got != "x" {
		t.Errorf("derefOr(x) = %q, want x", got)
	}
}
